package cdf

import "encoding/binary"

// builder writes header fragments the way a CDF writer would. It exists only
// to produce fixtures; the package itself never encodes.
type builder struct {
	v   Version
	w   widths
	buf []byte
}

func newBuilder(v Version) *builder {
	b := &builder{v: v, w: widthsFor(v)}
	b.buf = append(b.buf, 'C', 'D', 'F', byte(v))
	return b
}

func (b *builder) bytes() []byte { return b.buf }

func (b *builder) raw(p ...byte) *builder {
	b.buf = append(b.buf, p...)
	return b
}

func (b *builder) u32(x uint32) *builder {
	b.buf = binary.BigEndian.AppendUint32(b.buf, x)
	return b
}

func (b *builder) uintN(x uint64, width int) *builder {
	if width == 4 {
		return b.u32(uint32(x))
	}
	b.buf = binary.BigEndian.AppendUint64(b.buf, x)
	return b
}

func (b *builder) count(x uint64) *builder  { return b.uintN(x, b.w.count) }
func (b *builder) offset(x uint64) *builder { return b.uintN(x, b.w.offset) }

func (b *builder) pad() *builder {
	for range padding(len(b.buf)) {
		b.buf = append(b.buf, 0)
	}
	return b
}

func (b *builder) name(s string) *builder {
	b.count(uint64(len(s)))
	b.buf = append(b.buf, s...)
	return b.pad()
}

func (b *builder) absent() *builder {
	return b.u32(0).count(0)
}

func (b *builder) numrecs(h *Header) *builder {
	if h.Streaming {
		return b.count(b.w.streaming())
	}
	return b.count(h.NumRecs)
}

func (b *builder) dims(ds []Dimension) *builder {
	if ds == nil {
		return b.absent()
	}
	b.u32(tagDimension).count(uint64(len(ds)))
	for _, d := range ds {
		b.name(d.Name).count(d.Len)
	}
	return b
}

func (b *builder) atts(as []Attribute) *builder {
	if as == nil {
		return b.absent()
	}
	b.u32(tagAttribute).count(uint64(len(as)))
	for _, a := range as {
		b.name(a.Name).u32(uint32(a.Type)).count(uint64(a.Len()))
		b.buf = append(b.buf, a.Data...)
		b.pad()
	}
	return b
}

func (b *builder) vars(vs []Variable) *builder {
	if vs == nil {
		return b.absent()
	}
	b.u32(tagVariable).count(uint64(len(vs)))
	for _, v := range vs {
		b.name(v.Name).count(uint64(len(v.DimIDs)))
		for _, id := range v.DimIDs {
			b.count(id)
		}
		b.atts(v.Attributes).u32(uint32(v.Type)).count(v.VSize).offset(v.Begin)
	}
	return b
}

func encodeHeader(h *Header) []byte {
	return newBuilder(h.Version).
		numrecs(h).
		dims(h.Dimensions).
		atts(h.Attributes).
		vars(h.Variables).
		bytes()
}
