// Package cdf decodes the headers of NetCDF classic files (CDF-1, CDF-2 and CDF-5).
package cdf

// Dimension is a named axis. A Len of 0 marks the record (unlimited) dimension.
type Dimension struct {
	Name string
	Len  uint64
}

// IsRecord reports whether d is the record dimension.
func (d Dimension) IsRecord() bool {
	return d.Len == 0
}

// Attribute values are kept as the raw big-endian bytes from the file;
// len(Data) is always a multiple of Type.Size().
type Attribute struct {
	Name string
	Type Type
	Data []byte
}

// Len returns the number of elements in the attribute.
func (a Attribute) Len() int {
	if s := a.Type.Size(); s > 0 {
		return len(a.Data) / s
	}
	return 0
}

type Variable struct {
	Name string
	// DimIDs index Header.Dimensions. They are not range-checked by the decoder.
	DimIDs []uint64
	// Attributes is nil when the file marks the list ABSENT.
	Attributes []Attribute
	Type       Type
	VSize      uint64
	// Begin is the absolute file offset of the first data element.
	Begin uint64
}

// Header is a decoded classic header.
//
// Each of the three lists is nil when the file carries the ABSENT marker
// and non-nil (possibly empty) when the file carries the list tag.
type Header struct {
	Version Version
	// NumRecs is meaningful only when Streaming is false.
	NumRecs   uint64
	Streaming bool

	Dimensions []Dimension
	Attributes []Attribute
	Variables  []Variable
}

// DecodeHeader decodes the header at the start of buf.
// buf is only read; the returned header does not alias it.
func DecodeHeader(buf []byte) (*Header, error) {
	h, _, err := decodeHeader(buf)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func decodeHeader(buf []byte) (Header, int, error) {
	if len(buf) < len(magicCDF) || string(buf[:len(magicCDF)]) != magicCDF {
		n := min(len(buf), len(magicCDF))
		return Header{}, 0, decodeErr(0, "magic", ErrBadMagic, "got %q", buf[:n])
	}
	off := len(magicCDF)
	if off >= len(buf) {
		return Header{}, 0, decodeErr(off, "version", ErrTruncated, "missing version byte")
	}
	v := Version(buf[off])
	if !v.valid() {
		return Header{}, 0, decodeErr(off, "version", ErrUnknownVersion, "byte 0x%02x", buf[off])
	}
	off++

	d := &decoder{buf: buf, w: widthsFor(v)}
	h := Header{Version: v}

	numrecs, off, err := d.count(off, "numrecs")
	if err != nil {
		return Header{}, 0, err
	}
	if numrecs == d.w.streaming() {
		h.Streaming = true
	} else {
		h.NumRecs = numrecs
	}

	if h.Dimensions, off, err = d.dimList(off); err != nil {
		return Header{}, 0, err
	}
	if h.Attributes, off, err = d.attList(off, "gatt_list"); err != nil {
		return Header{}, 0, err
	}
	if h.Variables, off, err = d.varList(off); err != nil {
		return Header{}, 0, err
	}
	return h, off, nil
}
