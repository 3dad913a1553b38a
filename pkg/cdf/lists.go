package cdf

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	tagDimension uint32 = 0x0000000A
	tagVariable  uint32 = 0x0000000B
	tagAttribute uint32 = 0x0000000C
)

// listHeader reads the fixed-size prefix shared by all three lists. An
// all-zero prefix is the ABSENT marker; anything else must carry the
// list's tag followed by the entry count.
func (d *decoder) listHeader(off int, want uint32, field string) (k uint64, present bool, next int, err error) {
	raw, next, err := d.take(off, d.w.absentLen(), field)
	if err != nil {
		return 0, false, off, err
	}
	if allZero(raw) {
		return 0, false, next, nil
	}
	if tag := binary.BigEndian.Uint32(raw[:tagSize]); tag != want {
		return 0, false, off, decodeErr(off, field, ErrMalformedListMarker, "tag 0x%08x, want 0x%08x", tag, want)
	}
	return beUint(raw[tagSize:]), true, next, nil
}

func (d *decoder) dimList(off int) ([]Dimension, int, error) {
	const field = "dim_list"
	k, present, off, err := d.listHeader(off, tagDimension, field)
	if err != nil || !present {
		return nil, off, err
	}
	if err := d.fits(off, k, 2*d.w.count, field); err != nil {
		return nil, off, err
	}
	dims := make([]Dimension, 0, k)
	for i := range k {
		f := fmt.Sprintf("%s[%d]", field, i)
		name, next, err := d.name(off, f+".name")
		if err != nil {
			return nil, off, err
		}
		n, next, err := d.count(next, f+".len")
		if err != nil {
			return nil, off, err
		}
		dims = append(dims, Dimension{Name: name, Len: n})
		off = next
	}
	return dims, off, nil
}

// attList decodes both the global attribute list and every per-variable one.
func (d *decoder) attList(off int, field string) ([]Attribute, int, error) {
	k, present, off, err := d.listHeader(off, tagAttribute, field)
	if err != nil || !present {
		return nil, off, err
	}
	if err := d.fits(off, k, 2*d.w.count+tagSize, field); err != nil {
		return nil, off, err
	}
	atts := make([]Attribute, 0, k)
	for i := range k {
		att, next, err := d.attr(off, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, off, err
		}
		atts = append(atts, att)
		off = next
	}
	return atts, off, nil
}

func (d *decoder) attr(off int, field string) (Attribute, int, error) {
	name, next, err := d.name(off, field+".name")
	if err != nil {
		return Attribute{}, off, err
	}
	t, next, err := d.typ(next, field+".type")
	if err != nil {
		return Attribute{}, off, err
	}
	nelems, next, err := d.count(next, field+".nelems")
	if err != nil {
		return Attribute{}, off, err
	}
	size := uint64(t.Size())
	if nelems > uint64(d.remaining(next))/size {
		return Attribute{}, off, decodeErr(next, field+".values", ErrTruncated,
			"%d %s values of %d bytes each, have %d bytes", nelems, t, size, d.remaining(next))
	}
	raw, next, err := d.take(next, int(nelems*size), field+".values")
	if err != nil {
		return Attribute{}, off, err
	}
	next, err = d.pad(next, field+".values")
	if err != nil {
		return Attribute{}, off, err
	}
	return Attribute{Name: name, Type: t, Data: bytes.Clone(raw)}, next, nil
}

func (d *decoder) varList(off int) ([]Variable, int, error) {
	const field = "var_list"
	k, present, off, err := d.listHeader(off, tagVariable, field)
	if err != nil || !present {
		return nil, off, err
	}
	minEntry := 3*d.w.count + d.w.absentLen() + tagSize + d.w.offset
	if err := d.fits(off, k, minEntry, field); err != nil {
		return nil, off, err
	}
	vars := make([]Variable, 0, k)
	for i := range k {
		v, next, err := d.variable(off, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, off, err
		}
		vars = append(vars, v)
		off = next
	}
	return vars, off, nil
}

func (d *decoder) variable(off int, field string) (Variable, int, error) {
	name, next, err := d.name(off, field+".name")
	if err != nil {
		return Variable{}, off, err
	}
	ndims, next, err := d.count(next, field+".nelems")
	if err != nil {
		return Variable{}, off, err
	}
	if err := d.fits(next, ndims, d.w.count, field+".dimids"); err != nil {
		return Variable{}, off, err
	}
	dimIDs := make([]uint64, 0, ndims)
	for j := range ndims {
		id, n, err := d.count(next, fmt.Sprintf("%s.dimids[%d]", field, j))
		if err != nil {
			return Variable{}, off, err
		}
		dimIDs = append(dimIDs, id)
		next = n
	}
	atts, next, err := d.attList(next, field+".att_list")
	if err != nil {
		return Variable{}, off, err
	}
	t, next, err := d.typ(next, field+".type")
	if err != nil {
		return Variable{}, off, err
	}
	vsize, next, err := d.count(next, field+".vsize")
	if err != nil {
		return Variable{}, off, err
	}
	begin, next, err := d.uint(next, d.w.offset, field+".begin")
	if err != nil {
		return Variable{}, off, err
	}
	return Variable{
		Name:       name,
		DimIDs:     dimIDs,
		Attributes: atts,
		Type:       t,
		VSize:      vsize,
		Begin:      begin,
	}, next, nil
}
