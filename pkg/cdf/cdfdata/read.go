package cdfdata

import (
	"fmt"
	"math/bits"

	"github.com/samcharles93/cdfkit/pkg/cdf"
)

// Shape resolves v's dimension ids against h. The record dimension takes
// the header's record count.
func Shape(h *cdf.Header, v *cdf.Variable) ([]uint64, error) {
	shape := make([]uint64, len(v.DimIDs))
	for i, id := range v.DimIDs {
		if id >= uint64(len(h.Dimensions)) {
			return nil, fmt.Errorf("%w: variable %s dimension %d refers to id %d", cdf.ErrDimensionIndex, v.Name, i, id)
		}
		d := h.Dimensions[id]
		if !d.IsRecord() {
			shape[i] = d.Len
			continue
		}
		if i != 0 {
			return nil, fmt.Errorf("%w: variable %s uses %s at position %d", cdf.ErrRecordDimension, v.Name, d.Name, i)
		}
		if h.Streaming {
			return nil, fmt.Errorf("%w: variable %s", ErrStreamingRecords, v.Name)
		}
		shape[i] = h.NumRecs
	}
	return shape, nil
}

func product(dims []uint64) (uint64, error) {
	n := uint64(1)
	for _, d := range dims {
		hi, lo := bits.Mul64(n, d)
		if hi != 0 {
			return 0, ErrTooLarge
		}
		n = lo
	}
	return n, nil
}

// recordSlab is the unpadded size in bytes of one record of v.
func recordSlab(h *cdf.Header, v *cdf.Variable) (uint64, error) {
	inner := make([]uint64, 0, len(v.DimIDs))
	for _, id := range v.DimIDs[1:] {
		if id >= uint64(len(h.Dimensions)) {
			return 0, fmt.Errorf("%w: variable %s refers to id %d", cdf.ErrDimensionIndex, v.Name, id)
		}
		inner = append(inner, h.Dimensions[id].Len)
	}
	n, err := product(append(inner, uint64(v.Type.Size())))
	if err != nil {
		return 0, fmt.Errorf("variable %s: %w", v.Name, err)
	}
	return n, nil
}

// RecordSize returns the stride between consecutive records: the sum of
// vsize over all record variables, or the unpadded slab size when there is
// exactly one record variable.
func RecordSize(h *cdf.Header) (uint64, error) {
	var (
		total uint64
		count int
		last  *cdf.Variable
	)
	for i := range h.Variables {
		v := &h.Variables[i]
		if !v.IsRecord(h) {
			continue
		}
		sum := total + v.VSize
		if sum < total {
			return 0, ErrTooLarge
		}
		total = sum
		count++
		last = v
	}
	if count == 1 {
		return recordSlab(h, last)
	}
	return total, nil
}

// ReadVariable gathers v's data from f and converts it with Values.
// Record variables are read record by record; streaming files are rejected.
func ReadVariable(f *cdf.File, v *cdf.Variable) (any, error) {
	raw, err := ReadVariableBytes(f, v)
	if err != nil {
		return nil, err
	}
	return Values(v.Type, raw)
}

// ReadVariableBytes returns v's raw big-endian data in row-major order.
func ReadVariableBytes(f *cdf.File, v *cdf.Variable) ([]byte, error) {
	h := f.Header
	shape, err := Shape(h, v)
	if err != nil {
		return nil, err
	}
	fileSize := uint64(len(f.Bytes()))

	if !v.IsRecord(h) {
		n, err := product(append(shape, uint64(v.Type.Size())))
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", v.Name, err)
		}
		raw, err := f.VariableData(v, n)
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", v.Name, err)
		}
		return raw, nil
	}

	slab, err := recordSlab(h, v)
	if err != nil {
		return nil, err
	}
	stride, err := RecordSize(h)
	if err != nil {
		return nil, err
	}
	hi, total := bits.Mul64(slab, h.NumRecs)
	if hi != 0 || total > fileSize {
		return nil, fmt.Errorf("%w: variable %s needs %d records of %d bytes", cdf.ErrTruncated, v.Name, h.NumRecs, slab)
	}

	out := make([]byte, 0, total)
	for r := range h.NumRecs {
		hi, step := bits.Mul64(r, stride)
		off := v.Begin + step
		if hi != 0 || off < v.Begin {
			return nil, fmt.Errorf("%w: variable %s record %d", ErrTooLarge, v.Name, r)
		}
		b, err := f.Slice(off, slab)
		if err != nil {
			return nil, fmt.Errorf("variable %s record %d: %w", v.Name, r, err)
		}
		out = append(out, b...)
	}
	return out, nil
}
