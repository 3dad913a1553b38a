package cdfdata

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/samcharles93/cdfkit/pkg/cdf"
	"github.com/stretchr/testify/require"
)

// classic1 writes a CDF-1 header; it covers just enough of the format for
// these tests.
type classic1 []byte

func (b classic1) u32(v uint32) classic1 { return binary.BigEndian.AppendUint32(b, v) }

func (b classic1) name(s string) classic1 {
	b = b.u32(uint32(len(s)))
	b = append(b, s...)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func encode(h *cdf.Header) []byte {
	b := classic1("CDF\x01").u32(uint32(h.NumRecs))
	b = b.u32(0x0a).u32(uint32(len(h.Dimensions)))
	for _, d := range h.Dimensions {
		b = b.name(d.Name).u32(uint32(d.Len))
	}
	b = b.u32(0).u32(0)
	b = b.u32(0x0b).u32(uint32(len(h.Variables)))
	for _, v := range h.Variables {
		b = b.name(v.Name).u32(uint32(len(v.DimIDs)))
		for _, id := range v.DimIDs {
			b = b.u32(uint32(id))
		}
		b = b.u32(0).u32(0).u32(uint32(v.Type)).u32(uint32(v.VSize)).u32(uint32(v.Begin))
	}
	return b
}

func be16(vs ...int16) []byte {
	var out []byte
	for _, v := range vs {
		out = binary.BigEndian.AppendUint16(out, uint16(v))
	}
	return out
}

func be64f(vs ...float64) []byte {
	var out []byte
	for _, v := range vs {
		out = binary.BigEndian.AppendUint64(out, math.Float64bits(v))
	}
	return out
}

func be32f(vs ...float32) []byte {
	var out []byte
	for _, v := range vs {
		out = binary.BigEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

// sampleFile lays out one fixed variable followed by two records of two
// record variables.
func sampleFile(t *testing.T) *cdf.File {
	t.Helper()
	h := &cdf.Header{
		Version:    cdf.CDF1,
		NumRecs:    2,
		Dimensions: []cdf.Dimension{{Name: "time", Len: 0}, {Name: "x", Len: 3}},
		Variables: []cdf.Variable{
			{Name: "x", DimIDs: []uint64{1}, Type: cdf.TypeF32, VSize: 12},
			{Name: "a", DimIDs: []uint64{0, 1}, Type: cdf.TypeI16, VSize: 8},
			{Name: "b", DimIDs: []uint64{0}, Type: cdf.TypeF64, VSize: 8},
		},
	}
	size := uint64(len(encode(h)))
	h.Variables[0].Begin = size
	h.Variables[1].Begin = size + 12
	h.Variables[2].Begin = size + 12 + 8

	buf := encode(h)
	buf = append(buf, be32f(0.5, 1.5, 2.5)...)
	buf = append(buf, be16(1, 2, 3)...)
	buf = append(buf, 0, 0)
	buf = append(buf, be64f(10)...)
	buf = append(buf, be16(4, 5, 6)...)
	buf = append(buf, 0, 0)
	buf = append(buf, be64f(20)...)

	f, err := cdf.Decode(buf)
	require.NoError(t, err)
	return f
}

func TestValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  cdf.Type
		raw  []byte
		want any
	}{
		{cdf.TypeChar, []byte("kelvin\x00\x00"), "kelvin"},
		{cdf.TypeI8, []byte{0xff, 0x01}, []int8{-1, 1}},
		{cdf.TypeU8, []byte{0xff, 0x01}, []uint8{255, 1}},
		{cdf.TypeI16, []byte{0xff, 0xfe, 0x00, 0x02}, []int16{-2, 2}},
		{cdf.TypeU16, []byte{0xff, 0xfe}, []uint16{0xfffe}},
		{cdf.TypeI32, []byte{0xff, 0xff, 0xff, 0xfd}, []int32{-3}},
		{cdf.TypeU32, []byte{0, 0, 1, 0}, []uint32{256}},
		{cdf.TypeI64, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, []int64{-1}},
		{cdf.TypeU64, []byte{0, 0, 0, 0, 0, 0, 0, 9}, []uint64{9}},
		{cdf.TypeF32, be32f(1.25), []float32{1.25}},
		{cdf.TypeF64, be64f(-0.5, 3), []float64{-0.5, 3}},
	}
	for _, tc := range tests {
		got, err := Values(tc.typ, tc.raw)
		require.NoError(t, err, tc.typ.String())
		require.Equal(t, tc.want, got, tc.typ.String())
		if s, ok := tc.want.(string); !ok {
			require.Equal(t, len(tc.raw)/tc.typ.Size(), Len(got))
		} else {
			require.Equal(t, len(s), Len(got))
		}
	}

	_, err := Values(cdf.TypeI32, []byte{1, 2, 3})
	require.ErrorIs(t, err, ErrSize)
	_, err = Values(cdf.Type(42), nil)
	require.ErrorIs(t, err, cdf.ErrUnknownType)
}

func TestAttributeHelpers(t *testing.T) {
	t.Parallel()

	atts := []cdf.Attribute{
		{Name: "units", Type: cdf.TypeChar, Data: []byte("m s-1")},
		{Name: "scale_factor", Type: cdf.TypeF32, Data: be32f(0.25)},
		{Name: "_FillValue", Type: cdf.TypeI16, Data: be16(-999)},
		{Name: "big", Type: cdf.TypeU64, Data: []byte{0xff, 0, 0, 0, 0, 0, 0, 0}},
		{Name: "empty", Type: cdf.TypeF64, Data: []byte{}},
	}

	s, ok := GetString(atts, "units")
	require.True(t, ok)
	require.Equal(t, "m s-1", s)
	_, ok = GetString(atts, "scale_factor")
	require.False(t, ok)

	f, ok := GetFloat64(atts, "scale_factor")
	require.True(t, ok)
	require.InDelta(t, 0.25, f, 1e-9)
	f, ok = GetFloat64(atts, "_FillValue")
	require.True(t, ok)
	require.Equal(t, -999.0, f)
	_, ok = GetFloat64(atts, "empty")
	require.False(t, ok)

	i, ok := GetInt64(atts, "_FillValue")
	require.True(t, ok)
	require.Equal(t, int64(-999), i)
	_, ok = GetInt64(atts, "big")
	require.False(t, ok)
	_, ok = GetInt64(atts, "units")
	require.False(t, ok)

	_, err := MustGetString(atts, "long_name")
	require.Error(t, err)

	v, err := AttributeValues(atts[2])
	require.NoError(t, err)
	require.Equal(t, []int16{-999}, v)
	_, err = AttributeValues(cdf.Attribute{Name: "bad", Type: cdf.TypeI32, Data: []byte{1}})
	require.ErrorContains(t, err, "attribute bad")
}

func TestShapeAndRecordSize(t *testing.T) {
	t.Parallel()

	f := sampleFile(t)
	h := f.Header

	a, _ := h.Variable("a")
	shape, err := Shape(h, a)
	require.NoError(t, err)
	require.Equal(t, []uint64{2, 3}, shape)

	size, err := RecordSize(h)
	require.NoError(t, err)
	require.Equal(t, uint64(16), size)

	bad := &cdf.Variable{Name: "bad", DimIDs: []uint64{5}}
	_, err = Shape(h, bad)
	require.ErrorIs(t, err, cdf.ErrDimensionIndex)

	inner := &cdf.Variable{Name: "inner", DimIDs: []uint64{1, 0}}
	_, err = Shape(h, inner)
	require.ErrorIs(t, err, cdf.ErrRecordDimension)
}

func TestRecordSizeSingleRecordVariable(t *testing.T) {
	t.Parallel()

	h := &cdf.Header{
		NumRecs:    4,
		Dimensions: []cdf.Dimension{{Name: "t", Len: 0}, {Name: "c", Len: 3}},
		Variables: []cdf.Variable{
			{Name: "code", DimIDs: []uint64{0, 1}, Type: cdf.TypeChar, VSize: 4},
		},
	}
	size, err := RecordSize(h)
	require.NoError(t, err)
	require.Equal(t, uint64(3), size)
}

func TestReadVariable(t *testing.T) {
	t.Parallel()

	f := sampleFile(t)
	h := f.Header

	x, _ := h.Variable("x")
	got, err := ReadVariable(f, x)
	require.NoError(t, err)
	require.Equal(t, []float32{0.5, 1.5, 2.5}, got)

	a, _ := h.Variable("a")
	got, err = ReadVariable(f, a)
	require.NoError(t, err)
	require.Equal(t, []int16{1, 2, 3, 4, 5, 6}, got)

	b, _ := h.Variable("b")
	got, err = ReadVariable(f, b)
	require.NoError(t, err)
	require.Equal(t, []float64{10, 20}, got)
}

func TestReadVariableErrors(t *testing.T) {
	t.Parallel()

	f := sampleFile(t)

	streaming := *f.Header
	streaming.Streaming = true
	sf := &cdf.File{Header: &streaming}
	b, _ := streaming.Variable("b")
	_, err := ReadVariable(sf, b)
	require.ErrorIs(t, err, ErrStreamingRecords)

	past := f.Header.Variables[0]
	past.Begin = uint64(len(f.Bytes()))
	_, err = ReadVariable(f, &past)
	require.ErrorIs(t, err, cdf.ErrTruncated)

	many := *f.Header
	many.NumRecs = 1 << 40
	mf := &cdf.File{Header: &many}
	a, _ := many.Variable("a")
	_, err = ReadVariableBytes(mf, a)
	require.ErrorIs(t, err, cdf.ErrTruncated)
}
