package cdf

import (
	"bytes"
	"encoding/binary"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNamePaddingProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("name decode ends on the next 4-byte boundary of the buffer", prop.ForAll(
		func(p int, n int, vi int) bool {
			w := widthsFor(allVersions[vi])
			buf := make([]byte, p)
			buf = binary.BigEndian.AppendUint64(buf, uint64(n))
			if w.count == 4 {
				buf = binary.BigEndian.AppendUint32(buf[:p], uint32(n))
			}
			buf = append(buf, strings.Repeat("z", n)...)
			buf = append(buf, 0, 0, 0)

			d := &decoder{buf: buf, w: w}
			_, next, err := d.name(p, "name")
			if err != nil {
				return false
			}
			end := p + w.count + n
			return next == end+(4-(end%4))%4 && next%4 == 0
		},
		gen.IntRange(0, 4096),
		gen.IntRange(0, 64),
		gen.IntRange(0, len(allVersions)-1),
	))

	properties.TestingRun(t)
}

func TestNumRecsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("numrecs decodes as known count unless it is the all-ones sentinel", prop.ForAll(
		func(raw uint64, vi int, sentinel bool) bool {
			v := allVersions[vi]
			w := widthsFor(v)
			if w.count == 4 {
				raw &= 0xFFFFFFFF
			}
			if sentinel {
				raw = w.streaming()
			}
			buf := newBuilder(v).count(raw).absent().absent().absent().bytes()
			h, err := DecodeHeader(buf)
			if err != nil {
				return false
			}
			if raw == w.streaming() {
				return h.Streaming && h.NumRecs == 0
			}
			return !h.Streaming && h.NumRecs == raw
		},
		gen.UInt64(),
		gen.IntRange(0, len(allVersions)-1),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestDimensionListRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("encoded dimension lists decode to the same values", prop.ForAll(
		func(names []string, lens []uint32, vi int, trailer []byte) bool {
			dims := make([]Dimension, 0, len(names))
			for i := 0; i < len(names) && i < len(lens); i++ {
				dims = append(dims, Dimension{Name: names[i], Len: uint64(lens[i])})
			}
			want := &Header{Version: allVersions[vi], NumRecs: uint64(len(dims)), Dimensions: dims}
			hdr := encodeHeader(want)
			f, err := Decode(append(append([]byte{}, hdr...), trailer...))
			if err != nil {
				return false
			}
			return reflect.DeepEqual(f.Header, want) &&
				f.HeaderSize == len(hdr) &&
				bytes.Equal(f.Data, trailer)
		},
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.UInt32()),
		gen.IntRange(0, len(allVersions)-1),
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}

func TestArbitraryInputNeverPanicsProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("decode of arbitrary bytes after a valid magic returns a value or an error", prop.ForAll(
		func(vi int, body []byte) bool {
			buf := append([]byte{'C', 'D', 'F', byte(allVersions[vi])}, body...)
			h, err := DecodeHeader(buf)
			return (h == nil) != (err == nil)
		},
		gen.IntRange(0, len(allVersions)-1),
		gen.SliceOf(gen.UInt8()),
	))

	properties.TestingRun(t)
}
