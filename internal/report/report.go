package report

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"

	"github.com/samcharles93/cdfkit/pkg/cdf"
	"github.com/samcharles93/cdfkit/pkg/cdf/cdfdata"
)

// Report is the serialisable view of a decoded header. Nil lists mean the
// file marked the list ABSENT and are rendered as null.
type Report struct {
	Name       string      `json:"name,omitempty"`
	Version    string      `json:"version"`
	NumRecs    *uint64     `json:"num_recs"`
	Streaming  bool        `json:"streaming"`
	HeaderSize int         `json:"header_size,omitempty"`
	Dimensions []Dimension `json:"dimensions"`
	Attributes []Attribute `json:"attributes"`
	Variables  []Variable  `json:"variables"`
}

type Dimension struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Len    uint64 `json:"len"`
	Record bool   `json:"record,omitempty"`
}

type Attribute struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Len       int    `json:"len"`
	Value     any    `json:"value,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

type Variable struct {
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	DimIDs     []uint64    `json:"dim_ids"`
	Dims       []string    `json:"dims"`
	Shape      []uint64    `json:"shape,omitempty"`
	Record     bool        `json:"record,omitempty"`
	VSize      uint64      `json:"vsize"`
	Begin      uint64      `json:"begin"`
	Attributes []Attribute `json:"attributes"`
}

type Options struct {
	// MaxValues caps the number of attribute elements kept per attribute.
	// Zero keeps everything; a negative value drops values entirely.
	MaxValues int
}

// Build converts a header into a Report.
func Build(name string, h *cdf.Header, opts Options) *Report {
	r := &Report{
		Name:      name,
		Version:   h.Version.String(),
		Streaming: h.Streaming,
	}
	if !h.Streaming {
		n := h.NumRecs
		r.NumRecs = &n
	}
	if h.Dimensions != nil {
		r.Dimensions = make([]Dimension, 0, len(h.Dimensions))
		for i, d := range h.Dimensions {
			r.Dimensions = append(r.Dimensions, Dimension{ID: i, Name: d.Name, Len: d.Len, Record: d.IsRecord()})
		}
	}
	r.Attributes = buildAttributes(h.Attributes, opts)
	if h.Variables != nil {
		r.Variables = make([]Variable, 0, len(h.Variables))
		for i := range h.Variables {
			r.Variables = append(r.Variables, buildVariable(h, &h.Variables[i], opts))
		}
	}
	return r
}

// BuildFile is Build plus the header size of a decoded file.
func BuildFile(name string, f *cdf.File, opts Options) *Report {
	r := Build(name, f.Header, opts)
	r.HeaderSize = f.HeaderSize
	return r
}

func buildVariable(h *cdf.Header, v *cdf.Variable, opts Options) Variable {
	out := Variable{
		Name:       v.Name,
		Type:       v.Type.String(),
		DimIDs:     v.DimIDs,
		Dims:       make([]string, len(v.DimIDs)),
		Record:     v.IsRecord(h),
		VSize:      v.VSize,
		Begin:      v.Begin,
		Attributes: buildAttributes(v.Attributes, opts),
	}
	for i, id := range v.DimIDs {
		if id < uint64(len(h.Dimensions)) {
			out.Dims[i] = h.Dimensions[id].Name
		} else {
			out.Dims[i] = fmt.Sprintf("?%d", id)
		}
	}
	if shape, err := cdfdata.Shape(h, v); err == nil {
		out.Shape = shape
	}
	return out
}

func buildAttributes(atts []cdf.Attribute, opts Options) []Attribute {
	if atts == nil {
		return nil
	}
	out := make([]Attribute, 0, len(atts))
	for _, a := range atts {
		ra := Attribute{Name: a.Name, Type: a.Type.String(), Len: a.Len()}
		if opts.MaxValues >= 0 {
			if v, err := cdfdata.AttributeValues(a); err == nil {
				ra.Value, ra.Truncated = Limit(v, opts.MaxValues)
			}
		}
		out = append(out, ra)
	}
	return out
}

// Limit keeps at most n elements of a decoded value (n <= 0 keeps all) and
// rewrites values JSON cannot carry: byte slices would become base64 and NaN
// is not a number. The second result reports whether elements were dropped.
func Limit(v any, n int) (any, bool) {
	switch t := v.(type) {
	case string:
		return t, false
	case []int8:
		return head(t, n)
	case []uint8:
		wide := make([]uint16, len(t))
		for i, b := range t {
			wide[i] = uint16(b)
		}
		return head(wide, n)
	case []int16:
		return head(t, n)
	case []uint16:
		return head(t, n)
	case []int32:
		return head(t, n)
	case []uint32:
		return head(t, n)
	case []int64:
		return head(t, n)
	case []uint64:
		return head(t, n)
	case []float32:
		s, cut := head(t, n)
		return finite(s), cut
	case []float64:
		s, cut := head(t, n)
		return finite(s), cut
	default:
		return v, false
	}
}

func head[T any](s []T, n int) ([]T, bool) {
	if n > 0 && len(s) > n {
		return s[:n], true
	}
	return s, false
}

func finite[T float32 | float64](s []T) any {
	for _, f := range s {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			out := make([]any, len(s))
			for i, g := range s {
				out[i] = floatValue(float64(g))
			}
			return out
		}
	}
	return s
}

func floatValue(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return f
	}
}

// JSON renders r as indented JSON.
func JSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
