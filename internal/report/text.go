package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteText renders the summary layout used by `cdfkit inspect`.
func WriteText(w io.Writer, r *Report) error {
	p := &printer{w: w}
	p.printf("Version = %s\n", r.Version)
	if r.Streaming {
		p.printf("Number of records: streaming\n")
	} else {
		p.printf("Number of records: %d\n", *r.NumRecs)
	}
	if r.HeaderSize > 0 {
		p.printf("Header size: %d bytes\n", r.HeaderSize)
	}

	p.printf("Dimension list:%s\n", absent(r.Dimensions == nil))
	for _, d := range r.Dimensions {
		mark := ""
		if d.Record {
			mark = " (record)"
		}
		p.printf("\t%s: len(%d) id: %d%s\n", d.Name, d.Len, d.ID, mark)
	}

	p.printf("Attribute list:%s\n", absent(r.Attributes == nil))
	for _, a := range r.Attributes {
		p.attribute("\t", a)
	}

	p.printf("Variable list:%s\n", absent(r.Variables == nil))
	for _, v := range r.Variables {
		p.printf("\t%s typ(%s) dimids([%s]) dims(%s) vsize(%d) begin(%d)\n",
			v.Name, v.Type, joinIDs(v.DimIDs), strings.Join(v.Dims, ", "), v.VSize, v.Begin)
		for _, a := range v.Attributes {
			p.attribute("\t\t", a)
		}
	}
	return p.err
}

func joinIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ", ")
}

func absent(b bool) string {
	if b {
		return " absent"
	}
	return ""
}

// printer keeps the first write error so render code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) attribute(indent string, a Attribute) {
	if a.Value == nil {
		p.printf("%s%s typ: %s len: %d\n", indent, a.Name, a.Type, a.Len)
		return
	}
	more := ""
	if a.Truncated {
		more = ", ..."
	}
	p.printf("%s%s typ: %s = %s%s\n", indent, a.Name, a.Type, formatValue(a.Value, ""), more)
}

// formatValue joins slice elements with ", ". Strings are quoted. suffix is
// appended to every numeric element.
func formatValue(v any, suffix string) string {
	switch t := v.(type) {
	case string:
		return fmt.Sprintf("%q", t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			if s, ok := e.(string); ok {
				parts[i] = s
			} else {
				parts[i] = fmt.Sprint(e) + suffix
			}
		}
		return strings.Join(parts, ", ")
	}
	s := fmt.Sprint(v)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	for i := range fields {
		fields[i] += suffix
	}
	return strings.Join(fields, ", ")
}
