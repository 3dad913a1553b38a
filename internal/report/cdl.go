package report

import (
	"io"
	"strings"
)

// cdlSuffix is the ncdump literal suffix for each type name.
var cdlSuffix = map[string]string{
	"byte":   "b",
	"ubyte":  "ub",
	"short":  "s",
	"ushort": "us",
	"uint":   "u",
	"int64":  "ll",
	"uint64": "ull",
	"float":  "f",
}

// WriteCDL renders r the way `ncdump -h` prints a header.
func WriteCDL(w io.Writer, r *Report) error {
	p := &printer{w: w}
	name := r.Name
	if name == "" {
		name = "unnamed"
	}
	p.printf("netcdf %s {\n", cdlName(name))

	if len(r.Dimensions) > 0 {
		p.printf("dimensions:\n")
		for _, d := range r.Dimensions {
			if d.Record {
				if r.Streaming {
					p.printf("\t%s = UNLIMITED ; // (streaming)\n", cdlName(d.Name))
				} else {
					p.printf("\t%s = UNLIMITED ; // (%d currently)\n", cdlName(d.Name), *r.NumRecs)
				}
				continue
			}
			p.printf("\t%s = %d ;\n", cdlName(d.Name), d.Len)
		}
	}

	if len(r.Variables) > 0 {
		p.printf("variables:\n")
		for _, v := range r.Variables {
			dims := ""
			if len(v.Dims) > 0 {
				names := make([]string, len(v.Dims))
				for i, d := range v.Dims {
					names[i] = cdlName(d)
				}
				dims = "(" + strings.Join(names, ", ") + ")"
			}
			p.printf("\t%s %s%s ;\n", v.Type, cdlName(v.Name), dims)
			for _, a := range v.Attributes {
				p.cdlAttribute(cdlName(v.Name), a)
			}
		}
	}

	if len(r.Attributes) > 0 {
		p.printf("\n// global attributes:\n")
		for _, a := range r.Attributes {
			p.cdlAttribute("", a)
		}
	}
	p.printf("}\n")
	return p.err
}

func (p *printer) cdlAttribute(owner string, a Attribute) {
	value := "..."
	if a.Value != nil {
		value = formatValue(a.Value, cdlSuffix[a.Type])
		if a.Truncated {
			value += ", ..."
		}
	}
	p.printf("\t\t%s:%s = %s ;\n", owner, cdlName(a.Name), value)
}

// cdlName escapes characters CDL treats as syntax.
func cdlName(s string) string {
	if !strings.ContainsAny(s, " \t\n,;:=(){}\"\\") {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(" \t\n,;:=(){}\"\\", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
