package cdf

// Dimension returns the dimension called name and its id.
func (h *Header) Dimension(name string) (Dimension, int, bool) {
	for i, d := range h.Dimensions {
		if d.Name == name {
			return d, i, true
		}
	}
	return Dimension{}, -1, false
}

// RecordDimension returns the first dimension of length 0, if any.
func (h *Header) RecordDimension() (Dimension, int, bool) {
	for i, d := range h.Dimensions {
		if d.IsRecord() {
			return d, i, true
		}
	}
	return Dimension{}, -1, false
}

func (h *Header) Variable(name string) (*Variable, bool) {
	for i := range h.Variables {
		if h.Variables[i].Name == name {
			return &h.Variables[i], true
		}
	}
	return nil, false
}

// Attribute looks up a global attribute.
func (h *Header) Attribute(name string) (Attribute, bool) {
	return findAttribute(h.Attributes, name)
}

func (v *Variable) Attribute(name string) (Attribute, bool) {
	return findAttribute(v.Attributes, name)
}

// IsRecord reports whether v varies along the record dimension, which is
// only possible as its first dimension.
func (v *Variable) IsRecord(h *Header) bool {
	if len(v.DimIDs) == 0 {
		return false
	}
	id := v.DimIDs[0]
	return id < uint64(len(h.Dimensions)) && h.Dimensions[id].IsRecord()
}

func findAttribute(atts []Attribute, name string) (Attribute, bool) {
	for _, a := range atts {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}
