package cdf

import "fmt"

// Validate checks rules DecodeHeader does not enforce. Dimension ids must
// index Dimensions. At most one dimension has length 0; it must be listed
// first and may only lead a variable's dimensions.
func (h *Header) Validate() error {
	record := -1
	for i, d := range h.Dimensions {
		if !d.IsRecord() {
			continue
		}
		if record >= 0 {
			return fmt.Errorf("%w: dimensions %q and %q both have length 0",
				ErrRecordDimension, h.Dimensions[record].Name, d.Name)
		}
		if i != 0 {
			return fmt.Errorf("%w: record dimension %q is at index %d", ErrRecordDimension, d.Name, i)
		}
		record = i
	}

	for _, v := range h.Variables {
		for j, id := range v.DimIDs {
			if id >= uint64(len(h.Dimensions)) {
				return fmt.Errorf("%w: variable %q dimension %d refers to id %d of %d",
					ErrDimensionIndex, v.Name, j, id, len(h.Dimensions))
			}
			if j > 0 && record >= 0 && id == uint64(record) {
				return fmt.Errorf("%w: variable %q uses the record dimension at position %d",
					ErrRecordDimension, v.Name, j)
			}
		}
	}
	return nil
}
