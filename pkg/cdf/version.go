package cdf

import "fmt"

const magicCDF = "CDF"

// Version identifies the classic format generation from the fourth magic byte.
type Version uint8

const (
	CDF1 Version = 1 // classic, 32-bit offsets
	CDF2 Version = 2 // 64-bit offsets
	CDF5 Version = 5 // 64-bit counts and offsets
)

func (v Version) String() string {
	switch v {
	case CDF1:
		return "CDF-1"
	case CDF2:
		return "CDF-2"
	case CDF5:
		return "CDF-5"
	default:
		return fmt.Sprintf("version(%d)", uint8(v))
	}
}

func (v Version) valid() bool {
	return v == CDF1 || v == CDF2 || v == CDF5
}

// widths is the per-version field layout. Everything that varies between
// generations is decided here and passed down explicitly.
type widths struct {
	count  int // non-negative counts and sizes (nelems, lengths, vsize, dim ids)
	offset int // variable begin
}

func widthsFor(v Version) widths {
	switch v {
	case CDF1:
		return widths{count: 4, offset: 4}
	case CDF2:
		return widths{count: 4, offset: 8}
	default:
		return widths{count: 8, offset: 8}
	}
}

// streaming is the all-ones numrecs value for the count width.
func (w widths) streaming() uint64 {
	if w.count == 4 {
		return 0xFFFFFFFF
	}
	return ^uint64(0)
}

// absentLen is the size of the ABSENT marker: a zero tag plus a zero count.
func (w widths) absentLen() int {
	return tagSize + w.count
}
