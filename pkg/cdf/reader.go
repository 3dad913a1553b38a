package cdf

import (
	"encoding/binary"
	"unicode/utf8"
)

const tagSize = 4

// decoder carries the immutable state of one decode pass. Positions are
// always absolute offsets into buf and are threaded through every call.
type decoder struct {
	buf []byte
	w   widths
}

func (d *decoder) remaining(off int) int {
	if off >= len(d.buf) {
		return 0
	}
	return len(d.buf) - off
}

// take returns the n bytes at off without copying, or ErrTruncated.
func (d *decoder) take(off, n int, field string) ([]byte, int, error) {
	if n < 0 || off < 0 || off > len(d.buf) || n > len(d.buf)-off {
		return nil, off, decodeErr(off, field, ErrTruncated, "need %d bytes, have %d", n, d.remaining(off))
	}
	return d.buf[off : off+n], off + n, nil
}

func (d *decoder) u32(off int, field string) (uint32, int, error) {
	b, next, err := d.take(off, 4, field)
	if err != nil {
		return 0, off, err
	}
	return binary.BigEndian.Uint32(b), next, nil
}

func (d *decoder) uint(off, width int, field string) (uint64, int, error) {
	b, next, err := d.take(off, width, field)
	if err != nil {
		return 0, off, err
	}
	return beUint(b), next, nil
}

// count reads a NON_NEG field at the version's count width.
func (d *decoder) count(off int, field string) (uint64, int, error) {
	return d.uint(off, d.w.count, field)
}

// span converts a declared byte length into an int, rejecting lengths
// that run past the end of the buffer.
func (d *decoder) span(off int, n uint64, field string) (int, error) {
	if n > uint64(d.remaining(off)) {
		return 0, decodeErr(off, field, ErrTruncated, "declared %d bytes, have %d", n, d.remaining(off))
	}
	return int(n), nil
}

// fits rejects an entry count that cannot possibly be encoded in the rest
// of the buffer, before anything is allocated for it.
func (d *decoder) fits(off int, k uint64, minEntry int, field string) error {
	if minEntry > 0 && k > uint64(d.remaining(off)/minEntry) {
		return decodeErr(off, field, ErrTruncated, "declared %d entries, at most %d fit", k, d.remaining(off)/minEntry)
	}
	return nil
}

// pad skips the filler that aligns off to the next 4-byte boundary of the
// whole buffer. Filler content is not checked.
func (d *decoder) pad(off int, field string) (int, error) {
	_, next, err := d.take(off, padding(off), field)
	return next, err
}

func (d *decoder) name(off int, field string) (string, int, error) {
	n, next, err := d.count(off, field)
	if err != nil {
		return "", off, err
	}
	size, err := d.span(next, n, field)
	if err != nil {
		return "", off, err
	}
	b, next, err := d.take(next, size, field)
	if err != nil {
		return "", off, err
	}
	if !utf8.Valid(b) {
		return "", off, decodeErr(next-size, field, ErrInvalidUTF8, "%q", b)
	}
	s := string(b)
	next, err = d.pad(next, field)
	if err != nil {
		return "", off, err
	}
	return s, next, nil
}

func (d *decoder) typ(off int, field string) (Type, int, error) {
	tag, next, err := d.u32(off, field)
	if err != nil {
		return 0, off, err
	}
	t, ok := parseType(tag)
	if !ok {
		return 0, off, decodeErr(off, field, ErrUnknownType, "tag %d", tag)
	}
	return t, next, nil
}

// padding returns the number of filler bytes after absolute position p.
func padding(p int) int {
	return (4 - p%4) % 4
}

func beUint(b []byte) uint64 {
	switch len(b) {
	case 4:
		return uint64(binary.BigEndian.Uint32(b))
	case 8:
		return binary.BigEndian.Uint64(b)
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
