package cdf

import "fmt"

// File is a decoded header together with the buffer it was decoded from.
type File struct {
	Header *Header
	// HeaderSize is the number of bytes occupied by the header.
	HeaderSize int
	// Data is the part of the buffer that follows the header.
	Data []byte

	buf     []byte
	mmapped bool
}

// Decode decodes the header of buf and keeps buf for data access.
// buf must not be modified while the File is in use.
func Decode(buf []byte) (*File, error) {
	h, n, err := decodeHeader(buf)
	if err != nil {
		return nil, err
	}
	return &File{
		Header:     &h,
		HeaderSize: n,
		Data:       buf[n:],
		buf:        buf,
	}, nil
}

// Bytes returns the whole buffer, header included.
func (f *File) Bytes() []byte {
	return f.buf
}

// VariableData returns n bytes starting at v.Begin. The slice aliases the
// file buffer and must not be retained after Close.
func (f *File) VariableData(v *Variable, n uint64) ([]byte, error) {
	return f.Slice(v.Begin, n)
}

// Slice returns n bytes at absolute offset off.
func (f *File) Slice(off, n uint64) ([]byte, error) {
	if f == nil || f.buf == nil {
		return nil, fmt.Errorf("%w: file is closed", ErrTruncated)
	}
	size := uint64(len(f.buf))
	end := off + n
	if end < off || off > size || end > size {
		return nil, fmt.Errorf("%w: range [%d, %d) outside %d-byte file", ErrTruncated, off, end, size)
	}
	return f.buf[off:end], nil
}
