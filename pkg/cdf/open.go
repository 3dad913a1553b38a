package cdf

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Open maps a CDF file read-only and decodes its header.
// If mmap is unavailable, it falls back to ReadAt-based loading.
// The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size, err := bufferSize(stat.Size())
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return Decode(nil)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		cf, decErr := Decode(data)
		if decErr != nil {
			_ = unix.Munmap(data)
			return nil, decErr
		}
		cf.mmapped = true
		return cf, nil
	}

	data, err = readAllAt(f, size)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// OpenReaderAt loads size bytes from r and decodes the header.
func OpenReaderAt(r io.ReaderAt, size int64) (*File, error) {
	n, err := bufferSize(size)
	if err != nil {
		return nil, err
	}
	data, err := readAllAt(r, n)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func bufferSize(size int64) (int, error) {
	if size < 0 || size > int64(int(^uint(0)>>1)) {
		// cannot index this file as []byte on this architecture.
		return 0, fmt.Errorf("%w: unsupported file size %d", ErrTruncated, size)
	}
	return int(size), nil
}

func readAllAt(r io.ReaderAt, size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	out := make([]byte, size)
	var off int64
	for off < int64(size) {
		n, err := r.ReadAt(out[off:], off)
		off += int64(n)
		if err == nil {
			continue
		}
		if err == io.EOF && off == int64(size) {
			break
		}
		return nil, err
	}
	return out, nil
}

// Close releases the mapping behind f, if any. Slices previously returned by
// VariableData or Data must not be used afterwards.
func (f *File) Close() error {
	if f == nil || f.buf == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.buf)
	}
	f.buf = nil
	f.Data = nil
	f.mmapped = false
	return err
}
