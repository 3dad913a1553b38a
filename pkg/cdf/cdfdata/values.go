// Package cdfdata turns the raw byte ranges described by a decoded header
// into typed Go values.
package cdfdata

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/samcharles93/cdfkit/pkg/cdf"
)

var (
	ErrSize             = errors.New("cdfdata: byte length is not a multiple of the element size")
	ErrStreamingRecords = errors.New("cdfdata: record count unknown for streaming file")
	ErrTooLarge         = errors.New("cdfdata: variable too large")
)

// Values reinterprets raw big-endian bytes as a slice of t's Go type.
// Char data is returned as a string with trailing NULs removed.
func Values(t cdf.Type, raw []byte) (any, error) {
	size := t.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: %s", cdf.ErrUnknownType, t)
	}
	if len(raw)%size != 0 {
		return nil, fmt.Errorf("%w: %d bytes of %s", ErrSize, len(raw), t)
	}
	n := len(raw) / size

	switch t {
	case cdf.TypeChar:
		end := len(raw)
		for end > 0 && raw[end-1] == 0 {
			end--
		}
		return string(raw[:end]), nil
	case cdf.TypeI8:
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(raw[i])
		}
		return out, nil
	case cdf.TypeU8:
		return append([]uint8(nil), raw...), nil
	case cdf.TypeI16:
		out := make([]int16, n)
		for i := range out {
			out[i] = int16(binary.BigEndian.Uint16(raw[i*2:]))
		}
		return out, nil
	case cdf.TypeU16:
		out := make([]uint16, n)
		for i := range out {
			out[i] = binary.BigEndian.Uint16(raw[i*2:])
		}
		return out, nil
	case cdf.TypeI32:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(binary.BigEndian.Uint32(raw[i*4:]))
		}
		return out, nil
	case cdf.TypeU32:
		out := make([]uint32, n)
		for i := range out {
			out[i] = binary.BigEndian.Uint32(raw[i*4:])
		}
		return out, nil
	case cdf.TypeI64:
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(binary.BigEndian.Uint64(raw[i*8:]))
		}
		return out, nil
	case cdf.TypeU64:
		out := make([]uint64, n)
		for i := range out {
			out[i] = binary.BigEndian.Uint64(raw[i*8:])
		}
		return out, nil
	case cdf.TypeF32:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(binary.BigEndian.Uint32(raw[i*4:]))
		}
		return out, nil
	case cdf.TypeF64:
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(binary.BigEndian.Uint64(raw[i*8:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", cdf.ErrUnknownType, t)
	}
}

// AttributeValues decodes the value bytes of a.
func AttributeValues(a cdf.Attribute) (any, error) {
	v, err := Values(a.Type, a.Data)
	if err != nil {
		return nil, fmt.Errorf("attribute %s: %w", a.Name, err)
	}
	return v, nil
}

// Len returns the number of elements in a value returned by Values.
func Len(v any) int {
	switch t := v.(type) {
	case string:
		return len(t)
	case []int8:
		return len(t)
	case []uint8:
		return len(t)
	case []int16:
		return len(t)
	case []uint16:
		return len(t)
	case []int32:
		return len(t)
	case []uint32:
		return len(t)
	case []int64:
		return len(t)
	case []uint64:
		return len(t)
	case []float32:
		return len(t)
	case []float64:
		return len(t)
	default:
		return 0
	}
}
