package cdfdata

import (
	"fmt"

	"github.com/samcharles93/cdfkit/pkg/cdf"
)

func find(atts []cdf.Attribute, name string) (cdf.Attribute, bool) {
	for _, a := range atts {
		if a.Name == name {
			return a, true
		}
	}
	return cdf.Attribute{}, false
}

// GetString returns a char attribute as text.
func GetString(atts []cdf.Attribute, name string) (string, bool) {
	a, ok := find(atts, name)
	if !ok || a.Type != cdf.TypeChar {
		return "", false
	}
	v, err := Values(a.Type, a.Data)
	if err != nil {
		return "", false
	}
	return v.(string), true
}

// GetFloat64 returns the first element of a numeric attribute as float64.
func GetFloat64(atts []cdf.Attribute, name string) (float64, bool) {
	a, ok := find(atts, name)
	if !ok || a.Len() == 0 {
		return 0, false
	}
	v, err := Values(a.Type, a.Data)
	if err != nil {
		return 0, false
	}
	switch t := v.(type) {
	case []float32:
		return float64(t[0]), true
	case []float64:
		return t[0], true
	case []int8:
		return float64(t[0]), true
	case []uint8:
		return float64(t[0]), true
	case []int16:
		return float64(t[0]), true
	case []uint16:
		return float64(t[0]), true
	case []int32:
		return float64(t[0]), true
	case []uint32:
		return float64(t[0]), true
	case []int64:
		return float64(t[0]), true
	case []uint64:
		return float64(t[0]), true
	default:
		return 0, false
	}
}

// GetInt64 returns the first element of an integer attribute. Values of
// uint64 attributes above math.MaxInt64 are rejected.
func GetInt64(atts []cdf.Attribute, name string) (int64, bool) {
	a, ok := find(atts, name)
	if !ok || a.Len() == 0 {
		return 0, false
	}
	v, err := Values(a.Type, a.Data)
	if err != nil {
		return 0, false
	}
	switch t := v.(type) {
	case []int8:
		return int64(t[0]), true
	case []uint8:
		return int64(t[0]), true
	case []int16:
		return int64(t[0]), true
	case []uint16:
		return int64(t[0]), true
	case []int32:
		return int64(t[0]), true
	case []uint32:
		return int64(t[0]), true
	case []int64:
		return t[0], true
	case []uint64:
		if t[0] > 1<<63-1 {
			return 0, false
		}
		return int64(t[0]), true
	default:
		return 0, false
	}
}

func MustGetString(atts []cdf.Attribute, name string) (string, error) {
	if s, ok := GetString(atts, name); ok {
		return s, nil
	}
	return "", fmt.Errorf("missing or invalid attribute %s", name)
}
