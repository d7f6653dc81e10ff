package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeKey folds an identity value into its lookup form: strings are
// lower-cased, every numeric kind becomes int64 (or float64 when it has a
// fractional part). Values that are neither strings nor finite numbers are
// rejected.
func NormalizeKey(v any) (any, error) {
	switch k := v.(type) {
	case string:
		return strings.ToLower(k), nil
	case int:
		return int64(k), nil
	case int8:
		return int64(k), nil
	case int16:
		return int64(k), nil
	case int32:
		return int64(k), nil
	case int64:
		return k, nil
	case uint:
		return normalizeUint(uint64(k)), nil
	case uint8:
		return int64(k), nil
	case uint16:
		return int64(k), nil
	case uint32:
		return int64(k), nil
	case uint64:
		return normalizeUint(k), nil
	case float32:
		return finiteKey(float64(k))
	case float64:
		return finiteKey(k)
	case json.Number:
		if i, err := k.Int64(); err == nil {
			return i, nil
		}
		f, err := k.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid numeric key %q: %w", k.String(), err)
		}
		return finiteKey(f)
	default:
		return nil, fmt.Errorf("key must be a string or a number, got %T", v)
	}
}

// IsNumeric reports whether v is one of the number kinds NormalizeKey accepts.
func IsNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return true
	}
	return false
}

// FormatKey renders a key for messages and CLI output.
func FormatKey(k any) string {
	switch v := k.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(k)
	}
}

// ParseKey interprets textual input (CLI arguments, query strings) as a key:
// anything that parses as a number is treated as one.
func ParseKey(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return normalizeFloat(f)
	}
	return s
}

// finiteKey rejects NaN and infinities, which can never be looked up again.
func finiteKey(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("key must be a finite number, got %v", f)
	}
	return normalizeFloat(f), nil
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}

func normalizeUint(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}
