package jsonutil

import (
	"fmt"
	"strconv"
	"strings"
)

// FlexibleString converts a decoded JSON value to a string, handling cases
// where the source API returns numbers or booleans where a string is
// expected. Returns empty string for nil.
func FlexibleString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FlexibleFloat converts a decoded JSON value to a float64, accepting
// numeric strings ("1,250.00" style separators stripped). The second return
// reports whether a number could be extracted.
func FlexibleFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(val), ",", "")
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// FlexibleBool converts a decoded JSON value to a bool. Accepts the literal
// bool, "true"/"false" strings, and 0/1 numerics seen in older source tenants.
func FlexibleBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(val)))
		return err == nil && b
	case float64:
		return val != 0
	default:
		return false
	}
}

// AsSlice coerces a value to a slice. A nil value yields nil; an existing
// slice is returned as-is; any scalar or object becomes a one-element slice.
// The source API returns a bare object where a single-element array is meant
// often enough that every multi-valued field goes through this.
func AsSlice(v any) []any {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		return val
	default:
		return []any{val}
	}
}
