package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ToString converts various types to string.
// Whole floats are printed without a fraction, so a JSON id of 293 becomes "293".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToDecimal converts a loosely-typed JSON value into a decimal.
// nil and empty strings are zero. Thousands separators are not accepted.
func ToDecimal(val any) (decimal.Decimal, error) {
	switch v := val.(type) {
	case nil:
		return decimal.Zero, nil
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(s)
	default:
		return decimal.Zero, fmt.Errorf("cannot convert %T to decimal", val)
	}
}
