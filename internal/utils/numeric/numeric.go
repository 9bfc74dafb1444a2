// Package numeric normalizes heterogeneous numeric input into exact decimals.
//
// Callers feed it whatever the outside world produced: empty strings, numbers
// typed with Arabic-Indic digits, values with thousands separators or a
// trailing percent sign. Malformed input never raises; it degrades to the
// caller-supplied default, which callers should choose conservatively
// (usually zero).
package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ToDecimal converts v into an exact decimal value, falling back to def when
// v is nil, empty, or unparseable. Numeric Go types are converted via their
// string representation, never through binary floats.
func ToDecimal(v any, def decimal.Decimal) decimal.Decimal {
	switch val := v.(type) {
	case nil:
		return def
	case decimal.Decimal:
		return val
	case string:
		return parseString(val, def)
	case int:
		return decimal.NewFromInt(int64(val))
	case int32:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float32:
		return decimal.NewFromFloat32(val)
	case float64:
		// NewFromFloat round-trips through the shortest decimal string
		// representation, so 0.05 stays 0.05 rather than the nearest binary.
		return decimal.NewFromFloat(val)
	default:
		return def
	}
}

// RatioFromPercent converts a human percentage (5 meaning 5%) into the ratio
// convention used everywhere inside the system (0.05). This conversion
// happens exactly once, at the API boundary; the calculation engine never
// converts.
func RatioFromPercent(d decimal.Decimal) decimal.Decimal {
	return d.Div(hundred)
}

func parseString(s string, def decimal.Decimal) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "%", "")
	s = translateDigits(s)
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return d
}

// translateDigits maps Arabic-Indic (U+0660-0669) and Eastern Arabic-Indic
// (U+06F0-06F9) digits to their ASCII equivalents.
func translateDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		default:
			return r
		}
	}, s)
}
