package value

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber converts a value to a number with script-like coercion.
//
// Undefined is NaN, null and false are 0, true is 1, strings are parsed
// as decimal (surrounding whitespace ignored, empty means 0, garbage means
// NaN), times yield their millisecond timestamp (NaN when invalid) and
// everything else is NaN.
func (v Value) ToNumber() float64 {
	switch d := v.Unbox().data.(type) {
	case nullType:
		return 0
	case bool:
		return boolToFloat(d)
	case float64:
		return d
	case string:
		return stringToNumber(d)
	case timeValue:
		return v.UnixMilli()
	default:
		return math.NaN()
	}
}

// boolToFloat converts a bool to float for coercion (false=0, true=1)
func boolToFloat(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	// Reject forms ParseFloat accepts but decimal literals do not.
	if strings.ContainsAny(s, "_xXpPnN") {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}
