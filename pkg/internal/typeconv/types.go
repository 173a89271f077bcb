package typeconv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ToText renders a scanned column value the way a report shows it.
// nil becomes null; text is never quoted.
func ToText(v any, null string) string {
	switch t := v.(type) {
	case nil:
		return null
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case int:
		return strconv.FormatInt(int64(t), 10)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return formatFloat(float64(t), 32)
	case float64:
		return formatFloat(t, 64)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// formatFloat uses plain decimal notation for 1e-4 <= |f| < 1e16 and
// exponent notation outside it. Integral values keep a trailing ".0" so reals
// stay distinguishable from integers.
func formatFloat(f float64, bits int) string {
	format := byte('e')
	if abs := math.Abs(f); abs == 0 || (abs >= 1e-4 && abs < 1e16) || math.IsNaN(f) || math.IsInf(f, 0) {
		format = 'f'
	}
	s := strconv.FormatFloat(f, format, -1, bits)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

// ParseField infers a scalar from a CSV field: empty is NULL, then integer,
// then real, otherwise the raw text.
func ParseField(s string) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if looksNumeric(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// looksNumeric filters out words ParseFloat would accept, like "inf" or "NaN".
func looksNumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '-', r == '+', r == 'e', r == 'E':
		default:
			return false
		}
	}
	return true
}
