package provider

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseOptionalInt normalizes a numeric value from the source documents.
//
// The live family sends numbers, the legacy family often sends the same
// fields as strings ("110"). Both are accepted. Values that are absent,
// non-numeric or fractional report ok=false so callers can treat them as
// unknown instead of failing.
func ParseOptionalInt(val interface{}) (int64, bool) {
	if val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case Value:
		return ParseOptionalInt(v.raw)
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return wholeFloat(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return wholeFloat(f)
		}
		return 0, false
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return wholeFloat(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

func wholeFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// Value is a scalar passed through from a source document unchanged: nil,
// string, bool, json.Number, float64 or an int. Numeric-looking text stays
// text; no coercion happens until a caller asks for Int.
type Value struct {
	raw interface{}
}

// Null is the absent value.
var Null = Value{}

// ValueOf wraps a decoded JSON scalar. Objects and arrays are not columns and
// collapse to Null.
func ValueOf(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Null
	case Value:
		return x
	case string, bool, json.Number, float64, int, int64:
		return Value{raw: x}
	default:
		return Null
	}
}

// Int wraps an integer.
func Int(n int) Value { return Value{raw: n} }

// IsNull reports whether the value is absent.
func (v Value) IsNull() bool { return v.raw == nil }

// Raw returns the underlying scalar.
func (v Value) Raw() interface{} { return v.raw }

// Int parses the value as an optional integer.
func (v Value) Int() (int64, bool) { return ParseOptionalInt(v.raw) }

// String renders the value as a table cell. Null renders as "".
func (v Value) String() string {
	switch x := v.raw.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return ""
	}
}

// Same reports whether two non-null values render identically. Identifiers
// arrive as numbers in one family and strings in the other, so comparison is
// on the rendered form.
func (v Value) Same(o Value) bool {
	return !v.IsNull() && !o.IsNull() && v.String() == o.String()
}

// Or returns v, or fallback when v is null.
func (v Value) Or(fallback Value) Value {
	if v.IsNull() {
		return fallback
	}
	return v
}
