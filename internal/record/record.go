package record

import (
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the scalar types a cell can hold.
type Kind int

const (
	KindAbsent Kind = iota
	KindNumber
	KindString
)

// Value is a single cell: a number, a string, or absent.
// The zero value is absent.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num returns a numeric value.
func Num(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Int returns a numeric value from an integer.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: float64(i)}
}

// Str returns a string value.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v holds nothing.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNumber reports whether v is numeric.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsString reports whether v is a string.
func (v Value) IsString() bool { return v.kind == KindString }

// Float returns the numeric payload and whether v is a number.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Text returns the string payload and whether v is a string.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindString
}

// String renders the raw value: numbers in shortest decimal form
// (87500, 15.3, -2.1), strings verbatim, absent as "".
// Magnitudes at or above 1e21 or below 1e-6 use exponent form (1e+21, 1e-7).
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindString:
		return v.str
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	switch {
	case f == 0:
		// Covers negative zero.
		return "0"
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Equal is strict equality: same kind and same payload.
// Two absent values are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	default:
		return true
	}
}

// Parse turns command-line or config text into a value: anything that
// parses as a float becomes a number, everything else a string, and the
// empty string is absent.
func Parse(s string) Value {
	if s == "" {
		return Value{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Num(f)
	}
	return Str(s)
}

// Row is one record of a dataset, keyed by column.
type Row map[string]Value

// Get returns the value at key, absent when the key is missing.
func (r Row) Get(key string) Value {
	return r[key]
}
