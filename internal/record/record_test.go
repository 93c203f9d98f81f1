package record

import (
	"math"
	"testing"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"integer", Num(87500), "87500"},
		{"fraction", Num(15.3), "15.3"},
		{"negative", Num(-2.1), "-2.1"},
		{"int helper", Int(1250), "1250"},
		{"string", Str("Wireless Headphones Pro"), "Wireless Headphones Pro"},
		{"absent", Value{}, ""},
		{"negative zero", Num(math.Copysign(0, -1)), "0"},
		{"large below exponent cutoff", Num(1e20), "100000000000000000000"},
		{"exponent cutoff", Num(1e21), "1e+21"},
		{"large fraction", Num(-1.5e21), "-1.5e+21"},
		{"small above cutoff", Num(0.000001), "0.000001"},
		{"small", Num(1e-7), "1e-7"},
		{"small fraction", Num(2.5e-8), "2.5e-8"},
		{"not a number", Num(math.NaN()), "NaN"},
		{"infinity", Num(math.Inf(-1)), "-Infinity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueEqualIsStrict(t *testing.T) {
	if !Num(1).Equal(Num(1)) {
		t.Error("expected equal numbers to be equal")
	}
	if Num(1).Equal(Str("1")) {
		t.Error("number 1 must not equal string \"1\"")
	}
	if !Str("a").Equal(Str("a")) {
		t.Error("expected equal strings to be equal")
	}
	if Str("").Equal(Value{}) {
		t.Error("empty string must not equal absent")
	}
	if !(Value{}).Equal(Value{}) {
		t.Error("absent values must be equal")
	}
}

func TestParse(t *testing.T) {
	if v := Parse("42.5"); !v.IsNumber() || v.String() != "42.5" {
		t.Errorf("Parse(42.5) = %#v", v)
	}
	if v := Parse("Electronics"); !v.IsString() {
		t.Errorf("Parse(Electronics) kind = %v", v.Kind())
	}
	if v := Parse(""); !v.IsAbsent() {
		t.Errorf("Parse(\"\") kind = %v", v.Kind())
	}
}

func TestRowGetMissingKey(t *testing.T) {
	r := Row{"name": Str("Yoga Mat")}
	if !r.Get("missing").IsAbsent() {
		t.Error("missing key should read as absent")
	}
}
