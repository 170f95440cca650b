package field

import (
	"testing"

	"github.com/segmentio/encoding/json"
)

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"equal integers", Integer(1), Integer(1), true},
		{"different integers", Integer(1), Integer(2), false},
		{"equal floats", Float(1.5), Float(1.5), true},
		{"integer never equals float", Integer(1), Float(1.0), false},
		{"equal text", Text("a"), Text("a"), true},
		{"different text", Text("a"), Text("b"), false},
		{"none equals none", None(), None(), true},
		{"none never equals zero", None(), Integer(0), false},
		{"text never equals number", Text("1"), Integer(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.expected {
				t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestValue_Compare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected int
		wantErr  bool
	}{
		{"integer ordering", Integer(1), Integer(2), -1, false},
		{"integer equality", Integer(2), Integer(2), 0, false},
		{"float ordering", Float(2.5), Float(1.5), 1, false},
		{"mixed numeric ordering", Integer(1), Float(1.5), -1, false},
		{"mixed numeric equal", Integer(2), Float(2.0), 0, false},
		{"text ordering", Text("apple"), Text("banana"), -1, false},
		{"text against number", Text("1"), Integer(1), 0, true},
		{"none against number", None(), Integer(1), 0, true},
		{"none against none", None(), None(), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Compare(tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Compare(%s, %s) expected error, got %d", tt.a, tt.b, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compare(%s, %s) unexpected error: %v", tt.a, tt.b, err)
			}
			if got != tt.expected {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		name     string
		op       func(a, b Value) (Value, error)
		a, b     Value
		expected Value
		wantErr  bool
	}{
		{"integer add stays integer", Add, Integer(1), Integer(2), Integer(3), false},
		{"float add", Add, Float(1.5), Float(2.5), Float(4.0), false},
		{"mixed add promotes", Add, Integer(1), Float(0.5), Float(1.5), false},
		{"integer subtract", Sub, Integer(5), Integer(3), Integer(2), false},
		{"integer multiply", Mul, Integer(4), Integer(3), Integer(12), false},
		{"division is always float", Div, Integer(6), Integer(3), Float(2.0), false},
		{"division by zero", Div, Integer(1), Integer(0), None(), true},
		{"integer power", Pow, Integer(2), Integer(10), Integer(1024), false},
		{"negative exponent promotes", Pow, Integer(2), Integer(-1), Float(0.5), false},
		{"integer modulo", Mod, Integer(7), Integer(3), Integer(1), false},
		{"modulo by zero", Mod, Integer(7), Integer(0), None(), true},
		{"add text", Add, Text("a"), Integer(1), None(), true},
		{"add none", Add, None(), Integer(1), None(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("got %s (%s), want %s (%s)", got, got.Kind(), tt.expected, tt.expected.Kind())
			}
		})
	}
}

func TestValue_Compatible(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		colType  Type
		expected bool
	}{
		{"integer in number column", Integer(1), TypeNumber, true},
		{"float in number column", Float(1.5), TypeNumber, true},
		{"text in text column", Text("a"), TypeText, true},
		{"text in number column", Text("a"), TypeNumber, false},
		{"integer in text column", Integer(1), TypeText, false},
		{"none in number column", None(), TypeNumber, true},
		{"none in text column", None(), TypeText, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Compatible(tt.colType); got != tt.expected {
				t.Errorf("Compatible(%s, %s) = %v, want %v", tt.value, tt.colType, got, tt.expected)
			}
		})
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{"none", None()},
		{"text", Text("hello")},
		{"empty text", Text("")},
		{"numeric-looking text", Text("42")},
		{"integer", Integer(42)},
		{"negative integer", Integer(-7)},
		{"float", Float(1.5)},
		{"whole float stays float", Float(3.0)},
		{"tiny float", Float(0.0001)},
		{"large float", Float(1e20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("Marshal(%s): %v", tt.value, err)
			}
			var got Value
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal(%s): %v", data, err)
			}
			if !got.Equal(tt.value) {
				t.Errorf("round trip of %s (%s) via %s gave %s (%s)",
					tt.value, tt.value.Kind(), data, got, got.Kind())
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
		wantErr  bool
	}{
		{"Number", TypeNumber, false},
		{"NUMBER", TypeNumber, false},
		{"text", TypeText, false},
		{"Text", TypeText, false},
		{"blob", TypeText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseType(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseType(%q): %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseType(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}
