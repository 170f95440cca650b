// Package field defines the runtime value domain shared by the query
// evaluator and the table store: a tagged value that is either None, Text,
// an Integer, or a Float, plus the declared column types values are checked
// against.
package field

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/segmentio/encoding/json"
)

// Type is a declared column type.
type Type int

const (
	TypeText Type = iota
	TypeNumber
)

// String returns the persisted spelling of the type.
func (t Type) String() string {
	switch t {
	case TypeText:
		return "Text"
	case TypeNumber:
		return "Number"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType parses a persisted type name. Matching is case-insensitive.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "text":
		return TypeText, nil
	case "number":
		return TypeNumber, nil
	default:
		return TypeText, fmt.Errorf("unknown field type %q", s)
	}
}

// Kind tags a Value.
type Kind int

const (
	KindNone Kind = iota
	KindText
	KindInteger
	KindFloat
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindText:
		return "Text"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// TypeError reports a value/column type mismatch or an operation applied to
// operand kinds it is not defined for.
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return e.Msg }

// TypeErrorf builds a TypeError from a format string.
func TypeErrorf(format string, args ...interface{}) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// Value is a tagged runtime value. The zero Value is None.
type Value struct {
	kind Kind
	text string
	i    int64
	f    float64
}

// None returns the None value.
func None() Value { return Value{} }

// Text returns a Text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Integer returns an Integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float returns a Float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether the value is None.
func (v Value) IsNone() bool { return v.kind == KindNone }

// AsString returns the text payload if the value is Text.
func (v Value) AsString() (string, bool) {
	return v.text, v.kind == KindText
}

// AsInt64 returns the integer payload if the value is an Integer.
func (v Value) AsInt64() (int64, bool) {
	return v.i, v.kind == KindInteger
}

// AsFloat64 returns the float payload if the value is a Float.
func (v Value) AsFloat64() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// AsNumber returns the value as a float64 if it is any numeric kind.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Compatible reports whether the value may be stored in a column of the
// given type. None is compatible with every column.
func (v Value) Compatible(t Type) bool {
	switch v.kind {
	case KindNone:
		return true
	case KindText:
		return t == TypeText
	case KindInteger, KindFloat:
		return t == TypeNumber
	default:
		return false
	}
}

// Equal reports structural per-kind equality: None equals only None, and
// Integer(1) does not equal Float(1.0).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindText:
		return v.text == o.text
	case KindInteger:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	default:
		return false
	}
}

// Compare orders v against o, returning -1, 0 or 1. Ordering is defined
// between two Text values and between two numeric values (Integer and Float
// order against each other); every other pairing is a TypeError.
func (v Value) Compare(o Value) (int, error) {
	if v.kind == KindText && o.kind == KindText {
		return strings.Compare(v.text, o.text), nil
	}
	if v.kind == KindInteger && o.kind == KindInteger {
		switch {
		case v.i < o.i:
			return -1, nil
		case v.i > o.i:
			return 1, nil
		default:
			return 0, nil
		}
	}
	a, aok := v.AsNumber()
	b, bok := o.AsNumber()
	if aok && bok {
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, TypeErrorf("cannot order %s against %s", v.kind, o.kind)
}

// String renders the value the way results are displayed: None as "None",
// text verbatim, numbers in their shortest decimal form.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "None"
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return ""
	}
}

func binaryOperands(op string, a, b Value) (x, y float64, bothInt bool, err error) {
	x, xok := a.AsNumber()
	y, yok := b.AsNumber()
	if !xok || !yok {
		return 0, 0, false, TypeErrorf("cannot apply %s to %s and %s", op, a.kind, b.kind)
	}
	return x, y, a.kind == KindInteger && b.kind == KindInteger, nil
}

// Add adds two numeric values. Integer operands stay Integer; any Float
// operand promotes the result to Float.
func Add(a, b Value) (Value, error) {
	x, y, bothInt, err := binaryOperands("+", a, b)
	if err != nil {
		return None(), err
	}
	if bothInt {
		return Integer(a.i + b.i), nil
	}
	return Float(x + y), nil
}

// Sub subtracts b from a with the same promotion rules as Add.
func Sub(a, b Value) (Value, error) {
	x, y, bothInt, err := binaryOperands("-", a, b)
	if err != nil {
		return None(), err
	}
	if bothInt {
		return Integer(a.i - b.i), nil
	}
	return Float(x - y), nil
}

// Mul multiplies two numeric values with the same promotion rules as Add.
func Mul(a, b Value) (Value, error) {
	x, y, bothInt, err := binaryOperands("*", a, b)
	if err != nil {
		return None(), err
	}
	if bothInt {
		return Integer(a.i * b.i), nil
	}
	return Float(x * y), nil
}

// Div divides a by b. Division always produces a Float.
func Div(a, b Value) (Value, error) {
	x, y, _, err := binaryOperands("/", a, b)
	if err != nil {
		return None(), err
	}
	if y == 0 {
		return None(), TypeErrorf("division by zero")
	}
	return Float(x / y), nil
}

// Pow raises a to the power b. Two Integers with a non-negative exponent
// stay Integer; everything else promotes to Float.
func Pow(a, b Value) (Value, error) {
	x, y, bothInt, err := binaryOperands("^", a, b)
	if err != nil {
		return None(), err
	}
	if bothInt && b.i >= 0 {
		result := int64(1)
		for n := int64(0); n < b.i; n++ {
			result *= a.i
		}
		return Integer(result), nil
	}
	return Float(math.Pow(x, y)), nil
}

// Mod computes the remainder of a divided by b.
func Mod(a, b Value) (Value, error) {
	x, y, bothInt, err := binaryOperands("%", a, b)
	if err != nil {
		return None(), err
	}
	if y == 0 {
		return None(), TypeErrorf("modulo by zero")
	}
	if bothInt {
		return Integer(a.i % b.i), nil
	}
	return Float(math.Mod(x, y)), nil
}

// Neg negates a numeric value, preserving its kind.
func Neg(a Value) (Value, error) {
	switch a.kind {
	case KindInteger:
		return Integer(-a.i), nil
	case KindFloat:
		return Float(-a.f), nil
	default:
		return None(), TypeErrorf("cannot negate %s", a.kind)
	}
}

// MarshalJSON encodes the value so that decoding recovers the exact kind:
// None as null, Text as a string, Integer as a plain integer, and Float as
// a number that always carries a decimal point or exponent.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNone:
		return []byte("null"), nil
	case KindText:
		return json.Marshal(v.text)
	case KindInteger:
		return strconv.AppendInt(nil, v.i, 10), nil
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return nil, fmt.Errorf("cannot encode non-finite float %v", v.f)
		}
		s := strconv.FormatFloat(v.f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("cannot encode value of kind %s", v.kind)
	}
}

// UnmarshalJSON is the structural inverse of MarshalJSON: numbers carrying
// a decimal point or exponent decode as Float, plain integers as Integer.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}
	if bytes.Equal(data, []byte("null")) {
		*v = None()
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	}
	if bytes.ContainsAny(data, ".eE") {
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %v", data, err)
		}
		*v = Float(f)
		return nil
	}
	i, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %v", data, err)
	}
	*v = Integer(i)
	return nil
}
