package query

import (
	"fmt"

	"github.com/tjk113/coil/internal/field"
)

// EvalError reports an identifier that names no field in the row.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string { return e.Msg }

// Eval on a literal is a type error: a field value is never a condition.
func (l *Literal) Eval(row Row) (bool, error) {
	return false, field.TypeErrorf("literal %s is not a condition", l)
}

// Value returns the literal's own value.
func (l *Literal) Value(row Row) (field.Value, error) {
	return l.Val, nil
}

// Eval on an identifier is a type error: the value domain has no booleans.
func (i *Identifier) Eval(row Row) (bool, error) {
	return false, field.TypeErrorf("field %q is not a condition", i.Name)
}

// Value resolves the identifier against the row.
func (i *Identifier) Value(row Row) (field.Value, error) {
	v, ok := row[i.Name]
	if !ok {
		return field.None(), &EvalError{Msg: fmt.Sprintf("unknown field %q", i.Name)}
	}
	return v, nil
}

// Eval evaluates NOT by negating its boolean operand.
func (u *Unary) Eval(row Row) (bool, error) {
	if u.Op != TokenNot {
		return false, field.TypeErrorf("unary %s is not a condition", u.Op)
	}
	operand, err := u.Operand.Eval(row)
	if err != nil {
		return false, err
	}
	return !operand, nil
}

// Value evaluates numeric sign operators.
func (u *Unary) Value(row Row) (field.Value, error) {
	switch u.Op {
	case TokenMinus:
		operand, err := u.Operand.Value(row)
		if err != nil {
			return field.None(), err
		}
		return field.Neg(operand)
	case TokenPlus:
		operand, err := u.Operand.Value(row)
		if err != nil {
			return field.None(), err
		}
		if _, ok := operand.AsNumber(); !ok {
			return field.None(), field.TypeErrorf("cannot apply unary + to %s", operand.Kind())
		}
		return operand, nil
	default:
		return field.None(), field.TypeErrorf("unary %s does not produce a value", u.Op)
	}
}

// Eval evaluates logical operators by recursing into boolean sub-results,
// and comparison operators by resolving both operand values and applying
// the domain's equality and ordering rules.
func (b *Binary) Eval(row Row) (bool, error) {
	switch b.Op {
	case TokenAnd:
		left, err := b.Left.Eval(row)
		if err != nil {
			return false, err
		}
		if !left {
			return false, nil
		}
		return b.Right.Eval(row)

	case TokenOr:
		left, err := b.Left.Eval(row)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return b.Right.Eval(row)

	case TokenXor:
		left, err := b.Left.Eval(row)
		if err != nil {
			return false, err
		}
		right, err := b.Right.Eval(row)
		if err != nil {
			return false, err
		}
		return left != right, nil

	case TokenEqual, TokenNotEqual, TokenLess, TokenLessEqual, TokenGreater, TokenGreaterEqual:
		left, err := b.Left.Value(row)
		if err != nil {
			return false, err
		}
		right, err := b.Right.Value(row)
		if err != nil {
			return false, err
		}
		return compare(left, b.Op, right)

	default:
		return false, field.TypeErrorf("%s expression is not a condition", b.Op)
	}
}

// Value evaluates arithmetic operators with the domain's numeric promotion.
func (b *Binary) Value(row Row) (field.Value, error) {
	switch b.Op {
	case TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenCaret, TokenPercent:
	default:
		return field.None(), field.TypeErrorf("%s expression does not produce a value", b.Op)
	}

	left, err := b.Left.Value(row)
	if err != nil {
		return field.None(), err
	}
	right, err := b.Right.Value(row)
	if err != nil {
		return field.None(), err
	}

	switch b.Op {
	case TokenPlus:
		return field.Add(left, right)
	case TokenMinus:
		return field.Sub(left, right)
	case TokenStar:
		return field.Mul(left, right)
	case TokenSlash:
		return field.Div(left, right)
	case TokenCaret:
		return field.Pow(left, right)
	default:
		return field.Mod(left, right)
	}
}

// compare applies a comparison operator to two resolved values. Equality is
// structural; ordering uses the domain rules and fails on incompatible
// kinds.
func compare(left field.Value, op TokenType, right field.Value) (bool, error) {
	switch op {
	case TokenEqual:
		return left.Equal(right), nil
	case TokenNotEqual:
		return !left.Equal(right), nil
	}

	cmp, err := left.Compare(right)
	if err != nil {
		return false, err
	}
	switch op {
	case TokenLess:
		return cmp < 0, nil
	case TokenLessEqual:
		return cmp <= 0, nil
	case TokenGreater:
		return cmp > 0, nil
	case TokenGreaterEqual:
		return cmp >= 0, nil
	default:
		return false, field.TypeErrorf("%s is not a comparison operator", op)
	}
}
