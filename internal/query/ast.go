// Package query provides lexing, parsing, and evaluation for coil query
// statements.
//
// The pipeline turns raw text into tokens, tokens into a Query with an
// optional condition Expression, and evaluates Expressions against
// materialized rows:
//
//	q, err := query.Parse(`GET * FROM customers WHERE ID > 1`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	match, err := q.Condition.Eval(row)
package query

import (
	"fmt"

	"github.com/tjk113/coil/internal/field"
)

// Operation discriminates the five statement kinds.
type Operation int

const (
	OpGet Operation = iota
	OpPut
	OpUpdate
	OpCreate
	OpDelete
)

// String returns the statement keyword for the operation.
func (o Operation) String() string {
	switch o {
	case OpGet:
		return "GET"
	case OpPut:
		return "PUT"
	case OpUpdate:
		return "UPDATE"
	case OpCreate:
		return "CREATE"
	case OpDelete:
		return "DELETE"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// ColumnDef is a declared column in a CREATE TABLE statement.
type ColumnDef struct {
	Name string
	Type field.Type
}

// Assignment is one "column = literal" pair in an UPDATE statement.
type Assignment struct {
	Column string
	Value  field.Value
}

// Query is a parsed statement.
type Query struct {
	Operation   Operation
	Table       string        // target table, if any
	Database    string        // target database (CREATE/DELETE DATABASE)
	Columns     []ColumnDef   // CREATE TABLE column declarations
	Values      []field.Value // PUT value list
	Assignments []Assignment  // UPDATE assignment list
	Condition   Expression    // optional WHERE filter
}

// Row is a materialized row: field name to value.
type Row map[string]field.Value

// Expression is a node in a condition tree. Eval evaluates the node in
// condition position (logical operators, comparisons); Value evaluates it
// in operand position (literals, identifiers, arithmetic). Using a node in
// the wrong position is a type error, not a panic.
type Expression interface {
	Eval(row Row) (bool, error)
	Value(row Row) (field.Value, error)
	String() string
}

// Literal is a leaf holding its own value.
type Literal struct {
	Val field.Value
}

// Identifier is a leaf naming a row field.
type Identifier struct {
	Name string
}

// Unary is an operator with one owned operand (NOT, -, +).
type Unary struct {
	Op      TokenType
	Operand Expression
}

// Binary is an operator with two owned operands, left then right.
type Binary struct {
	Left  Expression
	Op    TokenType
	Right Expression
}

func (l *Literal) String() string {
	if s, ok := l.Val.AsString(); ok {
		return fmt.Sprintf("%q", s)
	}
	return l.Val.String()
}

func (i *Identifier) String() string { return i.Name }

func (u *Unary) String() string {
	return fmt.Sprintf("(%s %s)", u.Op, u.Operand)
}

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}
