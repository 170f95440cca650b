package store

import "github.com/tjk113/coil/internal/field"

// Column is one named, typed value vector. Every column of a table holds
// the same number of values; value i across the columns forms row i.
type Column struct {
	Name   string
	Type   field.Type
	Values []field.Value
}

// NewColumn creates an empty column of the given type.
func NewColumn(name string, t field.Type) *Column {
	return &Column{Name: name, Type: t, Values: []field.Value{}}
}

// Check reports whether v may be stored in this column.
func (c *Column) Check(v field.Value) error {
	if !v.Compatible(c.Type) {
		return field.TypeErrorf("column %q holds %s, cannot store %s", c.Name, c.Type, v.Kind())
	}
	return nil
}

// Len returns the number of stored values.
func (c *Column) Len() int { return len(c.Values) }
