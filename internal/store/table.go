package store

import (
	"github.com/tjk113/coil/internal/field"
	"github.com/tjk113/coil/internal/query"
)

// Table stores rows column-wise: an ordered list of equal-length typed
// columns. Row order is insertion order and every operation preserves it.
type Table struct {
	Name    string
	Columns []*Column
}

// NewTable creates an empty table with the declared columns.
func NewTable(name string, defs []query.ColumnDef) *Table {
	t := &Table{Name: name}
	for _, def := range defs {
		t.Columns = append(t.Columns, NewColumn(def.Name, def.Type))
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Column returns the named column, or nil if the table has no such column.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Names returns the column names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Row materializes row i as a field-name-to-value map.
func (t *Table) Row(i int) query.Row {
	row := make(query.Row, len(t.Columns))
	for _, c := range t.Columns {
		row[c.Name] = c.Values[i]
	}
	return row
}

// Insert appends one row. The value list must match the table width and
// every value must be compatible with its column's type; nothing is stored
// if any check fails.
func (t *Table) Insert(values []field.Value) error {
	if len(values) != len(t.Columns) {
		return &ArityError{Table: t.Name, Expected: len(t.Columns), Got: len(values)}
	}
	for i, c := range t.Columns {
		if err := c.Check(values[i]); err != nil {
			return err
		}
	}
	for i, c := range t.Columns {
		c.Values = append(c.Values, values[i])
	}
	return nil
}

// matches evaluates cond against row i. A nil condition matches every row.
func (t *Table) matches(cond query.Expression, i int) (bool, error) {
	if cond == nil {
		return true, nil
	}
	return cond.Eval(t.Row(i))
}

// Select returns the rows matching cond in storage order.
func (t *Table) Select(cond query.Expression) ([]query.Row, error) {
	rows := []query.Row{}
	for i := 0; i < t.Len(); i++ {
		ok, err := t.matches(cond, i)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, t.Row(i))
		}
	}
	return rows, nil
}

// Update assigns literal values to columns on every row matching cond and
// returns the number of rows changed. Assignments are validated up front so
// an unknown column or an incompatible value changes nothing.
func (t *Table) Update(assignments []query.Assignment, cond query.Expression) (int, error) {
	for _, a := range assignments {
		c := t.Column(a.Column)
		if c == nil {
			return 0, &NotFoundError{Kind: "column", Name: a.Column}
		}
		if err := c.Check(a.Value); err != nil {
			return 0, err
		}
	}

	// Find matches before assigning anything: a condition that reads a
	// column being assigned must see the pre-update values.
	var hits []int
	for i := 0; i < t.Len(); i++ {
		ok, err := t.matches(cond, i)
		if err != nil {
			return 0, err
		}
		if ok {
			hits = append(hits, i)
		}
	}
	for _, i := range hits {
		for _, a := range assignments {
			t.Column(a.Column).Values[i] = a.Value
		}
	}
	return len(hits), nil
}

// DeleteRows removes every row matching cond and returns the count removed.
// Remaining rows keep their relative order.
func (t *Table) DeleteRows(cond query.Expression) (int, error) {
	var keep []int
	for i := 0; i < t.Len(); i++ {
		ok, err := t.matches(cond, i)
		if err != nil {
			return 0, err
		}
		if !ok {
			keep = append(keep, i)
		}
	}
	removed := t.Len() - len(keep)
	if removed == 0 {
		return 0, nil
	}
	for _, c := range t.Columns {
		kept := make([]field.Value, 0, len(keep))
		for _, i := range keep {
			kept = append(kept, c.Values[i])
		}
		c.Values = kept
	}
	return removed, nil
}
