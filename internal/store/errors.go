package store

import "fmt"

// NotFoundError reports a reference to a database, table, or column that
// does not exist.
type NotFoundError struct {
	Kind string // "database", "table", or "column"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Kind, e.Name)
}

// ConflictError reports creation of a database, table, or column whose name
// is already taken.
type ConflictError struct {
	Kind string
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.Name)
}

// ArityError reports an inserted row whose width does not match the table.
type ArityError struct {
	Table    string
	Expected int
	Got      int
}

func (e *ArityError) Error() string {
	if e.Got < e.Expected {
		return fmt.Sprintf("not enough values for table %q: expected %d, got %d", e.Table, e.Expected, e.Got)
	}
	return fmt.Sprintf("too many values for table %q: expected %d, got %d", e.Table, e.Expected, e.Got)
}
