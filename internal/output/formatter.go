// Package output renders query results for the terminal.
//
// It defines the Formatter interface and provides table, JSON Lines, and
// CSV implementations. GET results render as rows in the table's declared
// column order; other statements render their status message.
package output

import (
	"io"

	"github.com/pkg/errors"

	"github.com/tjk113/coil/internal/store"
)

// Formatter renders query results to an output writer.
type Formatter interface {
	Format(result *store.QueryResult) error
	SetOutput(w io.Writer)
}

// New returns the formatter registered under the given name: "table",
// "json", or "csv".
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	default:
		return nil, errors.Errorf("unknown output format %q", name)
	}
}
