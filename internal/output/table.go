package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/tjk113/coil/internal/query"
	"github.com/tjk113/coil/internal/store"
)

// TableFormatter renders GET results as a bordered ASCII table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer.
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes GET rows as a table, and the status message for statements
// that return no rows.
func (t *TableFormatter) Format(result *store.QueryResult) error {
	if result.Operation != query.OpGet {
		_, err := fmt.Fprintln(t.writer, result.Message)
		return err
	}

	names := result.Table.Names()
	tbl := tablewriter.NewWriter(t.writer)
	tbl.SetHeader(names)
	for _, row := range result.Rows {
		record := make([]string, len(names))
		for i, name := range names {
			record[i] = row[name].String()
		}
		tbl.Append(record)
	}
	tbl.Render()
	return nil
}
