package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tjk113/coil/internal/query"
	"github.com/tjk113/coil/internal/store"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes GET results as CSV with a header row in the table's column
// order. Statements that return no rows write their status message.
func (c *CSVFormatter) Format(result *store.QueryResult) error {
	if result.Operation != query.OpGet {
		_, err := fmt.Fprintln(c.writer, result.Message)
		return err
	}

	csvWriter := csv.NewWriter(c.writer)
	defer csvWriter.Flush()

	names := result.Table.Names()
	if err := csvWriter.Write(names); err != nil {
		return err
	}
	for _, row := range result.Rows {
		record := make([]string, len(names))
		for i, name := range names {
			v := row[name]
			if v.IsNone() {
				record[i] = ""
			} else if s, ok := v.AsString(); ok {
				record[i] = s
			} else {
				record[i] = v.String()
			}
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}
	return nil
}
