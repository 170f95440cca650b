package output

import (
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/tjk113/coil/internal/query"
	"github.com/tjk113/coil/internal/store"
)

// JSONFormatter outputs rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes each GET row as one JSON object per line. Statements that
// return no rows write their status message as a JSON object.
func (j *JSONFormatter) Format(result *store.QueryResult) error {
	enc := json.NewEncoder(j.writer)
	if result.Operation != query.OpGet {
		return enc.Encode(map[string]string{"message": result.Message})
	}
	for _, row := range result.Rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
