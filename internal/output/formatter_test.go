package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"

	"github.com/tjk113/coil/internal/field"
	"github.com/tjk113/coil/internal/query"
	"github.com/tjk113/coil/internal/store"
)

func getResult(t *testing.T) *store.QueryResult {
	t.Helper()
	tbl := store.NewTable("customers", []query.ColumnDef{
		{Name: "ID", Type: field.TypeNumber},
		{Name: "Name", Type: field.TypeText},
	})
	require.NoError(t, tbl.Insert([]field.Value{field.Integer(1), field.Text("Alice")}))
	require.NoError(t, tbl.Insert([]field.Value{field.Integer(2), field.None()}))

	rows, err := tbl.Select(nil)
	require.NoError(t, err)
	return &store.QueryResult{Operation: query.OpGet, Table: tbl, Rows: rows, Affected: len(rows)}
}

func messageResult() *store.QueryResult {
	return &store.QueryResult{
		Operation: query.OpPut,
		Affected:  1,
		Message:   `inserted 1 row into "customers"`,
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range []string{"table", "json", "csv"} {
		f, err := New(name, &buf)
		require.NoError(t, err, name)
		require.NotNil(t, f, name)
	}
	_, err := New("xml", &buf)
	require.Error(t, err)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTableFormatter(&buf)

	require.NoError(t, f.Format(getResult(t)))
	out := buf.String()
	require.Contains(t, out, "ID")
	require.Contains(t, out, "NAME")
	require.Contains(t, out, "Alice")
	require.Contains(t, out, "None")

	buf.Reset()
	require.NoError(t, f.Format(messageResult()))
	require.Equal(t, "inserted 1 row into \"customers\"\n", buf.String())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(&buf)

	require.NoError(t, f.Format(getResult(t)))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Equal(t, float64(1), first["ID"])
	require.Equal(t, "Alice", first["Name"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.Nil(t, second["Name"])

	buf.Reset()
	require.NoError(t, f.Format(messageResult()))
	var msg map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &msg))
	require.Equal(t, `inserted 1 row into "customers"`, msg["message"])
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewCSVFormatter(&buf)

	require.NoError(t, f.Format(getResult(t)))
	expected := "ID,Name\n1,Alice\n2,\n"
	require.Equal(t, expected, buf.String())
}

func TestFormatter_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	f := NewTableFormatter(&first)
	f.SetOutput(&second)

	require.NoError(t, f.Format(messageResult()))
	require.Zero(t, first.Len())
	require.NotZero(t, second.Len())
}
