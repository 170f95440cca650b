package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tjk113/coil/internal/field"
	"github.com/tjk113/coil/internal/query"
)

func TestParquetRoundTrip(t *testing.T) {
	tbl := NewTable("customers", []query.ColumnDef{
		{Name: "ID", Type: field.TypeNumber},
		{Name: "Name", Type: field.TypeText},
		{Name: "Score", Type: field.TypeNumber},
	})
	require.NoError(t, tbl.Insert([]field.Value{field.Integer(1), field.Text("Alice"), field.Float(2.5)}))
	require.NoError(t, tbl.Insert([]field.Value{field.Integer(2), field.Text("Bob"), field.Float(3.5)}))

	path := filepath.Join(t.TempDir(), "customers.parquet")
	require.NoError(t, ExportParquet(tbl, path))

	got, err := ImportParquet("imported", path)
	require.NoError(t, err)
	require.Equal(t, "imported", got.Name)
	require.Equal(t, 2, got.Len())
	require.Len(t, got.Columns, 3)

	rows, err := got.Select(nil)
	require.NoError(t, err)
	require.True(t, rows[0]["ID"].Equal(field.Integer(1)))
	require.True(t, rows[0]["Name"].Equal(field.Text("Alice")))
	require.True(t, rows[0]["Score"].Equal(field.Float(2.5)))
	require.True(t, rows[1]["Name"].Equal(field.Text("Bob")))
}

func TestExportParquet_IntegerColumnStaysIntegral(t *testing.T) {
	tbl := NewTable("counts", []query.ColumnDef{
		{Name: "n", Type: field.TypeNumber},
	})
	require.NoError(t, tbl.Insert([]field.Value{field.Integer(10)}))
	require.NoError(t, tbl.Insert([]field.Value{field.Integer(20)}))

	path := filepath.Join(t.TempDir(), "counts.parquet")
	require.NoError(t, ExportParquet(tbl, path))

	got, err := ImportParquet("counts", path)
	require.NoError(t, err)
	rows, err := got.Select(nil)
	require.NoError(t, err)
	require.Equal(t, field.KindInteger, rows[0]["n"].Kind())
	require.True(t, rows[1]["n"].Equal(field.Integer(20)))
}

func TestImportParquet_MissingFile(t *testing.T) {
	_, err := ImportParquet("t", filepath.Join(t.TempDir(), "missing.parquet"))
	require.Error(t, err)
}
