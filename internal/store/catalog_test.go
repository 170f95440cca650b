package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tjk113/coil/internal/field"
	"github.com/tjk113/coil/internal/query"
)

func runStatement(t *testing.T, c *Catalog, statement string) *QueryResult {
	t.Helper()
	q, err := query.Parse(statement)
	require.NoError(t, err)
	result, err := c.Run(q)
	require.NoError(t, err)
	return result
}

func failStatement(t *testing.T, c *Catalog, statement string) error {
	t.Helper()
	q, err := query.Parse(statement)
	require.NoError(t, err)
	_, err = c.Run(q)
	require.Error(t, err)
	return err
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog(NewDatabase("default", Config{RootPath: t.TempDir()}))
	runStatement(t, c, `CREATE TABLE customers [ID: NUMBER, Name: TEXT]`)
	runStatement(t, c, `PUT [1, "Alice"] IN customers`)
	runStatement(t, c, `PUT [2, "Bob"] IN customers`)
	runStatement(t, c, `PUT [3, "Carol"] IN customers`)
	return c
}

func TestCatalog_GetWhere(t *testing.T) {
	c := newTestCatalog(t)

	result := runStatement(t, c, `GET * FROM customers WHERE ID > 1 AND Name != "Carol"`)
	require.Equal(t, query.OpGet, result.Operation)
	require.Len(t, result.Rows, 1)
	require.True(t, result.Rows[0]["Name"].Equal(field.Text("Bob")))
}

func TestCatalog_PutTypeChecks(t *testing.T) {
	c := newTestCatalog(t)

	err := failStatement(t, c, `PUT ["oops", "Dave"] IN customers`)
	var typeErr *field.TypeError
	require.ErrorAs(t, err, &typeErr)

	err = failStatement(t, c, `PUT [4] IN customers`)
	var arityErr *ArityError
	require.ErrorAs(t, err, &arityErr)

	result := runStatement(t, c, `GET * FROM customers`)
	require.Len(t, result.Rows, 3)
}

func TestCatalog_Update(t *testing.T) {
	c := newTestCatalog(t)

	result := runStatement(t, c, `UPDATE customers SET Name = "Dave" WHERE ID >= 2`)
	require.Equal(t, 2, result.Affected)

	rows := runStatement(t, c, `GET * FROM customers WHERE Name = "Dave"`).Rows
	require.Len(t, rows, 2)
}

func TestCatalog_DeleteRows(t *testing.T) {
	c := newTestCatalog(t)

	result := runStatement(t, c, `DELETE TABLE customers WHERE ID = 2`)
	require.Equal(t, 1, result.Affected)

	rows := runStatement(t, c, `GET * FROM customers`).Rows
	require.Len(t, rows, 2)
	require.True(t, rows[0]["ID"].Equal(field.Integer(1)))
	require.True(t, rows[1]["ID"].Equal(field.Integer(3)))
}

func TestCatalog_DeleteTable(t *testing.T) {
	c := newTestCatalog(t)

	runStatement(t, c, `DELETE TABLE customers`)

	err := failStatement(t, c, `GET * FROM customers`)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCatalog_TableConflicts(t *testing.T) {
	c := newTestCatalog(t)

	err := failStatement(t, c, `CREATE TABLE customers [ID: NUMBER]`)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	err = failStatement(t, c, `CREATE TABLE dup [a: NUMBER, a: TEXT]`)
	require.ErrorAs(t, err, &conflict)

	err = failStatement(t, c, `DELETE TABLE missing`)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCatalog_Databases(t *testing.T) {
	c := newTestCatalog(t)

	runStatement(t, c, `CREATE DATABASE crm`)
	require.Equal(t, []string{"default", "crm"}, c.Databases())

	// Creating a database does not switch to it.
	require.Equal(t, "default", c.Active().Name)

	require.NoError(t, c.Use("crm"))
	require.Equal(t, "crm", c.Active().Name)

	// The new database starts empty.
	err := failStatement(t, c, `GET * FROM customers`)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	t.Run("conflict", func(t *testing.T) {
		err := failStatement(t, c, `CREATE DATABASE crm`)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("deleting the active database activates another", func(t *testing.T) {
		runStatement(t, c, `DELETE DATABASE crm`)
		require.Equal(t, "default", c.Active().Name)
	})

	t.Run("the last database cannot be deleted", func(t *testing.T) {
		failStatement(t, c, `DELETE DATABASE default`)
		require.Equal(t, []string{"default"}, c.Databases())
	})

	t.Run("deleting a missing database", func(t *testing.T) {
		err := failStatement(t, c, `DELETE DATABASE nope`)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestCatalog_UseUnknownDatabase(t *testing.T) {
	c := newTestCatalog(t)
	err := c.Use("nope")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "default", c.Active().Name)
}
