package store

import "github.com/tjk113/coil/internal/query"

// Config carries database-level settings.
type Config struct {
	RootPath string
}

// Database is a named, ordered collection of tables.
type Database struct {
	Name   string
	Config Config
	Tables []*Table
}

// NewDatabase creates an empty database.
func NewDatabase(name string, cfg Config) *Database {
	return &Database{Name: name, Config: cfg}
}

// Table returns the named table.
func (db *Database) Table(name string) (*Table, error) {
	for _, t := range db.Tables {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, &NotFoundError{Kind: "table", Name: name}
}

// CreateTable adds an empty table with the declared columns. Table and
// column names must be unique.
func (db *Database) CreateTable(name string, defs []query.ColumnDef) (*Table, error) {
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if seen[def.Name] {
			return nil, &ConflictError{Kind: "column", Name: def.Name}
		}
		seen[def.Name] = true
	}
	t := NewTable(name, defs)
	if err := db.AddTable(t); err != nil {
		return nil, err
	}
	return t, nil
}

// AddTable registers a prebuilt table, such as one imported from parquet.
func (db *Database) AddTable(t *Table) error {
	for _, existing := range db.Tables {
		if existing.Name == t.Name {
			return &ConflictError{Kind: "table", Name: t.Name}
		}
	}
	db.Tables = append(db.Tables, t)
	return nil
}

// DropTable removes the named table and all of its rows.
func (db *Database) DropTable(name string) error {
	for i, t := range db.Tables {
		if t.Name == name {
			db.Tables = append(db.Tables[:i], db.Tables[i+1:]...)
			return nil
		}
	}
	return &NotFoundError{Kind: "table", Name: name}
}
