package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"

	"github.com/tjk113/coil/internal/field"
)

// The on-disk document mirrors the in-memory layout: a database is a name,
// a config block, and an ordered list of tables whose columns carry their
// declared type and full value vector.

type databaseDoc struct {
	Name   string     `json:"name"`
	Config configDoc  `json:"config"`
	Tables []tableDoc `json:"tables"`
}

type configDoc struct {
	RootPath string `json:"root_path"`
}

type tableDoc struct {
	Name    string      `json:"name"`
	Columns []columnDoc `json:"columns"`
}

type columnDoc struct {
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	Values []field.Value `json:"values"`
}

// Path returns the file the database saves to by default: its name under
// the configured root path.
func (db *Database) Path() string {
	return filepath.Join(db.Config.RootPath, db.Name+".json")
}

// Save writes the database as JSON to path, or to its default path when
// path is empty. It returns the path written.
func (db *Database) Save(path string) (string, error) {
	if path == "" {
		path = db.Path()
	}

	doc := databaseDoc{
		Name:   db.Name,
		Config: configDoc{RootPath: db.Config.RootPath},
		Tables: []tableDoc{},
	}
	for _, t := range db.Tables {
		td := tableDoc{Name: t.Name, Columns: []columnDoc{}}
		for _, c := range t.Columns {
			td.Columns = append(td.Columns, columnDoc{
				Name:   c.Name,
				Type:   c.Type.String(),
				Values: c.Values,
			})
		}
		doc.Tables = append(doc.Tables, td)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrapf(err, "encoding database %q", db.Name)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", errors.Wrap(err, "creating database directory")
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "writing database %q", db.Name)
	}
	return path, nil
}

// Load reads a database previously written by Save. Column types are
// validated against the stored values and all columns of a table must have
// the same length.
func Load(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading database")
	}
	var doc databaseDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "decoding database %s", path)
	}

	db := NewDatabase(doc.Name, Config{RootPath: doc.Config.RootPath})
	for _, td := range doc.Tables {
		t := &Table{Name: td.Name}
		rows := -1
		for _, cd := range td.Columns {
			typ, err := field.ParseType(cd.Type)
			if err != nil {
				return nil, errors.Wrapf(err, "table %q column %q", td.Name, cd.Name)
			}
			col := &Column{Name: cd.Name, Type: typ, Values: cd.Values}
			if col.Values == nil {
				col.Values = []field.Value{}
			}
			for _, v := range col.Values {
				if err := col.Check(v); err != nil {
					return nil, errors.Wrapf(err, "table %q", td.Name)
				}
			}
			if rows >= 0 && col.Len() != rows {
				return nil, errors.Errorf("table %q is ragged: column %q has %d values, want %d",
					td.Name, cd.Name, col.Len(), rows)
			}
			rows = col.Len()
			t.Columns = append(t.Columns, col)
		}
		db.Tables = append(db.Tables, t)
	}
	return db, nil
}
