// Package store implements the columnar table engine: typed value columns
// grouped into tables, tables grouped into named databases, and a catalog
// that dispatches parsed statements against the active database.
package store

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tjk113/coil/internal/query"
)

// QueryResult is the outcome of one executed statement.
type QueryResult struct {
	Operation query.Operation
	Table     *Table      // GET target, for column order
	Rows      []query.Row // GET matches in storage order
	Affected  int         // rows touched
	Message   string      // status line for non-GET statements
}

// Catalog holds the named databases and tracks which one statements run
// against. A catalog always has at least one database.
type Catalog struct {
	databases []*Database
	active    *Database
	log       logrus.FieldLogger
}

// NewCatalog creates a catalog with one initial, active database.
func NewCatalog(db *Database) *Catalog {
	return &Catalog{
		databases: []*Database{db},
		active:    db,
		log:       logrus.StandardLogger(),
	}
}

// SetLogger replaces the catalog's logger.
func (c *Catalog) SetLogger(log logrus.FieldLogger) { c.log = log }

// Active returns the database statements currently run against.
func (c *Catalog) Active() *Database { return c.active }

// Databases returns the database names in creation order.
func (c *Catalog) Databases() []string {
	names := make([]string, len(c.databases))
	for i, db := range c.databases {
		names[i] = db.Name
	}
	return names
}

// Database returns the named database.
func (c *Catalog) Database(name string) (*Database, error) {
	for _, db := range c.databases {
		if db.Name == name {
			return db, nil
		}
	}
	return nil, &NotFoundError{Kind: "database", Name: name}
}

// Use switches the active database.
func (c *Catalog) Use(name string) error {
	db, err := c.Database(name)
	if err != nil {
		return err
	}
	c.active = db
	return nil
}

// AddDatabase registers a loaded database and makes it active.
func (c *Catalog) AddDatabase(db *Database) error {
	for _, existing := range c.databases {
		if existing.Name == db.Name {
			return &ConflictError{Kind: "database", Name: db.Name}
		}
	}
	c.databases = append(c.databases, db)
	c.active = db
	return nil
}

// Run executes one parsed statement against the catalog.
func (c *Catalog) Run(q *query.Query) (*QueryResult, error) {
	start := time.Now()
	res, err := c.run(q)
	entry := c.log.WithFields(logrus.Fields{
		"op":       q.Operation.String(),
		"database": c.active.Name,
		"duration": time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Debug("statement failed")
		return nil, err
	}
	entry.WithField("affected", res.Affected).Debug("statement executed")
	return res, nil
}

func (c *Catalog) run(q *query.Query) (*QueryResult, error) {
	switch q.Operation {
	case query.OpGet:
		return c.runGet(q)
	case query.OpPut:
		return c.runPut(q)
	case query.OpUpdate:
		return c.runUpdate(q)
	case query.OpCreate:
		return c.runCreate(q)
	case query.OpDelete:
		return c.runDelete(q)
	default:
		return nil, errors.Errorf("unsupported operation %s", q.Operation)
	}
}

func (c *Catalog) runGet(q *query.Query) (*QueryResult, error) {
	t, err := c.active.Table(q.Table)
	if err != nil {
		return nil, err
	}
	rows, err := t.Select(q.Condition)
	if err != nil {
		return nil, err
	}
	return &QueryResult{Operation: query.OpGet, Table: t, Rows: rows, Affected: len(rows)}, nil
}

func (c *Catalog) runPut(q *query.Query) (*QueryResult, error) {
	t, err := c.active.Table(q.Table)
	if err != nil {
		return nil, err
	}
	if err := t.Insert(q.Values); err != nil {
		return nil, err
	}
	return &QueryResult{
		Operation: query.OpPut,
		Table:     t,
		Affected:  1,
		Message:   fmt.Sprintf("inserted 1 row into %q", q.Table),
	}, nil
}

func (c *Catalog) runUpdate(q *query.Query) (*QueryResult, error) {
	t, err := c.active.Table(q.Table)
	if err != nil {
		return nil, err
	}
	n, err := t.Update(q.Assignments, q.Condition)
	if err != nil {
		return nil, err
	}
	return &QueryResult{
		Operation: query.OpUpdate,
		Table:     t,
		Affected:  n,
		Message:   fmt.Sprintf("updated %d row(s) in %q", n, q.Table),
	}, nil
}

func (c *Catalog) runCreate(q *query.Query) (*QueryResult, error) {
	if q.Database != "" {
		for _, db := range c.databases {
			if db.Name == q.Database {
				return nil, &ConflictError{Kind: "database", Name: q.Database}
			}
		}
		// New databases share the active database's root path.
		c.databases = append(c.databases, NewDatabase(q.Database, c.active.Config))
		return &QueryResult{
			Operation: query.OpCreate,
			Message:   fmt.Sprintf("created database %q", q.Database),
		}, nil
	}

	t, err := c.active.CreateTable(q.Table, q.Columns)
	if err != nil {
		return nil, err
	}
	return &QueryResult{
		Operation: query.OpCreate,
		Table:     t,
		Message:   fmt.Sprintf("created table %q", q.Table),
	}, nil
}

func (c *Catalog) runDelete(q *query.Query) (*QueryResult, error) {
	if q.Database != "" {
		return c.dropDatabase(q.Database)
	}

	if q.Condition != nil {
		t, err := c.active.Table(q.Table)
		if err != nil {
			return nil, err
		}
		n, err := t.DeleteRows(q.Condition)
		if err != nil {
			return nil, err
		}
		return &QueryResult{
			Operation: query.OpDelete,
			Table:     t,
			Affected:  n,
			Message:   fmt.Sprintf("deleted %d row(s) from %q", n, q.Table),
		}, nil
	}

	if err := c.active.DropTable(q.Table); err != nil {
		return nil, err
	}
	return &QueryResult{
		Operation: query.OpDelete,
		Message:   fmt.Sprintf("deleted table %q", q.Table),
	}, nil
}

func (c *Catalog) dropDatabase(name string) (*QueryResult, error) {
	idx := -1
	for i, db := range c.databases {
		if db.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &NotFoundError{Kind: "database", Name: name}
	}
	if len(c.databases) == 1 {
		return nil, errors.Errorf("cannot delete %q: it is the only database", name)
	}

	dropped := c.databases[idx]
	c.databases = append(c.databases[:idx], c.databases[idx+1:]...)
	if c.active == dropped {
		c.active = c.databases[0]
	}
	return &QueryResult{
		Operation: query.OpDelete,
		Message:   fmt.Sprintf("deleted database %q", name),
	}, nil
}
