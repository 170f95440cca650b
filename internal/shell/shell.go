// Package shell implements the interactive coil shell.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tjk113/coil/internal/field"
	"github.com/tjk113/coil/internal/output"
	"github.com/tjk113/coil/internal/query"
	"github.com/tjk113/coil/internal/store"
)

const Prompt = "coil> "

// Shell reads statements from its input, runs them against the catalog,
// and renders results with its formatter. A handful of meta commands cover
// what the query language does not: switching databases, saving and
// loading, and parquet import/export.
type Shell struct {
	catalog   *store.Catalog
	formatter output.Formatter
	in        io.Reader
	out       io.Writer
	log       logrus.FieldLogger
}

// New creates a shell on stdin/stdout.
func New(catalog *store.Catalog, formatter output.Formatter) *Shell {
	return &Shell{
		catalog:   catalog,
		formatter: formatter,
		in:        os.Stdin,
		out:       os.Stdout,
		log:       logrus.WithField("session", uuid.NewString()),
	}
}

// SetIO redirects the shell's input and output.
func (s *Shell) SetIO(in io.Reader, out io.Writer) {
	s.in = in
	s.out = out
	s.formatter.SetOutput(out)
}

// Run starts the read-eval-print loop. It returns when the input is
// exhausted or the user quits.
func (s *Shell) Run() error {
	s.printBanner()

	scanner := bufio.NewScanner(s.in)

	for {
		fmt.Fprint(s.out, Prompt)
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		handled, quit := s.handleCommand(input)
		if quit {
			fmt.Fprintln(s.out, "Bye!")
			return scanner.Err()
		}
		if handled {
			continue
		}

		s.execute(input)
	}

	return scanner.Err()
}

func (s *Shell) printBanner() {
	fmt.Fprintf(s.out, "coil - an embedded columnar query shell\n")
	fmt.Fprintf(s.out, "Database: %s\n", s.catalog.Active().Name)
	fmt.Fprintln(s.out, "Type 'help' for available commands, 'q' to quit.")
	fmt.Fprintln(s.out)
}

// handleCommand dispatches shell meta commands. It reports whether the
// input was a command, and whether the shell should quit.
func (s *Shell) handleCommand(input string) (handled, quit bool) {
	words := strings.Fields(input)
	switch strings.ToLower(words[0]) {
	case "q", "quit", "exit":
		return true, true

	case "help":
		s.printHelp()
		return true, false

	case "tables":
		s.listTables()
		return true, false

	case "databases":
		for _, name := range s.catalog.Databases() {
			marker := " "
			if name == s.catalog.Active().Name {
				marker = "*"
			}
			fmt.Fprintf(s.out, "%s %s\n", marker, name)
		}
		return true, false

	case "use":
		if len(words) != 2 {
			fmt.Fprintln(s.out, "usage: use <database>")
			return true, false
		}
		if err := s.catalog.Use(words[1]); err != nil {
			s.printError(err)
			return true, false
		}
		fmt.Fprintf(s.out, "Database: %s\n", words[1])
		return true, false

	case "save":
		path := ""
		if len(words) > 1 {
			path = words[1]
		}
		written, err := s.catalog.Active().Save(path)
		if err != nil {
			s.printError(err)
			return true, false
		}
		fmt.Fprintf(s.out, "Saved to %s\n", written)
		return true, false

	case "open":
		if len(words) != 2 {
			fmt.Fprintln(s.out, "usage: open <path>")
			return true, false
		}
		db, err := store.Load(words[1])
		if err == nil {
			err = s.catalog.AddDatabase(db)
		}
		if err != nil {
			s.printError(err)
			return true, false
		}
		fmt.Fprintf(s.out, "Database: %s\n", db.Name)
		return true, false

	case "import":
		if len(words) != 3 {
			fmt.Fprintln(s.out, "usage: import <table> <file.parquet>")
			return true, false
		}
		t, err := store.ImportParquet(words[1], words[2])
		if err == nil {
			err = s.catalog.Active().AddTable(t)
		}
		if err != nil {
			s.printError(err)
			return true, false
		}
		fmt.Fprintf(s.out, "Imported %d row(s) into %q\n", t.Len(), t.Name)
		return true, false

	case "export":
		if len(words) != 3 {
			fmt.Fprintln(s.out, "usage: export <table> <file.parquet>")
			return true, false
		}
		t, err := s.catalog.Active().Table(words[1])
		if err == nil {
			err = store.ExportParquet(t, words[2])
		}
		if err != nil {
			s.printError(err)
			return true, false
		}
		fmt.Fprintf(s.out, "Exported %d row(s) to %s\n", t.Len(), words[2])
		return true, false
	}

	return false, false
}

func (s *Shell) printHelp() {
	help := `
Commands:
  help                      - Show this help message
  q, quit, exit             - Exit the shell
  tables                    - List tables in the active database
  databases                 - List databases (* marks the active one)
  use <database>            - Switch the active database
  save [path]               - Save the active database as JSON
  open <path>               - Load a saved database and make it active
  import <table> <file>     - Import a parquet file as a new table
  export <table> <file>     - Export a table to a parquet file

Statements:
  CREATE TABLE name [col: TYPE, ...]
  CREATE DATABASE name
  PUT [val, ...] IN name
  GET * FROM name WHERE expr
  UPDATE name SET col = val, ... WHERE expr
  DELETE TABLE name WHERE expr
  DELETE TABLE name
  DELETE DATABASE name

Types: NUMBER, TEXT

Examples:
  CREATE TABLE customers [ID: NUMBER, Name: TEXT]
  PUT [1, "Alice"] IN customers
  GET * FROM customers WHERE ID > 0 AND Name != "Bob"
`
	fmt.Fprintln(s.out, help)
}

func (s *Shell) listTables() {
	db := s.catalog.Active()
	if len(db.Tables) == 0 {
		fmt.Fprintln(s.out, "No tables found.")
		return
	}
	for _, t := range db.Tables {
		fmt.Fprintf(s.out, "  %s (%d columns, %d rows)\n", t.Name, len(t.Columns), t.Len())
	}
}

// execute parses and runs one statement, rendering the result or reporting
// the error kind and message. Errors never end the session.
func (s *Shell) execute(input string) {
	start := time.Now()

	q, err := query.Parse(input)
	if err != nil {
		s.printError(err)
		return
	}

	result, err := s.catalog.Run(q)
	if err != nil {
		s.printError(err)
		return
	}

	if err := s.formatter.Format(result); err != nil {
		s.printError(err)
		return
	}

	elapsed := time.Since(start)
	if result.Operation == query.OpGet {
		fmt.Fprintf(s.out, "(%d row(s) in %.3f ms)\n", len(result.Rows), float64(elapsed.Microseconds())/1000)
	}
	s.log.WithFields(logrus.Fields{
		"op":       result.Operation.String(),
		"duration": elapsed,
	}).Debug("statement handled")
}

func (s *Shell) printError(err error) {
	fmt.Fprintf(s.out, "%s: %v\n", errorKind(err), err)
}

// errorKind classifies an error for the prefix of the printed message.
func errorKind(err error) string {
	var lexErr *query.LexError
	var parseErr *query.ParseError
	var evalErr *query.EvalError
	var typeErr *field.TypeError
	var arityErr *store.ArityError
	var notFoundErr *store.NotFoundError
	var conflictErr *store.ConflictError
	switch {
	case errors.As(err, &lexErr):
		return "lex error"
	case errors.As(err, &parseErr):
		return "parse error"
	case errors.As(err, &evalErr):
		return "eval error"
	case errors.As(err, &typeErr):
		return "type error"
	case errors.As(err, &arityErr):
		return "arity error"
	case errors.As(err, &notFoundErr):
		return "not found"
	case errors.As(err, &conflictErr):
		return "conflict"
	default:
		return "error"
	}
}
