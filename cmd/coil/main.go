package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tjk113/coil/internal/output"
	"github.com/tjk113/coil/internal/query"
	"github.com/tjk113/coil/internal/shell"
	"github.com/tjk113/coil/internal/store"
)

var (
	databaseFlag string
	nameFlag     string
	rootFlag     string
	formatFlag   string
	queryFlag    string
	verboseFlag  bool
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coil",
		Short: "An embedded columnar query shell",
		Long: `coil stores typed columns in named tables and queries them with a
small statement language (GET, PUT, UPDATE, CREATE, DELETE).

Without -q it starts an interactive shell; with -q it runs one statement
and exits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	cmd.Flags().StringVarP(&databaseFlag, "database", "d", "", "saved database file to open")
	cmd.Flags().StringVarP(&nameFlag, "name", "n", "default", "name for a fresh database")
	cmd.Flags().StringVarP(&rootFlag, "root", "r", ".", "root path for database files")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "table", "output format: table, json, csv")
	cmd.Flags().StringVarP(&queryFlag, "query", "q", "", "run one statement and exit")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if verboseFlag {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var db *store.Database
	if databaseFlag != "" {
		loaded, err := store.Load(databaseFlag)
		if err != nil {
			return err
		}
		db = loaded
	} else {
		db = store.NewDatabase(nameFlag, store.Config{RootPath: rootFlag})
	}
	catalog := store.NewCatalog(db)

	formatter, err := output.New(formatFlag, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if queryFlag != "" {
		q, err := query.Parse(queryFlag)
		if err != nil {
			return err
		}
		result, err := catalog.Run(q)
		if err != nil {
			return err
		}
		return formatter.Format(result)
	}

	return shell.New(catalog, formatter).Run()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
