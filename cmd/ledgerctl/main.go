// Command ledgerctl administers the ledger database directly.
//
//	ledgerctl [-db path] adduser -user alice
//	ledgerctl [-db path] summary -user alice
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"

	"account_ledger/internal/config"
	"account_ledger/internal/repository"
	"account_ledger/internal/repository/db"

	"github.com/google/subcommands"
)

// app carries the global flags and I/O shared by every subcommand.
type app struct {
	dbPath string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	top := flag.NewFlagSet("ledgerctl", flag.ContinueOnError)
	top.SetOutput(stderr)
	top.StringVar(&a.dbPath, "db", "", "Path to the SQLite database (default: db.path from the config)")
	if err := top.Parse(args); err != nil {
		return int(subcommands.ExitUsageError)
	}

	cdr := subcommands.NewCommander(top, "ledgerctl")
	cdr.Output = stdout
	cdr.Error = stderr
	cdr.Register(cdr.HelpCommand(), "")
	cdr.Register(cdr.CommandsCommand(), "")
	cdr.Register(&addUserCmd{app: a}, "users")
	cdr.Register(&summaryCmd{app: a}, "ledger")

	return int(cdr.Execute(ctx))
}

// open loads the configuration and opens the database it names, unless
// -db overrides the path.
func (a *app) open() (*sql.DB, *repository.Repository, *config.Config, error) {
	cfg, err := config.Load(os.Getenv("LEDGER_CONFIG"))
	if err != nil {
		return nil, nil, nil, err
	}
	path := cfg.DB.Path
	if a.dbPath != "" {
		path = a.dbPath
	}
	conn, err := db.InitDB(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return conn, repository.NewRepository(conn), cfg, nil
}
