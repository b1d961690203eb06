package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"account_ledger/internal/service"

	"github.com/google/subcommands"
	"golang.org/x/term"
)

type addUserCmd struct {
	*app
	username string
	password string
}

func (*addUserCmd) Name() string     { return "adduser" }
func (*addUserCmd) Synopsis() string { return "create a user account" }
func (*addUserCmd) Usage() string {
	return `ledgerctl adduser -user <username> [-password <password>]

  Creates a user. The password is prompted for when -password is omitted.
`
}

func (c *addUserCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "user", "", "Username (case-sensitive)")
	f.StringVar(&c.password, "password", "", "Password (optional, will prompt if omitted)")
}

func (c *addUserCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		fmt.Fprint(c.stderr, c.Usage())
		fmt.Fprintln(c.stderr, "missing required flag: -user")
		return subcommands.ExitUsageError
	}

	password := c.password
	if password == "" {
		fmt.Fprint(c.stdout, "Password: ")
		var err error
		password, err = readPassword(c.stdin)
		fmt.Fprintln(c.stdout)
		if err != nil {
			fmt.Fprintf(c.stderr, "failed to read password: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	conn, repos, cfg, err := c.open()
	if err != nil {
		fmt.Fprintln(c.stderr, err)
		return subcommands.ExitFailure
	}
	defer conn.Close()

	auth := service.NewAuthService(repos.Users, cfg.Security.BcryptCost)
	u, err := auth.Register(ctx, c.username, password)
	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		fmt.Fprintf(c.stderr, "user %s already exists\n", c.username)
		return subcommands.ExitFailure
	case service.IsValidation(err):
		fmt.Fprintln(c.stderr, err)
		return subcommands.ExitUsageError
	case err != nil:
		fmt.Fprintf(c.stderr, "failed to create user: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.stdout, "User %s created successfully with ID %d\n", u.Username, u.ID)
	return subcommands.ExitSuccess
}

// readPassword reads without echo from a terminal, or one line otherwise.
func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
