package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"account_ledger/internal/models"
	"account_ledger/internal/repository"
	"account_ledger/internal/repository/db"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   subcommands.ExitStatus
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("LEDGER_SECURITY_BCRYPT_COST", "4")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, bytes.NewBufferString(stdin), &stdout, &stderr)
	return result{code: subcommands.ExitStatus(code), stdout: stdout.String(), stderr: stderr.String()}
}

func TestAddUser_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	r := runCLI(t, "", "-db", dbPath, "adduser", "-user", "alice", "-password", "secret")
	require.Equal(t, subcommands.ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "User alice created successfully")
}

func TestAddUser_Duplicate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	r := runCLI(t, "", "-db", dbPath, "adduser", "-user", "alice", "-password", "secret")
	require.Equal(t, subcommands.ExitSuccess, r.code, r.stderr)

	r = runCLI(t, "", "-db", dbPath, "adduser", "-user", "alice", "-password", "other")
	assert.Equal(t, subcommands.ExitFailure, r.code)
	assert.Contains(t, r.stderr, "already exists")
}

func TestAddUser_InteractivePassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	r := runCLI(t, "interactive_secret\n", "-db", dbPath, "adduser", "-user", "bob")
	require.Equal(t, subcommands.ExitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Password: ")
	assert.Contains(t, r.stdout, "User bob created successfully")
}

func TestAddUser_EmptyPromptedPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	r := runCLI(t, "\n", "-db", dbPath, "adduser", "-user", "bob")
	assert.Equal(t, subcommands.ExitUsageError, r.code)
	assert.Contains(t, r.stderr, "invalid password")
}

func TestAddUser_MissingUser(t *testing.T) {
	r := runCLI(t, "", "adduser", "-password", "secret")
	assert.Equal(t, subcommands.ExitUsageError, r.code)
	assert.Contains(t, r.stderr, "missing required flag: -user")
}

func TestAddUser_InvalidDBPath(t *testing.T) {
	dir := t.TempDir()

	r := runCLI(t, "", "-db", dir, "adduser", "-user", "alice", "-password", "secret")
	assert.Equal(t, subcommands.ExitFailure, r.code)
	assert.Contains(t, r.stderr, "failed to open database")
}

func TestUnknownFlagAndCommand(t *testing.T) {
	r := runCLI(t, "", "-nope")
	assert.Equal(t, subcommands.ExitUsageError, r.code)

	r = runCLI(t, "", "frobnicate")
	assert.Equal(t, subcommands.ExitUsageError, r.code)
}

func TestSummary(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	r := runCLI(t, "", "-db", dbPath, "adduser", "-user", "alice", "-password", "secret")
	require.Equal(t, subcommands.ExitSuccess, r.code, r.stderr)

	conn, err := db.InitDB(dbPath)
	require.NoError(t, err)
	repos := repository.NewRepository(conn)
	u, err := repos.Users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	for _, a := range []models.Account{
		{UserID: u.ID, Name: "Cash", MainAccountType: models.AccountTypeAsset, MainAccountCategory: "Current", Balance: 100},
		{UserID: u.ID, Name: "Loan", MainAccountType: models.AccountTypeLiabilities, MainAccountCategory: "Debt", Balance: 40},
		{UserID: u.ID, Name: "Capital", MainAccountType: models.AccountTypeEquity, MainAccountCategory: "Owner", Balance: 60},
		{UserID: u.ID, Name: "Sales", MainAccountType: models.AccountTypeRevenue, MainAccountCategory: "Ops", Balance: 10},
	} {
		_, err := repos.Accounts.Create(context.Background(), a)
		require.NoError(t, err)
	}
	require.NoError(t, conn.Close())

	r = runCLI(t, "", "-db", dbPath, "summary", "-user", "alice")
	require.Equal(t, subcommands.ExitSuccess, r.code, r.stderr)
	assert.Regexp(t, `Assets\s+100\.00`, r.stdout)
	assert.Regexp(t, `Net worth\s+60\.00`, r.stdout)
	assert.Regexp(t, `Balanced\s+yes`, r.stdout)
}

func TestSummary_UnknownUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	r := runCLI(t, "", "-db", dbPath, "summary", "-user", "ghost")
	assert.Equal(t, subcommands.ExitFailure, r.code)
	assert.Contains(t, r.stderr, "user ghost not found")
}
