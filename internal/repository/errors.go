package repository

import (
	"errors"
	"strings"
)

var (
	ErrUsernameTaken   = errors.New("username already taken")
	ErrAccountIDTaken  = errors.New("account_id already taken")
	ErrAccountNotFound = errors.New("account not found")
)

// isUniqueViolation reports whether err is SQLite's unique constraint
// failure on column, given as "table.column".
func isUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
