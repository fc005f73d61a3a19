package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a document lookup matches no row.
var ErrNotFound = errors.New("document not found")

// DuplicateKeyError reports a unique constraint violation. Field is the
// client-facing name of the column.
type DuplicateKeyError struct {
	Table string
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate value for %s.%s", e.Table, e.Field)
}

// fieldNames maps column names to the JSON names clients know them by.
var fieldNames = map[string]string{
	"identity_token": "userId",
	"profile_image":  "profileImage",
	"birth_date":     "birthDate",
}

// translateError turns driver errors into ErrNotFound or *DuplicateKeyError
// and leaves anything else untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return parseUniqueViolation(sqliteErr.Error())
	}
	return err
}

// parseUniqueViolation reads messages of the form
// "UNIQUE constraint failed: users.email".
func parseUniqueViolation(msg string) *DuplicateKeyError {
	dup := &DuplicateKeyError{Table: "unknown", Field: "value"}
	_, cols, ok := strings.Cut(msg, "failed: ")
	if !ok {
		return dup
	}
	first := strings.TrimSpace(strings.SplitN(cols, ",", 2)[0])
	table, column, ok := strings.Cut(first, ".")
	if !ok {
		return dup
	}
	dup.Table = table
	dup.Field = column
	if name, found := fieldNames[column]; found {
		dup.Field = name
	}
	return dup
}
