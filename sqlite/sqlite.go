package sqlite

import (
	"errors"
	"strings"

	sqlite3 "modernc.org/sqlite"
)

type scannable interface {
	Scan(...any) error
}

func generateParameters(n int) string {
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("(?")
	for range n - 1 {
		sb.WriteString(",?")
	}

	sb.WriteString(")")
	return sb.String()
}

// SQLITE_CONSTRAINT_UNIQUE and SQLITE_CONSTRAINT_PRIMARYKEY
const (
	codeConstraintUnique     = 2067
	codeConstraintPrimaryKey = 1555
)

func isUniqueViolation(err error) bool {
	var serr *sqlite3.Error
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Code() == codeConstraintUnique || serr.Code() == codeConstraintPrimaryKey
}
