package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// UniqueViolation reports the constraint name of a postgres unique violation.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// ConstraintOn reports whether a unique violation hit an index on column.
// gorm names them idx_<table>_<column> or <table>_pkey.
func ConstraintOn(err error, column string) bool {
	name, ok := UniqueViolation(err)
	if !ok {
		return false
	}
	if column == "id" || column == "user_id" {
		if strings.HasSuffix(name, "_pkey") {
			return true
		}
	}
	return strings.HasSuffix(name, "_"+column)
}

func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
