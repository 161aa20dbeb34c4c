package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// PostgreSQL (error code 23505)
	if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return true
	}

	// SQLite (error code 2067)
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return true
	}

	return false
}

// IsLockTimeoutErr matches lock wait expiry on the backing store.
func IsLockTimeoutErr(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	// PostgreSQL (error code 55P03)
	if strings.Contains(msg, "canceling statement due to lock timeout") ||
		strings.Contains(msg, "could not obtain lock on row") {
		return true
	}

	// SQLite (SQLITE_BUSY)
	if strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") {
		return true
	}

	return false
}

// IsSerializationErr matches transaction conflicts the caller may retry.
func IsSerializationErr(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	// PostgreSQL (error codes 40001, 40P01)
	if strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected") {
		return true
	}

	return false
}
