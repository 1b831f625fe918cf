// ABOUTME: Error taxonomy for Store operations.
// ABOUTME: Maps SQLite constraint failures onto sentinel errors.
package storage

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound means no row matched the given name or id.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName means an exercise with that name already exists.
	ErrDuplicateName = errors.New("exercise name already exists")

	// ErrUnknownExercise means a PR or workout log referenced a missing exercise.
	ErrUnknownExercise = errors.New("exercise does not exist")

	// ErrNotConnected is returned by every operation after Close.
	ErrNotConnected = errors.New("database not connected")
)

// classify converts SQLite constraint errors into sentinels. Other errors
// are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}

	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ErrDuplicateName
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrUnknownExercise
	}

	// Primary result code only (extended codes disabled).
	if se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := se.Error()
		switch {
		case strings.Contains(msg, "UNIQUE"):
			return ErrDuplicateName
		case strings.Contains(msg, "FOREIGN KEY"):
			return ErrUnknownExercise
		}
	}
	return err
}
