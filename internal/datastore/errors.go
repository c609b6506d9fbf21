package datastore

import (
	"errors"
	"strings"

	"github.com/uptrace/bun/driver/pgdriver"
)

// ErrDuplicate is returned when an insert trips a unique index.
var ErrDuplicate = errors.New("datastore: duplicate row")

func IsUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.IntegrityViolation()
	}
	// sqlite, used by the test suite
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
