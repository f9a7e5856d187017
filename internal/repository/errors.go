// Package repository persists route entities. Every entity goes through the
// same two Store implementations, SQLStore for MySQL and MemoryStore for
// tests and local runs, driven by a per-entity Table mapping.
//
// The sentinel errors below let higher layers tell failure cases apart
// without knowing which backend produced them.
package repository

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when no row has the requested id. Services turn
// it into a NotFoundError, which handlers answer with 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when the database refuses a write because of a
// foreign key, e.g. deleting a seat map that floors still reference.
// Handlers translate it into 409.
var ErrConflict = errors.New("conflict")

const (
	mysqlRowReferenced  = 1451
	mysqlNoReferenced   = 1452
	mysqlDuplicateEntry = 1062
)

// translate maps driver errors onto the sentinels above.
func translate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlRowReferenced, mysqlNoReferenced, mysqlDuplicateEntry:
			return fmt.Errorf("%w: %s", ErrConflict, me.Message)
		}
	}
	return err
}
