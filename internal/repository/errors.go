// Package repository implements MySQL-backed data access for the
// booking domain.  Lookups that find no rows return the allocation
// package's sentinel errors so callers never see sql.ErrNoRows.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (error number 1062, unique constraint violation).
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
