//go:build !no_sqlite

package db

import (
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/grupovilla/gestprocesos/pkg/configs"
)

// The pure-Go driver keeps the binary cgo-free, which matters for the
// sqlite-backed test suite and local development.
func createSQLiteDialector(dsn string) gorm.Dialector {
	return sqlite.Open(dsn)
}

func init() {
	RegisterDialectorFactory(configs.SQLite, createSQLiteDialector)
}
