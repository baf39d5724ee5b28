package database

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MemoryDSN is a private in-memory SQLite database with foreign keys enforced.
const MemoryDSN = "file::memory:?_foreign_keys=on"

// NewMemoryDB opens and migrates an in-memory SQLite database. The pool is limited
// to one connection because every connection would otherwise see its own empty
// database, so callers must route all work inside a transaction through Conn.
func NewMemoryDB() (*gorm.DB, error) {
	db, err := Open(sqlite.Open(MemoryDSN))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err = Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
