package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLite opens an in-process database with the full schema and the same
// uniqueness constraints as postgres. Used by the test suites and by the CLI
// when pointed at a local scratch registry.
func NewSQLite(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := gdb.AutoMigrate(allModels()...); err != nil {
		return nil, fmt.Errorf("sqlite automigrate: %w", err)
	}
	if err := ApplyConstraints(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}
