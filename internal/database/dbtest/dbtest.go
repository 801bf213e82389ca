// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"charactervault/web/internal/database"

	"gorm.io/gorm"
)

var seq atomic.Int64

// Open returns a migrated in-memory SQLite database private to the test.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, seq.Add(1))

	db, err := database.Open(database.DriverSQLite, dsn, nil)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Errors returned by the failure hooks.
var (
	ErrInsertRefused = errors.New("insert refused by test hook")
	ErrCountRefused  = errors.New("count refused by test hook")
)

// FailInserts makes every insert into table fail on db for the rest of the
// test. Other tables are unaffected.
func FailInserts(t testing.TB, db *gorm.DB, table string) {
	t.Helper()

	name := "dbtest:fail_" + table
	err := db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(ErrInsertRefused)
		}
	})
	if err != nil {
		t.Fatalf("register insert hook: %v", err)
	}
	t.Cleanup(func() {
		db.Callback().Create().Remove(name)
	})
}

// FailCounts makes every Count over table fail on db for the rest of the
// test. Row lookups on the same table still work.
func FailCounts(t testing.TB, db *gorm.DB, table string) {
	t.Helper()

	name := "dbtest:fail_count_" + table
	err := db.Callback().Query().Before("gorm:query").Register(name, func(tx *gorm.DB) {
		if _, isCount := tx.Statement.Dest.(*int64); isCount && tx.Statement.Table == table {
			tx.AddError(ErrCountRefused)
		}
	})
	if err != nil {
		t.Fatalf("register count hook: %v", err)
	}
	t.Cleanup(func() {
		db.Callback().Query().Remove(name)
	})
}
