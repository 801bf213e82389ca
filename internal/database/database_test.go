package database

import (
	"testing"

	"charactervault/web/internal/models"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "whatever", nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpenRejectsEmptyDSN(t *testing.T) {
	if _, err := Open(DriverSQLite, "", nil); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	db, err := Open(DriverSQLite, "file:migrate_test?mode=memory&cache=shared", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, model := range []any{&models.User{}, &models.House{}, &models.Role{}, &models.Strength{}, &models.Character{}, &models.Contact{}} {
		if !db.Migrator().HasTable(model) {
			t.Fatalf("expected table for %T", model)
		}
	}
}
