package repo

import (
	"strings"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// newTestDB инициализирует именованную in-memory SQLite (modernc.org/sqlite), отдельную на каждый тест
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: sqliteDSN("file:" + name + "?mode=memory&cache=shared")}
	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true, Logger: logger.Discard})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSqliteDSN(t *testing.T) {
	got := sqliteDSN("grocerywise.db")
	if !strings.HasPrefix(got, "file:grocerywise.db?") {
		t.Fatalf("plain path must become file URI, got %q", got)
	}
	if !strings.Contains(got, "foreign_keys%281%29") || !strings.Contains(got, "busy_timeout%285000%29") {
		t.Fatalf("pragmas expected, got %q", got)
	}

	got = sqliteDSN("file::memory:?cache=shared")
	if !strings.HasPrefix(got, "file::memory:?cache=shared&_pragma=") {
		t.Fatalf("existing query must be extended, got %q", got)
	}
}

func TestIsPostgresDSN(t *testing.T) {
	for dsn, want := range map[string]bool{
		"postgres://u:p@localhost:5432/db":         true,
		"postgresql://u:p@localhost/db":            true,
		"host=localhost user=u dbname=db":          true,
		"grocerywise.db":                           false,
		"file::memory:?cache=shared":               false,
		"file:/var/lib/grocerywise/data.db?mode=rw": false,
	} {
		if got := isPostgresDSN(dsn); got != want {
			t.Fatalf("isPostgresDSN(%q) = %v, want %v", dsn, got, want)
		}
	}
}

func TestInitDB_SQLiteInMemory(t *testing.T) {
	db, err := InitDB("file:initdb_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()
	if !db.Migrator().HasTable("users") || !db.Migrator().HasTable("grocery_items") {
		t.Fatalf("tables must be migrated")
	}
}
