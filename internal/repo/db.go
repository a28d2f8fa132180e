package repo

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"GroceryWise/internal/model"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// ErrDuplicate: нарушение ограничения уникальности.
var ErrDuplicate = errors.New("duplicate record")

// InitDB открывает БД по DSN и применяет миграции моделей.
// postgres:// , postgresql:// и key=value DSN уходят в Postgres, всё остальное: в SQLite (modernc).
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialectorFor(dsn), &gorm.Config{
		TranslateError: true,
		// отсутствие записи: штатный исход поиска, не ошибка
		Logger: logger.New(log.New(os.Stderr, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate создаёт/обновляет таблицы users и grocery_items.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.GroceryItem{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func dialectorFor(dsn string) gorm.Dialector {
	if isPostgresDSN(dsn) {
		return postgres.Open(dsn)
	}
	return gormsqlite.Dialector{DriverName: "sqlite", DSN: sqliteDSN(dsn)}
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// sqliteDSN включает внешние ключи и busy_timeout для каждого соединения пула.
func sqliteDSN(dsn string) string {
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	pragmas := url.Values{}
	if !strings.Contains(dsn, "foreign_keys") {
		pragmas.Add("_pragma", "foreign_keys(1)")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		pragmas.Add("_pragma", "busy_timeout(5000)")
	}
	if len(pragmas) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + pragmas.Encode()
}

// isUniqueViolation распознаёт нарушение уникальности: Postgres переводится gorm'ом,
// у modernc код ошибки не экспортируется, поэтому смотрим на текст.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
