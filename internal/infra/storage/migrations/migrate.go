package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

var (
	// ErrLoadSource ошибка загрузки встроенных файлов миграций
	ErrLoadSource = errors.New("migrations: failed to load source")

	// ErrApply ошибка применения миграций
	ErrApply = errors.New("migrations: failed to apply")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Up применяет все неприменённые миграции
func Up(db *sql.DB, logger Logger) error {
	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadSource, err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("%w: create driver: %v", ErrApply, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("%w: init: %v", ErrApply, err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("Database migrations are dirty at version %d", version)
	} else {
		logger.Info("Database migrations applied, version %d", version)
	}

	return nil
}
