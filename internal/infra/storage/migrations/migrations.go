// Package migrations применяет схему БД из встроенных SQL-файлов
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

const dir = "sql"

//go:embed sql/*.sql
var files embed.FS

var (
	// ErrMigrate возвращается при ошибке применения миграций
	ErrMigrate = errors.New("migrations: failed to apply migrations")
)

type Logger interface {
	Info(format string, v ...interface{})
}

// Up применяет все непримененные миграции
func Up(ctx context.Context, db *sql.DB, log Logger) error {
	goose.SetBaseFS(files)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%w: Up - set dialect: %v", ErrMigrate, err)
	}

	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("%w: Up - apply: %v", ErrMigrate, err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("%w: Up - get version: %v", ErrMigrate, err)
	}

	log.Info("Database migrations applied, version=%d", version)
	return nil
}
