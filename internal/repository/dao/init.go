package dao

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

// tables in dependency order, children first.
var tables = []string{
	"reveals",
	"predictions",
	"photo_likes",
	"gallery_photos",
	"guest_book_entries",
	"gifts",
	"votes",
	"users",
}

func InitTables(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("db.DB -> %w", err)
	}

	goose.SetBaseFS(migrations)
	if err = goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose.SetDialect -> %w", err)
	}

	if err = goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("goose.UpContext -> %w", err)
	}

	return nil
}

// TruncateTables empties every table and resets identities. Used to isolate tests.
func TruncateTables(ctx context.Context, db *gorm.DB) error {
	stmt := "TRUNCATE TABLE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"

	return db.WithContext(ctx).Exec(stmt).Error
}
