// Package migrations embeds the goose SQL migrations and runs them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/pressly/goose/v3"
)

// FS holds every *.sql migration in version order.
//
//go:embed *.sql
var FS embed.FS

// Open returns a database/sql handle for dsn. goose works on *sql.DB only.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// NewProvider binds the embedded migrations to db.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, db, FS)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return p, nil
}

// Up applies every pending migration to the database at dsn and returns
// how many ran.
func Up(ctx context.Context, dsn string) (int, error) {
	db, err := Open(ctx, dsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	p, err := NewProvider(db)
	if err != nil {
		return 0, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	return len(results), nil
}
