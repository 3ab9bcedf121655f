package storage

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"

	// import the postgres driver to register it with the database/sql package.
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

type Storage struct {
	Connection *sqlx.DB
}

func NewPostgresStorage(ctx context.Context, dsn string) (*Storage, error) {
	conn, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

// Init - creates the players and game_history tables if they do not exist.
func (that *Storage) Init(ctx context.Context) error {
	if _, err := that.Connection.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("can't create tables: %w", err)
	}

	return nil
}

func (that *Storage) Close() error {
	return that.Connection.Close()
}
