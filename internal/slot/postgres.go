package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres keeps the slot as one row of the kv_slots table.
// See database.MigrateOrCreateSchema for the table definition.
type Postgres struct {
	name string
	db   *sql.DB
}

func NewPostgres(db *sql.DB, name string) *Postgres {
	return &Postgres{name: name, db: db}
}

func (p *Postgres) Name() string { return p.name }

func (p *Postgres) Get(ctx context.Context) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `SELECT value FROM kv_slots WHERE key = $1`, p.name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select slot %s: %w", p.name, err)
	}
	return value, nil
}

func (p *Postgres) Put(ctx context.Context, value []byte) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO kv_slots (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		p.name, string(value))
	if err != nil {
		return fmt.Errorf("upsert slot %s: %w", p.name, err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
