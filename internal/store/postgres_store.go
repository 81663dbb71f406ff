package store

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
)

// PostgresStore persists blobs in a single kv table:
//
//	CREATE TABLE IF NOT EXISTS session_kv (
//	    key TEXT PRIMARY KEY,
//	    val BYTEA NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// quick ping
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var b []byte
	err := p.db.QueryRowContext(ctx, `SELECT val FROM session_kv WHERE key=$1`, key).Scan(&b)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (p *PostgresStore) Set(ctx context.Context, key string, val []byte) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO session_kv(key, val, updated_at) VALUES($1,$2,now())
		 ON CONFLICT (key) DO UPDATE SET val=EXCLUDED.val, updated_at=now()`,
		key, val)
	return err
}

func (p *PostgresStore) Close() error { return p.db.Close() }
