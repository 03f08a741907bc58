package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// PingTimeout bounds the initial connection check against PostgreSQL.
const PingTimeout = 5 * time.Second

// OpenPostgres connects to PostgreSQL through a pgx pool and applies the
// schema migrations. The pool is closed with the Store.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot parse postgres dsn: %w", err)
	}
	cfg.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: cannot reach postgres: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	s, err := newStore(ctx, db, dialectPostgres)
	if err != nil {
		db.Close()
		pool.Close()
		return nil, err
	}
	s.closers = append(s.closers, pool.Close)
	return s, nil
}
