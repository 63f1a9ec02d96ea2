package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Muhsin-Gun/mobile-app/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	// Ping to fail fast.
	ctxPing, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.ensureSchema(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, err := s.pool.Exec(ctx, `
		create table if not exists public.users (
			id            uuid primary key default gen_random_uuid(),
			email         text not null unique,
			password_hash text,
			name          text not null default '',
			avatar_url    text not null default '',
			google_id     text unique,
			premium       boolean not null default false,
			last_login_at timestamptz not null default now(),
			created_at    timestamptz not null default now(),
			updated_at    timestamptz not null default now()
		);

		create table if not exists public.trades (
			id         uuid primary key default gen_random_uuid(),
			user_id    uuid not null references public.users (id),
			symbol     text not null,
			side       text not null,
			amount     double precision not null,
			price      double precision not null,
			reference  text not null default '',
			created_at timestamptz not null default now()
		);
		create index if not exists trades_user_created_idx
			on public.trades (user_id, created_at desc);

		create table if not exists public.conversations (
			id         uuid primary key default gen_random_uuid(),
			user_id    uuid references public.users (id),
			kind       text not null,
			prompt     text not null,
			reply      text not null,
			created_at timestamptz not null default now()
		);
		create index if not exists conversations_created_idx
			on public.conversations (created_at desc);
	`)
	return err
}

func mapPgErr(err error) error {
	// Unique violation, foreign key violation.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return store.ErrConflict
		case "23503":
			return store.ErrNotFound
		default:
			return fmt.Errorf("db_error %s: %s", pgErr.Code, pgErr.Message)
		}
	}
	return err
}
