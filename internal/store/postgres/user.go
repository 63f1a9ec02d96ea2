package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/Muhsin-Gun/mobile-app/internal/model"
	"github.com/Muhsin-Gun/mobile-app/internal/store"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id::text, email, coalesce(password_hash, ''), name, avatar_url,
	coalesce(google_id, ''), premium, last_login_at, created_at, updated_at`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.AvatarURL,
		&u.GoogleID,
		&u.Premium,
		&u.LastLoginAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	var out model.User
	err := scanUser(s.pool.QueryRow(ctx, `
		insert into public.users (email, password_hash, name)
		values (lower($1), nullif($2, ''), $3)
		returning `+userColumns+`
	`, strings.TrimSpace(u.Email), u.PasswordHash, u.Name), &out)
	if err != nil {
		return model.User{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := scanUser(s.pool.QueryRow(ctx, `
		select `+userColumns+`
		from public.users
		where email = lower($1)
	`, strings.TrimSpace(email)), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, mapPgErr(err)
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := scanUser(s.pool.QueryRow(ctx, `
		select `+userColumns+`
		from public.users
		where id = $1::uuid
	`, id), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, mapPgErr(err)
	}
	return &u, nil
}

func (s *Store) UpsertGoogleUser(ctx context.Context, p store.GoogleProfile) (model.User, error) {
	// Keyed by google_id first; on email conflict the identity is
	// attached to the existing password account instead.
	var out model.User
	err := scanUser(s.pool.QueryRow(ctx, `
		insert into public.users (email, name, avatar_url, google_id)
		values (lower($1), $2, $3, $4)
		on conflict (google_id) do update
		set name = excluded.name,
		    avatar_url = excluded.avatar_url,
		    last_login_at = now(),
		    updated_at = now()
		returning `+userColumns+`
	`, strings.TrimSpace(p.Email), p.Name, p.AvatarURL, p.GoogleID), &out)
	if err == nil {
		return out, nil
	}

	if !errors.Is(mapPgErr(err), store.ErrConflict) {
		return model.User{}, mapPgErr(err)
	}

	err = scanUser(s.pool.QueryRow(ctx, `
		update public.users
		set google_id = $2,
		    name = $3,
		    avatar_url = $4,
		    last_login_at = now(),
		    updated_at = now()
		where email = lower($1)
		returning `+userColumns+`
	`, strings.TrimSpace(p.Email), p.GoogleID, p.Name, p.AvatarURL), &out)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, store.ErrNotFound
		}
		return model.User{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) TouchLastLogin(ctx context.Context, userID string) error {
	tag, err := s.pool.Exec(ctx, `
		update public.users
		set last_login_at = now(), updated_at = now()
		where id = $1::uuid
	`, userID)
	if err != nil {
		return mapPgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
