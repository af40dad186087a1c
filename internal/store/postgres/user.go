package postgres

import (
	"context"
	"errors"
	"strings"

	"slotbook/server/internal/model"
	"slotbook/server/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	if strings.TrimSpace(u.Username) == "" {
		return model.User{}, errors.New("username_required")
	}

	var out model.User
	err := s.pool.QueryRow(ctx, `
		insert into public.users (username, password)
		values ($1, $2)
		returning id, username, password, created_at, updated_at
	`, u.Username, u.Password).Scan(
		&out.ID,
		&out.Username,
		&out.Password,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.User{}, store.ErrConflict
		}
		return model.User{}, err
	}
	return out, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx, `
		select id, username, password, created_at, updated_at
		from public.users
		where lower(username) = lower($1)
	`, username).Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx, `
		select id, username, password, created_at, updated_at
		from public.users
		where id = $1
	`, id).Scan(
		&u.ID,
		&u.Username,
		&u.Password,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
