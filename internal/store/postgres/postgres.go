package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"slotbook/server/internal/model"
	"slotbook/server/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

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

	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate applies the embedded schema. Every statement is idempotent,
// so running it on each startup is safe.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) EnsureSlots(ctx context.Context, times []string) error {
	if len(times) == 0 {
		return nil
	}
	for _, t := range times {
		if strings.TrimSpace(t) == "" {
			return errors.New("slot_time_required")
		}
	}

	// Insert-if-absent per identifier; existing rows, booked or not,
	// are left untouched.
	_, err := s.pool.Exec(ctx, `
		insert into public.slots (slot_time)
		select unnest($1::text[])
		on conflict (slot_time) do nothing
	`, times)
	if err != nil {
		return mapPgErr(err)
	}
	return nil
}

func (s *Store) ListSlots(ctx context.Context, date string) ([]model.Slot, error) {
	rows, err := s.pool.Query(ctx, `
		select slot_time, booked, user_id, created_at, booked_at
		from public.slots
		where slot_time like $1 || 'T%'
		order by slot_time asc
	`, date)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	var out []model.Slot
	for rows.Next() {
		var sl model.Slot
		if err := rows.Scan(&sl.Time, &sl.Booked, &sl.OwnerUserID, &sl.CreatedAt, &sl.BookedAt); err != nil {
			return nil, mapPgErr(err)
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

func (s *Store) BookSlot(ctx context.Context, req store.BookSlotRequest) (*model.Slot, error) {
	slotTime := strings.TrimSpace(req.SlotTime)
	if slotTime == "" {
		return nil, errors.New("slot_time_required")
	}

	// Single conditional update: the row count decides the race, so two
	// callers that both saw the slot free cannot both commit.
	var out model.Slot
	err := s.pool.QueryRow(ctx, `
		update public.slots
		set booked = true,
		    user_id = $2,
		    booked_at = now()
		where slot_time = $1 and booked = false
		returning slot_time, booked, user_id, created_at, booked_at
	`, slotTime, req.UserID).Scan(&out.Time, &out.Booked, &out.OwnerUserID, &out.CreatedAt, &out.BookedAt)
	if err == nil {
		return &out, nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		// Nothing matched: either the slot was never generated or it is
		// already booked. One more read tells the cases apart.
		var booked bool
		err2 := s.pool.QueryRow(ctx, `
			select booked from public.slots where slot_time = $1
		`, slotTime).Scan(&booked)
		if errors.Is(err2, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		if err2 != nil {
			return nil, mapPgErr(err2)
		}
		return nil, store.ErrConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		// slots.user_id foreign key: the referenced account does not exist.
		return nil, errors.New("user_not_found")
	}
	return nil, mapPgErr(err)
}

func (s *Store) ListBookingsForUser(ctx context.Context, userID int64) ([]model.Slot, error) {
	rows, err := s.pool.Query(ctx, `
		select slot_time, booked, user_id, created_at, booked_at
		from public.slots
		where user_id = $1
		order by slot_time asc
	`, userID)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	out := make([]model.Slot, 0)
	for rows.Next() {
		var sl model.Slot
		if err := rows.Scan(&sl.Time, &sl.Booked, &sl.OwnerUserID, &sl.CreatedAt, &sl.BookedAt); err != nil {
			return nil, mapPgErr(err)
		}
		out = append(out, sl)
	}
	return out, rows.Err()
}

func mapPgErr(err error) error {
	// Unique violation, etc.
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
