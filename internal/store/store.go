package store

import (
	"context"
	"errors"

	"slotbook/server/internal/model"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

type BookSlotRequest struct {
	SlotTime string `json:"slotTime"`
	UserID   int64  `json:"userId"`
}

type Store interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)

	// EnsureSlots inserts an unbooked record for each identifier that
	// does not already exist. Existing records, booked or not, are left
	// untouched.
	EnsureSlots(ctx context.Context, times []string) error
	// ListSlots returns the slot records for a date, ordered by hour
	// ascending.
	ListSlots(ctx context.Context, date string) ([]model.Slot, error)

	// BookSlot atomically transitions a free slot to booked. It returns
	// ErrNotFound if no record exists for the slot time and ErrConflict
	// if the slot is already booked; of N concurrent calls for the same
	// free slot exactly one succeeds.
	BookSlot(ctx context.Context, req BookSlotRequest) (*model.Slot, error)
	ListBookingsForUser(ctx context.Context, userID int64) ([]model.Slot, error)
}
