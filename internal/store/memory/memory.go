package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"slotbook/server/internal/model"
	"slotbook/server/internal/store"
)

// Store is the in-memory ledger. A single mutex serializes every
// operation, which makes the check-and-set inside BookSlot atomic.
type Store struct {
	mu sync.Mutex

	users      map[int64]model.User
	slots      map[string]model.Slot
	nextUserID int64
}

func NewStore() *Store {
	return &Store{
		users: make(map[int64]model.User),
		slots: make(map[string]model.Slot),
	}
}

func (s *Store) EnsureSlots(_ context.Context, times []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for _, t := range times {
		t = strings.TrimSpace(t)
		if t == "" {
			return errWithCode("slot_time_required")
		}
		if _, ok := s.slots[t]; ok {
			continue
		}
		s.slots[t] = model.Slot{Time: t, CreatedAt: now}
	}
	return nil
}

func (s *Store) ListSlots(_ context.Context, date string) ([]model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Slot, 0, len(s.slots))
	for _, sl := range s.slots {
		if !strings.HasPrefix(sl.Time, date+"T") {
			continue
		}
		out = append(out, sl)
	}

	// Zero-padded identifiers sort chronologically.
	sort.Slice(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *Store) BookSlot(_ context.Context, req store.BookSlotRequest) (*model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slotTime := strings.TrimSpace(req.SlotTime)
	if slotTime == "" {
		return nil, errWithCode("slot_time_required")
	}

	sl, ok := s.slots[slotTime]
	if !ok {
		return nil, store.ErrNotFound
	}
	if sl.Booked {
		return nil, store.ErrConflict
	}
	if _, ok := s.users[req.UserID]; !ok {
		return nil, errWithCode("user_not_found")
	}

	now := time.Now().UTC()
	userID := req.UserID
	sl.Booked = true
	sl.OwnerUserID = &userID
	sl.BookedAt = &now
	s.slots[slotTime] = sl
	return &sl, nil
}

func (s *Store) ListBookingsForUser(_ context.Context, userID int64) ([]model.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Slot, 0)
	for _, sl := range s.slots {
		if sl.OwnerUserID == nil || *sl.OwnerUserID != userID {
			continue
		}
		out = append(out, sl)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out, nil
}

type errWithCode string

func (e errWithCode) Error() string { return string(e) }
