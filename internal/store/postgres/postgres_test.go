package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"slotbook/server/internal/model"
	"slotbook/server/internal/schedule"
	"slotbook/server/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a PostgreSQL store against DATABASE_URL with a
// fresh schema. Tests are skipped when DATABASE_URL is not set.
func setupTestDB(t *testing.T) (*Store, func()) {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set, skipping PostgreSQL tests")
	}

	s, err := NewStore(databaseURL)
	require.NoError(t, err)

	_, err = s.pool.Exec(context.Background(), `
		drop table if exists public.slots;
		drop table if exists public.users;
	`)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))

	return s, s.Close
}

func createTestUser(t *testing.T, s *Store, username string) model.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), model.User{Username: username, Password: "pw"})
	require.NoError(t, err)
	return u
}

func ensureDate(t *testing.T, s *Store, date string) {
	t.Helper()
	times, err := schedule.SlotTimes(date)
	require.NoError(t, err)
	require.NoError(t, s.EnsureSlots(context.Background(), times))
}

func TestCreateUser_Postgres(t *testing.T) {
	s, closer := setupTestDB(t)
	defer closer()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, model.User{Username: "alice", Password: "secret"})
	assert.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "alice", u.Username)

	_, err = s.CreateUser(ctx, model.User{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, store.ErrConflict)

	byName, err := s.GetUserByUsername(ctx, "ALICE")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
	assert.Equal(t, "secret", byName.Password)

	byID, err := s.GetUserByID(ctx, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = s.GetUserByID(ctx, u.ID+1000)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEnsureSlots_Postgres(t *testing.T) {
	s, closer := setupTestDB(t)
	defer closer()
	ctx := context.Background()

	ensureDate(t, s, "2024-06-10")
	ensureDate(t, s, "2024-06-10") // idempotent

	slots, err := s.ListSlots(ctx, "2024-06-10")
	assert.NoError(t, err)
	require.Len(t, slots, schedule.SlotsPerDay)
	assert.Equal(t, "2024-06-10T09:00", slots[0].Time)
	assert.Equal(t, "2024-06-10T17:00", slots[len(slots)-1].Time)
	for _, sl := range slots {
		assert.False(t, sl.Booked)
		assert.Nil(t, sl.OwnerUserID)
	}
}

func TestBookSlot_Postgres(t *testing.T) {
	s, closer := setupTestDB(t)
	defer closer()
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	ensureDate(t, s, "2024-06-10")

	sl, err := s.BookSlot(ctx, store.BookSlotRequest{SlotTime: "2024-06-10T09:00", UserID: alice.ID})
	assert.NoError(t, err)
	assert.True(t, sl.Booked)
	require.NotNil(t, sl.OwnerUserID)
	assert.Equal(t, alice.ID, *sl.OwnerUserID)
	assert.NotNil(t, sl.BookedAt)

	_, err = s.BookSlot(ctx, store.BookSlotRequest{SlotTime: "2024-06-10T09:00", UserID: bob.ID})
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = s.BookSlot(ctx, store.BookSlotRequest{SlotTime: "2024-06-10T23:00", UserID: alice.ID})
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Foreign key: unknown user is rejected, slot stays free.
	_, err = s.BookSlot(ctx, store.BookSlotRequest{SlotTime: "2024-06-10T10:00", UserID: bob.ID + 1000})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "user_not_found")

	slots, err := s.ListSlots(ctx, "2024-06-10")
	require.NoError(t, err)
	assert.True(t, slots[0].Booked)
	assert.False(t, slots[1].Booked)

	// Re-materialization never resets a booked slot.
	ensureDate(t, s, "2024-06-10")
	slots, err = s.ListSlots(ctx, "2024-06-10")
	require.NoError(t, err)
	assert.True(t, slots[0].Booked)
	assert.Equal(t, alice.ID, *slots[0].OwnerUserID)
}

func TestBookSlot_ExactlyOnce_Postgres(t *testing.T) {
	s, closer := setupTestDB(t)
	defer closer()
	ctx := context.Background()

	const workers = 16
	userIDs := make([]int64, workers)
	for i := range userIDs {
		userIDs[i] = createTestUser(t, s, fmt.Sprintf("user-%d", i)).ID
	}
	ensureDate(t, s, "2024-06-10")

	var wg sync.WaitGroup
	errs := make([]error, workers)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = s.BookSlot(ctx, store.BookSlotRequest{
				SlotTime: "2024-06-10T12:00",
				UserID:   userIDs[i],
			})
		}(i)
	}
	close(start)
	wg.Wait()

	successes := 0
	conflicts := 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case err == store.ErrConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
}

func TestListBookingsForUser_Postgres(t *testing.T) {
	s, closer := setupTestDB(t)
	defer closer()
	ctx := context.Background()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")
	ensureDate(t, s, "2024-06-10")

	for _, slotTime := range []string{"2024-06-10T11:00", "2024-06-10T09:00"} {
		_, err := s.BookSlot(ctx, store.BookSlotRequest{SlotTime: slotTime, UserID: alice.ID})
		require.NoError(t, err)
	}
	_, err := s.BookSlot(ctx, store.BookSlotRequest{SlotTime: "2024-06-10T10:00", UserID: bob.ID})
	require.NoError(t, err)

	bookings, err := s.ListBookingsForUser(ctx, alice.ID)
	assert.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "2024-06-10T09:00", bookings[0].Time)
	assert.Equal(t, "2024-06-10T11:00", bookings[1].Time)

	none, err := s.ListBookingsForUser(ctx, alice.ID+1000)
	assert.NoError(t, err)
	assert.Len(t, none, 0)
}
