package database

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kakasy/shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exactly one of many concurrent decisions on the same waiting booking may
// succeed; the rest see the WAITING precondition fail.
func TestConcurrentBookingDecisions(t *testing.T) {
	logger := zerolog.Nop()
	dbPath := filepath.Join(t.TempDir(), "concurrency.db")
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	owner := seedUser(t, db, "Owner", "owner@example.com")
	booker := seedUser(t, db, "Booker", "booker@example.com")
	item := seedItem(t, db, owner.ID, "Drill", true)

	now := time.Now()
	booking := seedBooking(t, db, item.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), models.StatusWaiting)

	const attempts = 10
	var wins int64
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		status := models.StatusApproved
		if i%2 == 1 {
			status = models.StatusRejected
		}
		go func(status models.BookingStatus) {
			defer wg.Done()
			ok, err := db.UpdateBookingStatusIfWaiting(ctx, booking.ID, status)
			assert.NoError(t, err)
			if ok {
				atomic.AddInt64(&wins, 1)
			}
		}(status)
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins)

	final, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, final)
	assert.NotEqual(t, models.StatusWaiting, final.Status)
}
