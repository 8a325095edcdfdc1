package booking_test

import (
	"context"
	"testing"
	"time"

	"stayhub/models"
	"stayhub/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefundFor(t *testing.T) {
	const total = int64(301)

	cases := []struct {
		name        string
		hours       float64
		wantAmount  int64
		wantPercent int
	}{
		{"well before checkin", 30, total, 100},
		{"just over 24h", 24.01, total, 100},
		{"exactly 24h falls into the half-refund tier", 24, 151, 50},
		{"between 12h and 24h, rounded half", 18, 151, 50},
		{"just over 12h", 12.01, 151, 50},
		{"exactly 12h gets nothing", 12, 0, 0},
		{"last minute", 2, 0, 0},
		{"after checkin", -5, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount, percent := booking.RefundFor(total, tc.hours)
			assert.Equal(t, tc.wantAmount, amount)
			assert.Equal(t, tc.wantPercent, percent)
		})
	}
}

func hotelWithBooking(checkInFromNow time.Duration) (*models.Hotel, models.Booking) {
	b := models.Booking{
		ID:         "b1",
		RenterID:   "renter-1",
		Status:     models.BookingStatusConfirmed,
		CheckIn:    time.Now().Add(checkInFromNow),
		CheckOut:   time.Now().Add(checkInFromNow + 72*time.Hour),
		TotalCost:  300,
		Commission: 45,
		PaymentRef: "pi_1",
	}
	h := activeHotel("h1", 100)
	h.Bookings = []models.Booking{b}
	return h, b
}

func newCancellationEngine(repo *fakeRepo, c *recordingCache, s *recordingScheduler) *booking.DefaultCancellationPolicyEngine {
	return &booking.DefaultCancellationPolicyEngine{
		Repo:    repo,
		Cache:   c,
		Refunds: s,
		Logger:  testLogger(),
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("full refund 30h ahead", func(t *testing.T) {
		hotel, _ := hotelWithBooking(30 * time.Hour)
		repo := newFakeRepo(hotel)
		scheduler := &recordingScheduler{}
		engine := newCancellationEngine(repo, newRecordingCache(), scheduler)

		result, err := engine.Cancel(ctx, "h1", "b1", "renter-1")
		require.NoError(t, err)

		assert.Equal(t, int64(300), result.RefundAmount)
		assert.Equal(t, 100, result.RefundPercent)

		got := repo.hotels["h1"].Bookings[0]
		assert.Equal(t, models.BookingStatusCancelled, got.Status)
		require.NotNil(t, got.CancelledAt)
		require.NotNil(t, got.RefundAmount)
		assert.Equal(t, int64(300), *got.RefundAmount)

		// Funds movement is deferred, in gateway minor units.
		require.Len(t, scheduler.refunds, 1)
		assert.Equal(t, "pi_1", scheduler.refunds[0].paymentRef)
		assert.Equal(t, int64(30000), scheduler.refunds[0].amountMinor)
	})

	t.Run("no refund close to checkin", func(t *testing.T) {
		hotel, _ := hotelWithBooking(6 * time.Hour)
		repo := newFakeRepo(hotel)
		scheduler := &recordingScheduler{}
		engine := newCancellationEngine(repo, newRecordingCache(), scheduler)

		result, err := engine.Cancel(ctx, "h1", "b1", "renter-1")
		require.NoError(t, err)

		assert.Equal(t, int64(0), result.RefundAmount)
		assert.Empty(t, scheduler.refunds)
		assert.Equal(t, models.BookingStatusCancelled, repo.hotels["h1"].Bookings[0].Status)
	})

	t.Run("second cancel fails already_cancelled", func(t *testing.T) {
		hotel, _ := hotelWithBooking(30 * time.Hour)
		repo := newFakeRepo(hotel)
		engine := newCancellationEngine(repo, newRecordingCache(), &recordingScheduler{})

		_, err := engine.Cancel(ctx, "h1", "b1", "renter-1")
		require.NoError(t, err)

		_, err = engine.Cancel(ctx, "h1", "b1", "renter-1")
		require.Error(t, err)
		assert.Equal(t, booking.KindAlreadyCancelled, booking.KindOf(err))
	})

	t.Run("other renter is forbidden", func(t *testing.T) {
		hotel, _ := hotelWithBooking(30 * time.Hour)
		repo := newFakeRepo(hotel)
		engine := newCancellationEngine(repo, newRecordingCache(), &recordingScheduler{})

		_, err := engine.Cancel(ctx, "h1", "b1", "renter-2")
		require.Error(t, err)
		assert.Equal(t, booking.KindForbidden, booking.KindOf(err))
		assert.Equal(t, models.BookingStatusConfirmed, repo.hotels["h1"].Bookings[0].Status)
	})

	t.Run("unknown booking", func(t *testing.T) {
		hotel, _ := hotelWithBooking(30 * time.Hour)
		engine := newCancellationEngine(newFakeRepo(hotel), newRecordingCache(), &recordingScheduler{})

		_, err := engine.Cancel(ctx, "h1", "missing", "renter-1")
		require.Error(t, err)
		assert.Equal(t, booking.KindNotFound, booking.KindOf(err))
	})

	t.Run("cancellation survives a failing refund scheduler", func(t *testing.T) {
		hotel, _ := hotelWithBooking(30 * time.Hour)
		repo := newFakeRepo(hotel)
		scheduler := &recordingScheduler{err: context.DeadlineExceeded}
		engine := newCancellationEngine(repo, newRecordingCache(), scheduler)

		result, err := engine.Cancel(ctx, "h1", "b1", "renter-1")
		require.NoError(t, err)
		assert.Equal(t, int64(300), result.RefundAmount)
		assert.Equal(t, models.BookingStatusCancelled, repo.hotels["h1"].Bookings[0].Status)
	})

	t.Run("invalidates hotel caches after cancel", func(t *testing.T) {
		hotel, _ := hotelWithBooking(30 * time.Hour)
		repo := newFakeRepo(hotel)
		cacheLayer := newRecordingCache()
		engine := newCancellationEngine(repo, cacheLayer, &recordingScheduler{})

		cacheLayer.Set(ctx, "hotel:h1:true", []byte("stale"), 0)

		_, err := engine.Cancel(ctx, "h1", "b1", "renter-1")
		require.NoError(t, err)

		_, hit := cacheLayer.Get(ctx, "hotel:h1:true")
		assert.False(t, hit, "entity key must miss after cancellation")
	})
}
