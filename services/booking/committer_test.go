package booking_test

import (
	"context"
	"testing"

	"stayhub/models"
	"stayhub/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommitter(repo *fakeRepo, gw *fakeGateway, c *recordingCache) *booking.DefaultBookingCommitter {
	return &booking.DefaultBookingCommitter{
		Repo:         repo,
		Availability: &booking.DefaultAvailabilityChecker{Repo: repo},
		Payments:     newAuthorizer(repo, gw),
		Cache:        c,
		Logger:       testLogger(),
	}
}

func bookingInput(checkIn, checkOut int) models.BookingInput {
	return models.BookingInput{
		FirstName:  "Ana",
		LastName:   "Reis",
		Email:      "ana@example.com",
		AdultCount: 2,
		CheckIn:    day(checkIn),
		CheckOut:   day(checkOut),
	}
}

func authorize(t *testing.T, repo *fakeRepo, gw *fakeGateway, hotelID, renterID string, nights int) string {
	t.Helper()
	breakdown, err := newAuthorizer(repo, gw).CreateAuthorization(context.Background(), hotelID, nights, renterID)
	require.NoError(t, err)
	gw.succeed(breakdown.AuthorizationID)
	return breakdown.AuthorizationID
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("commits a verified booking", func(t *testing.T) {
		repo := newFakeRepo(activeHotel("h1", 100))
		gw := newFakeGateway()
		cacheLayer := newRecordingCache()
		committer := newCommitter(repo, gw, cacheLayer)

		authID := authorize(t, repo, gw, "h1", "renter-1", 3)
		created, err := committer.CreateBooking(ctx, "h1", bookingInput(0, 3), authID, "renter-1")
		require.NoError(t, err)

		assert.Equal(t, models.BookingStatusConfirmed, created.Status)
		assert.Equal(t, int64(300), created.TotalCost)
		assert.Equal(t, int64(45), created.Commission)
		assert.Equal(t, "renter-1", created.RenterID)
		assert.Equal(t, authID, created.PaymentRef)
		assert.Len(t, repo.hotels["h1"].Bookings, 1)
	})

	t.Run("second overlapping booking conflicts", func(t *testing.T) {
		repo := newFakeRepo(activeHotel("h1", 100))
		gw := newFakeGateway()
		committer := newCommitter(repo, gw, newRecordingCache())

		first := authorize(t, repo, gw, "h1", "renter-1", 3)
		_, err := committer.CreateBooking(ctx, "h1", bookingInput(0, 3), first, "renter-1")
		require.NoError(t, err)

		second := authorize(t, repo, gw, "h1", "renter-2", 1)
		_, err = committer.CreateBooking(ctx, "h1", bookingInput(1, 2), second, "renter-2")
		require.Error(t, err)
		assert.Equal(t, booking.KindConflict, booking.KindOf(err))
		assert.Len(t, repo.hotels["h1"].Bookings, 1)
	})

	t.Run("rebooking cancelled dates succeeds", func(t *testing.T) {
		hotel := activeHotel("h1", 100)
		hotel.Bookings = []models.Booking{
			{ID: "old", RenterID: "renter-9", Status: models.BookingStatusCancelled, CheckIn: day(0), CheckOut: day(3)},
		}
		repo := newFakeRepo(hotel)
		gw := newFakeGateway()
		committer := newCommitter(repo, gw, newRecordingCache())

		authID := authorize(t, repo, gw, "h1", "renter-1", 3)
		created, err := committer.CreateBooking(ctx, "h1", bookingInput(0, 3), authID, "renter-1")
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, created.Status)
	})

	t.Run("authorization for another hotel is rejected", func(t *testing.T) {
		repo := newFakeRepo(activeHotel("h1", 100), activeHotel("h2", 200))
		gw := newFakeGateway()
		committer := newCommitter(repo, gw, newRecordingCache())

		// Authorization minted against h2, replayed against h1.
		authID := authorize(t, repo, gw, "h2", "renter-1", 3)
		_, err := committer.CreateBooking(ctx, "h1", bookingInput(0, 3), authID, "renter-1")
		require.Error(t, err)
		assert.Equal(t, booking.KindPaymentMismatch, booking.KindOf(err))
		assert.Empty(t, repo.hotels["h1"].Bookings)
	})

	t.Run("unpaid authorization is rejected", func(t *testing.T) {
		repo := newFakeRepo(activeHotel("h1", 100))
		gw := newFakeGateway()
		committer := newCommitter(repo, gw, newRecordingCache())

		breakdown, err := newAuthorizer(repo, gw).CreateAuthorization(ctx, "h1", 3, "renter-1")
		require.NoError(t, err)

		_, err = committer.CreateBooking(ctx, "h1", bookingInput(0, 3), breakdown.AuthorizationID, "renter-1")
		require.Error(t, err)
		assert.Equal(t, booking.KindPaymentNotSucceeded, booking.KindOf(err))
		assert.Empty(t, repo.hotels["h1"].Bookings)
	})

	t.Run("invalidates hotel caches after commit", func(t *testing.T) {
		repo := newFakeRepo(activeHotel("h1", 100))
		gw := newFakeGateway()
		cacheLayer := newRecordingCache()
		committer := newCommitter(repo, gw, cacheLayer)

		cacheLayer.Set(ctx, "hotel:h1:false", []byte("stale"), 0)
		cacheLayer.Set(ctx, "hotel:search:{}", []byte("stale"), 0)

		authID := authorize(t, repo, gw, "h1", "renter-1", 3)
		_, err := committer.CreateBooking(ctx, "h1", bookingInput(0, 3), authID, "renter-1")
		require.NoError(t, err)

		_, hit := cacheLayer.Get(ctx, "hotel:h1:false")
		assert.False(t, hit, "entity key must miss after commit")
		_, hit = cacheLayer.Get(ctx, "hotel:search:{}")
		assert.False(t, hit, "search keys must miss after commit")
	})

	t.Run("no overlap invariant across commits", func(t *testing.T) {
		repo := newFakeRepo(activeHotel("h1", 100))
		gw := newFakeGateway()
		committer := newCommitter(repo, gw, newRecordingCache())

		// Some of these attempts conflict; only the non-overlapping subset
		// may land.
		ranges := [][2]int{{0, 3}, {3, 5}, {1, 2}, {4, 7}, {5, 6}}
		for _, r := range ranges {
			authID := authorize(t, repo, gw, "h1", "renter-x", r[1]-r[0])
			_, _ = committer.CreateBooking(ctx, "h1", bookingInput(r[0], r[1]), authID, "renter-x")
		}

		confirmed := repo.hotels["h1"].Bookings
		for i := range confirmed {
			for j := i + 1; j < len(confirmed); j++ {
				a, b := confirmed[i], confirmed[j]
				overlap := a.CheckIn.Before(b.CheckOut) && a.CheckOut.After(b.CheckIn)
				assert.False(t, overlap, "bookings %d and %d overlap", i, j)
			}
		}
	})
}
