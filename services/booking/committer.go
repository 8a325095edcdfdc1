package booking

import (
	"context"
	"errors"
	"time"

	"stayhub/cache"
	hotelRepo "stayhub/database/repository/hotel"
	"stayhub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingCommitter orchestrates the reservation transaction:
// verify payment, re-check availability, persist, invalidate caches.
type DefaultBookingCommitter struct {
	Repo         hotelRepo.HotelRepository
	Availability AvailabilityChecker
	Payments     PaymentAuthorizer
	Cache        cache.Cache
	Logger       *zap.Logger
}

// CreateBooking commits a reservation inside one storage unit of work.
// The payment authorization is the authoritative gate: no booking exists
// without a succeeded, matching authorization. Availability is re-checked
// inside the same unit of work to narrow the window since the caller's
// earlier probe; two commits racing for overlapping dates can still both
// pass the re-check, the storage layer offers no append-if-no-overlap.
func (c *DefaultBookingCommitter) CreateBooking(ctx context.Context, hotelID string, input models.BookingInput, authID, renterID string) (*models.Booking, error) {
	var created models.Booking

	err := c.Repo.WithTransaction(ctx, func(txCtx context.Context) error {
		auth, err := c.Payments.VerifyAuthorization(txCtx, authID, hotelID, renterID)
		if err != nil {
			return err
		}

		available, err := c.Availability.IsAvailable(txCtx, hotelID, input.CheckIn, input.CheckOut)
		if err != nil {
			return err
		}
		if !available {
			return NewError(KindConflict, "hotel no longer available for selected dates")
		}

		// Cost and commission come from the verified authorization, so the
		// recorded amounts match what was charged even if the nightly rate
		// changed mid-flow.
		created = models.Booking{
			ID:         uuid.New().String(),
			RenterID:   renterID,
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			Email:      input.Email,
			AdultCount: input.AdultCount,
			ChildCount: input.ChildCount,
			CheckIn:    input.CheckIn,
			CheckOut:   input.CheckOut,
			TotalCost:  auth.TotalCost,
			Commission: auth.Commission,
			Status:     models.BookingStatusConfirmed,
			PaymentRef: auth.AuthorizationID,
			CreatedAt:  time.Now(),
		}

		if err := c.Repo.AppendBooking(txCtx, hotelID, created); err != nil {
			if errors.Is(err, hotelRepo.ErrNotFound) {
				return NewError(KindNotFound, "hotel %s not found", hotelID)
			}
			return NewError(KindUnavailable, "failed to persist booking: %v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Best-effort: the booking is durable, a failed invalidation only risks
	// staleness and the cache layer absorbs it.
	cache.InvalidateHotel(ctx, c.Cache, hotelID)

	c.Logger.Info("booking committed",
		zap.String("hotelId", hotelID),
		zap.String("bookingId", created.ID),
		zap.Int64("totalCost", created.TotalCost),
		zap.Int64("commission", created.Commission))

	return &created, nil
}
