package booking

import (
	"context"
	"errors"
	"time"

	hotelRepo "stayhub/database/repository/hotel"
	"stayhub/models"
)

// DefaultAvailabilityChecker checks candidate ranges against the bookings
// embedded in the hotel document.
type DefaultAvailabilityChecker struct {
	Repo hotelRepo.HotelRepository
}

func (c *DefaultAvailabilityChecker) IsAvailable(ctx context.Context, hotelID string, checkIn, checkOut time.Time) (bool, error) {
	if hotelID == "" {
		return false, NewError(KindInvalidArgument, "hotel id is required")
	}
	if !checkIn.Before(checkOut) {
		return false, NewError(KindInvalidArgument, "check-in must be before check-out")
	}

	hotel, err := c.Repo.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotelRepo.ErrNotFound) {
			return false, NewError(KindNotFound, "hotel %s not found", hotelID)
		}
		return false, NewError(KindUnavailable, "failed to load hotel: %v", err)
	}

	return !HasConflict(hotel.Bookings, checkIn, checkOut), nil
}

// HasConflict reports whether any non-cancelled booking overlaps the
// candidate range. Ranges are half-open: touching boundaries do not
// conflict, so back-to-back stays are allowed.
func HasConflict(bookings []models.Booking, checkIn, checkOut time.Time) bool {
	for _, b := range bookings {
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		if checkIn.Before(b.CheckOut) && checkOut.After(b.CheckIn) {
			return true
		}
	}
	return false
}
