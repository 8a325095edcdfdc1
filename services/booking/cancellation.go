package booking

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"stayhub/cache"
	hotelRepo "stayhub/database/repository/hotel"
	"stayhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// RefundFor maps hours-until-checkin to the refund tier:
// more than 24h ahead refunds everything, 12-24h refunds half, later nothing.
func RefundFor(totalCost int64, hoursUntilCheckin float64) (amount int64, percent int) {
	switch {
	case hoursUntilCheckin > 24:
		return totalCost, 100
	case hoursUntilCheckin > 12:
		return int64(math.Round(float64(totalCost) * 0.5)), 50
	default:
		return 0, 0
	}
}

// DefaultCancellationPolicyEngine cancels a booking in place and freezes its
// refund amount. Funds movement is deferred to the refund scheduler and never
// blocks or rolls back the status transition.
type DefaultCancellationPolicyEngine struct {
	Repo    hotelRepo.HotelRepository
	Cache   cache.Cache
	Refunds RefundScheduler
	Logger  *zap.Logger
}

func (s *DefaultCancellationPolicyEngine) Cancel(ctx context.Context, hotelID, bookingID, renterID string) (*models.CancellationResult, error) {
	var (
		result     models.CancellationResult
		paymentRef string
	)

	err := s.Repo.WithTransaction(ctx, func(txCtx context.Context) error {
		hotel, err := s.Repo.GetByID(txCtx, hotelID)
		if err != nil {
			if errors.Is(err, hotelRepo.ErrNotFound) {
				return NewError(KindNotFound, "hotel %s not found", hotelID)
			}
			return NewError(KindUnavailable, "failed to load hotel: %v", err)
		}

		var target *models.Booking
		for i := range hotel.Bookings {
			if hotel.Bookings[i].ID == bookingID {
				target = &hotel.Bookings[i]
				break
			}
		}
		if target == nil {
			return NewError(KindNotFound, "booking %s not found", bookingID)
		}
		if target.RenterID != renterID {
			return NewError(KindForbidden, "booking %s does not belong to this renter", bookingID)
		}
		if target.Status == models.BookingStatusCancelled {
			return NewError(KindAlreadyCancelled, "booking %s is already cancelled", bookingID)
		}

		hoursUntilCheckin := time.Until(target.CheckIn).Hours()
		refundAmount, refundPercent := RefundFor(target.TotalCost, hoursUntilCheckin)

		now := time.Now()
		fields := bson.M{
			"status":       models.BookingStatusCancelled,
			"cancelledAt":  now,
			"refundAmount": refundAmount,
		}
		if err := s.Repo.UpdateBookingFields(txCtx, hotelID, bookingID, fields); err != nil {
			return NewError(KindUnavailable, "failed to cancel booking: %v", err)
		}

		paymentRef = target.PaymentRef
		result = models.CancellationResult{
			RefundAmount:  refundAmount,
			RefundPercent: refundPercent,
			Message:       refundMessage(refundAmount, refundPercent),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateHotel(ctx, s.Cache, hotelID)

	// Deferred follow-up: the cancellation stands even if scheduling fails.
	if result.RefundAmount > 0 && s.Refunds != nil && paymentRef != "" {
		if err := s.Refunds.ScheduleRefund(ctx, paymentRef, result.RefundAmount*100, hotelID, bookingID); err != nil {
			s.Logger.Error("failed to schedule refund",
				zap.String("bookingId", bookingID), zap.Error(err))
		}
	}

	s.Logger.Info("booking cancelled",
		zap.String("hotelId", hotelID),
		zap.String("bookingId", bookingID),
		zap.Int64("refundAmount", result.RefundAmount))

	return &result, nil
}

func refundMessage(amount int64, percent int) string {
	if amount > 0 {
		return fmt.Sprintf("Booking cancelled. Refund of %d (%d%%) will be processed.", amount, percent)
	}
	return "Booking cancelled. No refund available due to cancellation policy."
}
