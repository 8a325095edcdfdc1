package booking

import (
	"context"
	"errors"
	"time"

	"stayhub/models"
)

// AvailabilityChecker decides whether a date range can still be sold.
type AvailabilityChecker interface {
	// IsAvailable reports whether the hotel has no confirmed booking
	// overlapping [checkIn, checkOut). It has no side effects.
	IsAvailable(ctx context.Context, hotelID string, checkIn, checkOut time.Time) (bool, error)
}

// PaymentAuthorizer creates and re-verifies external payment authorizations.
type PaymentAuthorizer interface {
	// CreateAuthorization reserves funds for nights at the hotel's current
	// rate and records the commission split in the authorization metadata.
	CreateAuthorization(ctx context.Context, hotelID string, nights int, renterID string) (*models.PaymentBreakdown, error)
	// VerifyAuthorization re-fetches the authorization and cross-checks it
	// against the requesting hotel and renter.
	VerifyAuthorization(ctx context.Context, authID, hotelID, renterID string) (*models.VerifiedAuthorization, error)
}

// BookingCommitter turns a verified authorization into a durable booking.
type BookingCommitter interface {
	CreateBooking(ctx context.Context, hotelID string, input models.BookingInput, authID, renterID string) (*models.Booking, error)
}

// CancellationPolicyEngine cancels bookings and freezes the refund amount.
type CancellationPolicyEngine interface {
	Cancel(ctx context.Context, hotelID, bookingID, renterID string) (*models.CancellationResult, error)
}

// ErrIntentNotFound is returned by a PaymentGateway when the authorization
// id does not resolve at the provider.
var ErrIntentNotFound = errors.New("payment intent not found")

// GatewayIntent is the gateway-neutral view of a payment authorization.
type GatewayIntent struct {
	ID           string
	ClientSecret string
	Status       string
	Metadata     map[string]string
}

// PaymentGateway is the external payment provider contract. Amounts are
// integers in the currency's minor unit.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*GatewayIntent, error)
	GetIntent(ctx context.Context, id string) (*GatewayIntent, error)
}

// RefundScheduler defers the actual funds movement for a cancellation.
// Scheduling failures never roll back the committed status transition.
type RefundScheduler interface {
	ScheduleRefund(ctx context.Context, paymentRef string, amountMinor int64, hotelID, bookingID string) error
}
