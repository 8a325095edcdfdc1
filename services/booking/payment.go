package booking

import (
	"context"
	"errors"
	"math"
	"strconv"

	hotelRepo "stayhub/database/repository/hotel"
	"stayhub/models"

	"go.uber.org/zap"
)

// Metadata keys recorded on every authorization. Verification cross-checks
// these instead of re-deriving amounts from possibly-changed hotel state.
const (
	metaHotelID    = "hotelId"
	metaRenterID   = "renterId"
	metaCommission = "commission"
	metaPayout     = "payout"
	metaNights     = "numberOfNights"
)

// DefaultPaymentAuthorizer prices a stay, splits the commission, and hands
// the charge to the payment gateway.
type DefaultPaymentAuthorizer struct {
	Repo           hotelRepo.HotelRepository
	Gateway        PaymentGateway
	CommissionRate float64
	Currency       string
	Logger         *zap.Logger
}

func (a *DefaultPaymentAuthorizer) CreateAuthorization(ctx context.Context, hotelID string, nights int, renterID string) (*models.PaymentBreakdown, error) {
	if nights < 1 {
		return nil, NewError(KindInvalidArgument, "number of nights must be at least 1")
	}

	hotel, err := a.Repo.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotelRepo.ErrNotFound) {
			return nil, NewError(KindNotFound, "hotel %s not found", hotelID)
		}
		return nil, NewError(KindUnavailable, "failed to load hotel: %v", err)
	}
	if !hotel.IsActive {
		return nil, NewError(KindNotFound, "hotel %s is not available", hotelID)
	}

	totalCost := hotel.PricePerNight * int64(nights)
	commission := int64(math.Round(float64(totalCost) * a.CommissionRate))
	payout := totalCost - commission

	metadata := map[string]string{
		metaHotelID:    hotelID,
		metaRenterID:   renterID,
		metaCommission: strconv.FormatInt(commission, 10),
		metaPayout:     strconv.FormatInt(payout, 10),
		metaNights:     strconv.Itoa(nights),
	}

	// Gateway amounts are in the currency's minor unit.
	intent, err := a.Gateway.CreateIntent(ctx, totalCost*100, a.Currency, metadata)
	if err != nil {
		a.Logger.Error("payment authorization failed",
			zap.String("hotelId", hotelID), zap.Error(err))
		return nil, NewError(KindUnavailable, "payment gateway unavailable: %v", err)
	}
	if intent.ClientSecret == "" {
		return nil, NewError(KindUnavailable, "payment gateway returned no client secret")
	}

	return &models.PaymentBreakdown{
		AuthorizationID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		TotalCost:       totalCost,
		Commission:      commission,
		Payout:          payout,
	}, nil
}

func (a *DefaultPaymentAuthorizer) VerifyAuthorization(ctx context.Context, authID, hotelID, renterID string) (*models.VerifiedAuthorization, error) {
	intent, err := a.Gateway.GetIntent(ctx, authID)
	if err != nil {
		if errors.Is(err, ErrIntentNotFound) {
			return nil, NewError(KindPaymentNotFound, "payment authorization %s not found", authID)
		}
		return nil, NewError(KindUnavailable, "payment gateway unavailable: %v", err)
	}

	if intent.Status != "succeeded" {
		return nil, NewError(KindPaymentNotSucceeded, "payment not successful, status: %s", intent.Status)
	}
	if intent.Metadata[metaHotelID] != hotelID || intent.Metadata[metaRenterID] != renterID {
		return nil, NewError(KindPaymentMismatch, "payment authorization does not match this booking")
	}

	commission, err := strconv.ParseInt(intent.Metadata[metaCommission], 10, 64)
	if err != nil {
		return nil, NewError(KindPaymentMismatch, "authorization carries no commission breakdown")
	}
	payout, err := strconv.ParseInt(intent.Metadata[metaPayout], 10, 64)
	if err != nil {
		return nil, NewError(KindPaymentMismatch, "authorization carries no payout breakdown")
	}
	nights, err := strconv.Atoi(intent.Metadata[metaNights])
	if err != nil {
		return nil, NewError(KindPaymentMismatch, "authorization carries no night count")
	}

	return &models.VerifiedAuthorization{
		AuthorizationID: intent.ID,
		TotalCost:       commission + payout,
		Commission:      commission,
		Payout:          payout,
		Nights:          nights,
	}, nil
}
