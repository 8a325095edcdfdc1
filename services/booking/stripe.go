package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeGateway implements PaymentGateway on Stripe PaymentIntents.
type StripeGateway struct{}

func (StripeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*GatewayIntent, error) {
	if stripe.Key == "" {
		return nil, errors.New("stripe api key is not configured")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return toGatewayIntent(pi), nil
}

func (StripeGateway) GetIntent(ctx context.Context, id string) (*GatewayIntent, error) {
	if stripe.Key == "" {
		return nil, errors.New("stripe api key is not configured")
	}

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := paymentintent.Get(id, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, ErrIntentNotFound
		}
		return nil, fmt.Errorf("failed to retrieve payment intent %s: %w", id, err)
	}
	return toGatewayIntent(pi), nil
}

func toGatewayIntent(pi *stripe.PaymentIntent) *GatewayIntent {
	return &GatewayIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}
}
