package payments

import (
	"context"
	"os"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
)

// StripeCharger is a thin wrapper around stripe-go for the external
// fare settlement path.
type StripeCharger struct{}

// NewStripeCharger initializes the stripe client with the
// STRIPE_API_KEY env var.
func NewStripeCharger() *StripeCharger {
	stripe.Key = os.Getenv("STRIPE_API_KEY")
	return &StripeCharger{}
}

// Charge creates and immediately confirms a PaymentIntent for the
// fare amount.
func (s *StripeCharger) Charge(ctx context.Context, amount int64, currency, riderID string) error {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
	}
	if riderID != "" {
		params.Description = stripe.String("shuttle fare for " + riderID)
	}
	_, err := paymentintent.New(params)
	return err
}
