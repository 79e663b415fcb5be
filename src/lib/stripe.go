package lib

import (
	"context"
	"os"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	apiKey := os.Getenv("STRIPE_SECRET_KEY")
	sc := stripe.NewClient(apiKey)
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// StripeEnabled reports whether card payments should go through Stripe.
// Without a key the payment sub-record is stored as-is and no provider
// call is made.
func StripeEnabled() bool {
	return os.Getenv("STRIPE_SECRET_KEY") != ""
}

// CreatePaymentIntent records a card charge with the provider and returns
// the provider reference id.
func CreatePaymentIntent(amountCents int64, currency string, paymentId string) (*string, error) {
	sc := GetStripeClient()
	params := stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		Metadata: map[string]string{"payment_id": paymentId},
	}
	pi, err := sc.V1PaymentIntents.Create(context.Background(), &params)
	if err != nil {
		return nil, err
	}
	return &pi.ID, nil
}
