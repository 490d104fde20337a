// Package billing wraps the Stripe hosted checkout flow: one-off product
// creation, checkout-session creation and webhook event verification.
package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/product"
	"github.com/stripe/stripe-go/v81/webhook"
)

// Client talks to Stripe. The secret key is installed globally, matching how
// the stripe-go package-level APIs work.
type Client struct {
	webhookSecret string
}

func NewClient(secretKey, webhookSecret string) *Client {
	stripe.Key = secretKey

	return &Client{
		webhookSecret: webhookSecret,
	}
}

// CheckoutSessionInput describes one hosted payment session for a single
// custom case.
type CheckoutSessionInput struct {
	ProductName string
	ImageURL    string
	AmountCents int64
	SuccessURL  string
	CancelURL   string
	UserID      string
	OrderID     string
}

// CreateCheckoutSession creates a Stripe product priced at the computed
// amount and a hosted checkout session for it, returning the session URL the
// customer is redirected to.
func (c *Client) CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (string, error) {
	prod, err := product.New(&stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
		Name:   stripe.String(input.ProductName),
		Images: stripe.StringSlice([]string{input.ImageURL}),
		DefaultPriceData: &stripe.ProductDefaultPriceDataParams{
			Currency:   stripe.String(string(stripe.CurrencyUSD)),
			UnitAmount: stripe.Int64(input.AmountCents),
		},
	})
	if err != nil {
		return "", fmt.Errorf("stripe: failed to create product: %w", err)
	}
	if prod.DefaultPrice == nil {
		return "", fmt.Errorf("stripe: product %s has no default price", prod.ID)
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		SuccessURL:         stripe.String(input.SuccessURL),
		CancelURL:          stripe.String(input.CancelURL),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"CA", "US"}),
		},
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(prod.DefaultPrice.ID),
			Quantity: stripe.Int64(1),
		}},
	}
	params.AddMetadata("userId", input.UserID)
	params.AddMetadata("orderId", input.OrderID)

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: failed to create checkout session: %w", err)
	}

	return sess.URL, nil
}

// ConstructEvent verifies the webhook signature and parses the event.
func (c *Client) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return stripe.Event{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	return event, nil
}
