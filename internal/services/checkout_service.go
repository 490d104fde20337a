package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"

	"custom-case-backend/internal/billing"
	"custom-case-backend/internal/catalog"
	"custom-case-backend/internal/models"
	"custom-case-backend/internal/supabase"
)

type CheckoutStore interface {
	GetConfiguration(id uuid.UUID) (*models.Configuration, error)
	GetUser(id string) (*models.User, error)
	CreateUser(id, email string) (*models.User, error)
	FindOrCreateOrder(userID string, configurationID uuid.UUID, amountCents int64) (*models.Order, error)
	GetOrder(id uuid.UUID) (*models.Order, error)
	MarkOrderFulfilled(id uuid.UUID, shippingAddress json.RawMessage) error
}

// PaymentProvider creates hosted payment sessions.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, input billing.CheckoutSessionInput) (string, error)
}

// CheckoutService builds hosted checkout sessions and handles their
// completion events.
type CheckoutService struct {
	store    CheckoutStore
	payments PaymentProvider
	realtime EventPublisher
	// serverURL is the public base URL the success/cancel redirects point at.
	serverURL string
}

func NewCheckoutService(store CheckoutStore, payments PaymentProvider, realtime EventPublisher, serverURL string) *CheckoutService {
	return &CheckoutService{
		store:     store,
		payments:  payments,
		realtime:  realtime,
		serverURL: serverURL,
	}
}

// EnsureUser provisions the user record on first login. Both the id and the
// email must be present in the session.
func (s *CheckoutService) EnsureUser(userID, email string) error {
	if userID == "" || email == "" {
		return ErrInvalidUserData
	}

	if _, err := s.store.GetUser(userID); err == nil {
		return nil
	}

	if _, err := s.store.CreateUser(userID, email); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// CreateCheckoutSession prices the configuration, finds or creates the order
// for this user, and returns the hosted payment page URL. Calling it again
// for the same (user, configuration) reuses the existing order.
func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, userID, email, configID string) (string, error) {
	if userID == "" {
		return "", ErrNotAuthenticated
	}

	id, err := uuid.Parse(configID)
	if err != nil {
		return "", fmt.Errorf("%w: invalid config id %q", ErrConfigurationNotFound, configID)
	}

	config, err := s.store.GetConfiguration(id)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfigurationNotFound, err)
	}

	price := catalog.CheckoutPriceCents(config.Material.String, config.Finish.String)

	// The order row references the user, so make sure the user exists even
	// if the auth callback never ran.
	if _, err := s.store.GetUser(userID); err != nil {
		if _, err := s.store.CreateUser(userID, email); err != nil {
			return "", fmt.Errorf("create user: %w", err)
		}
	}

	order, err := s.store.FindOrCreateOrder(userID, config.ID, price)
	if err != nil {
		return "", fmt.Errorf("find or create order: %w", err)
	}

	url, err := s.payments.CreateCheckoutSession(ctx, billing.CheckoutSessionInput{
		ProductName: "Custom iPhone Case",
		ImageURL:    config.ImageURL,
		AmountCents: price,
		SuccessURL:  fmt.Sprintf("%s/thank-you?orderId=%s", s.serverURL, order.ID),
		CancelURL:   fmt.Sprintf("%s/configure/preview?id=%s", s.serverURL, config.ID),
		UserID:      userID,
		OrderID:     order.ID.String(),
	})
	if err != nil {
		return "", fmt.Errorf("create payment session: %w", err)
	}

	if s.realtime != nil {
		s.realtime.PublishConfigurationEvent(config.ID, "checkout_started",
			supabase.CheckoutStartedPayload(config.ID, order.ID, price))
	}

	return url, nil
}

// HandleCheckoutCompleted consumes a checkout.session.completed event: the
// order named in the session metadata is marked fulfilled and the collected
// shipping address is stored with it.
func (s *CheckoutService) HandleCheckoutCompleted(event stripe.Event) error {
	if event.Data == nil {
		return fmt.Errorf("event %s has no data payload", event.ID)
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}

	orderID, err := uuid.Parse(sess.Metadata["orderId"])
	if err != nil {
		return fmt.Errorf("invalid orderId in session metadata: %w", err)
	}

	var shippingAddress json.RawMessage
	if sess.ShippingDetails != nil {
		shippingAddress, err = json.Marshal(sess.ShippingDetails)
		if err != nil {
			return fmt.Errorf("failed to marshal shipping details: %w", err)
		}
	}

	if err := s.store.MarkOrderFulfilled(orderID, shippingAddress); err != nil {
		return fmt.Errorf("mark order fulfilled: %w", err)
	}

	if s.realtime != nil {
		if order, err := s.store.GetOrder(orderID); err == nil {
			s.realtime.PublishConfigurationEvent(order.ConfigurationID, "order_fulfilled",
				supabase.OrderFulfilledPayload(order.ConfigurationID, order.ID))
		}
	}

	return nil
}
