package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
)

type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(client *supabase.Client) *RealtimeClient {
	return &RealtimeClient{
		client: client,
	}
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish; row updates on
	// subscribed tables already fan out to clients. Kept as the single seam
	// for explicit event publishing.
	return nil
}

func (r *RealtimeClient) PublishConfigurationEvent(configID uuid.UUID, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("configuration:%s", configID.String())
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func UploadCompletedPayload(configID uuid.UUID, width, height int) map[string]interface{} {
	return map[string]interface{}{
		"config_id": configID.String(),
		"status":    "uploaded",
		"width":     width,
		"height":    height,
	}
}

func DesignSavedPayload(configID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"config_id": configID.String(),
		"status":    "design_saved",
	}
}

func CheckoutStartedPayload(configID, orderID uuid.UUID, amountCents int64) map[string]interface{} {
	return map[string]interface{}{
		"config_id":    configID.String(),
		"order_id":     orderID.String(),
		"status":       "checkout_started",
		"amount_cents": amountCents,
	}
}

func OrderFulfilledPayload(configID, orderID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"config_id": configID.String(),
		"order_id":  orderID.String(),
		"status":    "fulfilled",
	}
}
