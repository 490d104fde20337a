package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"

	"custom-case-backend/internal/models"
	"custom-case-backend/internal/services"
)

// Stripe webhook payloads are small; cap reads at 64KB.
const maxWebhookPayloadSize = 65536

// EventVerifier checks the webhook signature and parses the event.
type EventVerifier interface {
	ConstructEvent(payload []byte, signature string) (stripe.Event, error)
}

type StripeWebhookHandler struct {
	verifier        EventVerifier
	checkoutService *services.CheckoutService
}

func NewStripeWebhookHandler(verifier EventVerifier, checkoutService *services.CheckoutService) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		verifier:        verifier,
		checkoutService: checkoutService,
	}
}

// HandleWebhook godoc
// @Summary     Stripe webhook endpoint
// @Description Receives payment events from Stripe. checkout.session.completed marks the
// @Description order fulfilled and stores the collected shipping address.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       Stripe-Signature header string true "Stripe webhook signature"
// @Success     200 {object} models.WebhookResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     413 {object} models.ErrorResponse
// @Router      /webhooks/stripe [post]
func (h *StripeWebhookHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read request body"})
		return
	}
	if len(payload) > maxWebhookPayloadSize {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "payload too large"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing Stripe-Signature header"})
		return
	}

	event, err := h.verifier.ConstructEvent(payload, signature)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "webhook signature verification failed",
			Message: err.Error(),
		})
		return
	}

	resp := models.WebhookResponse{
		Received:  true,
		EventID:   event.ID,
		EventType: string(event.Type),
	}

	switch event.Type {
	case "checkout.session.completed":
		if err := h.checkoutService.HandleCheckoutCompleted(event); err != nil {
			// Return 200 anyway: retrying won't fix a bad payload, and
			// Stripe keeps retrying on non-2xx responses.
			resp.Message = "webhook received but processing encountered an issue"
			c.JSON(http.StatusOK, resp)
			return
		}
	default:
		resp.Message = "event type not handled"
	}

	c.JSON(http.StatusOK, resp)
}
