package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"custom-case-backend/internal/middleware"
	"custom-case-backend/internal/models"
	"custom-case-backend/internal/services"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CreateCheckoutSession godoc
// @Summary     Create a hosted checkout session
// @Description Prices the configuration, creates or reuses the order for the current user,
// @Description and returns the hosted payment page URL to redirect to.
// @Tags        checkout
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CheckoutRequest true "Configuration to check out"
// @Success     200 {object} models.CheckoutResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /checkout [post]
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	email := c.GetString(middleware.UserEmailKey)

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	url, err := h.checkoutService.CreateCheckoutSession(c.Request.Context(), userID, email, req.ConfigID)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrNotAuthenticated):
			status = http.StatusUnauthorized
		case errors.Is(err, services.ErrConfigurationNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, models.ErrorResponse{
			Error:   "failed to create checkout session",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.CheckoutResponse{URL: url})
}
