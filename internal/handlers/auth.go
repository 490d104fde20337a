package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"custom-case-backend/internal/middleware"
	"custom-case-backend/internal/models"
	"custom-case-backend/internal/services"
)

type AuthHandler struct {
	checkoutService *services.CheckoutService
}

func NewAuthHandler(checkoutService *services.CheckoutService) *AuthHandler {
	return &AuthHandler{
		checkoutService: checkoutService,
	}
}

// AuthCallback godoc
// @Summary     Provision the signed-in user
// @Description Called after login. Creates the user record on first sign-in; subsequent
// @Description calls are no-ops. Requires both an id and an email in the session token.
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.AuthStatusResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /auth/callback [post]
func (h *AuthHandler) AuthCallback(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	email := c.GetString(middleware.UserEmailKey)

	if err := h.checkoutService.EnsureUser(userID, email); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidUserData) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, models.ErrorResponse{
			Error:   "failed to provision user",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.AuthStatusResponse{Success: true})
}
