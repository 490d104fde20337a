package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"custom-case-backend/internal/configurator"
	"custom-case-backend/internal/models"
	"custom-case-backend/internal/services"
)

type DesignHandler struct {
	designService *services.DesignService
}

func NewDesignHandler(designService *services.DesignService) *DesignHandler {
	return &DesignHandler{
		designService: designService,
	}
}

// Finalize godoc
// @Summary     Finalize a design
// @Description Composites the user's image at its placed position over the phone template,
// @Description stores the resulting PNG as the configuration's cropped image, and saves the
// @Description selected options. The upload and the option save run concurrently; both must
// @Description succeed.
// @Tags        configurations
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       config_id path string true "Configuration ID (UUID)"
// @Param       request body models.FinalizeRequest true "Placement, element rectangles and options"
// @Success     200 {object} models.FinalizeResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /configurations/{config_id}/finalize [post]
func (h *DesignHandler) Finalize(c *gin.Context) {
	id, err := uuid.Parse(c.Param("config_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid config id"})
		return
	}

	var req models.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	config, previewPath, err := h.designService.Finalize(c.Request.Context(), services.FinalizeInput{
		ConfigID: id,
		Placement: configurator.Placement{
			X:      req.Placement.X,
			Y:      req.Placement.Y,
			Width:  req.Placement.Width,
			Height: req.Placement.Height,
		},
		Template:  rectFromPayload(req.Template),
		Container: rectFromPayload(req.Container),
		Color:     req.Options.Color,
		Model:     req.Options.Model,
		Material:  req.Options.Material,
		Finish:    req.Options.Finish,
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, services.ErrConfigurationNotFound):
			status = http.StatusNotFound
		case errors.Is(err, services.ErrInvalidOption):
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ErrorResponse{
			Error:   "failed to finalize design",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.FinalizeResponse{
		ConfigID:        config.ID.String(),
		CroppedImageURL: config.CroppedImageURL.String,
		PreviewPath:     previewPath,
	})
}

func rectFromPayload(r models.RectPayload) configurator.Rect {
	return configurator.Rect{
		Left:   r.Left,
		Top:    r.Top,
		Width:  r.Width,
		Height: r.Height,
	}
}
