package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"custom-case-backend/internal/catalog"
	"custom-case-backend/internal/database"
	"custom-case-backend/internal/models"
)

// ConfigurationStore is the slice of the database the configuration
// endpoints need.
type ConfigurationStore interface {
	GetConfiguration(id uuid.UUID) (*models.Configuration, error)
	UpdateConfigurationOptions(id uuid.UUID, color, model, material, finish string) error
	DeleteConfiguration(id uuid.UUID) error
}

// ImageStore reads configuration images back out of object storage and
// removes them when a configuration is abandoned.
type ImageStore interface {
	DownloadImage(storagePath string) ([]byte, error)
	PathFromPublicURL(publicURL string) (string, bool)
	DeleteConfigurationFiles(configID uuid.UUID) error
}

type ConfigurationsHandler struct {
	store  ConfigurationStore
	images ImageStore
}

func NewConfigurationsHandler(store ConfigurationStore, images ImageStore) *ConfigurationsHandler {
	return &ConfigurationsHandler{
		store:  store,
		images: images,
	}
}

// GetConfiguration godoc
// @Summary     Get a configuration
// @Tags        configurations
// @Produce     json
// @Security    Bearer
// @Param       config_id path string true "Configuration ID (UUID)"
// @Success     200 {object} models.ConfigurationResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /configurations/{config_id} [get]
func (h *ConfigurationsHandler) GetConfiguration(c *gin.Context) {
	id, err := uuid.Parse(c.Param("config_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid config id"})
		return
	}

	config, err := h.store.GetConfiguration(id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "configuration not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewConfigurationResponse(config))
}

// SaveOptions godoc
// @Summary     Save selected case options
// @Description Persists the chosen color, model, material and finish for a configuration.
// @Description Values must come from the static option catalog.
// @Tags        configurations
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       config_id path string true "Configuration ID (UUID)"
// @Param       options body models.SaveOptionsRequest true "Selected options"
// @Success     200 {object} models.ConfigurationResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /configurations/{config_id}/options [put]
func (h *ConfigurationsHandler) SaveOptions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("config_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid config id"})
		return
	}

	var req models.SaveOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	if msg, ok := validateOptions(req); !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid option value", Message: msg})
		return
	}

	if err := h.store.UpdateConfigurationOptions(id, req.Color, req.Model, req.Material, req.Finish); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save options",
			Message: err.Error(),
		})
		return
	}

	config, err := h.store.GetConfiguration(id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "configuration not found",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.NewConfigurationResponse(config))
}

// GetImage godoc
// @Summary     Download a configuration image
// @Description Streams the stored image bytes out of object storage. Pass
// @Description variant=cropped for the composited design; the default is the
// @Description original upload.
// @Tags        configurations
// @Produce     image/png
// @Security    Bearer
// @Param       config_id path string true "Configuration ID (UUID)"
// @Param       variant query string false "original (default) or cropped"
// @Success     200 {file} binary
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /configurations/{config_id}/image [get]
func (h *ConfigurationsHandler) GetImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("config_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid config id"})
		return
	}

	config, err := h.store.GetConfiguration(id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "configuration not found",
			Message: err.Error(),
		})
		return
	}

	imageURL := config.ImageURL
	if c.Query("variant") == "cropped" {
		if !config.CroppedImageURL.Valid {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "no cropped image for this configuration"})
			return
		}
		imageURL = config.CroppedImageURL.String
	}

	storagePath, ok := h.images.PathFromPublicURL(imageURL)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "image is not stored in this bucket"})
		return
	}

	data, err := h.images.DownloadImage(storagePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to download image",
			Message: err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// DeleteConfiguration godoc
// @Summary     Delete an abandoned configuration
// @Description Removes the configuration row and its stored images. A
// @Description configuration with an order cannot be deleted.
// @Tags        configurations
// @Produce     json
// @Security    Bearer
// @Param       config_id path string true "Configuration ID (UUID)"
// @Success     204
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /configurations/{config_id} [delete]
func (h *ConfigurationsHandler) DeleteConfiguration(c *gin.Context) {
	id, err := uuid.Parse(c.Param("config_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid config id"})
		return
	}

	if _, err := h.store.GetConfiguration(id); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "configuration not found",
			Message: err.Error(),
		})
		return
	}

	// Row first: if the configuration has an order the files must survive.
	if err := h.store.DeleteConfiguration(id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, database.ErrConfigurationInUse) {
			status = http.StatusConflict
		}
		c.JSON(status, models.ErrorResponse{
			Error:   "failed to delete configuration",
			Message: err.Error(),
		})
		return
	}

	if err := h.images.DeleteConfigurationFiles(id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "configuration deleted but file cleanup failed",
			Message: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func validateOptions(req models.SaveOptionsRequest) (string, bool) {
	if _, ok := catalog.ColorByValue(req.Color); !ok {
		return "unknown color " + req.Color, false
	}
	if _, ok := catalog.PhoneModelByValue(req.Model); !ok {
		return "unknown model " + req.Model, false
	}
	if _, ok := catalog.MaterialByValue(req.Material); !ok {
		return "unknown material " + req.Material, false
	}
	if _, ok := catalog.FinishByValue(req.Finish); !ok {
		return "unknown finish " + req.Finish, false
	}
	return "", true
}
