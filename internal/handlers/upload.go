package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"custom-case-backend/internal/models"
	"custom-case-backend/internal/services"
)

// The image route accepts a single image of at most 4MB.
const maxUploadSize = 4 << 20

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// Upload godoc
// @Summary     Upload a case image
// @Description Uploads the user's image and creates a configuration record with the image's
// @Description pixel dimensions. When a config_id form field is supplied, the upload is
// @Description treated as the composited (cropped) design for that configuration instead,
// @Description and only its cropped image URL is updated.
// @Tags        configurations
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       image formData file true "Image file (max 4MB)"
// @Param       config_id formData string false "Existing configuration id for cropped-image uploads"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /configurations/upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	form := c.Request.MultipartForm
	if form == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "failed to parse multipart form",
		})
		return
	}

	var file *multipart.FileHeader
	fileCount := 0
	for _, fieldName := range []string{"image", "file"} {
		headers := form.File[fieldName]
		fileCount += len(headers)
		if file == nil && len(headers) > 0 {
			file = headers[0]
		}
	}
	if file == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no file uploaded",
			Message: "please provide a file in the 'image' field",
		})
		return
	}
	if fileCount > 1 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "too many files",
			Message: "exactly one file per upload",
		})
		return
	}

	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "file too large",
			Message: fmt.Sprintf("maximum upload size is %d bytes", maxUploadSize),
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to open file",
			Message: err.Error(),
		})
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read file",
			Message: err.Error(),
		})
		return
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "unsupported file type",
			Message: fmt.Sprintf("only images are accepted, got %s", contentType),
		})
		return
	}

	configID := c.PostForm("config_id")

	config, err := h.uploadService.ProcessUpload(configID, file.Filename, contentType, data)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrConfigurationNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, models.ErrorResponse{
			Error:   "failed to process upload",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.UploadResponse{
		ConfigID: config.ID.String(),
		ImageURL: config.ImageURL,
		Width:    config.Width,
		Height:   config.Height,
		Status:   "uploaded",
	})
}
