package services

import (
	"bytes"
	"fmt"
	"image"

	"github.com/google/uuid"

	"custom-case-backend/internal/models"
	"custom-case-backend/internal/supabase"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Fallback when the uploaded bytes don't yield usable dimensions.
const defaultImageDimension = 500

type UploadStore interface {
	CreateConfiguration(id uuid.UUID, imageURL string, width, height int) (*models.Configuration, error)
	UpdateCroppedImageURL(id uuid.UUID, croppedImageURL string) (*models.Configuration, error)
}

// UploadService implements the two-phase upload. The first upload (no config
// id) creates the configuration from the raw user image; the second upload
// (config id supplied) attaches the composited image to the existing record.
type UploadService struct {
	store    UploadStore
	storage  ObjectStorage
	realtime EventPublisher
}

func NewUploadService(store UploadStore, storage ObjectStorage, realtime EventPublisher) *UploadService {
	return &UploadService{
		store:    store,
		storage:  storage,
		realtime: realtime,
	}
}

// ProcessUpload stores the image and creates or updates the configuration
// record. The returned configuration carries the id the client uses to
// correlate the follow-up cropped upload.
func (s *UploadService) ProcessUpload(configID, filename, contentType string, data []byte) (*models.Configuration, error) {
	if configID == "" {
		id := uuid.New()

		_, publicURL, err := s.storage.UploadImage(id, filename, data, contentType)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}

		width, height := imageDimensions(data)
		config, err := s.store.CreateConfiguration(id, publicURL, width, height)
		if err != nil {
			return nil, fmt.Errorf("create configuration: %w", err)
		}

		if s.realtime != nil {
			s.realtime.PublishConfigurationEvent(config.ID, "upload_completed",
				supabase.UploadCompletedPayload(config.ID, width, height))
		}

		return config, nil
	}

	id, err := uuid.Parse(configID)
	if err != nil {
		return nil, fmt.Errorf("invalid config id: %w", err)
	}

	_, publicURL, err := s.storage.UploadImage(id, filename, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	config, err := s.store.UpdateCroppedImageURL(id, publicURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigurationNotFound, err)
	}

	return config, nil
}

// imageDimensions reads width/height from the image header, falling back to
// 500x500 when the bytes can't be decoded.
func imageDimensions(data []byte) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		return defaultImageDimension, defaultImageDimension
	}
	return cfg.Width, cfg.Height
}
