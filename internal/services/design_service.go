package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"custom-case-backend/internal/configurator"
	"custom-case-backend/internal/models"
	"custom-case-backend/internal/supabase"
)

type DesignStore interface {
	GetConfiguration(id uuid.UUID) (*models.Configuration, error)
	UpdateCroppedImageURL(id uuid.UUID, croppedImageURL string) (*models.Configuration, error)
	UpdateConfigurationOptions(id uuid.UUID, color, model, material, finish string) error
}

// DesignService drives the configurator's finalize step server-side.
type DesignService struct {
	store    DesignStore
	storage  ObjectStorage
	realtime EventPublisher
	fetcher  configurator.ImageFetcher
}

func NewDesignService(store DesignStore, storage ObjectStorage, realtime EventPublisher, fetcher configurator.ImageFetcher) *DesignService {
	return &DesignService{
		store:    store,
		storage:  storage,
		realtime: realtime,
		fetcher:  fetcher,
	}
}

type FinalizeInput struct {
	ConfigID  uuid.UUID
	Placement configurator.Placement
	Template  configurator.Rect
	Container configurator.Rect
	Color     string
	Model     string
	Material  string
	Finish    string
}

// Finalize composites the user's design and persists the cropped image and
// selected options concurrently. If either branch fails the whole call is
// reported failed; the other branch is not rolled back.
func (s *DesignService) Finalize(ctx context.Context, input FinalizeInput) (*models.Configuration, string, error) {
	config, err := s.store.GetConfiguration(input.ConfigID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrConfigurationNotFound, err)
	}

	c := configurator.New(config.ImageURL, config.Width, config.Height)
	for field, value := range map[configurator.OptionField]string{
		configurator.FieldColor:    input.Color,
		configurator.FieldModel:    input.Model,
		configurator.FieldMaterial: input.Material,
		configurator.FieldFinish:   input.Finish,
	} {
		if err := c.SetOption(field, value); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidOption, err)
		}
	}
	c.SetPlacement(input.Placement)

	uploader := configurator.CroppedUploaderFunc(func(ctx context.Context, data []byte) error {
		_, publicURL, err := s.storage.UploadImage(config.ID, "cropped.png", data, "image/png")
		if err != nil {
			return err
		}
		_, err = s.store.UpdateCroppedImageURL(config.ID, publicURL)
		return err
	})

	saver := configurator.OptionSaverFunc(func(ctx context.Context, opts configurator.SelectedOptions) error {
		return s.store.UpdateConfigurationOptions(config.ID,
			opts.Color.Value, opts.Model.Value, opts.Material.Value, opts.Finish.Value)
	})

	if err := c.Finalize(ctx, input.Template, input.Container, s.fetcher, uploader, saver); err != nil {
		return nil, "", err
	}

	if s.realtime != nil {
		s.realtime.PublishConfigurationEvent(config.ID, "design_saved",
			supabase.DesignSavedPayload(config.ID))
	}

	updated, err := s.store.GetConfiguration(config.ID)
	if err != nil {
		// The writes succeeded; fall back to the stale row.
		updated = config
	}

	previewPath := fmt.Sprintf("/configure/preview?id=%s", config.ID)
	return updated, previewPath, nil
}
