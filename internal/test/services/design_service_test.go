package services_test

import (
	"context"
	"database/sql"
	"fmt"
	"image"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"custom-case-backend/internal/configurator"
	"custom-case-backend/internal/models"
	"custom-case-backend/internal/services"
)

type fakeDesignStore struct {
	configs        map[uuid.UUID]*models.Configuration
	savedOptions   []string
	optionsSaveErr error
}

func newFakeDesignStore() *fakeDesignStore {
	return &fakeDesignStore{configs: make(map[uuid.UUID]*models.Configuration)}
}

func (s *fakeDesignStore) addConfiguration(width, height int) *models.Configuration {
	config := &models.Configuration{
		ID:       uuid.New(),
		ImageURL: "https://cdn.test/image.png",
		Width:    width,
		Height:   height,
	}
	s.configs[config.ID] = config
	return config
}

func (s *fakeDesignStore) GetConfiguration(id uuid.UUID) (*models.Configuration, error) {
	config, ok := s.configs[id]
	if !ok {
		return nil, fmt.Errorf("configuration %s not found", id)
	}
	return config, nil
}

func (s *fakeDesignStore) UpdateCroppedImageURL(id uuid.UUID, croppedImageURL string) (*models.Configuration, error) {
	config, ok := s.configs[id]
	if !ok {
		return nil, fmt.Errorf("configuration %s not found", id)
	}
	config.CroppedImageURL = sql.NullString{String: croppedImageURL, Valid: true}
	return config, nil
}

func (s *fakeDesignStore) UpdateConfigurationOptions(id uuid.UUID, color, model, material, finish string) error {
	if s.optionsSaveErr != nil {
		return s.optionsSaveErr
	}
	config, ok := s.configs[id]
	if !ok {
		return fmt.Errorf("configuration %s not found", id)
	}
	config.Color = sql.NullString{String: color, Valid: true}
	config.Model = sql.NullString{String: model, Valid: true}
	config.Material = sql.NullString{String: material, Valid: true}
	config.Finish = sql.NullString{String: finish, Valid: true}
	s.savedOptions = []string{color, model, material, finish}
	return nil
}

type staticFetcher struct {
	img image.Image
	err error
}

func (f *staticFetcher) FetchImage(ctx context.Context, url string) (image.Image, error) {
	return f.img, f.err
}

func finalizeInput(configID uuid.UUID) services.FinalizeInput {
	return services.FinalizeInput{
		ConfigID:  configID,
		Placement: configurator.Placement{X: 150, Y: 205, Width: 100, Height: 200},
		Template:  configurator.Rect{Left: 100, Top: 50, Width: 400, Height: 800},
		Container: configurator.Rect{Left: 80, Top: 20, Width: 600, Height: 900},
		Color:     "blue",
		Model:     "iphone15",
		Material:  "polycarbonate",
		Finish:    "textured",
	}
}

func TestFinalize(t *testing.T) {
	store := newFakeDesignStore()
	config := store.addConfiguration(400, 800)
	storage := newFakeStorage()
	fetcher := &staticFetcher{img: image.NewRGBA(image.Rect(0, 0, 400, 800))}

	svc := services.NewDesignService(store, storage, nil, fetcher)

	updated, previewPath, err := svc.Finalize(context.Background(), finalizeInput(config.ID))
	require.NoError(t, err)

	assert.True(t, updated.CroppedImageURL.Valid)
	assert.Contains(t, updated.CroppedImageURL.String, "cropped.png")
	assert.Equal(t, []string{"blue", "iphone15", "polycarbonate", "textured"}, store.savedOptions)
	assert.Equal(t, fmt.Sprintf("/configure/preview?id=%s", config.ID), previewPath)
	assert.Len(t, storage.uploads, 1)
}

func TestFinalize_ConfigurationNotFound(t *testing.T) {
	svc := services.NewDesignService(newFakeDesignStore(), newFakeStorage(), nil, &staticFetcher{})

	_, _, err := svc.Finalize(context.Background(), finalizeInput(uuid.New()))
	assert.ErrorIs(t, err, services.ErrConfigurationNotFound)
}

func TestFinalize_InvalidOption(t *testing.T) {
	store := newFakeDesignStore()
	config := store.addConfiguration(400, 800)
	svc := services.NewDesignService(store, newFakeStorage(), nil, &staticFetcher{})

	input := finalizeInput(config.ID)
	input.Color = "magenta"

	_, _, err := svc.Finalize(context.Background(), input)
	assert.ErrorIs(t, err, services.ErrInvalidOption)
}

func TestFinalize_FetchFailure(t *testing.T) {
	store := newFakeDesignStore()
	config := store.addConfiguration(400, 800)
	fetcher := &staticFetcher{err: fmt.Errorf("image host unreachable")}
	svc := services.NewDesignService(store, newFakeStorage(), nil, fetcher)

	_, _, err := svc.Finalize(context.Background(), finalizeInput(config.ID))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "load user image")
	// Nothing was persisted.
	assert.Nil(t, store.savedOptions)
}

func TestFinalize_SaveFailureSurfaces(t *testing.T) {
	store := newFakeDesignStore()
	config := store.addConfiguration(400, 800)
	store.optionsSaveErr = fmt.Errorf("connection reset")
	fetcher := &staticFetcher{img: image.NewRGBA(image.Rect(0, 0, 400, 800))}
	svc := services.NewDesignService(store, newFakeStorage(), nil, fetcher)

	_, _, err := svc.Finalize(context.Background(), finalizeInput(config.ID))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "save options")
}
