package services_test

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"custom-case-backend/internal/models"
	"custom-case-backend/internal/services"
)

type fakeUploadStore struct {
	configs   map[uuid.UUID]*models.Configuration
	updateErr error
}

func newFakeUploadStore() *fakeUploadStore {
	return &fakeUploadStore{configs: make(map[uuid.UUID]*models.Configuration)}
}

func (s *fakeUploadStore) CreateConfiguration(id uuid.UUID, imageURL string, width, height int) (*models.Configuration, error) {
	config := &models.Configuration{
		ID:        id,
		ImageURL:  imageURL,
		Width:     width,
		Height:    height,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.configs[id] = config
	return config, nil
}

func (s *fakeUploadStore) UpdateCroppedImageURL(id uuid.UUID, croppedImageURL string) (*models.Configuration, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	config, ok := s.configs[id]
	if !ok {
		return nil, fmt.Errorf("configuration %s not found", id)
	}
	config.CroppedImageURL.String = croppedImageURL
	config.CroppedImageURL.Valid = true
	return config, nil
}

type fakeStorage struct {
	uploads map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (s *fakeStorage) UploadImage(configID uuid.UUID, filename string, data []byte, contentType string) (string, string, error) {
	path := fmt.Sprintf("configurations/%s/%s", configID, filename)
	s.uploads[path] = data
	return path, "https://cdn.test/" + path, nil
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func TestProcessUpload_NewConfiguration(t *testing.T) {
	store := newFakeUploadStore()
	storage := newFakeStorage()
	svc := services.NewUploadService(store, storage, nil)

	data := pngBytes(t, 800, 1600)
	config, err := svc.ProcessUpload("", "photo.png", "image/png", data)
	require.NoError(t, err)

	assert.Equal(t, 800, config.Width)
	assert.Equal(t, 1600, config.Height)
	assert.Contains(t, config.ImageURL, config.ID.String())
	assert.Len(t, storage.uploads, 1)
}

func TestProcessUpload_UndecodableImageFallsBackTo500(t *testing.T) {
	store := newFakeUploadStore()
	svc := services.NewUploadService(store, newFakeStorage(), nil)

	config, err := svc.ProcessUpload("", "photo.png", "image/png", []byte("not a real image"))
	require.NoError(t, err)

	assert.Equal(t, 500, config.Width)
	assert.Equal(t, 500, config.Height)
}

func TestProcessUpload_CroppedUploadUpdatesExisting(t *testing.T) {
	store := newFakeUploadStore()
	storage := newFakeStorage()
	svc := services.NewUploadService(store, storage, nil)

	first, err := svc.ProcessUpload("", "photo.png", "image/png", pngBytes(t, 100, 100))
	require.NoError(t, err)

	updated, err := svc.ProcessUpload(first.ID.String(), "cropped.png", "image/png", pngBytes(t, 50, 50))
	require.NoError(t, err)

	assert.Equal(t, first.ID, updated.ID)
	assert.True(t, updated.CroppedImageURL.Valid)
	assert.Contains(t, updated.CroppedImageURL.String, "cropped.png")
	// Original dimensions are preserved; only the cropped URL changes.
	assert.Equal(t, 100, updated.Width)
}

func TestProcessUpload_UnknownConfigID(t *testing.T) {
	store := newFakeUploadStore()
	svc := services.NewUploadService(store, newFakeStorage(), nil)

	_, err := svc.ProcessUpload(uuid.NewString(), "cropped.png", "image/png", pngBytes(t, 10, 10))
	assert.ErrorIs(t, err, services.ErrConfigurationNotFound)
}

func TestProcessUpload_MalformedConfigID(t *testing.T) {
	svc := services.NewUploadService(newFakeUploadStore(), newFakeStorage(), nil)

	_, err := svc.ProcessUpload("not-a-uuid", "cropped.png", "image/png", pngBytes(t, 10, 10))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config id")
}
