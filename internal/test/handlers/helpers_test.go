package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v81"
	"custom-case-backend/internal/billing"
	"custom-case-backend/internal/middleware"
	"custom-case-backend/internal/models"
)

// fakeStore implements every store interface the handlers and services need,
// backed by maps.
type fakeStore struct {
	configs   map[uuid.UUID]*models.Configuration
	users     map[string]*models.User
	orders    map[string]*models.Order
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		configs: make(map[uuid.UUID]*models.Configuration),
		users:   make(map[string]*models.User),
		orders:  make(map[string]*models.Order),
	}
}

func (s *fakeStore) addConfiguration(material, finish string) *models.Configuration {
	config := &models.Configuration{
		ID:       uuid.New(),
		ImageURL: "https://cdn.test/image.png",
		Width:    800,
		Height:   1600,
		Material: sql.NullString{String: material, Valid: material != ""},
		Finish:   sql.NullString{String: finish, Valid: finish != ""},
	}
	s.configs[config.ID] = config
	return config
}

func (s *fakeStore) GetConfiguration(id uuid.UUID) (*models.Configuration, error) {
	config, ok := s.configs[id]
	if !ok {
		return nil, fmt.Errorf("configuration %s not found", id)
	}
	return config, nil
}

func (s *fakeStore) CreateConfiguration(id uuid.UUID, imageURL string, width, height int) (*models.Configuration, error) {
	config := &models.Configuration{ID: id, ImageURL: imageURL, Width: width, Height: height}
	s.configs[id] = config
	return config, nil
}

func (s *fakeStore) UpdateCroppedImageURL(id uuid.UUID, croppedImageURL string) (*models.Configuration, error) {
	config, ok := s.configs[id]
	if !ok {
		return nil, fmt.Errorf("configuration %s not found", id)
	}
	config.CroppedImageURL = sql.NullString{String: croppedImageURL, Valid: true}
	return config, nil
}

func (s *fakeStore) UpdateConfigurationOptions(id uuid.UUID, color, model, material, finish string) error {
	config, ok := s.configs[id]
	if !ok {
		return fmt.Errorf("configuration %s not found", id)
	}
	config.Color = sql.NullString{String: color, Valid: true}
	config.Model = sql.NullString{String: model, Valid: true}
	config.Material = sql.NullString{String: material, Valid: true}
	config.Finish = sql.NullString{String: finish, Valid: true}
	return nil
}

func (s *fakeStore) DeleteConfiguration(id uuid.UUID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.configs[id]; !ok {
		return fmt.Errorf("configuration %s not found", id)
	}
	delete(s.configs, id)
	return nil
}

func (s *fakeStore) GetUser(id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s not found", id)
	}
	return user, nil
}

func (s *fakeStore) CreateUser(id, email string) (*models.User, error) {
	user := &models.User{ID: id, Email: email}
	s.users[id] = user
	return user, nil
}

func (s *fakeStore) FindOrCreateOrder(userID string, configurationID uuid.UUID, amountCents int64) (*models.Order, error) {
	key := userID + "/" + configurationID.String()
	if order, ok := s.orders[key]; ok {
		return order, nil
	}
	order := &models.Order{ID: uuid.New(), UserID: userID, ConfigurationID: configurationID, AmountCents: amountCents}
	s.orders[key] = order
	return order, nil
}

func (s *fakeStore) GetOrder(id uuid.UUID) (*models.Order, error) {
	for _, order := range s.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, fmt.Errorf("order %s not found", id)
}

func (s *fakeStore) MarkOrderFulfilled(id uuid.UUID, shippingAddress json.RawMessage) error {
	for _, order := range s.orders {
		if order.ID == id {
			order.IsFulfilled = true
			order.ShippingAddress = shippingAddress
			return nil
		}
	}
	return fmt.Errorf("order %s not found", id)
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

func (s *fakeStorage) DownloadImage(storagePath string) ([]byte, error) {
	data, ok := s.uploads[storagePath]
	if !ok {
		return nil, fmt.Errorf("object %s not found", storagePath)
	}
	return data, nil
}

func (s *fakeStorage) PathFromPublicURL(publicURL string) (string, bool) {
	path, found := strings.CutPrefix(publicURL, "https://cdn.test/")
	return path, found
}

func (s *fakeStorage) DeleteConfigurationFiles(configID uuid.UUID) error {
	prefix := fmt.Sprintf("configurations/%s/", configID)
	for path := range s.uploads {
		if strings.HasPrefix(path, prefix) {
			delete(s.uploads, path)
		}
	}
	return nil
}

type fakePayments struct {
	url string
	err error
}

func (p *fakePayments) CreateCheckoutSession(ctx context.Context, input billing.CheckoutSessionInput) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.url, nil
}

type fakeVerifier struct {
	event stripe.Event
	err   error
}

func (v *fakeVerifier) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
	if v.err != nil {
		return stripe.Event{}, v.err
	}
	return v.event, nil
}

// withUser fakes the auth middleware for handler tests.
func withUser(userID, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.UserIDKey, userID)
		}
		if email != "" {
			c.Set(middleware.UserEmailKey, email)
		}
		c.Next()
	}
}
