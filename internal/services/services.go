// Package services holds the application services between the HTTP handlers
// and the database/storage/payment clients. Each service declares the narrow
// store interface it needs; *database.Client satisfies all of them.
package services

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrConfigurationNotFound maps to a 404 at the API boundary.
	ErrConfigurationNotFound = errors.New("no such configuration found")
	// ErrNotAuthenticated is returned when no user session is present.
	ErrNotAuthenticated = errors.New("you need to be logged in")
	// ErrInvalidUserData is returned when the session lacks an id or email.
	ErrInvalidUserData = errors.New("invalid user data")
	// ErrInvalidOption is returned for option values outside the catalog.
	ErrInvalidOption = errors.New("invalid option value")
)

// ObjectStorage uploads configuration images and returns the storage path
// and public URL.
type ObjectStorage interface {
	UploadImage(configID uuid.UUID, filename string, data []byte, contentType string) (string, string, error)
}

// EventPublisher pushes configuration lifecycle events to subscribed
// clients. Publishing is best-effort everywhere; failures never abort the
// operation that triggered the event.
type EventPublisher interface {
	PublishConfigurationEvent(configID uuid.UUID, event string, payload map[string]interface{}) error
}
