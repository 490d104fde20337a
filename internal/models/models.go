package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User mirrors the auth provider's account. IDs are the provider's opaque
// identifiers, not UUIDs we mint.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Configuration is one uploaded image plus the case options chosen for it.
// It is created on the first upload without a cropped image; the cropped
// image URL and the options are filled in as the user works through the
// design step.
type Configuration struct {
	ID              uuid.UUID
	ImageURL        string
	CroppedImageURL sql.NullString
	Width           int
	Height          int
	Color           sql.NullString
	Model           sql.NullString
	Material        sql.NullString
	Finish          sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Order links a user and a configuration to a priced purchase. At most one
// order exists per (user, configuration) pair.
type Order struct {
	ID              uuid.UUID
	UserID          string
	ConfigurationID uuid.UUID
	AmountCents     int64
	IsFulfilled     bool
	ShippingAddress json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
