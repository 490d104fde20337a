package models

import "time"

type ConfigurationResponse struct {
	ID              string    `json:"config_id"`
	ImageURL        string    `json:"image_url"`
	CroppedImageURL string    `json:"cropped_image_url,omitempty"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	Color           string    `json:"color,omitempty"`
	Model           string    `json:"model,omitempty"`
	Material        string    `json:"material,omitempty"`
	Finish          string    `json:"finish,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewConfigurationResponse flattens a Configuration row for the wire.
func NewConfigurationResponse(c *Configuration) ConfigurationResponse {
	return ConfigurationResponse{
		ID:              c.ID.String(),
		ImageURL:        c.ImageURL,
		CroppedImageURL: c.CroppedImageURL.String,
		Width:           c.Width,
		Height:          c.Height,
		Color:           c.Color.String,
		Model:           c.Model.String,
		Material:        c.Material.String,
		Finish:          c.Finish.String,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

type UploadResponse struct {
	ConfigID string `json:"config_id"`
	ImageURL string `json:"image_url"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Status   string `json:"status"`
}

type FinalizeResponse struct {
	ConfigID        string `json:"config_id"`
	CroppedImageURL string `json:"cropped_image_url,omitempty"`
	PreviewPath     string `json:"preview_path"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

type AuthStatusResponse struct {
	Success bool `json:"success"`
}

type WebhookResponse struct {
	Received  bool   `json:"received"`
	EventID   string `json:"event_id,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Message   string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
