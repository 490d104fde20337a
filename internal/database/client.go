package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"custom-case-backend/internal/models"
)

// ErrConfigurationInUse is returned when a configuration delete is blocked
// by an order referencing it.
var ErrConfigurationInUse = errors.New("configuration is referenced by an order")

// Client wraps the PostgreSQL connection and owns all SQL for users,
// configurations and orders.
type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) GetUser(id string) (*models.User, error) {
	var user models.User
	err := c.db.QueryRow(`
		SELECT id, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (c *Client) CreateUser(id, email string) (*models.User, error) {
	var user models.User
	err := c.db.QueryRow(`
		INSERT INTO users (id, email)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET updated_at = now()
		RETURNING id, email, created_at, updated_at
	`, id, email).Scan(&user.ID, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (c *Client) CreateConfiguration(id uuid.UUID, imageURL string, width, height int) (*models.Configuration, error) {
	var config models.Configuration
	err := c.db.QueryRow(`
		INSERT INTO configurations (id, image_url, width, height)
		VALUES ($1, $2, $3, $4)
		RETURNING id, image_url, cropped_image_url, width, height, color, model, material, finish, created_at, updated_at
	`, id, imageURL, width, height).Scan(
		&config.ID, &config.ImageURL, &config.CroppedImageURL, &config.Width, &config.Height,
		&config.Color, &config.Model, &config.Material, &config.Finish,
		&config.CreatedAt, &config.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create configuration: %w", err)
	}

	return &config, nil
}

func (c *Client) GetConfiguration(id uuid.UUID) (*models.Configuration, error) {
	var config models.Configuration
	err := c.db.QueryRow(`
		SELECT id, image_url, cropped_image_url, width, height, color, model, material, finish, created_at, updated_at
		FROM configurations
		WHERE id = $1
	`, id).Scan(
		&config.ID, &config.ImageURL, &config.CroppedImageURL, &config.Width, &config.Height,
		&config.Color, &config.Model, &config.Material, &config.Finish,
		&config.CreatedAt, &config.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get configuration: %w", err)
	}

	return &config, nil
}

// UpdateCroppedImageURL stores the composited image URL. Other columns are
// untouched.
func (c *Client) UpdateCroppedImageURL(id uuid.UUID, croppedImageURL string) (*models.Configuration, error) {
	var config models.Configuration
	err := c.db.QueryRow(`
		UPDATE configurations
		SET cropped_image_url = $1, updated_at = now()
		WHERE id = $2
		RETURNING id, image_url, cropped_image_url, width, height, color, model, material, finish, created_at, updated_at
	`, croppedImageURL, id).Scan(
		&config.ID, &config.ImageURL, &config.CroppedImageURL, &config.Width, &config.Height,
		&config.Color, &config.Model, &config.Material, &config.Finish,
		&config.CreatedAt, &config.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update cropped image url: %w", err)
	}

	return &config, nil
}

func (c *Client) UpdateConfigurationOptions(id uuid.UUID, color, model, material, finish string) error {
	result, err := c.db.Exec(`
		UPDATE configurations
		SET color = $1, model = $2, material = $3, finish = $4, updated_at = now()
		WHERE id = $5
	`, color, model, material, finish, id)
	if err != nil {
		return fmt.Errorf("failed to update configuration options: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("failed to update configuration options: %w", sql.ErrNoRows)
	}

	return nil
}

// DeleteConfiguration removes an abandoned configuration row. Configurations
// with an order are kept; the foreign key surfaces as ErrConfigurationInUse.
func (c *Client) DeleteConfiguration(id uuid.UUID) error {
	result, err := c.db.Exec(`DELETE FROM configurations WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return fmt.Errorf("failed to delete configuration: %w", ErrConfigurationInUse)
		}
		return fmt.Errorf("failed to delete configuration: %w", err)
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("failed to delete configuration: %w", sql.ErrNoRows)
	}

	return nil
}

// FindOrCreateOrder returns the order for the (user, configuration) pair,
// creating it on first checkout. The UNIQUE constraint on
// (user_id, configuration_id) serializes concurrent checkouts onto one row;
// the no-op DO UPDATE makes the insert return the existing row instead of
// failing. The stored amount never changes once the order exists.
func (c *Client) FindOrCreateOrder(userID string, configurationID uuid.UUID, amountCents int64) (*models.Order, error) {
	var order models.Order
	err := c.db.QueryRow(`
		INSERT INTO orders (id, user_id, configuration_id, amount_cents)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, configuration_id) DO UPDATE SET updated_at = now()
		RETURNING id, user_id, configuration_id, amount_cents, is_fulfilled, shipping_address, created_at, updated_at
	`, uuid.New(), userID, configurationID, amountCents).Scan(
		&order.ID, &order.UserID, &order.ConfigurationID, &order.AmountCents,
		&order.IsFulfilled, &order.ShippingAddress, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find or create order: %w", err)
	}

	return &order, nil
}

func (c *Client) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := c.db.QueryRow(`
		SELECT id, user_id, configuration_id, amount_cents, is_fulfilled, shipping_address, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.UserID, &order.ConfigurationID, &order.AmountCents,
		&order.IsFulfilled, &order.ShippingAddress, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

func (c *Client) MarkOrderFulfilled(id uuid.UUID, shippingAddress json.RawMessage) error {
	_, err := c.db.Exec(`
		UPDATE orders
		SET is_fulfilled = TRUE, shipping_address = $1, updated_at = now()
		WHERE id = $2
	`, shippingAddress, id)
	if err != nil {
		return fmt.Errorf("failed to mark order fulfilled: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.db.Close()
}
