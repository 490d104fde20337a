package models

// SaveOptionsRequest carries the selected case options. Values must match
// the catalog's value tokens.
type SaveOptionsRequest struct {
	Color    string `json:"color" binding:"required" example:"black"`
	Model    string `json:"model" binding:"required" example:"iphone15"`
	Material string `json:"material" binding:"required" example:"silicon"`
	Finish   string `json:"finish" binding:"required" example:"smooth"`
}

// RectPayload is a client-reported bounding rectangle in page pixels.
type RectPayload struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlacementPayload is the overlay position/size relative to the container.
type PlacementPayload struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FinalizeRequest composites the design and saves the selected options in
// one step.
type FinalizeRequest struct {
	Placement PlacementPayload   `json:"placement" binding:"required"`
	Template  RectPayload        `json:"template" binding:"required"`
	Container RectPayload        `json:"container" binding:"required"`
	Options   SaveOptionsRequest `json:"options" binding:"required"`
}

type CheckoutRequest struct {
	ConfigID string `json:"config_id" binding:"required" example:"5f0cdd07-bd91-4a13-a7c1-7a9a27597fbe"`
}
