// Package configurator implements the design step of the storefront: placing
// a user-supplied image over the phone template, compositing the result into
// a single PNG, and persisting it together with the selected case options.
package configurator

// Rect is an on-screen bounding rectangle in page pixel coordinates, as
// reported by the client for the template element and its container.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement is the transient drag/resize state of the user image: position
// and size in pixels relative to the container element. It is never
// persisted; only the composited PNG it produces is.
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Point struct {
	X float64
	Y float64
}

// TranslateToTemplate converts a container-relative placement position into
// the template's own coordinate space. The composited image must reflect the
// overlay's position relative to the template graphic, not the viewport, so
// the template/container origin offset is subtracted first.
func TranslateToTemplate(p Placement, template, container Rect) Point {
	offsetX := template.Left - container.Left
	offsetY := template.Top - container.Top

	return Point{
		X: p.X - offsetX,
		Y: p.Y - offsetY,
	}
}
