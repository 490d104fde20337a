package configurator

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Composite draws the user image onto a transparent canvas sized to the
// template's pixel dimensions. The image is scaled to the placement's width
// and height and drawn with its top-left corner at the template-relative
// position, matching what the user arranged on screen.
func Composite(userImage image.Image, templateWidth, templateHeight int, at Point, width, height float64) (*image.RGBA, error) {
	if templateWidth <= 0 || templateHeight <= 0 {
		return nil, fmt.Errorf("invalid template dimensions %dx%d", templateWidth, templateHeight)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid placement dimensions %.0fx%.0f", width, height)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, templateWidth, templateHeight))

	target := image.Rect(
		round(at.X),
		round(at.Y),
		round(at.X+width),
		round(at.Y+height),
	)

	xdraw.CatmullRom.Scale(canvas, target, userImage, userImage.Bounds(), xdraw.Over, nil)

	return canvas, nil
}

func round(v float64) int {
	return int(math.Round(v))
}
