package configurator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"custom-case-backend/internal/configurator"
)

func TestTranslateToTemplate(t *testing.T) {
	placement := configurator.Placement{X: 150, Y: 205, Width: 100, Height: 200}
	template := configurator.Rect{Left: 120, Top: 80, Width: 400, Height: 800}
	container := configurator.Rect{Left: 100, Top: 50, Width: 600, Height: 900}

	at := configurator.TranslateToTemplate(placement, template, container)

	// Template sits 20px right and 30px below the container origin, so the
	// overlay moves up-left by that offset in template space.
	assert.Equal(t, 130.0, at.X)
	assert.Equal(t, 175.0, at.Y)
}

func TestTranslateToTemplate_ContainerAtOrigin(t *testing.T) {
	placement := configurator.Placement{X: 150, Y: 205}
	template := configurator.Rect{Left: 10, Top: 20, Width: 300, Height: 600}
	container := configurator.Rect{Left: 0, Top: 0, Width: 500, Height: 700}

	at := configurator.TranslateToTemplate(placement, template, container)

	assert.Equal(t, 140.0, at.X)
	assert.Equal(t, 185.0, at.Y)
}

func TestTranslateToTemplate_SameOrigin(t *testing.T) {
	placement := configurator.Placement{X: 42, Y: 17}
	rect := configurator.Rect{Left: 10, Top: 10, Width: 100, Height: 100}

	at := configurator.TranslateToTemplate(placement, rect, rect)

	assert.Equal(t, 42.0, at.X)
	assert.Equal(t, 17.0, at.Y)
}

func TestTranslateToTemplate_NegativeResult(t *testing.T) {
	// Dragging the image above/left of the template leaves it partially off
	// the canvas; the translated position goes negative rather than clamping.
	placement := configurator.Placement{X: 5, Y: 5}
	template := configurator.Rect{Left: 50, Top: 60}
	container := configurator.Rect{Left: 0, Top: 0}

	at := configurator.TranslateToTemplate(placement, template, container)

	assert.Equal(t, -45.0, at.X)
	assert.Equal(t, -55.0, at.Y)
}
