package pan

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamperPinStaysInRange(t *testing.T) {
	sizes := []int{0, 1, 50, 100, 101, 300, 1000}
	requests := []int{-1000, -1, 0, 1, 99, 100, 150, 200, 250, 999, 5000}
	for _, content := range sizes {
		for _, view := range sizes {
			c := Clamper{Content: image.Pt(content, content), Viewport: image.Pt(view, view)}
			limit := max(0, content-view)
			for _, r := range requests {
				p := c.Pin(image.Pt(r, -r))
				assert.GreaterOrEqual(t, p.X, 0)
				assert.LessOrEqual(t, p.X, limit)
				assert.GreaterOrEqual(t, p.Y, 0)
				assert.LessOrEqual(t, p.Y, limit)
			}
			assert.Equal(t, image.Pt(limit, limit), c.Range())
		}
	}
}

func TestClamperContentSmallerThanViewport(t *testing.T) {
	c := Clamper{Content: image.Pt(80, 500), Viewport: image.Pt(100, 100)}
	for _, x := range []int{-50, 0, 10, 79, 400} {
		p := c.Pin(image.Pt(x, 0))
		assert.Equal(t, 0, p.X, "x=%d", x)
	}
	assert.Equal(t, 250, c.Pin(image.Pt(0, 250)).Y)
	assert.Equal(t, 400, c.Pin(image.Pt(0, 9999)).Y)
}

func TestClamperDragSteps(t *testing.T) {
	c := Clamper{Content: image.Pt(300, 300), Viewport: image.Pt(100, 100)}
	p := c.Pin(image.Pt(0, 0).Add(image.Pt(150, 0)))
	assert.Equal(t, image.Pt(150, 0), p)
	p = c.Pin(p.Add(image.Pt(100, 0)))
	assert.Equal(t, image.Pt(200, 0), p)
}

func TestClamperZeroValue(t *testing.T) {
	var c Clamper
	assert.Equal(t, image.Point{}, c.Pin(image.Pt(42, -7)))
	assert.Equal(t, image.Point{}, c.Range())
	assert.Equal(t, image.Rectangle{}, c.Bounds())
}
