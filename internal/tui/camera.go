package tui

import (
	"image"
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	cameraFrequency = 6.0
	cameraDamping   = 1.0
	cameraSettle    = 0.5
)

type springAxis struct {
	pos, vel float64
}

// camera eases the viewport centre towards a target, one step per frame.
type camera struct {
	spring harmonica.Spring
	x, y   springAxis
	target image.Point
	active bool
}

func newCamera(fps int) camera {
	return camera{spring: harmonica.NewSpring(harmonica.FPS(fps), cameraFrequency, cameraDamping)}
}

func (c *camera) start(from, to image.Point) {
	c.x = springAxis{pos: float64(from.X)}
	c.y = springAxis{pos: float64(from.Y)}
	c.target = to
	c.active = from != to
}

func (c *camera) stop() {
	c.active = false
}

// step advances one frame and returns the new centre and whether the camera
// is still moving.
func (c *camera) step() (image.Point, bool) {
	if !c.active {
		return c.target, false
	}
	c.x.pos, c.x.vel = c.spring.Update(c.x.pos, c.x.vel, float64(c.target.X))
	c.y.pos, c.y.vel = c.spring.Update(c.y.pos, c.y.vel, float64(c.target.Y))
	if settled(c.x, c.target.X) && settled(c.y, c.target.Y) {
		c.active = false
		return c.target, false
	}
	return image.Pt(int(math.Round(c.x.pos)), int(math.Round(c.y.pos))), true
}

func settled(a springAxis, target int) bool {
	return math.Abs(a.pos-float64(target)) < cameraSettle && math.Abs(a.vel) < cameraSettle
}
