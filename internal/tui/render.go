package tui

import (
	"fmt"
	"image"
	"strings"

	"github.com/JackWithOneEye/metroview/internal/lrucache"
	"github.com/JackWithOneEye/metroview/internal/metromap"
)

const (
	emptyCell     uint32 = 0xffffffff
	stationColour uint32 = 0xffffff
)

// sgrPrefixCache caches the SGR prefix for a colour (no reset), used by the RLE renderer
var sgrPrefixCache = lrucache.NewLruCache[uint32, string](2048)

func getSGRPrefix(colour uint32) string {
	if s, ok := sgrPrefixCache.Get(colour); ok {
		return s
	}
	r := (colour >> 16) & 0xff
	g := (colour >> 8) & 0xff
	b := colour & 0xff
	prefix := fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	sgrPrefixCache.Add(colour, prefix)
	return prefix
}

// canvas rasterizes the visible part of a map into a grid of colours, one
// cell per content unit.
type canvas struct {
	content *metromap.Map
	origin  image.Point
	grid    [][]uint32
}

func newCanvas(content *metromap.Map) *canvas {
	return &canvas{content: content}
}

func (c *canvas) MeasureContent() (int, int) {
	if c.content == nil {
		return 0, 0
	}
	return c.content.Size()
}

func (c *canvas) RenderVisible(viewport image.Rectangle) {
	c.origin = viewport.Min
	c.grid = rasterize(c.content, viewport, c.grid)
}

// at returns the colour of the cell at (x, y) relative to the last rendered
// viewport.
func (c *canvas) at(x, y int) uint32 {
	if y < 0 || y >= len(c.grid) || x < 0 || x >= len(c.grid[y]) {
		return emptyCell
	}
	return c.grid[y][x]
}

// rasterize draws the tracks and stations inside r into grid, reusing its
// rows where possible.
func rasterize(m *metromap.Map, r image.Rectangle, grid [][]uint32) [][]uint32 {
	w, h := r.Dx(), r.Dy()
	if cap(grid) < h {
		grid = make([][]uint32, h)
	}
	grid = grid[:h]
	for y := range grid {
		if cap(grid[y]) < w {
			grid[y] = make([]uint32, w)
		}
		grid[y] = grid[y][:w]
		for x := range grid[y] {
			grid[y][x] = emptyCell
		}
	}
	if m == nil {
		return grid
	}

	for seg := range m.Segments() {
		if !seg.Bounds().Overlaps(r) {
			continue
		}
		colour := uint32(seg.Line.Colour)
		bresenham(seg.From.Point(), seg.To.Point(), func(p image.Point) {
			if p.In(r) {
				grid[p.Y-r.Min.Y][p.X-r.Min.X] = colour
			}
		})
	}
	for _, s := range m.StationsIn(r) {
		grid[s.Y-r.Min.Y][s.X-r.Min.X] = stationColour
	}
	return grid
}

// bresenham calls plot for every cell on the line from a to b, both ends
// included.
func bresenham(a, b image.Point, plot func(image.Point)) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	e := dx + dy
	p := a
	for {
		plot(p)
		if p == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			p.X += sx
		}
		if e2 <= dx {
			e += dx
			p.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// renderRowRLE renders a single row using run-length emission of ANSI sequences to reduce SGR count.
// inset shifts content that is smaller than the viewport.
func renderRowRLE(c *canvas, y, width int, inset image.Point) string {
	var b strings.Builder
	b.Grow(width*2 + 64)

	currentColour := emptyCell
	runLen := 0

	flush := func() {
		if runLen == 0 {
			return
		}
		if currentColour == emptyCell {
			b.WriteString(strings.Repeat("  ", runLen))
		} else {
			b.WriteString(getSGRPrefix(currentColour))
			b.WriteString(strings.Repeat("██", runLen))
			b.WriteString("\x1b[0m")
		}
		runLen = 0
	}

	for x := range width {
		colour := c.at(x-inset.X, y-inset.Y)
		if runLen > 0 && colour != currentColour {
			flush()
		}
		currentColour = colour
		runLen++
	}
	flush()

	return b.String()
}
