package tui

import (
	"image"
	"testing"

	"github.com/JackWithOneEye/metroview/internal/metromap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(a, b image.Point) []image.Point {
	var pts []image.Point
	bresenham(a, b, func(p image.Point) {
		pts = append(pts, p)
	})
	return pts
}

func TestBresenham(t *testing.T) {
	assert.Equal(t, []image.Point{{0, 0}, {1, 0}, {2, 1}, {3, 1}}, collect(image.Pt(0, 0), image.Pt(3, 1)))
	assert.Equal(t, []image.Point{{2, 3}, {2, 2}, {2, 1}, {2, 0}}, collect(image.Pt(2, 3), image.Pt(2, 0)))
	assert.Equal(t, []image.Point{{5, 5}}, collect(image.Pt(5, 5), image.Pt(5, 5)))

	diagonal := collect(image.Pt(4, 0), image.Pt(0, 4))
	require.Len(t, diagonal, 5)
	for i, p := range diagonal {
		assert.Equal(t, image.Pt(4-i, i), p)
	}
}

func lineMap() *metromap.Map {
	return &metromap.Map{
		Name:   "line",
		Width:  10,
		Height: 5,
		Lines: []metromap.Line{{
			Name:   "Red",
			Colour: 0xff0000,
			Stations: []metromap.Station{
				{Name: "A", X: 0, Y: 2},
				{Name: "B", X: 9, Y: 2},
			},
		}},
	}
}

func TestRasterize(t *testing.T) {
	grid := rasterize(lineMap(), image.Rect(0, 0, 10, 5), nil)
	require.Len(t, grid, 5)
	for y, row := range grid {
		require.Len(t, row, 10)
		for x, c := range row {
			switch {
			case y != 2:
				assert.Equal(t, emptyCell, c, "(%d, %d)", x, y)
			case x == 0 || x == 9:
				assert.Equal(t, stationColour, c, "(%d, %d)", x, y)
			default:
				assert.Equal(t, uint32(0xff0000), c, "(%d, %d)", x, y)
			}
		}
	}
}

func TestRasterizeClipsAndReuses(t *testing.T) {
	grid := rasterize(lineMap(), image.Rect(0, 0, 10, 5), nil)
	grid = rasterize(lineMap(), image.Rect(5, 1, 8, 3), grid)
	require.Len(t, grid, 2)
	assert.Equal(t, []uint32{emptyCell, emptyCell, emptyCell}, grid[0])
	assert.Equal(t, []uint32{0xff0000, 0xff0000, 0xff0000}, grid[1])

	// nothing visible
	grid = rasterize(lineMap(), image.Rect(0, 3, 2, 5), grid)
	assert.Equal(t, [][]uint32{{emptyCell, emptyCell}, {emptyCell, emptyCell}}, grid)
}

func TestCanvasMeasuresContent(t *testing.T) {
	w, h := newCanvas(nil).MeasureContent()
	assert.Zero(t, w)
	assert.Zero(t, h)

	w, h = newCanvas(lineMap()).MeasureContent()
	assert.Equal(t, 10, w)
	assert.Equal(t, 5, h)
}

func TestRenderRowRLE(t *testing.T) {
	c := &canvas{grid: [][]uint32{{emptyCell, 0xff0000, 0xff0000, emptyCell}}}
	row := renderRowRLE(c, 0, 4, image.Point{})
	assert.Equal(t, "  \x1b[38;2;255;0;0m████\x1b[0m  ", row)

	// shifted right by one cell, the last red cell falls off
	row = renderRowRLE(c, 0, 4, image.Pt(1, 0))
	assert.Equal(t, "    \x1b[38;2;255;0;0m████\x1b[0m", row)

	assert.Equal(t, "      ", renderRowRLE(c, 1, 3, image.Point{}))
}

func TestSGRPrefixIsCached(t *testing.T) {
	p := getSGRPrefix(0x0072ce)
	assert.Equal(t, "\x1b[38;2;0;114;206m", p)
	cached, ok := sgrPrefixCache.Get(0x0072ce)
	assert.True(t, ok)
	assert.Equal(t, p, cached)
}
