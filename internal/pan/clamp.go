package pan

import "image"

// Clamper pins scroll offsets so the viewport never leaves the content.
// The zero value pins everything to the origin.
type Clamper struct {
	Content  image.Point
	Viewport image.Point
}

// Pin returns p restricted to the valid offset range on both axes.
func (c Clamper) Pin(p image.Point) image.Point {
	return image.Pt(
		pinLoc(p.X, c.Viewport.X, c.Content.X),
		pinLoc(p.Y, c.Viewport.Y, c.Content.Y),
	)
}

// Range returns the largest valid offset on each axis.
func (c Clamper) Range() image.Point {
	return image.Pt(
		pinMax(c.Viewport.X, c.Content.X),
		pinMax(c.Viewport.Y, c.Content.Y),
	)
}

// Bounds returns the valid offsets as a rectangle whose Max is inclusive.
func (c Clamper) Bounds() image.Rectangle {
	r := c.Range()
	return image.Rect(0, 0, r.X, r.Y)
}

func pinMax(view, doc int) int {
	if doc < view {
		return 0
	}
	return doc - view
}

func pinLoc(x, view, doc int) int {
	switch {
	case doc < view:
		// content is narrower than the view and is padded on both sides
		return 0
	case x < 0:
		return 0
	case x+view > doc:
		return doc - view
	}
	return x
}
