// Package pan turns pointer, key and trackball input into scroll offsets for
// a viewport over content that is larger than it.
//
// A Surface is not safe for concurrent use. Hosts call it from their event
// loop: input handlers, Draw and the per-frame Tick all run on one goroutine.
package pan

import (
	"image"
	"io"
	"log"
	"time"
)

// Renderer is implemented by the host to measure and draw the content.
type Renderer interface {
	// MeasureContent returns the intrinsic size of the content. A size of
	// zero on either axis means the content is not loaded yet.
	MeasureContent() (width, height int)
	// RenderVisible draws the part of the content inside viewport, given in
	// content coordinates.
	RenderVisible(viewport image.Rectangle)
}

// Option configures a Surface in NewSurface.
type Option func(*Surface)

// WithTuning replaces DefaultTuning.
func WithTuning(t Tuning) Option {
	return func(s *Surface) {
		s.tuning = t
	}
}

// WithLogger sets where the surface logs gesture transitions.
func WithLogger(l *log.Logger) Option {
	return func(s *Surface) {
		s.logger = l
	}
}

// WithTapHandler registers fn to receive the content coordinate of every
// press that is released without moving.
func WithTapHandler(fn func(p image.Point)) Option {
	return func(s *Surface) {
		s.onTap = fn
	}
}

// Surface is the scroll state of one viewport.
type Surface struct {
	renderer Renderer
	tuning   Tuning
	logger   *log.Logger
	onTap    func(image.Point)

	ready   bool
	clamper Clamper
	offset  image.Point

	phase        Phase
	snap         SnapState
	snapPositive bool // initial drag direction along the snap axis
	touch        *touchSession
	fling        Fling
	keys         keyScroll
}

// NewSurface returns an idle surface that draws through r.
func NewSurface(r Renderer, opts ...Option) *Surface {
	s := &Surface{
		renderer: r,
		tuning:   DefaultTuning(),
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Invalidate()
	return s
}

// SetViewport resizes the viewport and re-pins the offset.
func (s *Surface) SetViewport(width, height int) {
	s.clamper.Viewport = image.Pt(max(width, 0), max(height, 0))
	s.offset = s.clamper.Pin(s.offset)
}

// Invalidate re-measures the content and re-pins the offset. Hosts call it
// whenever the content changes size, for example after loading a new map.
func (s *Surface) Invalidate() {
	var w, h int
	if s.renderer != nil {
		w, h = s.renderer.MeasureContent()
	}
	s.ready = w > 0 && h > 0
	if !s.ready {
		w, h = 0, 0
	}
	s.clamper.Content = image.Pt(w, h)
	s.offset = s.clamper.Pin(s.offset)
}

func (s *Surface) Viewport() image.Point {
	return s.clamper.Viewport
}

func (s *Surface) Content() image.Point {
	return s.clamper.Content
}

// Offset returns the top-left corner of the viewport in content space.
func (s *Surface) Offset() image.Point {
	if !s.ready {
		return image.Point{}
	}
	return s.offset
}

// ScrollRange returns the largest offset on each axis.
func (s *Surface) ScrollRange() image.Point {
	if !s.ready {
		return image.Point{}
	}
	return s.clamper.Range()
}

// SetOffset moves the viewport to p, pinned to the content.
func (s *Surface) SetOffset(p image.Point) {
	s.Stop()
	s.offset = s.clamper.Pin(p)
}

// SetScrollCenter moves the viewport so that p is in its centre, as far as
// the content edges allow.
func (s *Surface) SetScrollCenter(p image.Point) {
	s.SetOffset(p.Sub(s.clamper.Viewport.Div(2)))
}

// ScrollCenter returns the content coordinate at the centre of the viewport.
func (s *Surface) ScrollCenter() image.Point {
	return s.Offset().Add(s.clamper.Viewport.Div(2))
}

// Inset returns how far content smaller than the viewport is shifted to
// appear centred. It is zero on axes where the content fills the viewport.
func (s *Surface) Inset() image.Point {
	slack := s.clamper.Viewport.Sub(s.clamper.Content)
	return image.Pt(max(slack.X, 0)/2, max(slack.Y, 0)/2)
}

func (s *Surface) Phase() Phase {
	return s.phase
}

func (s *Surface) Snap() SnapState {
	return s.snap
}

func (s *Surface) Flinging() bool {
	return s.fling.Active()
}

// Stop cancels a running fling, leaving the offset where it is.
func (s *Surface) Stop() {
	if s.fling.Active() {
		s.fling.Cancel()
		s.logger.Printf("fling cancelled at %v", s.offset)
	}
}

// Tick advances a running fling to now. It reports whether the fling is
// still running and the host should schedule another frame.
func (s *Surface) Tick(now time.Time) bool {
	if !s.fling.Active() {
		return false
	}
	p, finished := s.fling.Tick(now)
	s.offset = s.clamper.Pin(p)
	if finished {
		s.logger.Printf("fling finished at %v", s.offset)
	}
	return !finished
}

// Draw asks the renderer to draw the visible part of the content. It does
// nothing until the content has a size.
func (s *Surface) Draw() {
	if !s.ready || s.renderer == nil {
		return
	}
	s.renderer.RenderVisible(image.Rectangle{Min: s.offset, Max: s.offset.Add(s.clamper.Viewport)})
}

func (s *Surface) scrollBy(dx, dy int) {
	s.offset = s.clamper.Pin(s.offset.Add(image.Pt(dx, dy)))
}
