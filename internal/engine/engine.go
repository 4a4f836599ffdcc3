package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/JackWithOneEye/metroview/internal/metromap"
	"github.com/JackWithOneEye/metroview/internal/pan"
	"github.com/JackWithOneEye/metroview/internal/protocol"
)

const frameInterval = time.Second / 60

type EngineConfig interface {
	Tuning() pan.Tuning
}

// Engine runs the pan surface of one remote viewer. Input arrives through
// SubmitMessage, frames leave through Output.
type Engine interface {
	Center() image.Point
	Output() <-chan []byte
	SetCenter(p image.Point)
	Start()
	SubmitMessage(b []byte) error
}

// visibleRecorder measures the map and remembers the last visible region;
// drawing happens on the client.
type visibleRecorder struct {
	content *metromap.Map
	visible image.Rectangle
}

func (r *visibleRecorder) MeasureContent() (int, int) {
	if r.content == nil {
		return 0, 0
	}
	return r.content.Size()
}

func (r *visibleRecorder) RenderVisible(viewport image.Rectangle) {
	r.visible = viewport
}

type engine struct {
	ctx          context.Context
	surface      *pan.Surface
	recorder     *visibleRecorder
	epoch        time.Time
	synced       bool
	mutex        sync.Mutex
	closed       bool
	output       protocol.Frame
	outputChan   chan []byte
	encodeBuffer []byte
	now          func() time.Time
}

func NewEngine(cfg EngineConfig, content *metromap.Map, ctx context.Context) Engine {
	return newEngine(cfg, content, ctx, time.Now)
}

func newEngine(cfg EngineConfig, content *metromap.Map, ctx context.Context, now func() time.Time) *engine {
	rec := &visibleRecorder{content: content}
	e := &engine{
		ctx:        ctx,
		recorder:   rec,
		surface:    pan.NewSurface(rec, pan.WithTuning(cfg.Tuning())),
		outputChan: make(chan []byte, 2),
		now:        now,
	}

	e.mutex.Lock()
	e.generateOutput()
	e.mutex.Unlock()

	return e
}

func (e *engine) Output() <-chan []byte {
	return e.outputChan
}

func (e *engine) Center() image.Point {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.surface.ScrollCenter()
}

func (e *engine) SetCenter(p image.Point) {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	e.surface.SetScrollCenter(p)
	e.generateOutput()
}

// Start advances running flings once per frame until the context is done.
func (e *engine) Start() {
	ticker := time.NewTicker(frameInterval)
	defer func() {
		ticker.Stop()
		e.mutex.Lock()
		e.closed = true
		close(e.outputChan)
		e.mutex.Unlock()
	}()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

func (e *engine) SubmitMessage(b []byte) error {
	msg, err := protocol.DecodeClientMessage(b)
	if err != nil {
		return fmt.Errorf("decode error: %w", err)
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	switch t := msg.(type) {
	case *protocol.Pointer:
		e.handlePointer(t)
	case *protocol.Cancel:
		e.surface.Cancel()
	case *protocol.Key:
		err = e.handleKey(t)
	case *protocol.Trackball:
		e.surface.Trackball(t.X, t.Y, t.Precision, t.Precision)
	case *protocol.Resize:
		e.surface.SetViewport(int(t.Width), int(t.Height))
	case *protocol.Center:
		e.surface.SetScrollCenter(image.Pt(int(t.X), int(t.Y)))
	}

	if err != nil {
		return fmt.Errorf("handle message error: %w", err)
	}

	e.generateOutput()

	return nil
}

func (e *engine) tick() {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	if !e.surface.Flinging() {
		return
	}
	e.surface.Tick(e.now())
	e.generateOutput()
}

func (e *engine) handlePointer(p *protocol.Pointer) {
	t := e.clientTime(p.Time)
	switch p.Action {
	case protocol.Press:
		e.surface.Press(p.X, p.Y, t)
	case protocol.Move:
		e.surface.Move(p.X, p.Y, t)
	case protocol.Release:
		e.surface.Release(p.X, p.Y, t)
	}
}

func (e *engine) handleKey(k *protocol.Key) error {
	var handled bool
	if k.Down {
		handled = e.surface.KeyDown(pan.Key(k.Code), e.clientTime(k.Time))
	} else {
		handled = e.surface.KeyUp(pan.Key(k.Code))
	}
	if !handled {
		return errors.New("unsupported key")
	}
	return nil
}

// clientTime maps client milliseconds onto the server clock. The first
// timestamped message fixes the offset between the two.
func (e *engine) clientTime(ms uint32) time.Time {
	d := time.Duration(ms) * time.Millisecond
	if !e.synced {
		e.epoch = e.now().Add(-d)
		e.synced = true
	}
	return e.epoch.Add(d)
}

// generateOutput must be called with the mutex held. It does nothing once
// Start has closed the output channel.
func (e *engine) generateOutput() {
	if e.closed {
		return
	}
	e.surface.Draw()
	offset := e.recorder.visible.Min
	content := e.surface.Content()
	viewport := e.surface.Viewport()

	e.output.OffsetX = uint32(offset.X)
	e.output.OffsetY = uint32(offset.Y)
	e.output.ContentWidth = uint32(content.X)
	e.output.ContentHeight = uint32(content.Y)
	e.output.ViewportWidth = uint16(viewport.X)
	e.output.ViewportHeight = uint16(viewport.Y)
	e.output.Phase = uint8(e.surface.Phase())
	e.output.Snap = uint8(e.surface.Snap())
	e.output.Flinging = e.surface.Flinging()
	e.output.Ready = content.X > 0 && content.Y > 0

	encodeSize := e.output.EncodeSize()
	if uint32(cap(e.encodeBuffer)) < encodeSize {
		e.encodeBuffer = make([]byte, encodeSize)
	}
	e.encodeBuffer = e.encodeBuffer[:encodeSize]
	e.output.Encode(e.encodeBuffer)
	out := append([]byte(nil), e.encodeBuffer...)

	select {
	case e.outputChan <- out:
	default:
		log.Println("dropping frame, output channel full")
	}
}
