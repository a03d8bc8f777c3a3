// Package anim implements the animation manager: the fixed-rate loop that
// drives renderers, composites their layers, and flips the device frame
// buffer.
package anim

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/uchroma/uchromad/frame"
	"github.com/uchroma/uchromad/layer"
)

// DefaultFPS is the animation loop's default target rate.
const DefaultFPS = 15

// State is the animation manager's lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return "idle"
	}
}

// Renderer produces pixels into a layer once per animation frame.
type Renderer interface {
	Init(width, height, fps int, args map[string]any) bool
	Draw(l *layer.Layer, timestamp time.Time) bool
	Finish()
}

// RendererInitError is returned when add_renderer's Init call returns false.
type RendererInitError struct{ Name string }

func (e *RendererInitError) Error() string {
	return fmt.Sprintf("anim: renderer %q failed to initialize", e.Name)
}

// NotRunningError is returned by Stop when the manager is already idle.
type NotRunningError struct{}

func (e *NotRunningError) Error() string { return "anim: not running" }

// NoRenderersError is returned by Start with zero renderers added.
type NoRenderersError struct{}

func (e *NoRenderersError) Error() string { return "anim: start requires at least one renderer" }

type entry struct {
	name     string
	renderer Renderer
	layer    *layer.Layer
	zOrder   int
}

// DeferCloseSetter lets Manager flip the owning transport.Session's
// defer_close flag without importing the device package (would cycle).
type DeferCloseSetter interface {
	SetDeferClose(bool)
}

// Manager runs the layered-compositor animation loop against one device's
// frame buffer.
type Manager struct {
	mu       sync.Mutex
	buf      *frame.Buffer
	logger   *slog.Logger
	fps      int
	entries  []entry
	nextZ    int
	state    State
	cancel   context.CancelFunc
	done     chan struct{}
	deferSet DeferCloseSetter
}

// New returns a Manager that renders onto buf.
func New(buf *frame.Buffer, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{buf: buf, logger: logger, fps: DefaultFPS}
}

// SetDeferCloseSetter wires the transport session whose defer_close flag
// should track the loop's running state.
func (m *Manager) SetDeferCloseSetter(s DeferCloseSetter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deferSet = s
}

// SetFPS overrides the default 15fps loop rate. Only valid while idle.
func (m *Manager) SetFPS(fps int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fps > 0 {
		m.fps = fps
	}
}

// State returns the manager's current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// AddRenderer instantiates a renderer, assigns it the next z-order, and
// calls Init. On failure the renderer is not retained.
func (m *Manager) AddRenderer(name string, r Renderer, args map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	height, width := 0, 0
	if m.buf != nil {
		height, width = m.buf.Dims()
	}
	if !r.Init(width, height, m.fps, args) {
		return &RendererInitError{Name: name}
	}
	l := layer.New(height, width)
	l.ZOrder = m.nextZ
	m.nextZ++
	m.entries = append(m.entries, entry{name: name, renderer: r, layer: l, zOrder: l.ZOrder})
	return nil
}

// ClearRenderers stops the loop if running and drops every renderer.
func (m *Manager) ClearRenderers(ctx context.Context) error {
	if m.State() == Running {
		if err := m.Stop(ctx); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	m.nextZ = 0
	return nil
}

// Start begins the animation loop. Requires at least one renderer.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	if len(m.entries) == 0 {
		m.mu.Unlock()
		return &NoRenderersError{}
	}
	if m.state != Idle {
		m.mu.Unlock()
		return fmt.Errorf("anim: already %s", m.state)
	}
	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	m.state = Running
	if m.deferSet != nil {
		m.deferSet.SetDeferClose(true)
	}
	fps := m.fps
	m.mu.Unlock()

	go m.loop(loopCtx, fps)
	return nil
}

// Stop cancels the loop and waits for it to finish tearing down every
// renderer.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if m.state == Idle {
		m.mu.Unlock()
		return &NotRunningError{}
	}
	m.state = Stopping
	cancel := m.cancel
	done := m.done
	m.mu.Unlock()

	cancel()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (m *Manager) snapshotEntries() []entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entry, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m *Manager) finishAndReset() {
	for _, e := range m.snapshotEntries() {
		e.renderer.Finish()
	}
	m.mu.Lock()
	m.state = Idle
	if m.deferSet != nil {
		m.deferSet.SetDeferClose(false)
	}
	close(m.done)
	m.mu.Unlock()
}

// loop runs the fixed-rate render/composite/flip cycle until ctx is
// cancelled, per spec.md §4.8.
func (m *Manager) loop(ctx context.Context, fps int) {
	defer m.finishAndReset()

	period := time.Second / time.Duration(fps)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		t0 := time.Now()
		entries := m.snapshotEntries()

		canvas := layer.New(0, 0)
		if m.buf != nil {
			h, w := m.buf.Dims()
			canvas = layer.New(h, w)
		}

		for _, e := range entries {
			if !e.renderer.Draw(e.layer, t0) {
				continue
			}
		}

		for _, e := range entries {
			layer.CompositeOver(canvas, e.layer)
		}

		if m.buf != nil {
			m.paintFrame(canvas)
			if err := m.buf.Flip(ctx, false, 0xFF); err != nil {
				m.logger.Error("animation flip failed", "err", err)
				return
			}
		}

		elapsed := time.Since(t0)
		sleep := period - elapsed
		if sleep < 0 {
			sleep %= period
			if sleep < 0 {
				sleep += period
			}
		}
		select {
		case <-time.After(sleep):
		case <-ctx.Done():
			return
		}
	}
}

func (m *Manager) paintFrame(canvas *layer.Layer) {
	h, w := canvas.Dims()
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			px := canvas.At(r, c)
			m.buf.Put(r, c, rgbaToRGB(px))
		}
	}
}
