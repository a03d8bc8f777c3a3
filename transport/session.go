// Package transport owns the HID device handle and serializes the
// feature-report write+read exchanges that the report runner issues.
package transport

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/uchroma/uchromad/internal/log"
)

// DefaultIdleTimeout is how long a deferred-close handle stays open with no
// activity before it is closed automatically.
const DefaultIdleTimeout = 5 * time.Second

// Handle is the minimal surface a transport needs from an open HID device.
// *github.com/karalabe/hid.Device satisfies this.
type Handle interface {
	SendFeatureReport(b []byte) (int, error)
	GetFeatureReport(b []byte) (int, error)
	Write(b []byte) (int, error)
	Close() error
}

// Opener opens a fresh Handle on demand; Session calls it lazily and again
// whenever the handle needs to be reopened after an idle close.
type Opener func() (Handle, error)

// IOError wraps any failure surfaced by the underlying HID handle.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("transport: %s: %v", e.Op, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// NotOpenError is returned when an operation is attempted with no handle and
// opening a fresh one failed.
type NotOpenError struct{ Err error }

func (e *NotOpenError) Error() string { return fmt.Sprintf("transport: not open: %v", e.Err) }
func (e *NotOpenError) Unwrap() error { return e.Err }

// Session serializes all feature-report exchanges for one device and
// implements the defer_close idle-timeout semantics of spec.md §4.2.
type Session struct {
	open   Opener
	logger *slog.Logger
	raw    log.RawLogger

	mu         sync.Mutex
	handle     Handle
	deferClose bool
	idleAfter  time.Duration
	idleTimer  *time.Timer
}

// New returns a Session that opens handles on demand via open.
func New(open Opener, logger *slog.Logger, raw log.RawLogger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Session{open: open, logger: logger, raw: raw, idleAfter: DefaultIdleTimeout}
}

// SetDeferClose toggles whether the handle is kept open between requests.
// Callers starting an animation set this true; it is reset to false when the
// animation stops.
func (s *Session) SetDeferClose(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deferClose = v
	if !v {
		s.closeLocked()
	}
}

// SetIdleTimeout overrides the default 5s idle-close timeout (tests only
// need something shorter than 5s to be practical).
func (s *Session) SetIdleTimeout(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idleAfter = d
}

func (s *Session) ensureOpenLocked() error {
	if s.handle != nil {
		return nil
	}
	h, err := s.open()
	if err != nil {
		return &NotOpenError{Err: err}
	}
	s.handle = h
	return nil
}

func (s *Session) closeLocked() {
	if s.idleTimer != nil {
		s.idleTimer.Stop()
		s.idleTimer = nil
	}
	if s.handle != nil {
		_ = s.handle.Close()
		s.handle = nil
	}
}

func (s *Session) touchIdleTimerLocked() {
	if !s.deferClose {
		return
	}
	if s.idleTimer == nil {
		s.idleTimer = time.AfterFunc(s.idleAfter, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.closeLocked()
		})
		return
	}
	s.idleTimer.Reset(s.idleAfter)
}

// WriteFeature sends an outbound feature report and honors the deferred or
// immediate close policy on completion.
func (s *Session) WriteFeature(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return err
	}
	s.raw.Log(false, data)
	if _, err := s.handle.SendFeatureReport(data); err != nil {
		s.closeLocked()
		return &IOError{Op: "send_feature_report", Err: err}
	}
	if s.deferClose {
		s.touchIdleTimerLocked()
	} else {
		s.closeLocked()
	}
	return nil
}

// ReadFeature reads size bytes of an inbound feature report.
func (s *Session) ReadFeature(ctx context.Context, reportID byte, size int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpenLocked(); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	buf[0] = reportID
	n, err := s.handle.GetFeatureReport(buf)
	if err != nil {
		s.closeLocked()
		return nil, &IOError{Op: "get_feature_report", Err: err}
	}
	if n < len(buf) {
		buf = buf[:n]
	}
	s.raw.Log(true, buf)

	if s.deferClose {
		s.touchIdleTimerLocked()
	} else {
		s.closeLocked()
	}
	return buf, nil
}

// Close releases the handle unconditionally, regardless of defer_close.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	return nil
}
