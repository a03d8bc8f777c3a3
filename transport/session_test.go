package transport_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uchroma/uchromad/transport"
)

type mockHandle struct {
	mu          sync.Mutex
	closed      bool
	closeCount  int
	writeErr    error
	readErr     error
	lastWritten []byte
	readData    []byte
}

func (m *mockHandle) SendFeatureReport(b []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.lastWritten = append([]byte(nil), b...)
	return len(b), nil
}

func (m *mockHandle) GetFeatureReport(b []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return 0, m.readErr
	}
	n := copy(b, m.readData)
	return n, nil
}

func (m *mockHandle) Write(b []byte) (int, error) { return len(b), nil }

func (m *mockHandle) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.closeCount++
	return nil
}

func newOpener(h *mockHandle) (transport.Opener, *int) {
	calls := 0
	return func() (transport.Handle, error) {
		calls++
		return h, nil
	}, &calls
}

func TestSession_ClosesImmediatelyWithoutDeferClose(t *testing.T) {
	h := &mockHandle{readData: make([]byte, 90)}
	open, _ := newOpener(h)
	s := transport.New(open, nil, nil)

	require.NoError(t, s.WriteFeature(context.Background(), []byte{1, 2, 3}))
	assert.True(t, h.closed, "handle should close after a request when defer_close is false")
}

func TestSession_DeferCloseKeepsHandleOpenUntilIdle(t *testing.T) {
	h := &mockHandle{readData: make([]byte, 90)}
	open, calls := newOpener(h)
	s := transport.New(open, nil, nil)
	s.SetDeferClose(true)
	s.SetIdleTimeout(30 * time.Millisecond)

	require.NoError(t, s.WriteFeature(context.Background(), []byte{1}))
	assert.False(t, h.closed)
	_, err := s.ReadFeature(context.Background(), 0x00, 90)
	require.NoError(t, err)
	assert.False(t, h.closed, "handle must stay open across the burst")
	assert.Equal(t, 1, *calls, "handle should be opened once for the whole burst")

	time.Sleep(60 * time.Millisecond)
	assert.True(t, h.closed, "idle timer should close the handle after the timeout")
}

func TestSession_SetDeferCloseFalseClosesImmediately(t *testing.T) {
	h := &mockHandle{readData: make([]byte, 90)}
	open, _ := newOpener(h)
	s := transport.New(open, nil, nil)
	s.SetDeferClose(true)
	require.NoError(t, s.WriteFeature(context.Background(), []byte{1}))
	assert.False(t, h.closed)

	s.SetDeferClose(false)
	assert.True(t, h.closed, "disabling defer_close must close the handle")
}

func TestSession_WriteErrorClosesHandle(t *testing.T) {
	h := &mockHandle{writeErr: errors.New("boom")}
	open, _ := newOpener(h)
	s := transport.New(open, nil, nil)
	s.SetDeferClose(true)

	err := s.WriteFeature(context.Background(), []byte{1})
	require.Error(t, err)
	var ioErr *transport.IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.True(t, h.closed)
}
