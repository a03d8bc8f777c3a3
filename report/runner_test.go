package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uchroma/uchromad/protocol"
	"github.com/uchroma/uchromad/report"
	"github.com/uchroma/uchromad/transport"
)

type scriptedHandle struct {
	responses [][]byte
	idx       int
	requests  [][]byte
}

func (h *scriptedHandle) SendFeatureReport(b []byte) (int, error) {
	h.requests = append(h.requests, append([]byte(nil), b...))
	return len(b), nil
}

func (h *scriptedHandle) GetFeatureReport(b []byte) (int, error) {
	resp := h.responses[h.idx]
	if h.idx < len(h.responses)-1 {
		h.idx++
	}
	n := copy(b, resp)
	return n, nil
}

func (h *scriptedHandle) Write(b []byte) (int, error) { return len(b), nil }
func (h *scriptedHandle) Close() error                { return nil }

func buildResponse(req []byte, status protocol.Status, payload []byte) []byte {
	buf := make([]byte, protocol.Size)
	copy(buf, req)
	buf[0] = byte(status)
	buf[5] = byte(len(payload))
	copy(buf[8:], payload)
	var c byte
	for _, b := range buf[2:88] {
		c ^= b
	}
	buf[88] = c
	return buf
}

func TestRunner_GetFirmwareVersion(t *testing.T) {
	cmd := protocol.Command{Class: 0x00, ID: 0x81, DataSize: 2, Name: "get_firmware_version"}
	reqArgs := protocol.NewArgs(0)
	req := protocol.Request{Command: cmd, TransactionID: 0xFF, Payload: reqArgs.Bytes()}
	reqBuf, err := req.Pack()
	require.NoError(t, err)

	h := &scriptedHandle{responses: [][]byte{buildResponse(reqBuf, protocol.StatusOK, []byte{1, 5})}}
	sess := transport.New(func() (transport.Handle, error) { return h, nil }, nil, nil)
	runner := report.New(sess, nil)

	payload, err := runner.Run(context.Background(), cmd, nil, report.Options{Wait: time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 5}, payload)
}

func TestRunner_RetriesOnBusyThenSucceeds(t *testing.T) {
	cmd := protocol.Command{Class: 0x03, ID: 0x0A, DataSize: -1, Name: "set_effect"}
	req := protocol.Request{Command: cmd, TransactionID: 0xFF}
	reqBuf, _ := req.Pack()

	h := &scriptedHandle{responses: [][]byte{
		buildResponse(reqBuf, protocol.StatusBusy, nil),
		buildResponse(reqBuf, protocol.StatusOK, nil),
	}}
	sess := transport.New(func() (transport.Handle, error) { return h, nil }, nil, nil)
	runner := report.New(sess, nil)

	_, err := runner.Run(context.Background(), cmd, nil, report.Options{Wait: time.Millisecond})
	require.NoError(t, err)
	assert.Len(t, h.requests, 2)
}

func TestRunner_TimeoutInvokesCallback(t *testing.T) {
	cmd := protocol.Command{Class: 0x07, ID: 0x83, DataSize: 1, Name: "get_battery"}
	req := protocol.Request{Command: cmd, TransactionID: 0xFF}
	reqBuf, _ := req.Pack()

	h := &scriptedHandle{responses: [][]byte{buildResponse(reqBuf, protocol.StatusTimeout, nil)}}
	sess := transport.New(func() (transport.Handle, error) { return h, nil }, nil, nil)
	runner := report.New(sess, nil)

	var offline bool
	_, err := runner.Run(context.Background(), cmd, nil, report.Options{
		Wait:      time.Millisecond,
		OnTimeout: func() { offline = true },
	})
	require.Error(t, err)
	var offErr *report.OfflineError
	assert.ErrorAs(t, err, &offErr)
	assert.True(t, offline)
}

func TestRunner_FailMapsToDeviceError(t *testing.T) {
	cmd := protocol.Command{Class: 0x03, ID: 0x0A, DataSize: -1, Name: "set_effect"}
	req := protocol.Request{Command: cmd, TransactionID: 0xFF}
	reqBuf, _ := req.Pack()

	h := &scriptedHandle{responses: [][]byte{buildResponse(reqBuf, protocol.StatusFail, nil)}}
	sess := transport.New(func() (transport.Handle, error) { return h, nil }, nil, nil)
	runner := report.New(sess, nil)

	_, err := runner.Run(context.Background(), cmd, nil, report.Options{Wait: time.Millisecond})
	var devErr *report.DeviceError
	assert.ErrorAs(t, err, &devErr)
}
