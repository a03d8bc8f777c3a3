package device_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uchroma/uchromad/device"
	"github.com/uchroma/uchromad/led"
	"github.com/uchroma/uchromad/protocol"
	"github.com/uchroma/uchromad/quirk"
	"github.com/uchroma/uchromad/transport"
)

// echoHandle answers every read with an OK status echoing whatever was
// just written, so Device methods can be exercised without a real HID bus.
type echoHandle struct {
	lastReq []byte
}

func (h *echoHandle) SendFeatureReport(b []byte) (int, error) {
	h.lastReq = append([]byte(nil), b...)
	return len(b), nil
}

func (h *echoHandle) GetFeatureReport(b []byte) (int, error) {
	resp := make([]byte, protocol.Size)
	copy(resp, h.lastReq)
	resp[0] = byte(protocol.StatusOK)
	var c byte
	for _, bb := range resp[2:88] {
		c ^= bb
	}
	resp[88] = c
	return copy(b, resp), nil
}

func (h *echoHandle) Write(b []byte) (int, error) { return len(b), nil }
func (h *echoHandle) Close() error                { return nil }

func newTestDevice(t *testing.T) (*device.Device, *echoHandle) {
	t.Helper()
	h := &echoHandle{}
	sess := transport.New(func() (transport.Handle, error) { return h, nil }, nil, nil)
	d := device.New(device.Descriptor{Name: "test", Type: device.Mouse}, sess, nil)
	return d, h
}

func TestReactive_RejectsOutOfRangeSpeed(t *testing.T) {
	d, h := newTestDevice(t)

	err := d.Reactive(context.Background(), 0, led.RGB{})
	require.Error(t, err)
	var badArg *device.BadArgumentError
	assert.ErrorAs(t, err, &badArg)
	assert.Nil(t, h.lastReq, "no I/O should happen for a rejected argument")

	err = d.Reactive(context.Background(), 5, led.RGB{})
	assert.ErrorAs(t, err, &badArg)

	err = d.Reactive(context.Background(), 2, led.RGB{R: 1})
	assert.NoError(t, err)
}

func TestSetIdleTime_ClampsToValidRange(t *testing.T) {
	d, h := newTestDevice(t)

	require.NoError(t, d.SetIdleTime(context.Background(), 30))
	assert.Equal(t, byte(60), h.lastReq[8])
	assert.Equal(t, byte(0), h.lastReq[9])

	require.NoError(t, d.SetIdleTime(context.Background(), 5000))
	assert.Equal(t, byte(900&0xFF), h.lastReq[8])
	assert.Equal(t, byte(900>>8), h.lastReq[9])
}

func TestSetLowBatteryThreshold_MapsPercentToNativeRange(t *testing.T) {
	d, h := newTestDevice(t)

	require.NoError(t, d.SetLowBatteryThreshold(context.Background(), 5))
	assert.Equal(t, byte(0x0C), h.lastReq[8])

	require.NoError(t, d.SetLowBatteryThreshold(context.Background(), 25))
	assert.Equal(t, byte(0x3F), h.lastReq[8])
}

func TestStarlight_ModeByteReflectsColorCount(t *testing.T) {
	d, h := newTestDevice(t)

	require.NoError(t, d.Starlight(context.Background(), 2))
	assert.Equal(t, byte(0), h.lastReq[9], "no colors -> random")

	require.NoError(t, d.Starlight(context.Background(), 2, led.RGB{R: 1}))
	assert.Equal(t, byte(1), h.lastReq[9], "one color -> single")

	require.NoError(t, d.Starlight(context.Background(), 2, led.RGB{R: 1}, led.RGB{G: 1}))
	assert.Equal(t, byte(2), h.lastReq[9], "two colors -> dual")
}

func TestStatic_ScenarioFromSpec(t *testing.T) {
	d, h := newTestDevice(t)

	require.NoError(t, d.Static(context.Background(), led.RGB{R: 0xFF}))
	assert.Equal(t, byte(0x06), h.lastReq[8], "static effect code")
	assert.Equal(t, []byte{0xFF, 0x00, 0x00}, h.lastReq[9:12])
}

func TestDisable(t *testing.T) {
	d, _ := newTestDevice(t)
	require.NoError(t, d.Disable(context.Background()))
}

func TestFirmwareVersion(t *testing.T) {
	d, _ := newTestDevice(t)
	v, err := d.FirmwareVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v0.0", v)
}

func TestIsOffline_SetByTimeoutOnWirelessDevices(t *testing.T) {
	h := &echoHandle{}
	sess := transport.New(func() (transport.Handle, error) { return h, nil }, nil, nil)
	d := device.New(device.Descriptor{Name: "wireless-mouse", Type: device.Mouse, IsWireless: true}, sess, nil)

	assert.False(t, d.IsOffline())

	// Force a timeout response instead of the echoHandle's default OK.
	timeoutHandle := &timeoutOnceHandle{}
	sess2 := transport.New(func() (transport.Handle, error) { return timeoutHandle, nil }, nil, nil)
	d2 := device.New(device.Descriptor{Name: "wireless-mouse", Type: device.Mouse, IsWireless: true}, sess2, nil)

	err := d2.Disable(context.Background())
	require.Error(t, err)
	assert.True(t, d2.IsOffline())
}

type timeoutOnceHandle struct{ lastReq []byte }

func (h *timeoutOnceHandle) SendFeatureReport(b []byte) (int, error) {
	h.lastReq = append([]byte(nil), b...)
	return len(b), nil
}

func (h *timeoutOnceHandle) GetFeatureReport(b []byte) (int, error) {
	resp := make([]byte, protocol.Size)
	copy(resp, h.lastReq)
	resp[0] = byte(protocol.StatusTimeout)
	resp[5] = 0
	var c byte
	for _, bb := range resp[2:88] {
		c ^= bb
	}
	resp[88] = c
	return copy(b, resp), nil
}

func (h *timeoutOnceHandle) Write(b []byte) (int, error) { return len(b), nil }
func (h *timeoutOnceHandle) Close() error                { return nil }

func TestSetFX_DispatchesByNameAndTracksCurrentFX(t *testing.T) {
	d, h := newTestDevice(t)

	assert.Equal(t, "", d.CurrentFX())

	require.NoError(t, d.SetFX(context.Background(), "static", map[string]any{"color": led.RGB{R: 0xFF}}))
	assert.Equal(t, byte(0x06), h.lastReq[8])
	assert.Equal(t, "static", d.CurrentFX())

	require.NoError(t, d.SetFX(context.Background(), "reactive", map[string]any{"speed": 3, "color": led.RGB{G: 1}}))
	assert.Equal(t, "reactive", d.CurrentFX())

	err := d.SetFX(context.Background(), "nonexistent", nil)
	var badArg *device.BadArgumentError
	assert.ErrorAs(t, err, &badArg)
	assert.Equal(t, "reactive", d.CurrentFX(), "failed dispatch leaves current_fx unchanged")
}

func TestBrightness_ProxiesThroughQuirkedLED(t *testing.T) {
	h := &echoHandle{}
	sess := transport.New(func() (transport.Handle, error) { return h, nil }, nil, nil)
	d := device.New(device.Descriptor{Name: "mamba", Type: device.Mouse, Quirks: quirk.ScrollWheelBrightness}, sess, nil)

	require.NoError(t, d.SetBrightness(context.Background(), 50))
	assert.Equal(t, byte(led.ScrollWheel), h.lastReq[9], "proxied through scroll-wheel LED id")
}

func TestBrightness_LaptopUsesBladeBrightness(t *testing.T) {
	h := &echoHandle{}
	sess := transport.New(func() (transport.Handle, error) { return h, nil }, nil, nil)
	d := device.New(device.Descriptor{Name: "blade", Type: device.Laptop}, sess, nil)

	require.NoError(t, d.SetBrightness(context.Background(), 80))
	assert.Equal(t, byte(0x0E), h.lastReq[6], "blade-brightness command class")
	assert.Equal(t, byte(0x04), h.lastReq[7], "blade-brightness command id")
}
