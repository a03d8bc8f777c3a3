package headset_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uchroma/uchromad/headset"
	"github.com/uchroma/uchromad/led"
	"github.com/uchroma/uchromad/transport"
)

type memHandle struct {
	lastReq []byte
	ram     map[uint16][]byte
}

func newMemHandle() *memHandle { return &memHandle{ram: map[uint16][]byte{}} }

func (h *memHandle) SendFeatureReport(b []byte) (int, error) {
	h.lastReq = append([]byte(nil), b...)
	dest := h.lastReq[0]
	length := int(h.lastReq[1])
	addr := uint16(h.lastReq[2])<<8 | uint16(h.lastReq[3])
	if dest == byte(headset.WriteRAM) {
		h.ram[addr] = append([]byte(nil), h.lastReq[4:4+length]...)
	}
	return len(b), nil
}

func (h *memHandle) GetFeatureReport(b []byte) (int, error) {
	length := int(h.lastReq[1])
	addr := uint16(h.lastReq[2])<<8 | uint16(h.lastReq[3])
	resp := make([]byte, headset.InSize)
	resp[0] = headset.InReportID
	copy(resp[1:], h.ram[addr])
	_ = length
	return copy(b, resp), nil
}

func (h *memHandle) Write(b []byte) (int, error) { return len(b), nil }
func (h *memHandle) Close() error                { return nil }

func newTestHeadset(rev headset.Revision) (*headset.Headset, *memHandle) {
	h := newMemHandle()
	sess := transport.New(func() (transport.Handle, error) { return h, nil }, nil, nil)
	return headset.New(sess, rev), h
}

func TestColorCount(t *testing.T) {
	assert.Equal(t, 0, headset.ColorCount(0))
	assert.Equal(t, 1, headset.ColorCount(headset.BitOn))
	assert.Equal(t, 1, headset.ColorCount(headset.BitBreatheSingle))
	assert.Equal(t, 2, headset.ColorCount(headset.BitBreatheDouble))
	assert.Equal(t, 3, headset.ColorCount(headset.BitBreatheTriple))
}

func TestSetMode_KylieRoundTrip(t *testing.T) {
	hs, _ := newTestHeadset(headset.Kylie)
	require.NoError(t, hs.SetMode(context.Background(), headset.BitOn|headset.BitBreatheDouble))
	mode, err := hs.Mode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, headset.BitOn|headset.BitBreatheDouble, mode)
}

func TestSetColors_WritesSingleContiguousTable(t *testing.T) {
	hs, mock := newTestHeadset(headset.Kylie)
	require.NoError(t, hs.SetMode(context.Background(), headset.BitBreatheDouble))

	require.NoError(t, hs.SetColors(context.Background(), []led.RGB{{R: 1}, {G: 2}, {B: 3}}, 50))

	assert.NotContains(t, mock.ram, uint16(0x1741), "a 2-color set writes KYLIE_SET_RGB_2, not RGB_1")
	require.Contains(t, mock.ram, uint16(0x1745))
	assert.NotContains(t, mock.ram, uint16(0x174D))

	level := led.ScaleUp(50)
	assert.Equal(t, []byte{1, 0, 0, level, 0, 2, 0, level}, mock.ram[0x1745])
}

func TestSetBrightness_RewritesBrightnessByteInOneWrite(t *testing.T) {
	hs, mock := newTestHeadset(headset.Kylie)
	require.NoError(t, hs.SetMode(context.Background(), headset.BitBreatheSingle))
	require.NoError(t, hs.SetColors(context.Background(), []led.RGB{{R: 10, G: 20, B: 30}}, 10))

	require.NoError(t, hs.SetBrightness(context.Background(), 100))

	entry := mock.ram[0x1741]
	require.Len(t, entry, 4)
	assert.Equal(t, byte(10), entry[0])
	assert.Equal(t, byte(20), entry[1])
	assert.Equal(t, byte(30), entry[2])
	assert.Equal(t, byte(255), entry[3])
}
