// Package headset implements the differently-framed wireless-headset
// variant: RAM/EEPROM address read/write instead of the standard class/id
// command codec.
package headset

import (
	"context"
	"fmt"
	"time"

	"github.com/uchroma/uchromad/led"
	"github.com/uchroma/uchromad/transport"
)

// OutSize and InSize are the headset's own, non-standard report sizes.
const (
	OutSize = 37
	InSize  = 33

	OutReportID byte = 0x04
	InReportID  byte = 0x05
)

// Destination selects which address space a headset command targets.
type Destination byte

const (
	ReadRAM    Destination = 0x00
	ReadEEPROM Destination = 0x20
	WriteRAM   Destination = 0x40
)

// InterCommandDelay is the mandatory settle time between headset commands.
const InterCommandDelay = 25 * time.Millisecond

// Revision distinguishes the two known hardware generations, which place
// their LED state and color tables at different addresses.
type Revision int

const (
	Rainie Revision = iota // v1
	Kylie                  // v2
)

// addressTable holds one revision's fixed addresses.
type addressTable struct {
	ledMode          uint16
	breathingStart   [3]uint16
}

var tables = map[Revision]addressTable{
	Rainie: {
		ledMode:        0x1008,
		breathingStart: [3]uint16{0x15DE, 0, 0},
	},
	Kylie: {
		ledMode:        0x172D,
		breathingStart: [3]uint16{0x1741, 0x1745, 0x174D},
	},
}

// Headset is a wireless-headset device using the RAM/EEPROM address-based
// framing instead of the standard class/id command codec.
type Headset struct {
	session  *transport.Session
	revision Revision
}

// New returns a Headset bound to session using the addresses of revision.
func New(session *transport.Session, revision Revision) *Headset {
	return &Headset{session: session, revision: revision}
}

func (h *Headset) addrs() addressTable { return tables[h.revision] }

// pack builds the 37-byte outbound frame: {destination, length, address_hi,
// address_lo, payload...}.
func pack(dest Destination, addr uint16, payload []byte) ([]byte, error) {
	if len(payload) > OutSize-4 {
		return nil, fmt.Errorf("headset: payload of %d bytes exceeds max %d", len(payload), OutSize-4)
	}
	buf := make([]byte, OutSize)
	buf[0] = byte(dest)
	buf[1] = byte(len(payload))
	buf[2] = byte(addr >> 8)
	buf[3] = byte(addr)
	copy(buf[4:], payload)
	return buf, nil
}

// exchange performs one write+read headset command, enforcing the mandatory
// inter-command delay before returning.
func (h *Headset) exchange(ctx context.Context, dest Destination, addr uint16, payload []byte) ([]byte, error) {
	defer func() {
		select {
		case <-time.After(InterCommandDelay):
		case <-ctx.Done():
		}
	}()

	req, err := pack(dest, addr, payload)
	if err != nil {
		return nil, err
	}
	if err := h.session.WriteFeature(ctx, req); err != nil {
		return nil, err
	}
	resp, err := h.session.ReadFeature(ctx, InReportID, InSize)
	if err != nil {
		return nil, err
	}
	length := int(req[1])
	if 1+length > len(resp) {
		return nil, fmt.Errorf("headset: response too short for length %d", length)
	}
	return resp[1 : 1+length], nil
}

// readRAM reads n bytes starting at addr from RAM.
func (h *Headset) readRAM(ctx context.Context, addr uint16, n int) ([]byte, error) {
	return h.exchange(ctx, ReadRAM, addr, make([]byte, n))
}

// writeRAM writes data starting at addr.
func (h *Headset) writeRAM(ctx context.Context, addr uint16, data []byte) error {
	_, err := h.exchange(ctx, WriteRAM, addr, data)
	return err
}

// EffectBits is the LED-mode bitfield at ADDR_*_LED_MODE.
type EffectBits byte

const (
	BitOn EffectBits = 1 << iota
	BitBreatheSingle
	BitSpectrum
	BitSync
	BitBreatheDouble
	BitBreatheTriple
)

func (b EffectBits) has(bit EffectBits) bool { return b&bit != 0 }

// ColorCount returns how many breathing-color table entries are active for
// the given LED mode bits, per spec.md §4.5.
func ColorCount(bits EffectBits) int {
	switch {
	case bits.has(BitBreatheTriple):
		return 3
	case bits.has(BitBreatheDouble):
		return 2
	case bits.has(BitBreatheSingle) || bits.has(BitOn):
		return 1
	default:
		return 0
	}
}

// Mode reads the current LED-mode bitfield.
func (h *Headset) Mode(ctx context.Context) (EffectBits, error) {
	payload, err := h.readRAM(ctx, h.addrs().ledMode, 1)
	if err != nil {
		return 0, err
	}
	if len(payload) < 1 {
		return 0, nil
	}
	return EffectBits(payload[0]), nil
}

// SetMode writes the LED-mode bitfield.
func (h *Headset) SetMode(ctx context.Context, bits EffectBits) error {
	return h.writeRAM(ctx, h.addrs().ledMode, []byte{byte(bits)})
}

const breathingEntryStride = 4

// SetColors reads the LED mode, and writes only the breathing-color table
// matching its active color count (1..3 entries of stride-4
// (r,g,b,brightness)) as a single contiguous write to KYLIE_SET_RGB_N (or
// RAINIE_SET_RGB for a single color), per starts[count-1]. Colors beyond the
// active count are ignored; fewer colors than the active count is rejected.
// Nothing is written when no color is active or the revision has no table
// for the active count.
func (h *Headset) SetColors(ctx context.Context, colors []led.RGB, brightness int) error {
	starts := h.addrs().breathingStart
	bits, err := h.Mode(ctx)
	if err != nil {
		return err
	}
	count := ColorCount(bits)
	if count == 0 || starts[count-1] == 0 {
		return nil
	}
	if len(colors) < count {
		return &led.BadArgumentError{Field: "colors", Value: len(colors)}
	}
	colors = colors[:count]

	level := led.ScaleUp(brightness)
	payload := make([]byte, 0, count*breathingEntryStride)
	for _, c := range colors {
		payload = append(payload, c.R, c.G, c.B, level)
	}
	if err := h.writeRAM(ctx, starts[count-1], payload); err != nil {
		return fmt.Errorf("headset: write color table: %w", err)
	}
	return nil
}

// SetBrightness reads back the currently-active breathing-table entry,
// rewrites only each sub-entry's brightness byte, and writes the whole
// table back in a single contiguous write, leaving colors untouched.
func (h *Headset) SetBrightness(ctx context.Context, pct int) error {
	if err := led.ValidateBrightness(pct); err != nil {
		return err
	}
	bits, err := h.Mode(ctx)
	if err != nil {
		return err
	}
	count := ColorCount(bits)
	if count == 0 {
		return nil
	}
	starts := h.addrs().breathingStart
	if starts[count-1] == 0 {
		return nil
	}

	data, err := h.readRAM(ctx, starts[count-1], count*breathingEntryStride)
	if err != nil {
		return fmt.Errorf("headset: read color table: %w", err)
	}
	if len(data) < count*breathingEntryStride {
		return fmt.Errorf("headset: short color table response")
	}

	level := led.ScaleUp(pct)
	for i := 0; i < count; i++ {
		data[i*breathingEntryStride+breathingEntryStride-1] = level
	}
	if err := h.writeRAM(ctx, starts[count-1], data); err != nil {
		return fmt.Errorf("headset: write brightness table: %w", err)
	}
	return nil
}
