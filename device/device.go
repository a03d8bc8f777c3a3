package device

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/uchroma/uchromad/anim"
	"github.com/uchroma/uchromad/frame"
	"github.com/uchroma/uchromad/led"
	"github.com/uchroma/uchromad/protocol"
	"github.com/uchroma/uchromad/quirk"
	"github.com/uchroma/uchromad/report"
	"github.com/uchroma/uchromad/transport"
)

// ChangeKind labels what about a device changed, for the Changes() stream.
type ChangeKind int

const (
	ChangeBrightness ChangeKind = iota
	ChangeEffect
	ChangeRunning
	ChangeOffline
	ChangeLED
)

// Change is one entry on a Device's mutation-observer broadcast stream.
type Change struct {
	Kind  ChangeKind
	Field string
	Value any
}

// BadArgumentError is raised before any I/O for arguments that are out of
// range, per spec.md §7.
type BadArgumentError = led.BadArgumentError

// Device is one discovered peripheral: descriptor, quirks, transport, and
// (if the model has an addressable matrix) a frame buffer and animation
// manager.
type Device struct {
	descriptor Descriptor
	session    *transport.Session
	runner     *report.Runner
	logger     *slog.Logger

	mu            sync.Mutex
	offline       bool
	currentFXName string

	frameBuf *frame.Buffer
	animMgr  *anim.Manager

	changes chan Change
}

// New constructs a Device for descriptor, wired to session.
func New(descriptor Descriptor, session *transport.Session, logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Device{
		descriptor: descriptor,
		session:    session,
		runner:     report.New(session, logger),
		logger:     logger,
		changes:    make(chan Change, 16),
	}
	if descriptor.HasMatrix() {
		d.frameBuf = frame.New(descriptor.Matrix.Rows, descriptor.Matrix.Cols, d.frameRunOpts, d.customFrameVarstore)
		d.animMgr = anim.New(d.frameBuf, logger)
		d.animMgr.SetDeferCloseSetter(session)
	}
	return d
}

// Descriptor returns the device's static descriptor.
func (d *Device) Descriptor() Descriptor { return d.descriptor }

// Changes returns the broadcast channel of state-mutation notifications an
// IPC layer would forward. The core never blocks publishing to it; when the
// channel's buffer is full, the new notification is dropped and the ones
// already queued are kept.
func (d *Device) Changes() <-chan Change { return d.changes }

func (d *Device) publish(c Change) {
	select {
	case d.changes <- c:
	default:
	}
}

func (d *Device) quirks() quirk.Set { return d.descriptor.Quirks }

// frameRunOpts is passed to frame.Buffer so its row/activation reports go
// through this device's quirk-adjusted transaction id and runner.
func (d *Device) frameRunOpts() (*report.Runner, report.Options) {
	opts := report.Options{Transaction3F: d.quirks().Has(quirk.Transaction3F)}
	if d.quirks().Has(quirk.CustomFrame80) {
		opts.TransactionID = 0x80
	}
	return d.runner, opts
}

func (d *Device) opts() report.Options {
	return report.Options{
		Transaction3F: d.quirks().Has(quirk.Transaction3F),
		OnTimeout:     d.markOffline,
	}
}

func (d *Device) markOffline() {
	if !d.descriptor.IsWireless {
		return
	}
	d.mu.Lock()
	wasOffline := d.offline
	d.offline = true
	d.mu.Unlock()
	if !wasOffline {
		d.publish(Change{Kind: ChangeOffline, Field: "offline", Value: true})
	}
}

func (d *Device) clearOffline() {
	d.mu.Lock()
	wasOffline := d.offline
	d.offline = false
	d.mu.Unlock()
	if wasOffline {
		d.publish(Change{Kind: ChangeOffline, Field: "offline", Value: false})
	}
}

// IsOffline reports whether the last request to this (wireless) device
// timed out and no subsequent request has succeeded.
func (d *Device) IsOffline() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.offline
}

func (d *Device) run(ctx context.Context, cmd protocol.Command, payload []byte) ([]byte, error) {
	resp, err := d.runner.Run(ctx, cmd, payload, d.opts())
	if err == nil {
		d.clearOffline()
	}
	return resp, err
}

// FirmwareVersion returns the device's firmware version as "vMAJOR.MINOR".
func (d *Device) FirmwareVersion(ctx context.Context) (string, error) {
	payload, err := d.run(ctx, cmdGetFirmwareVersion, nil)
	if err != nil {
		return "", err
	}
	if len(payload) < 2 {
		return "", fmt.Errorf("device: short firmware version response")
	}
	return fmt.Sprintf("v%d.%d", payload[0], payload[1]), nil
}

var nonWordRE = regexp.MustCompile(`\W+`)

// Serial returns the device serial number, trimmed of non-word characters.
func (d *Device) Serial(ctx context.Context) (string, error) {
	payload, err := d.run(ctx, cmdGetSerial, nil)
	if err != nil {
		return "", err
	}
	return nonWordRE.ReplaceAllString(string(payload), ""), nil
}

// SetDeviceMode sets the device's operating mode and an associated param.
func (d *Device) SetDeviceMode(ctx context.Context, mode, param byte) error {
	args := protocol.NewArgs(2)
	_ = args.Byte(mode)
	_ = args.Byte(param)
	_, err := d.run(ctx, cmdSetDeviceMode, args.Bytes())
	return err
}

// DeviceMode returns the current operating mode and param.
func (d *Device) DeviceMode(ctx context.Context) (mode, param byte, err error) {
	payload, err := d.run(ctx, cmdGetDeviceMode, nil)
	if err != nil {
		return 0, 0, err
	}
	if len(payload) < 2 {
		return 0, 0, fmt.Errorf("device: short device mode response")
	}
	return payload[0], payload[1], nil
}

// Reset disables all effects and returns the device to its default mode,
// matching the upstream "reset" operation of spec.md §6.
func (d *Device) Reset(ctx context.Context) error {
	if err := d.Disable(ctx); err != nil {
		return err
	}
	return d.SetDeviceMode(ctx, 0, 0)
}

// Suspend and Resume are thin device-mode toggles the IPC layer calls when
// the host goes to sleep, per spec.md §6's upstream surface.
func (d *Device) Suspend(ctx context.Context) error { return d.SetDeviceMode(ctx, 0, 1) }
func (d *Device) Resume(ctx context.Context) error  { return d.SetDeviceMode(ctx, 0, 0) }

// Matrix returns the device's frame buffer and true if it has one.
func (d *Device) Matrix() (*frame.Buffer, bool) { return d.frameBuf, d.frameBuf != nil }

// Animation returns the device's animation manager and true if it has one.
func (d *Device) Animation() (*anim.Manager, bool) { return d.animMgr, d.animMgr != nil }

// Close releases the underlying transport handle unconditionally.
func (d *Device) Close() error {
	if d.animMgr != nil {
		_ = d.animMgr.Stop(context.Background())
	}
	return d.session.Close()
}
