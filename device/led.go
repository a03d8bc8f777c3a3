package device

import (
	"context"

	"github.com/uchroma/uchromad/led"
	"github.com/uchroma/uchromad/protocol"
	"github.com/uchroma/uchromad/quirk"
)

// brightnessLED returns the LED that stands in for "device brightness" on
// devices without a dedicated brightness command, per spec.md §4.4: the
// scroll-wheel or logo LED on models carrying the corresponding quirk,
// backlight otherwise.
func (d *Device) brightnessLED() led.Identity {
	switch {
	case d.quirks().Has(quirk.ScrollWheelBrightness):
		return led.ScrollWheel
	case d.quirks().Has(quirk.LogoLEDBrightness):
		return led.Logo
	default:
		return led.Backlight
	}
}

// Brightness returns the device's overall brightness as a 0..100 percentage.
// Laptops proxy through the blade-brightness command; other devices proxy
// through whichever LED brightnessLED selects, per spec.md §4.4.
func (d *Device) Brightness(ctx context.Context) (int, error) {
	if d.descriptor.Type == Laptop {
		return d.BladeBrightness(ctx)
	}
	return d.LEDBrightness(ctx, d.brightnessLED())
}

// SetBrightness sets the device's overall brightness as a 0..100 percentage,
// via the same proxy Brightness reads from.
func (d *Device) SetBrightness(ctx context.Context, pct int) error {
	if err := led.ValidateBrightness(pct); err != nil {
		return err
	}
	if d.descriptor.Type == Laptop {
		return d.SetBladeBrightness(ctx, pct)
	}
	return d.SetLEDBrightness(ctx, d.brightnessLED(), pct)
}

// SetLEDState turns a single LED on or off.
func (d *Device) SetLEDState(ctx context.Context, id led.Identity, on bool) error {
	args := protocol.NewArgs(3)
	_ = args.Byte(0x01)
	_ = args.Byte(byte(id))
	v := byte(0)
	if on {
		v = 1
	}
	_ = args.Byte(v)
	_, err := d.run(ctx, cmdSetLEDState, args.Bytes())
	if err == nil {
		d.publish(Change{Kind: ChangeLED, Field: "state", Value: led.State{Identity: id, On: on}})
	}
	return err
}

// LEDState reads back whether the given LED is on.
func (d *Device) LEDState(ctx context.Context, id led.Identity) (bool, error) {
	args := protocol.NewArgs(3)
	_ = args.Byte(0x01)
	_ = args.Byte(byte(id))
	_ = args.Byte(0)
	payload, err := d.run(ctx, cmdGetLEDState, args.Bytes())
	if err != nil {
		return false, err
	}
	if len(payload) < 3 {
		return false, nil
	}
	return payload[2] != 0, nil
}

// SetLEDColor sets a single LED's static color.
func (d *Device) SetLEDColor(ctx context.Context, id led.Identity, c led.RGB) error {
	args := protocol.NewArgs(5)
	_ = args.Byte(0x01)
	_ = args.Byte(byte(id))
	_ = args.Color(protocol.RGB(c))
	_, err := d.run(ctx, cmdSetLEDColor, args.Bytes())
	if err == nil {
		d.publish(Change{Kind: ChangeLED, Field: "color", Value: led.State{Identity: id, Color: c}})
	}
	return err
}

// SetLEDMode sets a single LED's firmware-level mode (static/blink/pulse/spectrum).
func (d *Device) SetLEDMode(ctx context.Context, id led.Identity, mode led.Mode) error {
	args := protocol.NewArgs(3)
	_ = args.Byte(0x01)
	_ = args.Byte(byte(id))
	_ = args.Byte(byte(mode))
	_, err := d.run(ctx, cmdSetLEDMode, args.Bytes())
	return err
}

// SetLEDBrightness sets a single LED's brightness as a 0..100 percentage.
func (d *Device) SetLEDBrightness(ctx context.Context, id led.Identity, pct int) error {
	if err := led.ValidateBrightness(pct); err != nil {
		return err
	}
	args := protocol.NewArgs(3)
	_ = args.Byte(0x01)
	_ = args.Byte(byte(id))
	_ = args.Byte(led.ScaleUp(pct))
	_, err := d.run(ctx, cmdSetLEDBrightness, args.Bytes())
	if err == nil {
		d.publish(Change{Kind: ChangeBrightness, Field: "brightness", Value: led.State{Identity: id, Brightness: pct}})
	}
	return err
}

// LEDBrightness reads a single LED's brightness back as a 0..100 percentage.
func (d *Device) LEDBrightness(ctx context.Context, id led.Identity) (int, error) {
	args := protocol.NewArgs(3)
	_ = args.Byte(0x01)
	_ = args.Byte(byte(id))
	_ = args.Byte(0)
	payload, err := d.run(ctx, cmdGetLEDBrightness, args.Bytes())
	if err != nil {
		return 0, err
	}
	if len(payload) < 3 {
		return 0, nil
	}
	return led.ScaleDown(payload[2]), nil
}
