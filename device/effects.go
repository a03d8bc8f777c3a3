package device

import (
	"context"

	"github.com/uchroma/uchromad/led"
	"github.com/uchroma/uchromad/protocol"
)

func validateSpeed(speed int) error {
	if speed < 1 || speed > 4 {
		return &led.BadArgumentError{Field: "speed", Value: speed}
	}
	return nil
}

func multiMode(colors []led.RGB) MultiMode {
	switch len(colors) {
	case 0:
		return ModeRandom
	case 1:
		return ModeSingle
	default:
		return ModeDual
	}
}

func (d *Device) setEffect(ctx context.Context, payload []byte) error {
	_, err := d.run(ctx, cmdSetEffect, payload)
	if err == nil {
		d.publish(Change{Kind: ChangeEffect, Field: "effect", Value: payload})
	}
	return err
}

// Disable turns off all lighting effects.
func (d *Device) Disable(ctx context.Context) error {
	return d.setEffect(ctx, []byte{byte(EffectDisable)})
}

// Static sets a single solid color across the whole matrix/backlight.
func (d *Device) Static(ctx context.Context, c led.RGB) error {
	args := protocol.NewArgs(4)
	_ = args.Byte(byte(EffectStatic))
	_ = args.Color(protocol.RGB(c))
	return d.setEffect(ctx, args.Bytes())
}

// Wave starts the wave effect in the given direction.
func (d *Device) Wave(ctx context.Context, dir WaveDirection) error {
	args := protocol.NewArgs(2)
	_ = args.Byte(byte(EffectWave))
	_ = args.Byte(byte(dir))
	return d.setEffect(ctx, args.Bytes())
}

// Spectrum cycles through the full color spectrum.
func (d *Device) Spectrum(ctx context.Context) error {
	return d.setEffect(ctx, []byte{byte(EffectSpectrum)})
}

// Reactive lights a key when pressed and fades it out over speed seconds
// (1..4); speed outside that range is rejected before any I/O.
func (d *Device) Reactive(ctx context.Context, speed int, c led.RGB) error {
	if err := validateSpeed(speed); err != nil {
		return err
	}
	args := protocol.NewArgs(5)
	_ = args.Byte(byte(EffectReactive))
	_ = args.Byte(byte(speed))
	_ = args.Color(protocol.RGB(c))
	return d.setEffect(ctx, args.Bytes())
}

// Starlight runs the starlight effect with 0, 1, or 2 colors (random, single,
// dual) at the given speed (1..4).
func (d *Device) Starlight(ctx context.Context, speed int, colors ...led.RGB) error {
	if err := validateSpeed(speed); err != nil {
		return err
	}
	if len(colors) > 2 {
		return &led.BadArgumentError{Field: "colors", Value: len(colors)}
	}
	args := protocol.NewArgs(-1)
	_ = args.Byte(byte(EffectStarlight))
	_ = args.Byte(byte(multiMode(colors)))
	_ = args.Byte(byte(speed))
	for _, c := range colors {
		_ = args.Color(protocol.RGB(c))
	}
	return d.setEffect(ctx, args.Bytes())
}

// Breathe pulses 0, 1, or 2 colors (random, single, dual) smoothly in and
// out.
func (d *Device) Breathe(ctx context.Context, colors ...led.RGB) error {
	if len(colors) > 2 {
		return &led.BadArgumentError{Field: "colors", Value: len(colors)}
	}
	args := protocol.NewArgs(-1)
	_ = args.Byte(byte(EffectBreathe))
	_ = args.Byte(byte(multiMode(colors)))
	for _, c := range colors {
		_ = args.Color(protocol.RGB(c))
	}
	return d.setEffect(ctx, args.Bytes())
}

// Sweep slides base flowing into c across the matrix in the given direction
// at the given speed (1..4).
func (d *Device) Sweep(ctx context.Context, dir WaveDirection, speed int, base, c led.RGB) error {
	if err := validateSpeed(speed); err != nil {
		return err
	}
	args := protocol.NewArgs(9)
	_ = args.Byte(byte(EffectSweep))
	_ = args.Byte(byte(dir))
	_ = args.Byte(byte(speed))
	_ = args.Color(protocol.RGB(base))
	_ = args.Color(protocol.RGB(c))
	return d.setEffect(ctx, args.Bytes())
}

// Morph smoothly transitions base into c across the matrix.
func (d *Device) Morph(ctx context.Context, speed int, base, c led.RGB) error {
	if err := validateSpeed(speed); err != nil {
		return err
	}
	const morphSubtype = 0x04
	args := protocol.NewArgs(9)
	_ = args.Byte(byte(EffectMorph))
	_ = args.Byte(morphSubtype)
	_ = args.Byte(byte(speed))
	_ = args.Color(protocol.RGB(base))
	_ = args.Color(protocol.RGB(c))
	return d.setEffect(ctx, args.Bytes())
}

// Fire renders a simulated flame effect at the given intensity (1..4).
func (d *Device) Fire(ctx context.Context, intensity int, c led.RGB) error {
	if err := validateSpeed(intensity); err != nil {
		return err
	}
	const fireSubtype = 0x01
	args := protocol.NewArgs(6)
	_ = args.Byte(byte(EffectFire))
	_ = args.Byte(fireSubtype)
	_ = args.Byte(byte(intensity))
	_ = args.Color(protocol.RGB(c))
	return d.setEffect(ctx, args.Bytes())
}

func (d *Device) ripple(ctx context.Context, effect Effect, speed int, c led.RGB) error {
	if err := validateSpeed(speed); err != nil {
		return err
	}
	const rippleSubtype = 0x01
	args := protocol.NewArgs(6)
	_ = args.Byte(byte(effect))
	_ = args.Byte(rippleSubtype)
	_ = args.Byte(byte(speed * 10))
	_ = args.Color(protocol.RGB(c))
	return d.setEffect(ctx, args.Bytes())
}

// Ripple radiates rings of color outward from each keypress, at speed 1..4.
func (d *Device) Ripple(ctx context.Context, speed int, c led.RGB) error {
	return d.ripple(ctx, EffectRipple, speed, c)
}

// RippleSolid is Ripple against a solid-color backdrop instead of black.
func (d *Device) RippleSolid(ctx context.Context, speed int, c led.RGB) error {
	return d.ripple(ctx, EffectRippleSolid, speed, c)
}

// customFrameVarstore resolves the second argument of the CUSTOM_FRAME
// activation: 1 on standard devices, 0 on mice/mousepads. frame.Buffer.Flip
// is handed this same resolver (via device.go's wiring) so its own
// activation report agrees with CustomFrame's.
func (d *Device) customFrameVarstore() byte {
	if d.descriptor.Type == Mouse || d.descriptor.Type == Mousepad {
		return 0
	}
	return 1
}

// CustomFrame activates the device's custom-frame source. The frame's pixel
// rows must already have been uploaded via Matrix().Flip. varstore is 1 on
// standard devices, 0 on mice.
func (d *Device) CustomFrame(ctx context.Context) error {
	return d.setEffect(ctx, []byte{byte(EffectCustomFrame), d.customFrameVarstore()})
}
