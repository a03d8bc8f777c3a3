package device

import (
	"context"

	"github.com/uchroma/uchromad/led"
	"github.com/uchroma/uchromad/protocol"
)

// PollingRate is a wireless mouse's report rate, in Hz.
type PollingRate byte

const (
	PollingRate125  PollingRate = 0x08
	PollingRate500  PollingRate = 0x02
	PollingRate1000 PollingRate = 0x01
)

// SetPollingRate sets the wireless polling rate.
func (d *Device) SetPollingRate(ctx context.Context, rate PollingRate) error {
	_, err := d.run(ctx, cmdSetPollingRate, []byte{byte(rate)})
	return err
}

// PollingRateHz returns the current polling rate in Hz.
func (d *Device) PollingRateHz(ctx context.Context) (int, error) {
	payload, err := d.run(ctx, cmdGetPollingRate, nil)
	if err != nil {
		return 0, err
	}
	if len(payload) < 1 {
		return 0, nil
	}
	switch PollingRate(payload[0]) {
	case PollingRate125:
		return 125, nil
	case PollingRate500:
		return 500, nil
	default:
		return 1000, nil
	}
}

// SetDPI sets the mouse's X/Y sensitivity in dots per inch.
func (d *Device) SetDPI(ctx context.Context, x, y uint16) error {
	args := protocol.NewArgs(4)
	_ = args.Uint16BE(x)
	_ = args.Uint16BE(y)
	_, err := d.run(ctx, cmdSetDPI, args.Bytes())
	return err
}

// DPI reads back the mouse's X/Y sensitivity.
func (d *Device) DPI(ctx context.Context) (x, y uint16, err error) {
	payload, err := d.run(ctx, cmdGetDPI, nil)
	if err != nil {
		return 0, 0, err
	}
	if len(payload) < 4 {
		return 0, 0, nil
	}
	return uint16(payload[0])<<8 | uint16(payload[1]), uint16(payload[2])<<8 | uint16(payload[3]), nil
}

// SetIdleTime sets the auto-sleep idle timeout, clamped to [60, 900] seconds
// per spec.md §4.4.
func (d *Device) SetIdleTime(ctx context.Context, seconds int) error {
	if seconds < 60 {
		seconds = 60
	}
	if seconds > 900 {
		seconds = 900
	}
	args := protocol.NewArgs(2)
	_ = args.Uint16(uint16(seconds))
	_, err := d.run(ctx, cmdSetIdleTime, args.Bytes())
	return err
}

// IdleTime reads back the auto-sleep idle timeout in seconds.
func (d *Device) IdleTime(ctx context.Context) (int, error) {
	payload, err := d.run(ctx, cmdGetIdleTime, nil)
	if err != nil {
		return 0, err
	}
	if len(payload) < 2 {
		return 0, nil
	}
	return int(payload[0]) | int(payload[1])<<8, nil
}

// lowBatteryRaw maps a 5..25 percent threshold linearly onto the device's
// native 0x0C..0x3F range, per spec.md §4.4 (5% -> 0x0C, 25% -> 0x3F).
func lowBatteryRaw(pct int) byte {
	if pct < 5 {
		pct = 5
	}
	if pct > 25 {
		pct = 25
	}
	const (
		loPct, loRaw = 5, 0x0C
		hiPct, hiRaw = 25, 0x3F
	)
	raw := loRaw + (pct-loPct)*(hiRaw-loRaw)/(hiPct-loPct)
	return byte(raw)
}

// SetLowBatteryThreshold sets the percentage at which the device warns of
// low battery, clamped to [5, 25].
func (d *Device) SetLowBatteryThreshold(ctx context.Context, pct int) error {
	_, err := d.run(ctx, cmdSetLowBatteryThreshold, []byte{lowBatteryRaw(pct)})
	return err
}

// BatteryLevel returns the current battery charge, 0..100.
func (d *Device) BatteryLevel(ctx context.Context) (int, error) {
	payload, err := d.run(ctx, cmdGetBatteryLevel, nil)
	if err != nil {
		return 0, err
	}
	if len(payload) < 1 {
		return 0, nil
	}
	return led.ScaleDown(payload[0]), nil
}

// IsCharging reports whether the device is currently on its charging dock.
func (d *Device) IsCharging(ctx context.Context) (bool, error) {
	payload, err := d.run(ctx, cmdGetChargingStatus, nil)
	if err != nil {
		return false, err
	}
	return len(payload) > 0 && payload[0] != 0, nil
}

// SetDockBrightness sets the charging dock's own LED brightness.
func (d *Device) SetDockBrightness(ctx context.Context, pct int) error {
	if err := led.ValidateBrightness(pct); err != nil {
		return err
	}
	_, err := d.run(ctx, cmdSetDockBrightness, []byte{led.ScaleUp(pct)})
	return err
}

// SetDockChargeColor sets the dock's charge-indicator color. Passing nil
// disables the indicator and reverts to the device's default behavior.
func (d *Device) SetDockChargeColor(ctx context.Context, c *led.RGB) error {
	if c == nil {
		_, err := d.run(ctx, cmdSetDockChargeColor, []byte{0, 0, 0, 0})
		return err
	}
	args := protocol.NewArgs(4)
	_ = args.Byte(1)
	_ = args.Color(protocol.RGB(*c))
	_, err := d.run(ctx, cmdSetDockChargeColor, args.Bytes())
	return err
}
