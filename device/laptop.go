package device

import (
	"context"

	"github.com/uchroma/uchromad/led"
)

// SetBladeBrightness sets the laptop's keyboard-deck ("blade") brightness.
func (d *Device) SetBladeBrightness(ctx context.Context, pct int) error {
	if err := led.ValidateBrightness(pct); err != nil {
		return err
	}
	_, err := d.run(ctx, cmdSetBladeBrightness, []byte{led.ScaleUp(pct)})
	return err
}

// BladeBrightness reads back the laptop's blade brightness as 0..100.
func (d *Device) BladeBrightness(ctx context.Context) (int, error) {
	payload, err := d.run(ctx, cmdGetBladeBrightness, nil)
	if err != nil {
		return 0, err
	}
	if len(payload) < 1 {
		return 0, nil
	}
	return led.ScaleDown(payload[0]), nil
}
