// Package quirk enumerates the device-specific protocol deviations
// described in spec.md §3/§4.4.
package quirk

// Set is a bitmask of quirk flags for one device descriptor.
type Set uint16

const (
	// Transaction3F requires transaction id 0x3F instead of the 0xFF default.
	Transaction3F Set = 1 << iota
	// ExtendedFX routes effect commands through the extended (0x0F,0x02) class.
	ExtendedFX
	// ScrollWheelBrightness proxies device brightness through the scroll-wheel LED.
	ScrollWheelBrightness
	// LogoLEDBrightness proxies device brightness through the logo LED.
	LogoLEDBrightness
	// WirelessBatteryDock indicates battery/dock commands are available.
	WirelessBatteryDock
	// CustomFrame80 requires transaction code 0x80 for custom-frame row writes.
	CustomFrame80
	// ProfileLEDs indicates the device exposes profile r/g/b LEDs.
	ProfileLEDs
	// BacklightOnlySpectrum restricts the spectrum effect to the backlight LED.
	BacklightOnlySpectrum
)

// Has reports whether s contains all bits of q.
func (s Set) Has(q Set) bool { return s&q == q }
