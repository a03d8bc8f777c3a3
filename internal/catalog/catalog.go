// Package catalog ships a small, hand-written sample of hardware
// descriptors purely so the CLI entry point has something to enumerate for
// manual testing. It is not a replacement for the real hardware-model
// catalog, which loading/parsing remains an external collaborator's job.
package catalog

import (
	"fmt"

	"github.com/uchroma/uchromad/device"
	"github.com/uchroma/uchromad/led"
	"github.com/uchroma/uchromad/quirk"
)

// Entry pairs a catalog name with its descriptor.
type Entry struct {
	Name       string
	Descriptor device.Descriptor
}

var sample = []Entry{
	{
		Name: "blackwidow-chroma",
		Descriptor: device.Descriptor{
			Name:         "BlackWidow Chroma",
			Manufacturer: "Razer",
			Type:         device.Keyboard,
			VendorID:     0x1532,
			ProductID:    0x0203,
			Matrix:       &device.MatrixDims{Rows: 6, Cols: 22},
			LEDs:         []led.Identity{led.Backlight, led.Logo},
		},
	},
	{
		Name: "blade-stealth",
		Descriptor: device.Descriptor{
			Name:         "Blade Stealth",
			Manufacturer: "Razer",
			Type:         device.Laptop,
			VendorID:     0x1532,
			ProductID:    0x0220,
			Matrix:       &device.MatrixDims{Rows: 1, Cols: 1},
			LEDs:         []led.Identity{led.Backlight},
		},
	},
	{
		Name: "mamba-wireless",
		Descriptor: device.Descriptor{
			Name:         "Mamba Wireless",
			Manufacturer: "Razer",
			Type:         device.Mouse,
			VendorID:     0x1532,
			ProductID:    0x0073,
			IsWireless:   true,
			Quirks:       quirk.ScrollWheelBrightness | quirk.WirelessBatteryDock,
			LEDs:         []led.Identity{led.Logo, led.ScrollWheel, led.Battery},
		},
	},
	{
		Name: "firefly",
		Descriptor: device.Descriptor{
			Name:         "Firefly",
			Manufacturer: "Razer",
			Type:         device.Mousepad,
			VendorID:     0x1532,
			ProductID:    0x0C00,
			Matrix:       &device.MatrixDims{Rows: 1, Cols: 15},
			Quirks:       quirk.CustomFrame80,
		},
	},
	{
		Name: "kraken-v2",
		Descriptor: device.Descriptor{
			Name:         "Kraken V2",
			Manufacturer: "Razer",
			Type:         device.Headset,
			VendorID:     0x1532,
			ProductID:    0x0510,
			LEDs:         []led.Identity{led.Logo},
		},
	},
}

// Sample returns the bundled sample catalog.
func Sample() []Entry {
	out := make([]Entry, len(sample))
	copy(out, sample)
	return out
}

// Lookup finds a sample entry by name.
func Lookup(name string) (device.Descriptor, error) {
	for _, e := range sample {
		if e.Name == name {
			return e.Descriptor, nil
		}
	}
	return device.Descriptor{}, fmt.Errorf("catalog: unknown sample device %q", name)
}
