package transport

import (
	"fmt"

	"github.com/karalabe/hid"
)

// VendorID is the USB vendor id every supported peripheral shares.
const VendorID = 0x1532

// InterfaceFilter returns the USB interface number a device family's feature
// reports arrive on, per spec.md §6.
func InterfaceFilter(deviceType string) int {
	switch deviceType {
	case "headset":
		return 3
	case "keyboard", "laptop":
		return 2
	case "mousepad":
		return 1
	default:
		return 0
	}
}

// OpenByProductID returns an Opener that enumerates HID devices matching
// VendorID/productID/the interface number for deviceType and opens the
// first match. Discovery here is purely mechanical (which OS handle to
// hand to the Session); deciding which devices exist at all remains the
// catalog/hotplug collaborator's job per spec.md §6.
func OpenByProductID(productID uint16, deviceType string) Opener {
	iface := InterfaceFilter(deviceType)
	return func() (Handle, error) {
		infos, err := hid.Enumerate(VendorID, productID)
		if err != nil {
			return nil, fmt.Errorf("enumerate hid devices: %w", err)
		}
		for _, info := range infos {
			if int(info.Interface) != iface {
				continue
			}
			dev, err := info.Open()
			if err != nil {
				return nil, fmt.Errorf("open hid device: %w", err)
			}
			return dev, nil
		}
		return nil, fmt.Errorf("no hid device found for product 0x%04x interface %d", productID, iface)
	}
}
