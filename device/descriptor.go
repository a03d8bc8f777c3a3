// Package device implements the per-peripheral object: descriptor, quirk-
// adjusted command layer, LED operations, effects, and (for devices with an
// addressable matrix) the frame buffer and animation manager.
package device

import (
	"github.com/uchroma/uchromad/led"
	"github.com/uchroma/uchromad/quirk"
)

// Kind is the peripheral family named in a device's descriptor.
type Kind int

const (
	Keyboard Kind = iota
	Laptop
	Mouse
	Mousepad
	Headset
)

func (k Kind) String() string {
	switch k {
	case Keyboard:
		return "keyboard"
	case Laptop:
		return "laptop"
	case Mouse:
		return "mouse"
	case Mousepad:
		return "mousepad"
	case Headset:
		return "headset"
	default:
		return "unknown"
	}
}

// MatrixDims gives the pixel dimensions of an addressable lighting matrix.
type MatrixDims struct {
	Rows, Cols int
}

// Descriptor is the static, immutable record describing one peripheral
// model. It is produced by the (external) hardware-model catalog and
// consumed as-is; the core never parses catalog files.
type Descriptor struct {
	Name         string
	Manufacturer string
	Type         Kind
	VendorID     uint16
	ProductID    uint16
	Revision     int
	Matrix       *MatrixDims
	Effects      []Effect
	Quirks       quirk.Set
	Zones        []string
	KeyMatrix    [][]int
	LEDs         []led.Identity
	IsWireless   bool
}

// HasMatrix reports whether this model has an addressable lighting matrix.
func (d Descriptor) HasMatrix() bool { return d.Matrix != nil }
