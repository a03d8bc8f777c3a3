package anim

import (
	"github.com/uchroma/uchromad/layer"
	"github.com/uchroma/uchromad/led"
)

// rgbaToRGB quantizes a float-space canvas pixel down to the frame buffer's
// 24-bit color, pre-multiplying by alpha against a black backdrop.
func rgbaToRGB(c layer.RGBA) led.RGB {
	return led.RGB{
		R: quantize(c.R * c.A),
		G: quantize(c.G * c.A),
		B: quantize(c.B * c.A),
	}
}

func quantize(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
