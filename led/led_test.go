package led_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uchroma/uchromad/led"
)

func TestBrightnessRoundTrip(t *testing.T) {
	for pct := 0; pct <= 100; pct++ {
		got := led.ScaleDown(led.ScaleUp(pct))
		assert.InDeltaf(t, pct, got, 1, "pct=%d got=%d", pct, got)
	}
}

func TestValidateBrightness(t *testing.T) {
	assert.NoError(t, led.ValidateBrightness(0))
	assert.NoError(t, led.ValidateBrightness(100))
	assert.Error(t, led.ValidateBrightness(-1))
	assert.Error(t, led.ValidateBrightness(101))
}
