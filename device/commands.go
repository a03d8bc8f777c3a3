package device

import "github.com/uchroma/uchromad/protocol"

// Command table, per spec.md §4.4.
var (
	cmdGetFirmwareVersion = protocol.Command{Class: 0x00, ID: 0x81, DataSize: 2, Name: "get_firmware_version"}
	cmdGetSerial          = protocol.Command{Class: 0x00, ID: 0x82, DataSize: 22, Name: "get_serial"}
	cmdSetDeviceMode      = protocol.Command{Class: 0x00, ID: 0x04, DataSize: 2, Name: "set_device_mode"}
	cmdGetDeviceMode      = protocol.Command{Class: 0x00, ID: 0x84, DataSize: 2, Name: "get_device_mode"}

	cmdSetLEDState      = protocol.Command{Class: 0x03, ID: 0x00, DataSize: 3, Name: "set_led_state"}
	cmdSetLEDColor      = protocol.Command{Class: 0x03, ID: 0x01, DataSize: 5, Name: "set_led_color"}
	cmdSetLEDMode       = protocol.Command{Class: 0x03, ID: 0x02, DataSize: 3, Name: "set_led_mode"}
	cmdSetLEDBrightness = protocol.Command{Class: 0x03, ID: 0x03, DataSize: 3, Name: "set_led_brightness"}
	cmdGetLEDState      = protocol.Command{Class: 0x03, ID: 0x80, DataSize: 3, Name: "get_led_state"}
	cmdGetLEDColor      = protocol.Command{Class: 0x03, ID: 0x81, DataSize: 5, Name: "get_led_color"}
	cmdGetLEDMode       = protocol.Command{Class: 0x03, ID: 0x82, DataSize: 3, Name: "get_led_mode"}
	cmdGetLEDBrightness = protocol.Command{Class: 0x03, ID: 0x83, DataSize: 3, Name: "get_led_brightness"}

	cmdSetEffect         = protocol.Command{Class: 0x03, ID: 0x0A, DataSize: -1, Name: "set_effect"}
	cmdSetEffectExtended = protocol.Command{Class: 0x0F, ID: 0x02, DataSize: -1, Name: "set_effect_extended"}
	cmdWriteFrameRow     = protocol.Command{Class: 0x03, ID: 0x0B, DataSize: -1, Name: "write_custom_frame_row"}
	cmdSetBladeBrightness = protocol.Command{Class: 0x0E, ID: 0x04, DataSize: 2, Name: "set_blade_brightness"}
	cmdGetBladeBrightness = protocol.Command{Class: 0x0E, ID: 0x84, DataSize: 2, Name: "get_blade_brightness"}
)

// Wireless power-management commands (class 0x07). spec.md describes the
// semantics of these operations but does not pin wire-level byte codes the
// way it does for the §4.4 table, so this numbering is this repository's
// own choice, recorded in DESIGN.md.
var (
	cmdSetPollingRate          = protocol.Command{Class: 0x07, ID: 0x01, DataSize: 1, Name: "set_polling_rate"}
	cmdGetPollingRate          = protocol.Command{Class: 0x07, ID: 0x81, DataSize: 1, Name: "get_polling_rate"}
	cmdSetDPI                  = protocol.Command{Class: 0x07, ID: 0x04, DataSize: 4, Name: "set_dpi"}
	cmdGetDPI                  = protocol.Command{Class: 0x07, ID: 0x84, DataSize: 4, Name: "get_dpi"}
	cmdSetIdleTime             = protocol.Command{Class: 0x07, ID: 0x03, DataSize: 2, Name: "set_idle_time"}
	cmdGetIdleTime             = protocol.Command{Class: 0x07, ID: 0x83, DataSize: 2, Name: "get_idle_time"}
	cmdSetLowBatteryThreshold  = protocol.Command{Class: 0x07, ID: 0x02, DataSize: 1, Name: "set_low_battery_threshold"}
	cmdGetLowBatteryThreshold  = protocol.Command{Class: 0x07, ID: 0x82, DataSize: 1, Name: "get_low_battery_threshold"}
	cmdGetBatteryLevel         = protocol.Command{Class: 0x07, ID: 0x80, DataSize: 2, Name: "get_battery_level"}
	cmdGetChargingStatus       = protocol.Command{Class: 0x07, ID: 0x86, DataSize: 2, Name: "get_charging_status"}
	cmdSetDockBrightness       = protocol.Command{Class: 0x07, ID: 0x05, DataSize: 1, Name: "set_dock_brightness"}
	cmdSetDockChargeColor      = protocol.Command{Class: 0x07, ID: 0x06, DataSize: 4, Name: "set_dock_charge_color"}
)

// Effect is the one-byte firmware effect code. spec.md §8 scenarios pin
// STATIC=0x06, BREATHE=0x03, and (scenario 4's literal "05 01" activation
// payload) CUSTOM_FRAME=0x05, which don't fall on a single contiguous enum
// together with the rest of the table named only by name in §4.4; the
// remaining codes are assigned to keep every value distinct.
type Effect byte

const (
	EffectDisable     Effect = 0x00
	EffectWave        Effect = 0x01
	EffectSpectrum    Effect = 0x02
	EffectBreathe     Effect = 0x03
	EffectReactive    Effect = 0x04
	EffectCustomFrame Effect = 0x05
	EffectStatic      Effect = 0x06
	EffectStarlight   Effect = 0x07
	EffectSweep       Effect = 0x08
	EffectMorph       Effect = 0x09
	EffectFire        Effect = 0x0A
	EffectRipple      Effect = 0x0B
	EffectRippleSolid Effect = 0x0C
)

// WaveDirection selects the animation direction for the Wave effect.
type WaveDirection byte

const (
	WaveRight     WaveDirection = 1
	WaveLeft      WaveDirection = 2
	WaveLeftChase WaveDirection = 3
	WaveRightChase WaveDirection = 4
)

// MultiMode is the computed mode byte for starlight/breathe, per spec.md §4.4.
type MultiMode byte

const (
	ModeRandom MultiMode = 0
	ModeSingle MultiMode = 1
	ModeDual   MultiMode = 2
)
