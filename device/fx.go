package device

import (
	"context"

	"github.com/uchroma/uchromad/led"
)

// setCurrentFX records the name of the effect SetFX just applied, so the
// upstream surface's current_fx property (spec.md §6) reflects it without
// round-tripping to the device.
func (d *Device) setCurrentFX(name string) {
	d.mu.Lock()
	d.currentFXName = name
	d.mu.Unlock()
	d.publish(Change{Kind: ChangeEffect, Field: "current_fx", Value: name})
}

// CurrentFX returns the name of the last effect applied via SetFX. Empty
// until the first successful SetFX call. Calling the typed effect methods
// (Static, Wave, ...) directly does not change it.
func (d *Device) CurrentFX() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.currentFXName
}

func rgbArg(args map[string]any, key string) led.RGB {
	if v, ok := args[key].(led.RGB); ok {
		return v
	}
	return led.RGB{}
}

func rgbArgPtr(args map[string]any, key string) (led.RGB, bool) {
	v, ok := args[key].(led.RGB)
	return v, ok
}

func intArg(args map[string]any, key string, def int) int {
	if v, ok := args[key].(int); ok {
		return v
	}
	return def
}

// SetFX dispatches to the named effect by string, for callers (the upstream
// IPC surface, §6) that select an effect dynamically rather than calling a
// typed method directly. args keys are effect-specific: "speed", "color",
// "color2", "base_color", "direction".
func (d *Device) SetFX(ctx context.Context, name string, args map[string]any) error {
	var err error
	switch name {
	case "disable":
		err = d.Disable(ctx)
	case "static":
		err = d.Static(ctx, rgbArg(args, "color"))
	case "wave":
		err = d.Wave(ctx, WaveDirection(intArg(args, "direction", int(WaveRight))))
	case "spectrum":
		err = d.Spectrum(ctx)
	case "reactive":
		err = d.Reactive(ctx, intArg(args, "speed", 1), rgbArg(args, "color"))
	case "starlight":
		err = d.Starlight(ctx, intArg(args, "speed", 1), multiColors(args)...)
	case "breathe":
		err = d.Breathe(ctx, multiColors(args)...)
	case "sweep":
		err = d.Sweep(ctx, WaveDirection(intArg(args, "direction", int(WaveRight))), intArg(args, "speed", 1), rgbArg(args, "base_color"), rgbArg(args, "color"))
	case "morph":
		err = d.Morph(ctx, intArg(args, "speed", 1), rgbArg(args, "base_color"), rgbArg(args, "color"))
	case "fire":
		err = d.Fire(ctx, intArg(args, "speed", 1), rgbArg(args, "color"))
	case "ripple":
		err = d.Ripple(ctx, intArg(args, "speed", 1), rgbArg(args, "color"))
	case "ripple_solid":
		err = d.RippleSolid(ctx, intArg(args, "speed", 1), rgbArg(args, "color"))
	case "custom_frame":
		err = d.CustomFrame(ctx)
	default:
		return &led.BadArgumentError{Field: "fx", Value: name}
	}
	if err == nil {
		d.setCurrentFX(name)
	}
	return err
}

// multiColors collects up to two optional colors from args for the
// starlight/breathe multi-mode effects, preserving order: "color" then
// "color2", stopping at the first absent key.
func multiColors(args map[string]any) []led.RGB {
	var out []led.RGB
	if c, ok := rgbArgPtr(args, "color"); ok {
		out = append(out, c)
	} else {
		return nil
	}
	if c, ok := rgbArgPtr(args, "color2"); ok {
		out = append(out, c)
	}
	return out
}
