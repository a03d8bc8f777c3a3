// Package cliconfig defines the uchromad CLI's command tree. It exists only
// to exercise the engine end-to-end from a terminal; the object-bus/IPC
// surface a real deployment would front it with is out of scope here.
package cliconfig

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uchroma/uchromad/device"
	"github.com/uchroma/uchromad/internal/catalog"
	"github.com/uchroma/uchromad/internal/log"
	"github.com/uchroma/uchromad/led"
	"github.com/uchroma/uchromad/transport"
)

// LogConfig holds the logging-related flags shared by every command.
type LogConfig struct {
	Level  string `help:"Log level (debug, info, warn, error, trace)" default:"info" env:"UCHROMAD_LOG_LEVEL"`
	File   string `help:"Write logs to this file instead of stderr" env:"UCHROMAD_LOG_FILE"`
	Raw    bool   `name:"raw" help:"Trace every outbound/inbound HID report" env:"UCHROMAD_LOG_RAW"`
}

// CLI is the root command structure parsed by kong.
type CLI struct {
	Log LogConfig `embed:"" prefix:"log."`

	List       ListCmd       `cmd:"" help:"List the sample catalog of known devices"`
	Static     StaticCmd     `cmd:"" help:"Set a device to a static color"`
	Brightness BrightnessCmd `cmd:"" help:"Get or set a device's overall brightness"`
	Config     ConfigCmd     `cmd:"" help:"Configuration file helpers"`
}

func openSample(ctx context.Context, name string, logger *slog.Logger, raw log.RawLogger) (*device.Device, error) {
	descriptor, err := catalog.Lookup(name)
	if err != nil {
		return nil, err
	}
	opener := transport.OpenByProductID(descriptor.ProductID, descriptor.Type.String())
	sess := transport.New(opener, logger, raw)
	return device.New(descriptor, sess, logger), nil
}

// ListCmd prints the bundled sample catalog.
type ListCmd struct{}

func (c *ListCmd) Run(logger *slog.Logger) error {
	for _, e := range catalog.Sample() {
		fmt.Printf("%-20s %-20s %-10s vid=%#04x pid=%#04x\n",
			e.Name, e.Descriptor.Name, e.Descriptor.Type, e.Descriptor.VendorID, e.Descriptor.ProductID)
	}
	return nil
}

// StaticCmd drives one sample device to a solid color.
type StaticCmd struct {
	Device string `arg:"" help:"Catalog device name (see 'list')"`
	Color  string `arg:"" help:"Color as RRGGBB hex"`
}

func (c *StaticCmd) Run(logger *slog.Logger, raw log.RawLogger) error {
	var r, g, b uint8
	if _, err := fmt.Sscanf(c.Color, "%02x%02x%02x", &r, &g, &b); err != nil {
		return fmt.Errorf("invalid color %q: %w", c.Color, err)
	}
	ctx := context.Background()
	d, err := openSample(ctx, c.Device, logger, raw)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Static(ctx, led.RGB{R: r, G: g, B: b})
}

// BrightnessCmd reads or writes a sample device's overall brightness.
type BrightnessCmd struct {
	Device string `arg:"" help:"Catalog device name (see 'list')"`
	Pct    *int   `arg:"" optional:"" help:"New brightness 0..100; omit to read the current value"`
}

func (c *BrightnessCmd) Run(logger *slog.Logger, raw log.RawLogger) error {
	ctx := context.Background()
	d, err := openSample(ctx, c.Device, logger, raw)
	if err != nil {
		return err
	}
	defer d.Close()

	if c.Pct == nil {
		pct, err := d.Brightness(ctx)
		if err != nil {
			return err
		}
		fmt.Println(pct)
		return nil
	}
	return d.SetBrightness(ctx, *c.Pct)
}
