// Package frame implements the fixed-size RGB matrix buffer addressable
// devices expose, and its row-by-row upload to hardware.
package frame

import (
	"context"
	"fmt"

	"github.com/uchroma/uchromad/led"
	"github.com/uchroma/uchromad/protocol"
	"github.com/uchroma/uchromad/report"
)

// RunnerFunc supplies the report runner and quirk-adjusted options a Buffer
// should use for its row-write and activation commands. It is resolved
// lazily so a Buffer can be constructed before its owning device finishes
// wiring its runner.
type RunnerFunc func() (*report.Runner, report.Options)

// VarstoreFunc resolves the second argument of the CUSTOM_FRAME activation
// report: 1 on standard devices, 0 on mice/mousepads. Flip is handed the
// same resolver device.Device.CustomFrame itself calls, so the two
// activation paths never disagree.
type VarstoreFunc func() byte

var (
	cmdWriteFrameRow = protocol.Command{Class: 0x03, ID: 0x0B, DataSize: -1, Name: "write_custom_frame_row"}
	cmdSetEffect     = protocol.Command{Class: 0x03, ID: 0x0A, DataSize: -1, Name: "set_effect"}
)

// effectCustomFrame is device.EffectCustomFrame's wire value, duplicated
// here to avoid an import cycle back into package device. spec.md §8
// scenario 4 pins this activation's literal bytes to "05 01".
const effectCustomFrame = 0x05

// Buffer is a fixed Rows x Cols matrix of 24-bit colors plus the upload
// logic that flips it to hardware one row per report.
type Buffer struct {
	rows, cols int
	matrix     [][]led.RGB
	base       led.RGB
	runnerFn   RunnerFunc
	varstoreFn VarstoreFunc
}

// New constructs an empty Rows x Cols buffer. varstoreFn may be nil, in
// which case Flip's activation always uses varstore=1 (the standard-device
// default).
func New(rows, cols int, runnerFn RunnerFunc, varstoreFn VarstoreFunc) *Buffer {
	m := make([][]led.RGB, rows)
	for i := range m {
		m[i] = make([]led.RGB, cols)
	}
	return &Buffer{rows: rows, cols: cols, matrix: m, runnerFn: runnerFn, varstoreFn: varstoreFn}
}

// Dims returns the buffer's row and column count.
func (b *Buffer) Dims() (rows, cols int) { return b.rows, b.cols }

// SetBaseColor sets the color new Clear calls fill with.
func (b *Buffer) SetBaseColor(c led.RGB) { b.base = c }

// Clear resets every pixel to the buffer's base color.
func (b *Buffer) Clear() {
	for r := range b.matrix {
		for c := range b.matrix[r] {
			b.matrix[r][c] = b.base
		}
	}
}

// Put sets a single pixel, silently clamping out-of-range coordinates to
// the nearest valid cell rather than erroring — matching the permissive
// coordinate handling used by the layer compositor above it.
func (b *Buffer) Put(row, col int, c led.RGB) {
	row = clamp(row, 0, b.rows-1)
	col = clamp(col, 0, b.cols-1)
	b.matrix[row][col] = c
}

// PutAll sets every pixel in the buffer to c.
func (b *Buffer) PutAll(c led.RGB) {
	for r := range b.matrix {
		for col := range b.matrix[r] {
			b.matrix[r][col] = c
		}
	}
}

// At returns the pixel at row, col.
func (b *Buffer) At(row, col int) led.RGB {
	row = clamp(row, 0, b.rows-1)
	col = clamp(col, 0, b.cols-1)
	return b.matrix[row][col]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Flip uploads the buffer to hardware: one write_custom_frame_row report
// per row followed by one set_effect(CUSTOM_FRAME, varstore) activation,
// using the same varstore resolution device.Device.CustomFrame uses. Upload
// aborts on the first row write failure, leaving the device showing
// whatever frame it last successfully activated.
func (b *Buffer) Flip(ctx context.Context, clearAfter bool, frameID byte) error {
	runner, opts := b.runnerFn()
	for row := 0; row < b.rows; row++ {
		payload := make([]byte, 0, 4+b.cols*3)
		payload = append(payload, frameID, byte(row), 0, byte(b.cols))
		for col := 0; col < b.cols; col++ {
			px := b.matrix[row][col]
			payload = append(payload, px.R, px.G, px.B)
		}
		if _, err := runner.Run(ctx, cmdWriteFrameRow, payload, opts); err != nil {
			return fmt.Errorf("frame: write row %d: %w", row, err)
		}
	}
	varstore := byte(1)
	if b.varstoreFn != nil {
		varstore = b.varstoreFn()
	}
	if _, err := runner.Run(ctx, cmdSetEffect, []byte{effectCustomFrame, varstore}, opts); err != nil {
		return fmt.Errorf("frame: activate: %w", err)
	}
	if clearAfter {
		b.Clear()
	}
	return nil
}
