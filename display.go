package ssd1677

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/flavioheleno/ssd1677/framebuf"
	"periph.io/x/conn/v3/display"
)

// Display is a Dev paired with a black/white frame buffer, usable as an
// image/draw target.
type Display struct {
	dev *Dev
	buf *framebuf.Framebuffer
}

// NewDisplay pairs dev with a frame buffer. When pix is nil a light buffer is
// allocated, otherwise pix is used in place and must be dev.BufferLen() bytes
// long.
func NewDisplay(dev *Dev, pix []byte) (*Display, error) {
	var (
		buf *framebuf.Framebuffer
		err error
	)
	if pix == nil {
		buf, err = framebuf.New(dev.Cols(), dev.Rows(), dev.Rotation())
	} else {
		buf, err = framebuf.Wrap(pix, dev.Cols(), dev.Rows(), dev.Rotation())
	}
	if err != nil {
		return nil, fmt.Errorf("ssd1677: %w", err)
	}
	return &Display{dev: dev, buf: buf}, nil
}

// Dev returns the underlying controller.
func (d *Display) Dev() *Dev {
	return d.dev
}

// Buffer returns the frame buffer.
func (d *Display) Buffer() *framebuf.Framebuffer {
	return d.buf
}

// ColorModel returns a 1 bit color model; image1bit.On is a light pixel.
func (d *Display) ColorModel() color.Model {
	return d.buf.ColorModel()
}

// Bounds returns the logical bounds of the display.
func (d *Display) Bounds() image.Rectangle {
	return d.buf.Bounds()
}

// Draw draws src into the frame buffer, then refreshes the panel with a fast
// update when auto update is enabled.
func (d *Display) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.buf, dst, src, sp, draw.Src)
	return d.autoUpdate(UpdateFast)
}

// SetPixel inks (on) or clears the logical pixel (x, y) in the frame buffer.
// It never refreshes the panel, even with auto update enabled; call Update
// or Draw once the frame is complete.
func (d *Display) SetPixel(x, y int, on bool) error {
	if err := d.buf.SetPixel(x, y, on); err != nil {
		return err
	}
	d.dev.log.Trace().Int("x", x).Int("y", y).Bool("on", on).Msg("set pixel")
	return nil
}

// Clear fills the frame buffer, then refreshes the panel with a slow update
// when auto update is enabled.
func (d *Display) Clear(dark bool) error {
	d.buf.Clear(dark)
	return d.autoUpdate(UpdateSlow)
}

// Update sends the frame buffer to the panel and refreshes it.
func (d *Display) Update(mode UpdateMode) error {
	return d.dev.Update(d.buf.Bytes(), nil, mode)
}

func (d *Display) autoUpdate(mode UpdateMode) error {
	if !d.dev.AutoUpdate() {
		return nil
	}
	return d.Update(mode)
}

// Halt puts the controller in deep sleep, keeping its RAM. Dev().Reset wakes
// it up.
func (d *Display) Halt() error {
	return d.dev.Sleep(SleepKeepRAM)
}

// String returns a string representation of the display.
func (d *Display) String() string {
	w, h := d.dev.Size()
	return fmt.Sprintf("ssd1677.Display{%dx%d, %s}", w, h, d.dev.Rotation())
}

var _ display.Drawer = &Display{}
