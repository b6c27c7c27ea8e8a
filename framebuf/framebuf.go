// Package framebuf implements the packed 1 bit per pixel frame buffer of the
// SSD1677 e-paper controller.
//
// The controller RAM is scanned in a fixed native order: each row holds
// width/8 bytes, most significant bit first, and rows follow each other.
// Map converts logical coordinates, as seen after rotating the panel, into a
// byte index and bit mask in that native layout.
package framebuf

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var (
	// ErrOutOfBounds is returned for coordinates outside the logical bounds.
	ErrOutOfBounds = errors.New("framebuf: coordinates out of bounds")
	// ErrSize is returned for invalid geometry or a buffer of the wrong
	// length.
	ErrSize = errors.New("framebuf: invalid buffer size")
)

// Rotation is the rotation of the logical image relative to the native scan
// orientation of the panel.
type Rotation uint8

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// ParseRotation converts an angle in degrees into a Rotation.
func ParseRotation(degrees int) (Rotation, error) {
	switch degrees {
	case 0:
		return Rotate0, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	}
	return 0, fmt.Errorf("framebuf: unsupported rotation %d", degrees)
}

func (r Rotation) String() string {
	switch r {
	case Rotate0:
		return "Rotate0"
	case Rotate90:
		return "Rotate90"
	case Rotate180:
		return "Rotate180"
	case Rotate270:
		return "Rotate270"
	}
	return fmt.Sprintf("Rotation(%d)", uint8(r))
}

// Swapped reports whether the rotation exchanges width and height.
func (r Rotation) Swapped() bool {
	return r == Rotate90 || r == Rotate270
}

// Size returns the logical size of a width x height native panel.
func (r Rotation) Size(width, height int) (int, int) {
	if r.Swapped() {
		return height, width
	}
	return width, height
}

// Map returns the byte index and bit mask of logical pixel (x, y) on a
// panel of native size width x height.
//
// ok is false when the geometry is invalid (width must be a positive
// multiple of 8, height positive), the rotation is unknown or (x, y) lies
// outside the rotation adjusted bounds.
func Map(x, y, width, height int, r Rotation) (index int, mask byte, ok bool) {
	if width <= 0 || width%8 != 0 || height <= 0 || r > Rotate270 {
		return 0, 0, false
	}
	w, h := r.Size(width, height)
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, 0, false
	}
	stride := width / 8
	switch r {
	case Rotate0:
		return x/8 + stride*y, 0x80 >> (x % 8), true
	case Rotate90:
		return (width-1-y)/8 + stride*x, 0x01 << (y % 8), true
	case Rotate180:
		return stride*height - 1 - (x/8 + stride*y), 0x01 << (x % 8), true
	default:
		return y/8 + (height-1-x)*stride, 0x80 >> (y % 8), true
	}
}

// Framebuffer is a packed 1 bit per pixel image in the panel's native
// layout. A cleared bit is an inked (dark) pixel.
//
// It implements draw.Image over the logical (rotated) bounds, with
// image1bit.On being a light pixel. The geometry is fixed at creation.
type Framebuffer struct {
	pix      []byte
	width    int // native width (source outputs)
	height   int // native height (gate outputs)
	rotation Rotation
}

// Bytes returns the packed pixels in native order. The slice aliases the
// buffer; its length is always Len(Width(), Height()).
func (f *Framebuffer) Bytes() []byte {
	return f.pix
}

// Width returns the native width.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the native height.
func (f *Framebuffer) Height() int {
	return f.height
}

// Rotation returns the rotation applied to logical coordinates.
func (f *Framebuffer) Rotation() Rotation {
	return f.rotation
}

// Len returns the buffer length for a width x height panel.
func Len(width, height int) int {
	return width * height / 8
}

// New allocates a light (all bits set) frame buffer.
func New(width, height int, r Rotation) (*Framebuffer, error) {
	if err := check(width, height, r); err != nil {
		return nil, err
	}
	f := &Framebuffer{
		pix:      make([]byte, Len(width, height)),
		width:    width,
		height:   height,
		rotation: r,
	}
	f.Clear(false)
	return f, nil
}

// Wrap uses pix as frame buffer storage. pix is not modified nor copied and
// must be exactly Len(width, height) bytes.
func Wrap(pix []byte, width, height int, r Rotation) (*Framebuffer, error) {
	if err := check(width, height, r); err != nil {
		return nil, err
	}
	if len(pix) != Len(width, height) {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSize, len(pix), Len(width, height))
	}
	return &Framebuffer{pix: pix, width: width, height: height, rotation: r}, nil
}

func check(width, height int, r Rotation) error {
	if width <= 0 || width%8 != 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrSize, width, height)
	}
	if r > Rotate270 {
		return fmt.Errorf("framebuf: unsupported rotation %d", r)
	}
	return nil
}

// SetPixel inks (on) or clears the logical pixel (x, y).
func (f *Framebuffer) SetPixel(x, y int, on bool) error {
	i, mask, ok := Map(x, y, f.width, f.height, f.rotation)
	if !ok {
		return fmt.Errorf("%w: (%d, %d) in %v", ErrOutOfBounds, x, y, f.Bounds())
	}
	if on {
		f.pix[i] &^= mask
	} else {
		f.pix[i] |= mask
	}
	return nil
}

// Pixel reports whether logical pixel (x, y) is inked. ok is false out of
// bounds.
func (f *Framebuffer) Pixel(x, y int) (on, ok bool) {
	i, mask, ok := Map(x, y, f.width, f.height, f.rotation)
	if !ok {
		return false, false
	}
	return f.pix[i]&mask == 0, true
}

// Clear fills the whole buffer, with 0x00 when dark and 0xFF otherwise.
func (f *Framebuffer) Clear(dark bool) {
	fill := byte(0xFF)
	if dark {
		fill = 0x00
	}
	for i := range f.pix {
		f.pix[i] = fill
	}
}

// ColorModel implements image.Image.
func (f *Framebuffer) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements image.Image. Width and height are swapped for 90° and
// 270° rotations.
func (f *Framebuffer) Bounds() image.Rectangle {
	w, h := f.rotation.Size(f.width, f.height)
	return image.Rect(0, 0, w, h)
}

// At implements image.Image.
func (f *Framebuffer) At(x, y int) color.Color {
	return f.BitAt(x, y)
}

// BitAt returns the pixel at (x, y); out of bounds pixels are Off.
func (f *Framebuffer) BitAt(x, y int) image1bit.Bit {
	on, ok := f.Pixel(x, y)
	return image1bit.Bit(ok && !on)
}

// Set implements draw.Image. Out of bounds writes are ignored.
func (f *Framebuffer) Set(x, y int, c color.Color) {
	f.SetBit(x, y, image1bit.BitModel.Convert(c).(image1bit.Bit))
}

// SetBit sets the pixel at (x, y); image1bit.On is a light pixel.
func (f *Framebuffer) SetBit(x, y int, b image1bit.Bit) {
	_ = f.SetPixel(x, y, !bool(b))
}

func (f *Framebuffer) String() string {
	return fmt.Sprintf("framebuf.Framebuffer{%dx%d, %s}", f.width, f.height, f.rotation)
}
