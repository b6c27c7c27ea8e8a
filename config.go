package ssd1677

import (
	"errors"
	"fmt"

	"github.com/flavioheleno/ssd1677/framebuf"
	"github.com/rs/zerolog"
)

const (
	// MaxGateOutputs is the maximum number of rows the controller drives.
	MaxGateOutputs = 680
	// MaxSourceOutputs is the maximum number of columns the controller
	// drives.
	MaxSourceOutputs = 960
)

// Configuration errors.
var (
	ErrNoDimensions  = errors.New("ssd1677: dimensions are required")
	ErrInvalidConfig = errors.New("ssd1677: config must be created with a Builder")
	ErrColsAlignment = errors.New("ssd1677: cols must be a multiple of 8")
	ErrRowsRange     = fmt.Errorf("ssd1677: rows must be between 1 and %d", MaxGateOutputs)
	ErrColsRange     = fmt.Errorf("ssd1677: cols must be between 8 and %d", MaxSourceOutputs)
)

// Dimensions is the native size of the panel.
type Dimensions struct {
	Rows uint16 // gate outputs, at most MaxGateOutputs
	Cols uint16 // source outputs, multiple of 8, at most MaxSourceOutputs
}

// Validate checks d against the controller limits.
func (d Dimensions) Validate() error {
	if d.Cols%8 != 0 {
		return ErrColsAlignment
	}
	if d.Rows == 0 || d.Rows > MaxGateOutputs {
		return ErrRowsRange
	}
	if d.Cols == 0 || d.Cols > MaxSourceOutputs {
		return ErrColsRange
	}
	return nil
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Cols, d.Rows)
}

// Rotation is the logical rotation of the panel.
type Rotation = framebuf.Rotation

// Rotations.
const (
	Rotate0   = framebuf.Rotate0
	Rotate90  = framebuf.Rotate90
	Rotate180 = framebuf.Rotate180
	Rotate270 = framebuf.Rotate270
)

// UpdateMode is the display update sequence used by a refresh.
type UpdateMode byte

const (
	// UpdateFast is quick but may leave ghosting.
	UpdateFast UpdateMode = 0xFF
	// UpdateSlow clears the panel completely and yields a clean image.
	UpdateSlow UpdateMode = 0xF7
)

func (m UpdateMode) String() string {
	switch m {
	case UpdateFast:
		return "fast"
	case UpdateSlow:
		return "slow"
	}
	return fmt.Sprintf("UpdateMode(%#02x)", byte(m))
}

// Config is a validated display configuration. Use a Builder to create one.
type Config struct {
	dims       Dimensions
	rotation   Rotation
	autoUpdate bool
	log        zerolog.Logger
	valid      bool
}

// Dimensions returns the native panel size.
func (c Config) Dimensions() Dimensions { return c.dims }

// Rotation returns the logical rotation.
func (c Config) Rotation() Rotation { return c.rotation }

// AutoUpdate reports whether drawing refreshes the panel immediately.
func (c Config) AutoUpdate() bool { return c.autoUpdate }

// Builder builds a Config.
//
// Dimensions are mandatory; rotation defaults to Rotate0 and auto update to
// true.
type Builder struct {
	dims       *Dimensions
	rotation   Rotation
	autoUpdate bool
	log        zerolog.Logger
}

// NewBuilder returns a Builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		rotation:   Rotate0,
		autoUpdate: true,
		log:        zerolog.Nop(),
	}
}

// Dimensions sets the native panel size.
func (b *Builder) Dimensions(d Dimensions) *Builder {
	b.dims = &d
	return b
}

// Rotation sets the logical rotation.
func (b *Builder) Rotation(r Rotation) *Builder {
	b.rotation = r
	return b
}

// AutoUpdate controls whether every draw refreshes the panel. It is
// convenient but slow; drawing everything first and calling Update once is
// much faster.
func (b *Builder) AutoUpdate(enabled bool) *Builder {
	b.autoUpdate = enabled
	return b
}

// Logger sets the logger used by the device.
func (b *Builder) Logger(l zerolog.Logger) *Builder {
	b.log = l
	return b
}

// Build validates the settings and returns the Config.
func (b *Builder) Build() (Config, error) {
	if b.dims == nil {
		return Config{}, ErrNoDimensions
	}
	if err := b.dims.Validate(); err != nil {
		return Config{}, err
	}
	if b.rotation > Rotate270 {
		return Config{}, fmt.Errorf("ssd1677: unsupported rotation %d", b.rotation)
	}
	return Config{
		dims:       *b.dims,
		rotation:   b.rotation,
		autoUpdate: b.autoUpdate,
		log:        b.log,
		valid:      true,
	}, nil
}
