package ssd1677

import (
	"errors"
	"fmt"

	"github.com/flavioheleno/ssd1677/framebuf"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// ramFillPattern is written to both RAM planes during init so their content
// is deterministic before the first draw.
const ramFillPattern = 0xF7

// scanDirection is the gate scanning sequence used by init.
const scanDirection = 0x02

// loadLUT is the update option loading the waveform LUT from OTP.
const loadLUT = 0xFF

// State errors.
var (
	ErrNotInitialized = errors.New("ssd1677: display is not initialized, call Reset")
	ErrNotReset       = errors.New("ssd1677: display must be reset before init")
	ErrBufferSize     = errors.New("ssd1677: invalid buffer size")
)

type state uint8

const (
	stateUnreset state = iota
	stateReset
	stateInitialized
	stateSleeping
	stateFaulted
)

func (s state) String() string {
	switch s {
	case stateUnreset:
		return "unreset"
	case stateReset:
		return "reset"
	case stateInitialized:
		return "initialized"
	case stateSleeping:
		return "sleeping"
	case stateFaulted:
		return "faulted"
	}
	return "unknown"
}

// Dev is the device handle for the SSD1677 controller.
//
// Dev is not safe for concurrent use.
type Dev struct {
	t     Transport
	cmd   *Commander
	cfg   Config
	log   zerolog.Logger
	state state
}

// New returns a Dev talking through t. cfg must come from Builder.Build.
// The controller must be reset with Reset before use.
func New(t Transport, cfg Config) (*Dev, error) {
	if !cfg.valid {
		return nil, ErrInvalidConfig
	}
	return &Dev{
		t:   t,
		cmd: NewCommander(t),
		cfg: cfg,
		log: cfg.log.With().Str("dev", "ssd1677").Stringer("size", cfg.dims).Logger(),
	}, nil
}

// NewSPI returns a Dev connected over 4-wire SPI.
//
// dc selects data (high) or command (low), rst is the optional reset line and
// busy reads high while the controller is working. opts can be nil.
func NewSPI(p spi.Port, dc, rst gpio.PinOut, busy gpio.PinIn, cfg Config, opts *TransportOpts) (*Dev, error) {
	if !cfg.valid {
		return nil, ErrInvalidConfig
	}
	t, err := NewSPITransport(p, dc, rst, busy, opts)
	if err != nil {
		return nil, err
	}
	return New(t, cfg)
}

// Reset performs a hardware reset followed by a software reset, then
// initializes the controller.
//
// It must be called before first use, to wake the controller up from deep
// sleep and to recover from any failure.
func (d *Dev) Reset() error {
	d.log.Debug().Stringer("from", d.state).Msg("reset")
	d.state = stateFaulted
	if err := d.t.Reset(ResetDelay); err != nil {
		return d.fail("hardware reset", err)
	}
	if err := d.cmd.SoftwareReset(); err != nil {
		return d.fail("software reset", err)
	}
	if err := d.t.BusyWait(); err != nil {
		return d.fail("busy wait", err)
	}
	d.state = stateReset
	return d.Init()
}

// Init sends the initialization sequence. The controller must have been
// reset; calling Init again on an initialized controller reprograms it.
func (d *Dev) Init() error {
	if d.state != stateReset && d.state != stateInitialized {
		return ErrNotReset
	}
	dims := d.cfg.dims
	steps := []struct {
		name string
		fn   func() error
	}{
		{"fill B/W RAM", func() error { return d.cmd.FillBWRAM(ramFillPattern) }},
		{"fill red RAM", func() error { return d.cmd.FillRedRAM(ramFillPattern) }},
		{"driver output control", func() error { return d.cmd.SetDriverOutputControl(dims.Rows-1, scanDirection) }},
		{"data entry mode", func() error { return d.cmd.SetDataEntryMode(IncrementXIncrementY, Horizontal) }},
		{"RAM address", func() error { return d.cmd.SetRAMAddressFromSize(dims) }},
		{"border waveform", func() error { return d.cmd.SetBorderWaveform(VBDTransition, LevelVSS, LUT1) }},
		{"temperature sensor", func() error { return d.cmd.SetTemperatureSensor(InternalSensor) }},
		{"load LUT", func() error { return d.cmd.SetUpdateOption2(loadLUT) }},
		{"refresh", d.cmd.RefreshDisplay},
		{"busy wait", d.t.BusyWait},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return d.fail("init: "+s.name, err)
		}
	}
	d.state = stateInitialized
	d.log.Debug().Msg("initialized")
	return nil
}

// Update writes the provided planes into the controller RAM and refreshes the
// panel. A nil buffer leaves the corresponding plane untouched; with both nil
// only the refresh is performed.
//
// Each buffer must be BufferLen bytes long.
func (d *Dev) Update(bw, red []byte, mode UpdateMode) error {
	if d.state != stateInitialized {
		return ErrNotInitialized
	}
	for _, b := range [][]byte{bw, red} {
		if b != nil && len(b) != d.BufferLen() {
			return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(b), d.BufferLen())
		}
	}
	d.log.Debug().Bool("bw", bw != nil).Bool("red", red != nil).Stringer("mode", mode).Msg("update")
	if bw != nil {
		if err := d.writePlane(bw, d.cmd.WriteBWRAM); err != nil {
			return d.fail("update: B/W RAM", err)
		}
	}
	if red != nil {
		if err := d.writePlane(red, d.cmd.WriteRedRAM); err != nil {
			return d.fail("update: red RAM", err)
		}
	}
	if err := d.cmd.SetUpdateOption2(byte(mode)); err != nil {
		return d.fail("update: option", err)
	}
	if err := d.cmd.RefreshDisplay(); err != nil {
		return d.fail("update: refresh", err)
	}
	return nil
}

// writePlane rewinds the RAM counters and streams buf with write.
func (d *Dev) writePlane(buf []byte, write func([]byte) error) error {
	if err := d.cmd.SetRAMXCounter(0); err != nil {
		return err
	}
	if err := d.cmd.SetRAMYCounter(0); err != nil {
		return err
	}
	return write(buf)
}

// Sleep puts the controller in deep sleep. Only Reset brings it back.
func (d *Dev) Sleep(mode DeepSleepMode) error {
	if d.state != stateInitialized {
		return ErrNotInitialized
	}
	if err := d.cmd.DeepSleep(mode); err != nil {
		return d.fail("deep sleep", err)
	}
	d.state = stateSleeping
	d.log.Debug().Msg("sleeping")
	return nil
}

// fail marks the hardware state as undefined and wraps err.
func (d *Dev) fail(step string, err error) error {
	d.state = stateFaulted
	d.log.Error().Err(err).Str("step", step).Msg("controller faulted, reset required")
	return fmt.Errorf("ssd1677: %s: %w", step, err)
}

// Ready reports whether the controller is initialized and can be updated.
func (d *Dev) Ready() bool {
	return d.state == stateInitialized
}

// Commands gives raw access to the controller registers.
//
// Commands sent this way bypass the state machine: they are not checked
// against Ready, and they do not change or fault the device state. Registers
// reprogrammed here are overwritten by the next Reset or Init.
func (d *Dev) Commands() *Commander {
	return d.cmd
}

// Config returns the configuration of the device.
func (d *Dev) Config() Config {
	return d.cfg
}

// Rows returns the number of native rows (gate outputs).
func (d *Dev) Rows() int {
	return int(d.cfg.dims.Rows)
}

// Cols returns the number of native columns (source outputs).
func (d *Dev) Cols() int {
	return int(d.cfg.dims.Cols)
}

// Rotation returns the configured rotation.
func (d *Dev) Rotation() Rotation {
	return d.cfg.rotation
}

// AutoUpdate reports whether drawing refreshes the panel immediately.
func (d *Dev) AutoUpdate() bool {
	return d.cfg.autoUpdate
}

// Size returns the logical width and height, swapped for 90° and 270°.
func (d *Dev) Size() (width, height int) {
	return d.cfg.rotation.Size(d.Cols(), d.Rows())
}

// BufferLen returns the length of one RAM plane in bytes.
func (d *Dev) BufferLen() int {
	return framebuf.Len(d.Cols(), d.Rows())
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1677.Dev{%dx%d, %s}", d.Cols(), d.Rows(), d.Rotation())
}
