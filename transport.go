package ssd1677

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// ResetDelay is the settle time applied on each edge of the hardware reset
// line (SSD1677 datasheet, section 9.1).
const ResetDelay = 10 * time.Millisecond

// defaultMaxTxSize matches the default spidev buffer size on Linux.
const defaultMaxTxSize = 4096

// ErrBusyTimeout is returned when the busy line stays asserted longer than
// the configured timeout.
var ErrBusyTimeout = errors.New("ssd1677: timed out waiting for busy line")

// Transport moves command and data bytes to the controller.
//
// The controller only depends on this interface, so any bus binding (or a
// test double) can be plugged in.
type Transport interface {
	// SendCommand sends a single command byte.
	SendCommand(cmd byte) error
	// SendData sends parameter or pixel data for the last command.
	SendData(data []byte) error
	// Reset pulses the hardware reset line, waiting delay on each edge.
	Reset(delay time.Duration) error
	// BusyWait blocks until the controller reports it is idle.
	BusyWait() error
}

// TransportOpts configures the SPI transport.
type TransportOpts struct {
	// Freq is the SPI clock (default: 10MHz, the SSD1677 tolerates 20MHz).
	Freq physic.Frequency
	// MaxTxSize caps the size of a single SPI transfer. Zero uses the
	// limit reported by the connection, or 4096 bytes.
	MaxTxSize int
	// BusyTimeout bounds BusyWait. Zero waits forever.
	BusyTimeout time.Duration
	// BusyPoll is the interval between busy line reads (default: 1ms).
	BusyPoll time.Duration
}

// SPITransport is a 4-wire SPI Transport: SPI clock/data, a data/command
// select line, a reset line and a busy input.
type SPITransport struct {
	c    conn.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut // optional
	busy gpio.PinIn

	maxTxSize   int
	busyTimeout time.Duration
	busyPoll    time.Duration
}

// NewSPITransport connects to the SPI port in Mode0, 8 bit words.
//
// rst may be nil when the reset line is not wired; Reset then only waits.
func NewSPITransport(p spi.Port, dc, rst gpio.PinOut, busy gpio.PinIn, opts *TransportOpts) (*SPITransport, error) {
	if dc == nil {
		return nil, errors.New("ssd1677: dc pin is required")
	}
	if busy == nil {
		return nil, errors.New("ssd1677: busy pin is required")
	}
	if opts == nil {
		opts = &TransportOpts{}
	}
	freq := opts.Freq
	if freq == 0 {
		freq = 10 * physic.MegaHertz
	}

	c, err := p.Connect(freq, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1677: failed to connect SPI: %w", err)
	}
	if err := busy.In(gpio.Float, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("ssd1677: failed to configure busy pin: %w", err)
	}

	maxTxSize := opts.MaxTxSize
	if maxTxSize <= 0 {
		if limits, ok := c.(conn.Limits); ok {
			maxTxSize = limits.MaxTxSize()
		}
	}
	if maxTxSize <= 0 {
		maxTxSize = defaultMaxTxSize
	}
	busyPoll := opts.BusyPoll
	if busyPoll <= 0 {
		busyPoll = time.Millisecond
	}

	return &SPITransport{
		c:           c,
		dc:          dc,
		rst:         rst,
		busy:        busy,
		maxTxSize:   maxTxSize,
		busyTimeout: opts.BusyTimeout,
		busyPoll:    busyPoll,
	}, nil
}

// SendCommand drives DC low and writes cmd.
func (t *SPITransport) SendCommand(cmd byte) error {
	if err := t.dc.Out(gpio.Low); err != nil {
		return err
	}
	return t.c.Tx([]byte{cmd}, nil)
}

// SendData drives DC high and writes data, split in chunks of at most
// MaxTxSize bytes.
func (t *SPITransport) SendData(data []byte) error {
	if err := t.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(data) > 0 {
		n := min(len(data), t.maxTxSize)
		if err := t.c.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// Reset pulls the reset line low then high, sleeping delay after each edge.
func (t *SPITransport) Reset(delay time.Duration) error {
	if t.rst == nil {
		time.Sleep(delay)
		return nil
	}
	if err := t.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("ssd1677: failed to pull RST low: %w", err)
	}
	time.Sleep(delay)
	if err := t.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("ssd1677: failed to pull RST high: %w", err)
	}
	time.Sleep(delay)
	return nil
}

// BusyWait polls the busy line until it reads low. The line is high while
// the controller is working.
func (t *SPITransport) BusyWait() error {
	var deadline time.Time
	if t.busyTimeout > 0 {
		deadline = time.Now().Add(t.busyTimeout)
	}
	for t.busy.Read() == gpio.High {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return ErrBusyTimeout
		}
		time.Sleep(t.busyPoll)
	}
	return nil
}

// MaxTxSize returns the transfer chunk size in use.
func (t *SPITransport) MaxTxSize() int {
	return t.maxTxSize
}

func (t *SPITransport) String() string {
	return fmt.Sprintf("ssd1677.SPITransport{%s, dc=%s, busy=%s}", t.c, t.dc, t.busy)
}

var _ Transport = (*SPITransport)(nil)
