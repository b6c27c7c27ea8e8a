// Package ssd1677 controls a SSD1677 e-paper display via SPI.
//
// The SSD1677 is an e-paper controller with two 1 bit RAM planes (black/white
// and red) driving panels of up to 960 sources by 680 gates, such as 800×480
// monochrome panels. The Display type implements the display.Drawer interface
// from periph.io.
//
// # Tiers
//
// The driver exposes three levels of control:
//
//   - Commander writes controller registers directly.
//   - Dev runs the reset, initialization and update sequences.
//   - Display pairs a Dev with a frame buffer and accepts image/draw calls.
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	CLK         → SPI Clock (SCLK)
//	DIN         → SPI Data (MOSI)
//	CS          → SPI Chip Select
//	DC          → GPIO (data/command select)
//	RST         → GPIO (reset, optional)
//	BUSY        → GPIO (input, high while busy)
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image"
//		"image/draw"
//
//		"github.com/flavioheleno/ssd1677"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/ssd1306/image1bit"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		port, _ := spireg.Open("")
//		defer port.Close()
//
//		cfg, _ := ssd1677.NewBuilder().
//			Dimensions(ssd1677.Dimensions{Rows: 480, Cols: 800}).
//			Rotation(ssd1677.Rotate0).
//			AutoUpdate(false).
//			Build()
//
//		dev, _ := ssd1677.NewSPI(port,
//			gpioreg.ByName("GPIO25"), // DC
//			gpioreg.ByName("GPIO17"), // RST
//			gpioreg.ByName("GPIO24"), // BUSY
//			cfg, nil)
//
//		// The controller must be reset before first use.
//		dev.Reset()
//
//		disp, _ := ssd1677.NewDisplay(dev, nil)
//		defer disp.Halt()
//
//		disp.Clear(false)
//		draw.Draw(disp.Buffer(), image.Rect(100, 100, 200, 200),
//			&image.Uniform{image1bit.Off}, image.Point{}, draw.Src)
//		disp.Update(ssd1677.UpdateSlow)
//	}
//
// # Frame Buffer
//
// Each pixel is one bit, eight pixels per byte, most significant bit first,
// in the panel's native scan order. A cleared bit is an inked (dark) pixel,
// so image1bit.On renders light and image1bit.Off renders dark. The buffer is
// cols×rows/8 bytes and can be provided by the caller to NewDisplay.
//
// Rotation is applied when mapping coordinates into the buffer; the bounds
// reported by Display swap width and height for 90° and 270°.
//
// # Updates
//
// UpdateSlow fully clears the panel and yields a crisp image. UpdateFast is
// quicker but may leave ghosting. With auto update enabled every Draw
// triggers a fast update and Clear a slow one, which is convenient but slow;
// drawing first and calling Update once is much faster. SetPixel only
// changes the frame buffer.
//
// # Errors and Recovery
//
// Transport errors are never retried. A failure in the middle of Reset, Init,
// Update or Sleep leaves the controller in an undefined state and further
// updates are refused until Reset succeeds. The busy line is polled forever
// unless TransportOpts.BusyTimeout is set, in which case ErrBusyTimeout is
// returned.
//
// # Datasheet
//
// https://www.good-display.com/companyfile/32/SSD1677.pdf
package ssd1677
