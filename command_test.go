package ssd1677

import (
	"errors"
	"math"
	"testing"
)

func TestCommandEncoding(t *testing.T) {
	tests := []struct {
		name string
		fn   func(c *Commander) error
		want []op
	}{
		{"driver output control", func(c *Commander) error { return c.SetDriverOutputControl(479, 0x02) },
			cmdData(0x01, 0xDF, 0x01, 0x02)},
		{"gate voltage", func(c *Commander) error { return c.SetGateDrivingVoltage(19) },
			cmdData(0x03, 0x15)},
		{"source voltage POR", func(c *Commander) error { return c.SetSourceDrivingVoltage(15, 5, -15) },
			cmdData(0x04, 0x41, 0xA8, 0x32)},
		{"booster level 1", func(c *Commander) error { return c.SetBoosterSoftStart(InrushLevel1) },
			cmdData(0x0C, 0xAE, 0xC7, 0xC3, 0xC0, 0x40)},
		{"booster level 2", func(c *Commander) error { return c.SetBoosterSoftStart(InrushLevel2) },
			cmdData(0x0C, 0xAE, 0xC7, 0xC3, 0xC0, 0x80)},
		{"deep sleep discard", func(c *Commander) error { return c.DeepSleep(SleepDiscardRAM) },
			cmdData(0x10, 0x03)},
		{"data entry mode", func(c *Commander) error { return c.SetDataEntryMode(IncrementXIncrementY, Horizontal) },
			cmdData(0x11, 0x03)},
		{"data entry mode vertical", func(c *Commander) error { return c.SetDataEntryMode(DecrementXIncrementY, Vertical) },
			cmdData(0x11, 0x06)},
		{"software reset", func(c *Commander) error { return c.SoftwareReset() },
			[]op{cmd(0x12), busy()}},
		{"internal sensor", func(c *Commander) error { return c.SetTemperatureSensor(InternalSensor) },
			cmdData(0x18, 0x80)},
		{"external sensor", func(c *Commander) error { return c.SetTemperatureSensor(ExternalSensor) },
			cmdData(0x18, 0x30)},
		{"refresh", func(c *Commander) error { return c.RefreshDisplay() },
			[]op{cmd(0x20), busy()}},
		{"update option 1", func(c *Commander) error { return c.SetUpdateOption1(RAMBypass, RAMInvert) },
			cmdData(0x21, 0x84)},
		{"update option 2", func(c *Commander) error { return c.SetUpdateOption2(0xF7) },
			cmdData(0x22, 0xF7)},
		{"write B/W RAM", func(c *Commander) error { return c.WriteBWRAM([]byte{1, 2, 3}) },
			cmdData(0x24, 1, 2, 3)},
		{"write red RAM", func(c *Commander) error { return c.WriteRedRAM([]byte{4, 5}) },
			cmdData(0x26, 4, 5)},
		{"border waveform", func(c *Commander) error { return c.SetBorderWaveform(VBDTransition, LevelVSS, LUT1) },
			cmdData(0x3C, 0x01)},
		{"border waveform POR", func(c *Commander) error { return c.SetBorderWaveform(VBDHiZ, LevelVSS, LUT0) },
			cmdData(0x3C, 0xC0)},
		{"RAM X window", func(c *Commander) error { return c.SetRAMXAddress(0, 799) },
			cmdData(0x44, 0x00, 0x00, 0x1F, 0x03)},
		{"RAM Y window", func(c *Commander) error { return c.SetRAMYAddress(1, 479) },
			cmdData(0x45, 0x01, 0x00, 0xDF, 0x01)},
		{"RAM window truncated", func(c *Commander) error { return c.SetRAMXAddress(0x0401, 0xFFFF) },
			cmdData(0x44, 0x01, 0x00, 0xFF, 0x03)},
		{"fill red RAM", func(c *Commander) error { return c.FillRedRAM(0xF7) },
			cmdData(0x46, 0xF7)},
		{"fill B/W RAM", func(c *Commander) error { return c.FillBWRAM(0xF7) },
			cmdData(0x47, 0xF7)},
		{"RAM X counter", func(c *Commander) error { return c.SetRAMXCounter(0x0123) },
			cmdData(0x4E, 0x23, 0x01)},
		{"RAM Y counter", func(c *Commander) error { return c.SetRAMYCounter(0) },
			cmdData(0x4F, 0x00, 0x00)},
		{"nop", func(c *Commander) error { return c.Nop() },
			[]op{cmd(0x7F)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTransport{}
			if err := tt.fn(NewCommander(ft)); err != nil {
				t.Fatalf("got error %v", err)
			}
			compareOps(t, ft.ops, tt.want)
		})
	}
}

func TestBorderWaveformTransitionLUT(t *testing.T) {
	tests := []struct {
		lut  VBDGSTransition
		want byte
	}{
		{LUT0, 0x00},
		{LUT1, 0x01},
		{LUT2, 0x02},
		{LUT3, 0x03},
	}

	for _, tt := range tests {
		ft := &fakeTransport{}
		if err := NewCommander(ft).SetBorderWaveform(VBDTransition, LevelVSS, tt.lut); err != nil {
			t.Fatal(err)
		}
		compareOps(t, ft.ops, cmdData(0x3C, tt.want))
	}

	ft := &fakeTransport{}
	if err := NewCommander(ft).SetBorderWaveform(VBDFixed, LevelVSH2, LUT0); err != nil {
		t.Fatal(err)
	}
	compareOps(t, ft.ops, cmdData(0x3C, 0x70))
}

func TestSetRAMAddressFromSize(t *testing.T) {
	ft := &fakeTransport{}
	if err := NewCommander(ft).SetRAMAddressFromSize(Dimensions{Rows: 480, Cols: 800}); err != nil {
		t.Fatal(err)
	}
	want := append(cmdData(0x44, 0, 0, 0x1F, 0x03), cmdData(0x45, 0, 0, 0xDF, 0x01)...)
	compareOps(t, ft.ops, want)
}

func TestCommandErrorsPassThrough(t *testing.T) {
	for _, failAt := range []int{1, 2} {
		ft := &fakeTransport{failAt: failAt}
		err := NewCommander(ft).SetUpdateOption2(0xFF)
		if err != errFake {
			t.Errorf("failAt=%d: got %v, want the transport error unchanged", failAt, err)
		}
	}

	// No data is sent after a failed command byte.
	ft := &fakeTransport{failAt: 1}
	_ = NewCommander(ft).WriteBWRAM([]byte{1, 2, 3})
	if len(ft.ops) != 0 {
		t.Errorf("got %v after a failed command", ft.ops)
	}

	// Busy wait failures surface from refresh.
	ft = &fakeTransport{failAt: 2}
	if err := NewCommander(ft).RefreshDisplay(); !errors.Is(err, errFake) {
		t.Errorf("RefreshDisplay() = %v, want errFake", err)
	}
}

func TestGateVoltageCode(t *testing.T) {
	tests := []struct {
		volts float64
		want  byte
	}{
		{12, 0x07},
		{12.5, 0x08},
		{13, 0x09},
		{15, 0x0D},
		{17.5, 0x12},
		{19, 0x15},
		{19.5, 0x16},
		{20, 0x17},
		{16.4, 0x10}, // rounds to 16.5
		{16.2, 0x0F}, // rounds to 16.0
		{11.9, 0x00},
		{20.1, 0x00},
		{-3, 0x00},
		{math.NaN(), 0x00},
		{math.Inf(1), 0x00},
	}

	for _, tt := range tests {
		if got := GateVoltageCode(tt.volts); got != tt.want {
			t.Errorf("GateVoltageCode(%v) = 0x%02X, want 0x%02X", tt.volts, got, tt.want)
		}
	}
}

func TestSourceVoltageCodes(t *testing.T) {
	tests := []struct {
		name         string
		vsh1, vsh2   float64
		vsl          float64
		wantA, wantB byte
		wantC        byte
	}{
		{"POR values", 15, 5, -15, 0x41, 0xA8, 0x32},
		{"minimums", 9, 2.4, -9, 0x23, 0x8E, 0x1A},
		{"maximums", 17, 17, -17, 0x4B, 0x4B, 0x3A},
		{"VSH2 low range top", 15, 8.8, -15, 0x41, 0xCE, 0x32},
		{"VSH2 high range", 15, 9.2, -15, 0x41, 0x24, 0x32},
		{"VSL half step", 15, 5, -9.5, 0x41, 0xA8, 0x1C},
		{"out of range", 20, 1, -20, 0x41, 0xA8, 0x32},
		{"VSH1 low range not allowed", 5, 5, -15, 0x41, 0xA8, 0x32},
		{"positive VSL", 15, 5, 15, 0x41, 0xA8, 0x32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, c := SourceVoltageCodes(tt.vsh1, tt.vsh2, tt.vsl)
			if a != tt.wantA || b != tt.wantB || c != tt.wantC {
				t.Errorf("SourceVoltageCodes(%v, %v, %v) = %02X %02X %02X, want %02X %02X %02X",
					tt.vsh1, tt.vsh2, tt.vsl, a, b, c, tt.wantA, tt.wantB, tt.wantC)
			}
		})
	}
}
