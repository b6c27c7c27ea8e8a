package ssd1677

// Commands
const (
	cmdDriverOutputControl   byte = 0x01
	cmdGateDrivingVoltage    byte = 0x03
	cmdSourceDrivingVoltage  byte = 0x04
	cmdBoosterSoftStart      byte = 0x0C
	cmdDeepSleep             byte = 0x10
	cmdDataEntryMode         byte = 0x11
	cmdSoftwareReset         byte = 0x12
	cmdTemperatureSensor     byte = 0x18
	cmdMasterActivation      byte = 0x20
	cmdDisplayUpdateControl1 byte = 0x21
	cmdDisplayUpdateControl2 byte = 0x22
	cmdWriteRAMBW            byte = 0x24
	cmdWriteRAMRed           byte = 0x26
	cmdBorderWaveform        byte = 0x3C
	cmdRAMXAddress           byte = 0x44
	cmdRAMYAddress           byte = 0x45
	cmdFillRAMRed            byte = 0x46
	cmdFillRAMBW             byte = 0x47
	cmdRAMXCounter           byte = 0x4E
	cmdRAMYCounter           byte = 0x4F
	cmdNop                   byte = 0x7F
)

// addressMask keeps the 10 bits of the RAM window registers.
const addressMask = 0x03FF

// IncrementAxis selects which address counter advances first when RAM is
// written.
type IncrementAxis byte

const (
	Horizontal IncrementAxis = 0b0 // X first
	Vertical   IncrementAxis = 0b1 // Y first
)

// DataEntryMode selects the direction of the RAM address counters.
type DataEntryMode byte

const (
	DecrementXDecrementY DataEntryMode = 0b00
	IncrementXDecrementY DataEntryMode = 0b01
	DecrementXIncrementY DataEntryMode = 0b10
	IncrementXIncrementY DataEntryMode = 0b11
)

// TemperatureSensor selects the sensor used to pick the waveform.
type TemperatureSensor byte

const (
	InternalSensor TemperatureSensor = 0x80
	ExternalSensor TemperatureSensor = 48
)

// RAMOption is the per plane RAM content option of display update
// control 1.
type RAMOption byte

const (
	RAMNormal RAMOption = 0b0000
	RAMBypass RAMOption = 0b0100
	RAMInvert RAMOption = 0b1000
)

// DeepSleepMode is the parameter of the deep sleep command.
type DeepSleepMode byte

const (
	SleepNormal     DeepSleepMode = 0x00 // leave deep sleep
	SleepKeepRAM    DeepSleepMode = 0x01
	SleepDiscardRAM DeepSleepMode = 0x03
)

// BoosterInrush is the inrush current limit of the booster soft start.
type BoosterInrush byte

const (
	InrushLevel1 BoosterInrush = 0x40
	InrushLevel2 BoosterInrush = 0x80
)

// VBDOption selects the border (VBD) waveform source.
type VBDOption byte

const (
	VBDTransition VBDOption = 0b00 // uses VBDGSTransition setting
	VBDFixed      VBDOption = 0b01 // uses VBDFixedLevel setting
	VBDVCOM       VBDOption = 0b10
	VBDHiZ        VBDOption = 0b11 // POR
)

// VBDFixedLevel is the fixed border level.
type VBDFixedLevel byte

const (
	LevelVSS  VBDFixedLevel = 0b00 // POR
	LevelVSH1 VBDFixedLevel = 0b01
	LevelVSL  VBDFixedLevel = 0b10
	LevelVSH2 VBDFixedLevel = 0b11
)

// VBDGSTransition is the LUT used for the border transition.
type VBDGSTransition byte

const (
	LUT0 VBDGSTransition = 0b00 // POR
	LUT1 VBDGSTransition = 0b01
	LUT2 VBDGSTransition = 0b10
	LUT3 VBDGSTransition = 0b11
)

// Commander encodes SSD1677 register writes.
//
// Every method sends one command byte followed, when the command takes
// parameters, by one data transfer. Transport errors are returned as is.
type Commander struct {
	t Transport
}

// NewCommander returns a Commander writing through t.
func NewCommander(t Transport) *Commander {
	return &Commander{t: t}
}

func (c *Commander) send(cmd byte, data ...byte) error {
	if err := c.t.SendCommand(cmd); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return c.t.SendData(data)
}

// SetDriverOutputControl sets the gate count (MUX) and the gate scanning
// sequence and direction.
func (c *Commander) SetDriverOutputControl(gates uint16, scan byte) error {
	return c.send(cmdDriverOutputControl, byte(gates), byte(gates>>8), scan)
}

// SetGateDrivingVoltage sets VGH, see GateVoltageCode.
func (c *Commander) SetGateDrivingVoltage(volts float64) error {
	return c.send(cmdGateDrivingVoltage, GateVoltageCode(volts))
}

// SetSourceDrivingVoltage sets VSH1, VSH2 and VSL, see SourceVoltageCodes.
// VSH1 should be larger than VSH2.
func (c *Commander) SetSourceDrivingVoltage(vsh1, vsh2, vsl float64) error {
	a, b, v := SourceVoltageCodes(vsh1, vsh2, vsl)
	return c.send(cmdSourceDrivingVoltage, a, b, v)
}

// SetBoosterSoftStart controls the booster inrush current. The first four
// bytes are fixed (datasheet page 24).
func (c *Commander) SetBoosterSoftStart(inrush BoosterInrush) error {
	return c.send(cmdBoosterSoftStart, 0xAE, 0xC7, 0xC3, 0xC0, byte(inrush))
}

// SetTemperatureSensor selects the temperature sensor.
func (c *Commander) SetTemperatureSensor(s TemperatureSensor) error {
	return c.send(cmdTemperatureSensor, byte(s))
}

// SoftwareReset resets every register except deep sleep mode to its POR
// value and waits for completion. RAM is kept.
func (c *Commander) SoftwareReset() error {
	if err := c.send(cmdSoftwareReset); err != nil {
		return err
	}
	return c.t.BusyWait()
}

// SetDataEntryMode sets the address counter direction and increment axis.
func (c *Commander) SetDataEntryMode(mode DataEntryMode, axis IncrementAxis) error {
	return c.send(cmdDataEntryMode, byte(axis&0b1)<<2|byte(mode&0b11))
}

// RefreshDisplay runs the display update sequence and waits for it.
func (c *Commander) RefreshDisplay() error {
	if err := c.send(cmdMasterActivation); err != nil {
		return err
	}
	return c.t.BusyWait()
}

// SetUpdateOption1 sets how each RAM plane is used by the next refresh.
func (c *Commander) SetUpdateOption1(bw, red RAMOption) error {
	return c.send(cmdDisplayUpdateControl1, byte(red&0x0F)<<4|byte(bw&0x0F))
}

// SetUpdateOption2 sets the display update sequence option.
func (c *Commander) SetUpdateOption2(option byte) error {
	return c.send(cmdDisplayUpdateControl2, option)
}

// SetRAMXAddress sets the X window. Values are 10 bits wide, higher bits
// are dropped.
func (c *Commander) SetRAMXAddress(start, end uint16) error {
	return c.send(cmdRAMXAddress, window(start, end)...)
}

// SetRAMYAddress sets the Y window. Values are 10 bits wide, higher bits
// are dropped.
func (c *Commander) SetRAMYAddress(start, end uint16) error {
	return c.send(cmdRAMYAddress, window(start, end)...)
}

// SetRAMAddressFromSize sets the X window over the source outputs (cols)
// and the Y window over the gate outputs (rows).
func (c *Commander) SetRAMAddressFromSize(dims Dimensions) error {
	if err := c.SetRAMXAddress(0, dims.Cols-1); err != nil {
		return err
	}
	return c.SetRAMYAddress(0, dims.Rows-1)
}

func window(start, end uint16) []byte {
	start &= addressMask
	end &= addressMask
	return []byte{byte(start), byte(start >> 8), byte(end), byte(end >> 8)}
}

// FillBWRAM fills the black/white RAM with a regular pattern.
func (c *Commander) FillBWRAM(pattern byte) error {
	return c.send(cmdFillRAMBW, pattern)
}

// FillRedRAM fills the red RAM with a regular pattern.
func (c *Commander) FillRedRAM(pattern byte) error {
	return c.send(cmdFillRAMRed, pattern)
}

// SetRAMXCounter sets the RAM X address counter.
func (c *Commander) SetRAMXCounter(v uint16) error {
	return c.send(cmdRAMXCounter, byte(v), byte(v>>8))
}

// SetRAMYCounter sets the RAM Y address counter.
func (c *Commander) SetRAMYCounter(v uint16) error {
	return c.send(cmdRAMYCounter, byte(v), byte(v>>8))
}

// WriteBWRAM writes data into the black/white RAM at the current counters.
func (c *Commander) WriteBWRAM(data []byte) error {
	return c.send(cmdWriteRAMBW, data...)
}

// WriteRedRAM writes data into the red RAM at the current counters.
func (c *Commander) WriteRedRAM(data []byte) error {
	return c.send(cmdWriteRAMRed, data...)
}

// SetBorderWaveform selects the border waveform.
func (c *Commander) SetBorderWaveform(opt VBDOption, level VBDFixedLevel, tr VBDGSTransition) error {
	return c.send(cmdBorderWaveform, byte(opt&0b11)<<6|byte(level&0b11)<<4|byte(tr&0b11))
}

// DeepSleep enters (or leaves, with SleepNormal) deep sleep. Only a
// hardware reset wakes the controller up.
func (c *Commander) DeepSleep(mode DeepSleepMode) error {
	return c.send(cmdDeepSleep, byte(mode))
}

// Nop terminates a frame memory write or read.
func (c *Commander) Nop() error {
	return c.send(cmdNop)
}
