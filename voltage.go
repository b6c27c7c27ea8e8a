package ssd1677

import "math"

// Power-on reset register values.
const (
	porGateVoltage = 0x00 // 20V
	porVSH1        = 0x41 // 15V
	porVSH2        = 0xA8 // 5V
	porVSL         = 0x32 // -15V
)

// step returns the index of the nearest step of size inc starting at lo, or
// false when v lies outside [lo, hi].
func step(v, lo, hi, inc float64) (int, bool) {
	if math.IsNaN(v) || v < lo || v > hi {
		return 0, false
	}
	return int(math.Round((v - lo) / inc)), true
}

// GateVoltageCode quantizes a VGH voltage to its register code. Valid
// inputs are 12V to 20V in 0.5V steps, mapped to 0x07..0x17. Values in
// between round to the nearest step. Anything else yields the POR code.
func GateVoltageCode(volts float64) byte {
	n, ok := step(volts, 12, 20, 0.5)
	if !ok {
		return porGateVoltage
	}
	return 0x07 + byte(n)
}

// SourceVoltageCodes quantizes VSH1, VSH2 and VSL to their register codes.
//
//	VSH1:  9V to 17V, 0.2V steps
//	VSH2:  2.4V to 8.8V in 0.1V steps, 9V to 17V in 0.2V steps
//	VSL:  -9V to -17V, 0.5V steps
//
// Out of range values yield the POR code of the respective register.
func SourceVoltageCodes(vsh1, vsh2, vsl float64) (a, b, c byte) {
	return vshCode(vsh1, false, porVSH1), vshCode(vsh2, true, porVSH2), vslCode(vsl)
}

func vshCode(v float64, low bool, por byte) byte {
	if n, ok := step(v, 9, 17, 0.2); ok {
		return 0x23 + byte(n)
	}
	if low {
		if n, ok := step(v, 2.4, 8.8, 0.1); ok {
			return 0x8E + byte(n)
		}
	}
	return por
}

func vslCode(v float64) byte {
	n, ok := step(-v, 9, 17, 0.5)
	if !ok {
		return porVSL
	}
	return 0x1A + 2*byte(n)
}
