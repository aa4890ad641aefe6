package sstv

import "fmt"

// Encoder is a single-owner, synchronous SSTV modulator: it renders a
// Picture into a mono, phase-continuous PCM stream for one of the
// modes in the VIS table. It reuses only the mode table and the
// oscillator from the decoder side, so both directions agree
// bit-exactly on timings and the VIS code.
type Encoder struct {
	sampleRate float64
	osc        *Oscillator
}

// NewEncoder creates an encoder for the given sample rate.
func NewEncoder(sampleRate float64) (*Encoder, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	return &Encoder{sampleRate: sampleRate, osc: NewOscillator(sampleRate)}, nil
}

// Encode renders pic as a transmission in the given mode: VIS header
// followed by the mode's per-line synthesis. pic's dimensions must
// match the mode's table entry.
func (e *Encoder) Encode(mode Mode, pic *Picture) ([]int16, error) {
	spec := LookupMode(mode)
	if spec == nil {
		return nil, fmt.Errorf("sstv: %s is not an encodable mode", mode)
	}
	if pic.Width != spec.Width || pic.Height != spec.Height {
		return nil, ErrInvalidDimensions
	}

	out := e.encodeHeader(spec.VIS)

	switch spec.Family {
	case FamilyRGBSeq:
		out = append(out, encodeRGBLines(spec, pic, e.osc)...)
	case FamilyRobot:
		out = append(out, encodeRobotLines(spec, pic, e.osc)...)
	case FamilyPD:
		out = append(out, encodePDLines(spec, pic, e.osc)...)
	}
	return out, nil
}

// encodeHeader synthesizes the VIS preamble shared by every mode:
// leader/break/leader, start bit, seven LSB-first data bits, an
// even-parity bit, and a stop bit.
func (e *Encoder) encodeHeader(code uint8) []int16 {
	osc := e.osc
	var out []int16
	out = append(out, osc.Generate(headerLeaderMs, visLeaderFreq)...)
	out = append(out, osc.Generate(headerBreakMs, visBreakFreq)...)
	out = append(out, osc.Generate(headerLeaderMs, visLeaderFreq)...)
	out = append(out, osc.Generate(visBitMs, visBreakFreq)...) // start bit

	parity := 0
	for bit := 0; bit < 7; bit++ {
		b := (code >> uint(bit)) & 1
		if b == 1 {
			parity ^= 1
			out = append(out, osc.Generate(visBitMs, visOneFreq)...)
		} else {
			out = append(out, osc.Generate(visBitMs, visZeroFreq)...)
		}
	}
	if parity == 1 {
		out = append(out, osc.Generate(visBitMs, visOneFreq)...)
	} else {
		out = append(out, osc.Generate(visBitMs, visZeroFreq)...)
	}
	out = append(out, osc.Generate(visBitMs, visBreakFreq)...) // stop bit
	return out
}
