package sstv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int16ToFloat(samples []int16) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s) / 32768.0
	}
	return out
}

// encodeHeaderWithParity synthesizes the same VIS header as
// Encoder.encodeHeader, except that the parity slot carries the given
// bit instead of one computed from code. Tests use it to build
// payloads whose parity bit does not match their data bits.
func encodeHeaderWithParity(e *Encoder, code, parity uint8) []int16 {
	osc := e.osc
	var out []int16
	out = append(out, osc.Generate(headerLeaderMs, visLeaderFreq)...)
	out = append(out, osc.Generate(headerBreakMs, visBreakFreq)...)
	out = append(out, osc.Generate(headerLeaderMs, visLeaderFreq)...)
	out = append(out, osc.Generate(visBitMs, visBreakFreq)...) // start bit
	bitTone := func(b uint8) float64 {
		if b&1 == 1 {
			return visOneFreq
		}
		return visZeroFreq
	}
	for bit := 0; bit < 7; bit++ {
		out = append(out, osc.Generate(visBitMs, bitTone(code>>uint(bit)))...)
	}
	out = append(out, osc.Generate(visBitMs, bitTone(parity))...)
	out = append(out, osc.Generate(visBitMs, visBreakFreq)...) // stop bit
	return out
}

// visParity is the even-parity bit over the seven data bits of code.
func visParity(code uint8) uint8 {
	var p uint8
	for bit := 0; bit < 7; bit++ {
		p ^= (code >> uint(bit)) & 1
	}
	return p
}

// TestEncodeHeaderThenDecode exercises the oscillator and
// discriminator end-to-end: every mode's VIS header, synthesized and
// demodulated, recovers the same code.
func TestEncodeHeaderThenDecode(t *testing.T) {
	const fs = 8000.0
	for _, spec := range modeTable {
		enc, err := NewEncoder(fs)
		require.NoError(t, err)
		header := enc.encodeHeader(spec.VIS)

		dec, err := NewDecoder(fs, nil)
		require.NoError(t, err)
		dec.Decode(int16ToFloat(header))

		require.Equal(t, spec.Mode, dec.State(), "mode %s", spec.Mode)
	}
}

// TestParityFlipBreaksVIS checks that flipping any single data bit
// of a synthesized VIS payload, while the parity slot still carries
// the bit computed for the original code, breaks even parity and the
// state machine falls back to None.
func TestParityFlipBreaksVIS(t *testing.T) {
	const fs = 8000.0
	spec := LookupMode(ModePD120)
	require.NotNil(t, spec)

	for bit := uint(0); bit < 7; bit++ {
		flipped := spec.VIS ^ (1 << bit)
		enc, err := NewEncoder(fs)
		require.NoError(t, err)
		header := encodeHeaderWithParity(enc, flipped, visParity(spec.VIS))

		dec, err := NewDecoder(fs, nil)
		require.NoError(t, err)
		dec.Decode(int16ToFloat(header))

		assert.Equal(t, ModeNone, dec.State(), "bit %d should break VIS parity", bit)
	}
}

// TestHeaderFrequencyTolerance checks that a leader with all tones
// offset by +40Hz still matches; at +60Hz it does not.
func TestHeaderFrequencyTolerance(t *testing.T) {
	const fs = 8000.0

	build := func(offset float64) []float64 {
		osc := NewOscillator(fs)
		var out []int16
		out = append(out, osc.Generate(headerLeaderMs, visLeaderFreq+offset)...)
		out = append(out, osc.Generate(headerBreakMs, visBreakFreq+offset)...)
		out = append(out, osc.Generate(headerLeaderMs, visLeaderFreq+offset)...)
		return int16ToFloat(out)
	}

	dec1, _ := NewDecoder(fs, nil)
	dec1.Decode(build(40))
	assert.Equal(t, ModeVisFound, dec1.State(), "+40Hz offset should still match")

	dec2, _ := NewDecoder(fs, nil)
	dec2.Decode(build(60))
	assert.Equal(t, ModeNone, dec2.State(), "+60Hz offset should not match")
}
