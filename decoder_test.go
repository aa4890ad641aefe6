package sstv

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewDecoderRejectsInvalidSampleRate covers the fatal-error path
// for a zero or negative sample rate.
func TestNewDecoderRejectsInvalidSampleRate(t *testing.T) {
	_, err := NewDecoder(0, nil)
	assert.ErrorIs(t, err, ErrInvalidSampleRate)

	_, err = NewDecoder(-8000, nil)
	assert.ErrorIs(t, err, ErrInvalidSampleRate)
}

// TestWhiteNoiseNeverLocks checks that ten seconds of noise never
// produces a mode transition.
func TestWhiteNoiseNeverLocks(t *testing.T) {
	const fs = 48000.0
	dec, err := NewDecoder(fs, nil)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	n := 10 * int(fs)
	noise := make([]float64, n)
	for i := range noise {
		noise[i] = rng.Float64()*2 - 1
	}
	dec.Decode(noise)

	assert.Equal(t, ModeNone, dec.State())
}

// TestVISParityFailureReturnsToIdle checks that a valid leader
// followed by VIS code 95 with its parity bit flipped reaches
// VisFound, then falls back to None.
func TestVISParityFailureReturnsToIdle(t *testing.T) {
	const fs = 8000.0
	spec := LookupMode(ModePD120)
	require.NotNil(t, spec)

	enc, err := NewEncoder(fs)
	require.NoError(t, err)
	header := encodeHeaderWithParity(enc, spec.VIS, visParity(spec.VIS)^1)

	dec, err := NewDecoder(fs, nil)
	require.NoError(t, err)
	dec.Decode(int16ToFloat(header))

	assert.Equal(t, ModeNone, dec.State())
}
