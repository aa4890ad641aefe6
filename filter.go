package sstv

import "math"

// biquad is a direct-form-1 RBJ biquad section. Grounded on the
// reference extension's navtex biquad filter (Configure/Filter split),
// narrowed here to just the high-pass/low-pass cases the band-pass
// conditioner needs.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64

	x1, x2 float64
	y1, y2 float64
}

func newHighpass(cutoff, sampleRate, q float64) *biquad {
	return newBiquad(cutoff, sampleRate, q, true)
}

func newLowpass(cutoff, sampleRate, q float64) *biquad {
	return newBiquad(cutoff, sampleRate, q, false)
}

func newBiquad(cutoff, sampleRate, q float64, highpass bool) *biquad {
	omega := 2 * math.Pi * cutoff / sampleRate
	sinW, cosW := math.Sin(omega), math.Cos(omega)
	alpha := sinW / (2 * q)

	var b0, b1, b2, a0, a1, a2 float64
	if highpass {
		b0 = (1 + cosW) / 2
		b1 = -(1 + cosW)
		b2 = (1 + cosW) / 2
	} else {
		b0 = (1 - cosW) / 2
		b1 = 1 - cosW
		b2 = (1 - cosW) / 2
	}
	a0 = 1 + alpha
	a1 = -2 * cosW
	a2 = 1 - alpha

	return &biquad{
		b0: b0 / a0, b1: b1 / a0, b2: b2 / a0,
		a1: a1 / a0, a2: a2 / a0,
	}
}

func (f *biquad) step(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// BandpassFilter conditions raw audio into the 1 kHz-3 kHz window SSTV
// tones occupy, cascading a high-pass and low-pass biquad section.
// Coefficients are fixed at construction; the two delay lines persist
// across calls so blocks can be fed in any chunking.
type BandpassFilter struct {
	hp *biquad
	lp *biquad
}

// NewBandpassFilter builds the 1kHz/3kHz Q=1 cascade for the given
// sample rate.
func NewBandpassFilter(sampleRate float64) *BandpassFilter {
	return &BandpassFilter{
		hp: newHighpass(1000, sampleRate, 1.0),
		lp: newLowpass(3000, sampleRate, 1.0),
	}
}

// Filter applies the cascade to block in place and returns it for
// convenience.
func (f *BandpassFilter) Filter(block []float64) []float64 {
	for i, x := range block {
		block[i] = f.lp.step(f.hp.step(x))
	}
	return block
}
