package sstv

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	minFrequency = 1000.0
	maxFrequency = 3000.0

	// contextSamples is how many already-seen samples are kept and
	// prepended to each new sample's analysis window. Advancing that
	// fixed-size window one real sample at a time, instead of running
	// an independent FFT over whatever block a caller happens to hand
	// in, is what makes a given sample's output depend only on the
	// samples at and before it -- never on where the stream got cut
	// into blocks.
	contextSamples = 48
)

// Discriminator turns a filtered audio stream into one instantaneous
// frequency sample per input sample, via an FFT-based Hilbert
// transform over a fixed-size trailing window and phase
// differentiation. It persists both the trailing sample history and a
// phase scalar across calls, so feeding the same stream through
// Process in any chunk sizes produces identical output.
type Discriminator struct {
	sampleRate float64
	history    []float64
	prevPhase  float64
	started    bool
}

// NewDiscriminator creates a discriminator for the given sample rate.
func NewDiscriminator(sampleRate float64) *Discriminator {
	return &Discriminator{sampleRate: sampleRate}
}

// Reset clears all carried state -- trailing history and phase
// continuity -- so the next Process call starts as if freshly
// constructed. NewDiscriminator starts from this same cleared state;
// SwitchSampleRate calls Reset, since a new sample rate invalidates
// both.
func (d *Discriminator) Reset() {
	d.history = nil
	d.prevPhase = 0
	d.started = false
}

// SwitchSampleRate points the discriminator at a new sample rate and
// resets carried state, which a change in sample rate invalidates.
func (d *Discriminator) SwitchSampleRate(sampleRate float64) {
	d.sampleRate = sampleRate
	d.Reset()
}

// hilbertMask returns the multiplier for FFT bin k of an N-point
// transform that turns a forward FFT into an analytic signal: DC and
// Nyquist (when N is even) pass through unscaled, the
// positive-frequency half is doubled, the rest is zeroed.
func hilbertMask(n int) []float64 {
	h := make([]float64, n)
	if n%2 == 0 {
		h[0] = 1
		h[n/2] = 1
		for i := 1; i < n/2; i++ {
			h[i] = 2
		}
	} else {
		h[0] = 1
		half := (n + 1) / 2
		for i := 1; i < half; i++ {
			h[i] = 2
		}
	}
	return h
}

// analyticSignal computes the analytic signal of a real block via
// FFT, Hilbert mask, inverse FFT, scaled by 1/N.
func analyticSignal(block []float64) []complex128 {
	n := len(block)
	in := make([]complex128, n)
	for i, v := range block {
		in[i] = complex(v, 0)
	}

	fft := fourier.NewCmplxFFT(n)
	coeffs := fft.Coefficients(nil, in)

	mask := hilbertMask(n)
	for i, m := range mask {
		coeffs[i] *= complex(m, 0)
	}

	out := fft.Sequence(nil, coeffs)
	scale := complex(1.0/float64(n), 0)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// Process runs the discriminator over one filtered block, returning
// exactly one instantaneous frequency in Hz per input sample, each
// clamped to [1000, 3000]. Every sample is analyzed against a fixed
// contextSamples-wide window of the real samples that preceded it, so
// Decode's output is the same whether the caller feeds this one
// sample at a time or the whole stream in a single call.
func (d *Discriminator) Process(block []float64) []float64 {
	freqs := make([]float64, len(block))
	for i, sample := range block {
		window := make([]float64, len(d.history)+1)
		copy(window, d.history)
		window[len(window)-1] = sample

		z := analyticSignal(window)
		phi := cmplx.Phase(z[len(z)-1])

		prev := d.prevPhase
		if !d.started {
			prev = phi
			d.started = true
		}
		dp := wrapToPi(phi - prev)
		d.prevPhase = prev + dp
		freqs[i] = clampFrequency(math.Abs(d.sampleRate * dp / (2 * math.Pi)))

		d.history = append(d.history, sample)
		if len(d.history) > contextSamples {
			d.history = d.history[len(d.history)-contextSamples:]
		}
	}
	return freqs
}

// wrapToPi reduces an angle into (-pi, pi].
func wrapToPi(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func clampFrequency(f float64) float64 {
	if f < minFrequency {
		return minFrequency
	}
	if f > maxFrequency {
		return maxFrequency
	}
	return f
}
