package sstv

import "math"

// Oscillator is a phase-continuous sine generator used by every
// encoder line synthesizer. Each call picks up exactly where the
// previous one left off (value and slope), so a receiver's frequency
// discriminator never sees a phase-jump spike at a segment boundary.
// Grounded on the original encoder's SampleGenerator.
type Oscillator struct {
	sampleRate  float64
	olderData   float64 // last sample value emitted
	olderCos    float64 // last cosine value, used to disambiguate arcsin's branch
	deltaLength float64 // fractional-sample carry, compensates rounding
}

// NewOscillator creates an oscillator for the given sample rate.
func NewOscillator(sampleRate float64) *Oscillator {
	return &Oscillator{sampleRate: sampleRate}
}

func sign(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}

// Generate emits durationMs of a continuous-phase sine at frequency
// hz, scaled to signed-16-bit range.
func (o *Oscillator) Generate(durationMs, hz float64) []int16 {
	numSamples := int(math.Floor(o.sampleRate * durationMs / 1000))

	o.deltaLength += o.sampleRate*durationMs/1000 - float64(numSamples)
	if o.deltaLength >= 1 {
		carry := math.Floor(o.deltaLength)
		numSamples += int(carry)
		o.deltaLength -= carry
	}

	if numSamples <= 0 {
		return nil
	}

	// Anchor phase so the first emitted sample continues the previous
	// segment's value and slope: arcsin is two-valued, and the sign of
	// the last cosine picks the branch.
	phi0 := o.sampleRate * (sign(o.olderCos)*math.Asin(o.olderData) +
		math.Abs(sign(o.olderCos)-1)/2*math.Pi)

	out := make([]int16, numSamples)
	for tick := 0; tick < numSamples; tick++ {
		theta := (2*math.Pi*hz*float64(tick) + phi0) / o.sampleRate
		out[tick] = int16(math.Floor(32767 * math.Sin(theta)))
	}

	// Seed the next call's continuity from the last sample actually
	// emitted (tick = numSamples-1), not the segment's total length:
	// using the total length here would desynchronize phase across
	// segments.
	last := float64(numSamples - 1)
	lastTheta := (2*math.Pi*hz*last + phi0) / o.sampleRate
	o.olderData = math.Sin(lastTheta)
	o.olderCos = math.Cos(lastTheta)

	return out
}

// GenerateColor is Generate with the color-to-frequency mapping:
// f = 1500 + strength * (800/255).
func (o *Oscillator) GenerateColor(durationMs float64, strength uint8) []int16 {
	return o.Generate(durationMs, channelToFreq(strength))
}
