package sstv

import "log"

// Decoder is a single-owner, synchronous SSTV demodulator: it turns a
// stream of audio blocks into completed Pictures. It carries the full
// pipeline: band-pass filter, frequency discriminator, sample queue,
// mode state machine and line decoders.
type Decoder struct {
	sampleRate float64
	filter     *BandpassFilter
	disc       *Discriminator
	queue      SampleQueue

	state      Mode
	spec       *ModeSpec
	picture    *Picture
	counter    int
	leadInDone bool

	onImage func(*Picture)
	config  DecoderConfig
}

// NewDecoder creates a decoder for the given sample rate with default
// (quiet) configuration. onImage, if non-nil, is invoked once per
// completed transmission with the finished Picture, publishing it to
// whatever sink the caller owns.
func NewDecoder(sampleRate float64, onImage func(*Picture)) (*Decoder, error) {
	return NewDecoderWithConfig(sampleRate, DefaultDecoderConfig(), onImage)
}

// NewDecoderWithConfig is NewDecoder with explicit DecoderConfig.
func NewDecoderWithConfig(sampleRate float64, config DecoderConfig, onImage func(*Picture)) (*Decoder, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	return &Decoder{
		sampleRate: sampleRate,
		filter:     NewBandpassFilter(sampleRate),
		disc:       NewDiscriminator(sampleRate),
		state:      ModeNone,
		onImage:    onImage,
		config:     config,
	}, nil
}

func (d *Decoder) logf(format string, args ...any) {
	if d.config.VerboseLogging {
		log.Printf(format, args...)
	}
}

// SwitchSampleRate is a hard reset of all state except ownership.
func (d *Decoder) SwitchSampleRate(sampleRate float64) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	d.sampleRate = sampleRate
	d.filter = NewBandpassFilter(sampleRate)
	d.disc.SwitchSampleRate(sampleRate)
	d.queue = SampleQueue{}
	d.state = ModeNone
	d.spec = nil
	d.picture = nil
	d.counter = 0
	return nil
}

// State reports the decoder's current position in the Mode state
// machine (None, VisFound, or a concrete mode).
func (d *Decoder) State() Mode {
	return d.state
}

// Decode feeds one block of mono, [-1,+1] PCM samples into the
// decoder. It runs to completion before returning: filtering,
// discrimination, queueing, and as many state-machine transitions as
// the newly available samples permit. Feeding the same overall stream
// in different chunk sizes yields the same final Picture.
func (d *Decoder) Decode(block []float64) {
	if len(block) == 0 {
		return
	}
	filtered := make([]float64, len(block))
	copy(filtered, block)
	d.filter.Filter(filtered)
	freqs := d.disc.Process(filtered)
	d.queue.Push(freqs)

	for d.step() {
	}
}

// step attempts exactly one guarded state transition. It returns true
// if a transition fired, so the caller can loop until the queue is
// exhausted of complete units.
func (d *Decoder) step() bool {
	switch d.state {
	case ModeNone:
		return d.stepLeader()
	case ModeVisFound:
		return d.stepVIS()
	default:
		return d.stepLine()
	}
}

func headerLen(fs float64) int {
	return int((2*headerLeaderMs + headerBreakMs) / 1000 * fs)
}

func visLen(fs float64) int {
	return int(300.0 / 1000 * fs)
}

// stepLeader implements the None -> VisFound transition. On mismatch
// it is a strict no-op (neither state nor queue changes), a quirk
// inherited from the reference decoder: nothing is ever dropped from
// the front of the queue, so a leader is only recognized when it
// starts at the very first queued sample.
func (d *Decoder) stepLeader() bool {
	need := headerLen(d.sampleRate)
	if d.queue.Len() < need {
		return false
	}
	window := d.queue.Peek(need)
	if !matchesLeader(window, d.sampleRate) {
		return false
	}
	d.queue.Consume(need)
	d.state = ModeVisFound
	d.logf("[sstv] leader detected, awaiting VIS code")
	return true
}

// matchesLeader checks the 300ms/10ms/300ms leader tone pattern with a
// symmetric +/-50Hz tolerance (the reference decoder's asymmetric
// check is not replicated).
func matchesLeader(window []float64, fs float64) bool {
	leaderN := int(headerLeaderMs / 1000 * fs)
	breakN := int(headerBreakMs / 1000 * fs)

	seg1 := window[0:leaderN]
	seg2 := window[leaderN : leaderN+breakN]
	seg3 := window[leaderN+breakN : 2*leaderN+breakN]

	f1 := meanFreq(seg1)
	f2 := meanFreq(seg2)
	f3 := meanFreq(seg3)

	return absWithin(f1, visLeaderFreq, leaderTolerance) &&
		absWithin(f2, visBreakFreq, leaderTolerance) &&
		absWithin(f3, visLeaderFreq, leaderTolerance)
}

func absWithin(f, target, tol float64) bool {
	d := f - target
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// stepVIS implements the VisFound -> concrete-mode (or None, on
// parity failure) transition.
func (d *Decoder) stepVIS() bool {
	need := visLen(d.sampleRate)
	if d.queue.Len() < need {
		return false
	}
	window := d.queue.Take(need)

	code, ok := decodeVISCode(window)
	if !ok {
		d.logf("[sstv] VIS parity failure, returning to idle")
		d.state = ModeNone
		return true
	}
	spec := LookupVIS(code)
	if spec == nil {
		d.logf("[sstv] unknown VIS code %d, returning to idle", code)
		d.state = ModeNone
		return true
	}

	d.spec = spec
	d.state = spec.Mode
	d.picture = NewPicture(spec.Width, spec.Height)
	d.counter = 0
	d.leadInDone = spec.LeadInMs <= 0
	d.logf("[sstv] VIS locked: %s (%dx%d)", spec.Mode, spec.Width, spec.Height)
	return true
}

// decodeVISCode parses the ten-slot VIS bitstream: seven LSB-first
// data bits followed by an even-parity bit and a stop slot.
func decodeVISCode(window []float64) (code uint8, ok bool) {
	n := len(window)
	slot := n / 10
	var trueCount int
	for bit := 1; bit <= 7; bit++ {
		seg := window[bit*slot : (bit+1)*slot]
		if meanFreq(seg) <= visDataThreshold {
			code |= 1 << uint(bit-1)
			trueCount++
		}
	}
	paritySeg := window[8*slot : 9*slot]
	parityBitSet := meanFreq(paritySeg) <= visDataThreshold
	if (trueCount%2 == 1) != parityBitSet {
		return 0, false
	}
	return code, true
}

// stepLine implements the concrete-mode self-transition: decode one
// line (or, for the PD family, one row pair), advance counter, and
// publish + return to None on completion.
func (d *Decoder) stepLine() bool {
	spec := d.spec

	if !d.leadInDone {
		need := int(spec.LeadInMs / 1000 * d.sampleRate)
		if d.queue.Len() < need {
			return false
		}
		d.queue.Consume(need)
		d.leadInDone = true
		return true
	}

	need := spec.LineSamples(d.sampleRate)
	if d.queue.Len() < need {
		return false
	}
	window := d.queue.Take(need)

	switch spec.Family {
	case FamilyRGBSeq:
		decodeRGBLine(spec, window, d.sampleRate, d.picture, d.counter)
	case FamilyRobot:
		decodeRobotLine(spec, window, d.sampleRate, d.picture, d.counter)
	case FamilyPD:
		decodePDLine(spec, window, d.sampleRate, d.picture, d.counter)
	}
	d.counter += spec.RowsPerLine()

	if d.counter >= pdTerminationCounter(spec) {
		pic := d.picture
		d.state = ModeNone
		d.spec = nil
		d.picture = nil
		d.counter = 0
		d.logf("[sstv] transmission complete")
		if d.onImage != nil {
			d.onImage(pic)
		}
	}
	return true
}

// pdTerminationCounter is the row-cursor value at which a transmission
// is considered complete. The PD family preserves the reference
// decoder's literal `counter >= 494` check (Height-2, an off-by-two
// against the allocated 496-row buffer for Pd120) rather than Height;
// the same Height-2 pattern is applied to the other PD modes for
// internal consistency. Non-PD families terminate at Height.
func pdTerminationCounter(spec *ModeSpec) int {
	if spec.Family == FamilyPD {
		return spec.Height - 2
	}
	return spec.Height
}
