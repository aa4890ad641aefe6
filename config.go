package sstv

// DecoderConfig carries the decoder's optional behavioral knobs,
// following the reference extension's struct-of-booleans-with-
// defaults idiom (its SSTVConfig). Most of that reference struct's
// flags (AutoSync slant correction, FSK callsign ID) name features
// this module has no component for; VerboseLogging is the one knob
// this decoder actually has a use for.
type DecoderConfig struct {
	// VerboseLogging enables the state-transition log.Printf calls.
	// Off by default: a library embedded in a larger program should
	// not write to the default logger unless asked to.
	VerboseLogging bool
}

// DefaultDecoderConfig returns the zero-value configuration: quiet.
func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{VerboseLogging: false}
}
