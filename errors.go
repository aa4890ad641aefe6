package sstv

import "errors"

// ErrInvalidSampleRate is returned by constructors given a zero or
// negative sample rate: a fatal, invalid constructor argument.
var ErrInvalidSampleRate = errors.New("sstv: sample rate must be positive")

// ErrInvalidDimensions is returned by the encoder when asked to
// render a picture whose size does not match the requested mode.
var ErrInvalidDimensions = errors.New("sstv: picture dimensions do not match mode")
