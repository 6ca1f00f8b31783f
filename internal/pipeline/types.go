package pipeline

import "errors"

var (
	ErrNotAnImage        = errors.New("uploaded file is not an image")
	ErrTooLarge          = errors.New("image exceeds size limit")
	ErrInvalidDimensions = errors.New("image dimensions out of range")
	ErrUnknownFormat     = errors.New("unknown output format")
	ErrInvalidAngle      = errors.New("angle must be 90, 180, 270 or -90")
	ErrOutputTooLarge    = errors.New("requested output exceeds dimension limit")
)

// Default maximum dimension (width or height) allowed by validator, and
// the largest output dimension in pixels.
const MaxDimension = 8000

// DefaultMaxBytes is the input size limit used when Options.MaxBytes is 0.
const DefaultMaxBytes = 32 << 20
