package replay

import "errors"

var (
	// ErrInvalidConfig is returned by New when the configuration fails
	// validation.
	ErrInvalidConfig = errors.New("replay: invalid configuration")

	// ErrEmptyBuffer is returned when sampling from a buffer that holds
	// no transitions yet.
	ErrEmptyBuffer = errors.New("replay: buffer is empty")

	// ErrIndexOutOfRange is returned when a slot index falls outside
	// the populated range.
	ErrIndexOutOfRange = errors.New("replay: index out of range")

	// ErrDimensionMismatch is returned by Store when an encoded state's
	// length differs from the configured dimension.
	ErrDimensionMismatch = errors.New("replay: encoded state dimension mismatch")

	// ErrLengthMismatch is returned by UpdatePriorities when indices
	// and priorities have different lengths.
	ErrLengthMismatch = errors.New("replay: indices and priorities length mismatch")

	// ErrInvalidArgument is returned for argument contract violations,
	// such as a negative beta or a negative priority.
	ErrInvalidArgument = errors.New("replay: invalid argument")
)
