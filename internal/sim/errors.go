package sim

import "errors"

var (
	// ErrInvalidArgument is returned when the host passes malformed input,
	// such as a negative or non-finite time step.
	ErrInvalidArgument = errors.New("sim: invalid argument")

	// ErrInvalidConfig is returned by Config.Validate and New.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrStaleHandle is returned when a handle refers to a retired or unknown pipe pair.
	ErrStaleHandle = errors.New("sim: stale pipe handle")
)
