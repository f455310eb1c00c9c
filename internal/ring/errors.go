package ring

import "github.com/pkg/errors"

var (
	// ErrFull is returned by a checked write on a full ring under
	// PreserveOldest.
	ErrFull = errors.New("ring: buffer is full")

	// ErrEmpty is returned by a checked read or peek on an empty ring.
	ErrEmpty = errors.New("ring: buffer is empty")

	// ErrCapacity is returned by NewRingN for a size outside [MinSize, MaxSize].
	ErrCapacity = errors.New("ring: invalid capacity")
)
