package ring

import (
	"strings"

	"github.com/pkg/errors"
)

// OverwritePolicy selects what a checked Write does on a full ring.
type OverwritePolicy uint8

const (
	// PreserveOldest rejects the write with ErrFull and leaves the ring as is.
	PreserveOldest OverwritePolicy = iota

	// OverwriteOldest advances head past the oldest item, then writes.
	// The ring stays full and the dropped item is counted.
	OverwriteOldest
)

func (p OverwritePolicy) String() string {
	switch p {
	case PreserveOldest:
		return "preserve"
	case OverwriteOldest:
		return "overwrite"
	default:
		return "unknown"
	}
}

// ParseOverwritePolicy accepts "preserve" or "overwrite" (case-insensitive).
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "preserve", "preserve-oldest":
		return PreserveOldest, nil
	case "overwrite", "overwrite-oldest":
		return OverwriteOldest, nil
	}
	return 0, errors.Errorf("ring: unknown overwrite policy %q", s)
}

// AvailableMode selects the arithmetic used by RingN.Available.
type AvailableMode uint8

const (
	// AvailableCorrected returns (tail - head + SIZE) mod SIZE.
	AvailableCorrected AvailableMode = iota

	// AvailableCompat reproduces the historical result: tail - head
	// truncated to 8 bits, with no modulo correction. It is wrong whenever
	// tail < head or the count exceeds 255, and exists only for callers
	// that depend on that value.
	AvailableCompat
)

func (m AvailableMode) String() string {
	switch m {
	case AvailableCorrected:
		return "corrected"
	case AvailableCompat:
		return "compat"
	default:
		return "unknown"
	}
}

// ParseAvailableMode accepts "corrected" or "compat" (case-insensitive).
func ParseAvailableMode(s string) (AvailableMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "corrected":
		return AvailableCorrected, nil
	case "compat", "compatible":
		return AvailableCompat, nil
	}
	return 0, errors.Errorf("ring: unknown available mode %q", s)
}

type options struct {
	policy    OverwritePolicy
	available AvailableMode
}

// Option configures a ring at construction.
type Option func(*options)

// WithOverwritePolicy sets the behavior of checked writes on a full ring.
func WithOverwritePolicy(p OverwritePolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithAvailableMode sets the RingN.Available arithmetic. Ring256 ignores it.
func WithAvailableMode(m AvailableMode) Option {
	return func(o *options) {
		o.available = m
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Buffer is the surface shared by Ring256 and RingN.
type Buffer[T any] interface {
	IsEmpty() bool
	IsFull() bool
	Write(item T) error
	Read() (T, error)
	Len() int
	Available() int
	Cap() int
	Count() uint64
	Dropped() uint64
	Reset()
}

var (
	_ Buffer[int] = (*Ring256[int])(nil)
	_ Buffer[int] = (*RingN[int])(nil)
)
