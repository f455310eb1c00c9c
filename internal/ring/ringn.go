package ring

import "github.com/pkg/errors"

const (
	// MinSize is the smallest RingN backing size; it leaves one usable slot.
	MinSize = 2
	// MaxSize is the largest RingN backing size addressable by its indices.
	MaxSize = 1 << 15
)

// RingN is a ring buffer of SIZE slots with 16-bit indices.
//
// One slot is reserved: tail is never allowed to advance onto head through
// Write, so head == tail always means empty and tail == head-1 (mod SIZE)
// means full. Usable capacity is SIZE-1.
//
// Build a RingN with NewRingN or MustNewRingN. The zero value has no slots:
// it stays empty, is never full, and rejects every Write with ErrCapacity.
//
// WARNING: RingN is not safe for concurrent use. See the package docs.
type RingN[T any] struct {
	items []T
	size  uint16

	head uint16 // index of the oldest item
	tail uint16 // index at which the next item is written

	reads     uint64 // completed wraps of head
	dropped   uint64
	policy    OverwritePolicy
	available AvailableMode
}

// NewRingN allocates a ring with size backing slots, size in
// [MinSize, MaxSize]. No allocation happens after this call.
func NewRingN[T any](size int, opts ...Option) (*RingN[T], error) {
	if size < MinSize || size > MaxSize {
		return nil, errors.Wrapf(ErrCapacity, "size %d not in [%d, %d]", size, MinSize, MaxSize)
	}
	o := buildOptions(opts)
	return &RingN[T]{
		items:     make([]T, size),
		size:      uint16(size),
		policy:    o.policy,
		available: o.available,
	}, nil
}

// MustNewRingN is like NewRingN but panics on an invalid size.
func MustNewRingN[T any](size int, opts ...Option) *RingN[T] {
	r, err := NewRingN[T](size, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// IsEmpty reports whether there is nothing to read.
func (r *RingN[T]) IsEmpty() bool {
	return r.head == r.tail
}

// IsFull reports whether one more write would make tail catch up with head.
func (r *RingN[T]) IsFull() bool {
	if r.size == 0 {
		return false
	}
	return r.next(r.tail) == r.head
}

// Write stores item at tail. On a full ring the configured policy decides:
// PreserveOldest returns ErrFull, OverwriteOldest drops the oldest item.
func (r *RingN[T]) Write(item T) error {
	if r.size == 0 {
		return ErrCapacity
	}
	if r.IsFull() {
		if r.policy != OverwriteOldest {
			return ErrFull
		}
		r.incrHead()
		r.dropped++
	}
	r.WriteUnchecked(item)
	return nil
}

// WriteUnchecked stores item at tail and advances it. On a full ring tail
// lands on head and the ring reads as empty: every pending item is lost.
func (r *RingN[T]) WriteUnchecked(item T) {
	r.items[r.tail] = item
	r.tail = r.next(r.tail)
}

// Read removes and returns the oldest item, or ErrEmpty.
func (r *RingN[T]) Read() (T, error) {
	if r.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}
	return r.ReadUnchecked(), nil
}

// ReadUnchecked returns the item at head and advances head. On an empty
// ring it returns a stale slot and pushes head past tail.
func (r *RingN[T]) ReadUnchecked() T {
	out := r.items[r.head]
	r.incrHead()
	return out
}

// Peek returns the oldest item without consuming it.
func (r *RingN[T]) Peek() (T, error) {
	if r.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}
	return r.items[r.head], nil
}

// Available returns the pending item count using the configured
// AvailableMode. In AvailableCompat mode the result is tail-head truncated
// to 8 bits, e.g. 252 for SIZE=8, head=6, tail=2.
func (r *RingN[T]) Available() int {
	if r.available == AvailableCompat {
		return int(uint8(int(r.tail) - int(r.head)))
	}
	return r.Len()
}

// Len returns the pending item count, (tail - head + SIZE) mod SIZE.
func (r *RingN[T]) Len() int {
	if r.size == 0 {
		return 0
	}
	return (int(r.tail) - int(r.head) + int(r.size)) % int(r.size)
}

// Cap returns the usable capacity, SIZE-1.
func (r *RingN[T]) Cap() int {
	if r.size == 0 {
		return 0
	}
	return int(r.size) - 1
}

// Size returns the backing size SIZE.
func (r *RingN[T]) Size() int {
	return int(r.size)
}

// Count returns the global read position: SIZE per completed wrap of head
// plus the current head offset.
func (r *RingN[T]) Count() uint64 {
	return r.reads*uint64(r.size) + uint64(r.head)
}

// Dropped returns the number of items lost to OverwriteOldest.
func (r *RingN[T]) Dropped() uint64 {
	return r.dropped
}

// Head returns the read index.
func (r *RingN[T]) Head() uint16 { return r.head }

// Tail returns the write index.
func (r *RingN[T]) Tail() uint16 { return r.tail }

// Reset empties the ring and clears all counters without reallocating.
func (r *RingN[T]) Reset() {
	r.head, r.tail = 0, 0
	r.reads = 0
	r.dropped = 0
}

func (r *RingN[T]) next(i uint16) uint16 {
	i++
	if i >= r.size {
		return 0
	}
	return i
}

func (r *RingN[T]) incrHead() {
	r.head++
	if r.head >= r.size {
		r.head = 0
		r.reads++
	}
}
