package ring

// Ring256Size is the fixed backing capacity of Ring256.
const Ring256Size = 256

// Ring256 is a 256-slot ring buffer with 8-bit wrapping indices.
//
// head == tail is ambiguous on its own, so each index carries a generation
// bit that flips whenever the index wraps from 255 back to 0. Equal
// generations mean empty, different generations mean full. All 256 slots
// are usable.
//
// The zero value is an empty ring with the PreserveOldest policy.
//
// WARNING: Ring256 is not safe for concurrent use. See the package docs.
type Ring256[T any] struct {
	items [256]T

	head    uint8 // index of the oldest item
	tail    uint8 // index at which the next item is written
	headGen uint8
	tailGen uint8

	reads   uint64 // completed wraps of head
	dropped uint64
	policy  OverwritePolicy
}

// NewRing256 returns an empty Ring256. Only WithOverwritePolicy applies.
func NewRing256[T any](opts ...Option) *Ring256[T] {
	o := buildOptions(opts)
	return &Ring256[T]{policy: o.policy}
}

// IsEmpty reports whether there is nothing to read.
func (r *Ring256[T]) IsEmpty() bool {
	return r.head == r.tail && r.headGen == r.tailGen
}

// IsFull reports whether all 256 slots hold unread items.
func (r *Ring256[T]) IsFull() bool {
	return r.head == r.tail && r.headGen != r.tailGen
}

// Write stores item at tail. On a full ring the configured policy decides:
// PreserveOldest returns ErrFull, OverwriteOldest drops the oldest item.
func (r *Ring256[T]) Write(item T) error {
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

// WriteUnchecked stores item at tail and advances tail without looking at
// head. On a full ring it overwrites the oldest item and leaves head in
// place, after which the ring reports a single available item.
func (r *Ring256[T]) WriteUnchecked(item T) {
	r.items[r.tail] = item
	r.incrTail()
}

// Read removes and returns the oldest item, or ErrEmpty.
func (r *Ring256[T]) Read() (T, error) {
	if r.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}
	return r.ReadUnchecked(), nil
}

// ReadUnchecked returns the item at head and advances head. On an empty
// ring it returns whatever the slot last held.
func (r *Ring256[T]) ReadUnchecked() T {
	out := r.items[r.head]
	r.incrHead()
	return out
}

// Peek returns the oldest item without consuming it.
func (r *Ring256[T]) Peek() (T, error) {
	if r.IsEmpty() {
		var zero T
		return zero, ErrEmpty
	}
	return r.items[r.head], nil
}

// Available returns the number of unread items, saturated to 255 when the
// ring is full. The subtraction wraps mod 256, which is correct across a
// single wrap of either index. The result always fits in a byte.
func (r *Ring256[T]) Available() int {
	if r.IsFull() {
		return 255
	}
	return int(r.tail - r.head)
}

// Len returns the exact number of unread items, 0..256.
func (r *Ring256[T]) Len() int {
	if r.IsFull() {
		return Ring256Size
	}
	return int(r.tail - r.head)
}

// Cap returns 256.
func (r *Ring256[T]) Cap() int {
	return Ring256Size
}

// Count returns the global read position: 256 per completed wrap of head
// plus the current head offset. It grows by one per read and never wraps
// in practice.
func (r *Ring256[T]) Count() uint64 {
	return r.reads<<8 + uint64(r.head)
}

// Dropped returns the number of items lost to OverwriteOldest.
func (r *Ring256[T]) Dropped() uint64 {
	return r.dropped
}

// Head returns the read index.
func (r *Ring256[T]) Head() uint8 { return r.head }

// Tail returns the write index.
func (r *Ring256[T]) Tail() uint8 { return r.tail }

// Reset empties the ring and clears all counters. The policy is kept and
// stale items are left in place.
func (r *Ring256[T]) Reset() {
	r.head, r.tail = 0, 0
	r.headGen, r.tailGen = 0, 0
	r.reads = 0
	r.dropped = 0
}

func (r *Ring256[T]) incrHead() {
	r.head++
	if r.head == 0 {
		r.headGen ^= 1
		r.reads++
	}
}

func (r *Ring256[T]) incrTail() {
	r.tail++
	if r.tail == 0 {
		r.tailGen ^= 1
	}
}
