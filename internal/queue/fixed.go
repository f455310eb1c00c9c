package queue

import (
	"github.com/randomizedcoder/fixedring/internal/ring"
)

// FixedQueue adapts ring.Ring256 to Queue.
//
// Push never overwrites: a full ring makes Push return false.
type FixedQueue[T any] struct {
	r ring.Ring256[T]
}

// NewFixed creates an empty FixedQueue with 256 slots.
func NewFixed[T any]() *FixedQueue[T] {
	return &FixedQueue[T]{}
}

// Push adds an item; returns false if all 256 slots are taken.
func (q *FixedQueue[T]) Push(v T) bool {
	return q.r.Write(v) == nil
}

// Pop removes and returns the oldest item; returns false if empty.
func (q *FixedQueue[T]) Pop() (T, bool) {
	v, err := q.r.Read()
	return v, err == nil
}

// Len returns the current number of items in the queue.
func (q *FixedQueue[T]) Len() int {
	return q.r.Len()
}

// Cap returns 256.
func (q *FixedQueue[T]) Cap() int {
	return q.r.Cap()
}

// BoundedQueue adapts ring.RingN to Queue.
type BoundedQueue[T any] struct {
	r *ring.RingN[T]
}

// NewBounded creates a BoundedQueue over a RingN of size backing slots.
// It holds at most size-1 items.
func NewBounded[T any](size int) (*BoundedQueue[T], error) {
	r, err := ring.NewRingN[T](size)
	if err != nil {
		return nil, err
	}
	return &BoundedQueue[T]{r: r}, nil
}

// Push adds an item; returns false if the queue is full.
func (q *BoundedQueue[T]) Push(v T) bool {
	return q.r.Write(v) == nil
}

// Pop removes and returns the oldest item; returns false if empty.
func (q *BoundedQueue[T]) Pop() (T, bool) {
	v, err := q.r.Read()
	return v, err == nil
}

// Len returns the current number of items in the queue.
func (q *BoundedQueue[T]) Len() int {
	return q.r.Len()
}

// Cap returns the usable capacity, size-1.
func (q *BoundedQueue[T]) Cap() int {
	return q.r.Cap()
}
