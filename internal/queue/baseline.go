package queue

import (
	"github.com/pkg/errors"
	lfring "github.com/randomizedcoder/go-lock-free-ring"
)

// ChannelQueue wraps a buffered channel as a Queue.
//
// Each Push/Pop is a non-blocking channel operation via select with
// default; it is the reference point the fixed rings are measured against.
type ChannelQueue[T any] struct {
	ch chan T
}

// NewChannel creates a ChannelQueue with the specified buffer size.
func NewChannel[T any](size int) *ChannelQueue[T] {
	return &ChannelQueue[T]{
		ch: make(chan T, size),
	}
}

// Push adds an item; returns false if the channel buffer is full.
func (q *ChannelQueue[T]) Push(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// Pop removes and returns an item; returns false if the channel is empty.
func (q *ChannelQueue[T]) Pop() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Len returns the current number of items in the queue.
func (q *ChannelQueue[T]) Len() int {
	return len(q.ch)
}

// Cap returns the capacity of the queue.
func (q *ChannelQueue[T]) Cap() int {
	return cap(q.ch)
}

// ShardedQueue wraps a single-shard go-lock-free-ring ShardedRing.
//
// Values travel through the ring as interface values, so Push allocates
// for most T; it is kept as a lock-free baseline, not as a fast path.
type ShardedQueue[T any] struct {
	r *lfring.ShardedRing
}

// NewSharded creates a ShardedQueue holding up to capacity items.
func NewSharded[T any](capacity uint64) (*ShardedQueue[T], error) {
	r, err := lfring.NewShardedRing(capacity, 1)
	if err != nil {
		return nil, errors.Wrapf(err, "sharded ring capacity %d", capacity)
	}
	return &ShardedQueue[T]{r: r}, nil
}

// Push adds an item; returns false if the ring is full.
func (q *ShardedQueue[T]) Push(v T) bool {
	return q.r.Write(0, v)
}

// Pop removes and returns an item; returns false if the ring is empty.
func (q *ShardedQueue[T]) Pop() (T, bool) {
	var zero T
	v, ok := q.r.TryRead()
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}
