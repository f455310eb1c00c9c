// Package queue puts the fixed rings behind a common push/pop contract so
// they can be compared with other SPSC queues.
//
// Implementations of the Queue interface:
//   - FixedQueue: ring.Ring256, 256 slots, no allocation
//   - BoundedQueue: ring.RingN, SIZE-1 usable slots, no allocation
//   - ChannelQueue: buffered channel, the standard library baseline
//   - ShardedQueue: go-lock-free-ring ShardedRing with one shard
//
// # Safety (IMPORTANT)
//
// FixedQueue and BoundedQueue inherit the rings' lack of synchronization:
// Push and Pop must run on one goroutine, or with an external
// happens-before edge between them. ChannelQueue and ShardedQueue are safe
// across goroutines.
package queue

// Queue is a single-producer single-consumer queue.
//
// Implementations are non-blocking: Push returns false if full,
// Pop returns false if empty.
type Queue[T any] interface {
	// Push adds an item to the queue.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns an item from the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)
}
