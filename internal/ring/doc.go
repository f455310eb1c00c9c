// Package ring provides fixed-capacity SPSC ring buffers for
// allocation-free, embedded-style code.
//
// Two variants are offered, trading index width against usable capacity:
//   - Ring256: exactly 256 slots with 8-bit indices. A generation bit per
//     index tells a full ring from an empty one when head == tail, so all
//     256 slots are usable.
//   - RingN: SIZE slots (2..32768) with 16-bit indices. One slot is always
//     kept free so full and empty can be told apart by comparing indices;
//     usable capacity is SIZE-1.
//
// # Checked and unchecked paths
//
// Write, Read and Peek check their preconditions and return ErrFull or
// ErrEmpty. WriteUnchecked and ReadUnchecked skip every check: writing a
// full ring or reading an empty one silently corrupts the accounting. Use
// them only where the caller has already checked IsFull / IsEmpty.
//
// # Concurrency
//
// Nothing here is synchronized. A ring may be shared by one producer and one
// consumer only when the caller provides the happens-before edge (for
// example an interrupt handler and a main loop on a single core, or a
// single goroutine doing both).
package ring
