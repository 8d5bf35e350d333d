// Package channel provides the bounded hand-off between the side channel reader and the
// decision loop.
package channel

// Receiver provides read access to a channel.
type Receiver[T any] interface {
	Receive() <-chan T
	Len() int
	// Drain returns every value queued right now without blocking.
	Drain() []T
}

// Sender provides write access to a channel.
type Sender[T any] interface {
	Send(T)
	// TrySend queues v unless the buffer is full, and reports whether it was queued.
	TrySend(T) bool
}

// Channel combines read and write access.
type Channel[T any] interface {
	Receiver[T]
	Sender[T]
	Close()
}
