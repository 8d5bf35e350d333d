package channel

import "sync"

// Buffered is a buffered channel that can be closed more than once.
type Buffered[T any] struct {
	ch   chan T
	once sync.Once
}

// NewBuffered creates a new buffered channel with the given size.
func NewBuffered[T any](size int) *Buffered[T] {
	return &Buffered[T]{ch: make(chan T, size)}
}

// Send blocks until v is queued.
func (b *Buffered[T]) Send(v T) {
	b.ch <- v
}

func (b *Buffered[T]) TrySend(v T) bool {
	select {
	case b.ch <- v:
		return true
	default:
		return false
	}
}

// Receive returns the receive-only channel.
func (b *Buffered[T]) Receive() <-chan T {
	return b.ch
}

// Len returns the number of items currently in the buffer.
func (b *Buffered[T]) Len() int {
	return len(b.ch)
}

func (b *Buffered[T]) Drain() []T {
	var out []T
	for {
		select {
		case v, ok := <-b.ch:
			if !ok {
				return out
			}
			out = append(out, v)
		default:
			return out
		}
	}
}

// Close closes the channel. Later calls do nothing.
func (b *Buffered[T]) Close() {
	b.once.Do(func() { close(b.ch) })
}
