package channel

// New creates a bounded channel. A size below 1 is raised to 1.
func New[T any](size int) Channel[T] {
	if size < 1 {
		size = 1
	}
	return NewBuffered[T](size)
}
