package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffered_DrainIsNonBlocking(t *testing.T) {
	c := New[string](4)
	assert.Empty(t, c.Drain())

	c.Send("a")
	c.Send("b")
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"a", "b"}, c.Drain())
	assert.Zero(t, c.Len())
}

func TestBuffered_TrySendDropsWhenFull(t *testing.T) {
	c := New[int](2)
	assert.True(t, c.TrySend(1))
	assert.True(t, c.TrySend(2))
	assert.False(t, c.TrySend(3))
	assert.Equal(t, []int{1, 2}, c.Drain())
}

func TestBuffered_CloseTwice(t *testing.T) {
	c := New[int](0)
	c.Send(7)
	c.Close()
	c.Close()

	assert.Equal(t, []int{7}, c.Drain())
	_, ok := <-c.Receive()
	assert.False(t, ok)
}
