package queue

import (
	"sync"
	"testing"
)

type record struct {
	Round int
	Line  string
}

func TestQueue_New(t *testing.T) {
	q := New[record]()
	if !q.Empty() {
		t.Error("expected empty queue")
	}
	if q.Len() != 0 {
		t.Errorf("expected length 0, got %d", q.Len())
	}
}

func TestQueue_Push(t *testing.T) {
	q := New[record]()

	q.Push(record{Round: 1, Line: "MOVE 1"})
	if q.Len() != 1 {
		t.Errorf("expected length 1, got %d", q.Len())
	}

	q.Push(record{Round: 1}, record{Round: 2})
	if q.Len() != 3 {
		t.Errorf("expected length 3, got %d", q.Len())
	}
}

func TestQueue_Take(t *testing.T) {
	q := New[int]()
	q.Push(1, 2, 3, 4, 5)

	got := q.Take(2)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected [1 2], got %v", got)
	}
	if q.Len() != 3 {
		t.Errorf("expected 3 left, got %d", q.Len())
	}

	got = q.Take(10)
	if len(got) != 3 || got[0] != 3 {
		t.Errorf("expected [3 4 5], got %v", got)
	}

	if got := q.Take(0); len(got) != 0 {
		t.Errorf("expected nothing from empty queue, got %v", got)
	}
}

func TestQueue_TakeDoesNotAlias(t *testing.T) {
	q := New[int]()
	q.Push(1, 2, 3)
	first := q.Take(1)
	q.Push(9)
	if first[0] != 1 {
		t.Errorf("taken batch changed after push: %v", first)
	}
}

func TestQueue_RequeueKeepsOrder(t *testing.T) {
	q := New[string]()
	q.Push("SCAN", "DRIVE", "END")

	batch := q.Take(2)
	q.Push("SKIP")
	q.Requeue(batch...)

	got := q.Take(0)
	want := []string{"SCAN", "DRIVE", "END", "SKIP"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if !q.Empty() {
		t.Error("expected queue to be empty")
	}
}

func TestQueue_ZeroValue(t *testing.T) {
	var q Queue[int]
	q.Requeue()
	q.Push(1)
	if q.Len() != 1 {
		t.Errorf("expected length 1, got %d", q.Len())
	}
}

func TestQueue_Concurrent(t *testing.T) {
	q := New[int]()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(base*100 + j)
			}
		}(i)
	}

	taken := 0
	var mu sync.Mutex
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := len(q.Take(50))
			mu.Lock()
			taken += n
			mu.Unlock()
		}()
	}

	wg.Wait()
	if taken+q.Len() != 1000 {
		t.Errorf("expected 1000 items in total, got %d taken and %d left", taken, q.Len())
	}
}
