package runtimequeue

import "testing"

func TestPushPopFIFO(t *testing.T) {
	q := New(4)
	q.Push(1)
	q.Push(2)
	q.Push(3)

	for _, want := range []int{1, 2, 3} {
		v, ok := q.Pop()
		if !ok || v.(int) != want {
			t.Fatalf("Pop() = (%v, %v), want (%d, true)", v, ok, want)
		}
	}
}

func TestTryPopNeverBlocksOnEmpty(t *testing.T) {
	q := New(2)
	if _, ok := q.TryPop(); ok {
		t.Error("TryPop on an empty open queue should report !ok")
	}
	q.Push("x")
	v, ok := q.TryPop()
	if !ok || v.(string) != "x" {
		t.Errorf("TryPop() = (%v, %v), want (\"x\", true)", v, ok)
	}
}

func TestPopDrainsBufferedValuesAfterClose(t *testing.T) {
	q := New(2)
	q.Push(1)
	q.Push(2)
	q.Close()

	for _, want := range []int{1, 2} {
		v, ok := q.Pop()
		if !ok || v.(int) != want {
			t.Fatalf("Pop() after Close = (%v, %v), want (%d, true)", v, ok, want)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop should report !ok once a closed queue is fully drained")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	q := New(1)
	q.Close()
	q.Close() // must not panic on a double close
}

func TestStatsCountsPushesAndPops(t *testing.T) {
	q := New(4)
	q.Push(1)
	q.Push(2)
	q.Pop()

	stats := q.Stats()
	if stats.Pushes != 2 || stats.Pops != 1 {
		t.Errorf("Stats() = %+v, want {Pushes:2 Pops:1}", stats)
	}
}
