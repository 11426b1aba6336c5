package ringqueue

import "testing"

func TestEmptyQueueDequeueFails(t *testing.T) {
	q := New[int](4)
	if !q.Empty() {
		t.Fatal("fresh queue should be empty")
	}
	if _, ok := q.Dequeue(); ok {
		t.Fatal("dequeue on empty queue must report false, not true")
	}
}

func TestFIFOOrder(t *testing.T) {
	q := New[int](4)
	for i := 1; i <= 3; i++ {
		if !q.Enqueue(i) {
			t.Fatalf("enqueue %d should succeed", i)
		}
	}
	for i := 1; i <= 3; i++ {
		v, ok := q.Dequeue()
		if !ok || v != i {
			t.Fatalf("expected %d, got %d (ok=%v)", i, v, ok)
		}
	}
}

func TestFullDistinctFromEmpty(t *testing.T) {
	q := New[int](2)
	if !q.Enqueue(1) || !q.Enqueue(2) {
		t.Fatal("expected both enqueues to succeed")
	}
	if !q.Full() {
		t.Fatal("queue should report full at capacity")
	}
	if q.Enqueue(3) {
		t.Fatal("enqueue on full queue must fail")
	}
	if _, ok := q.Dequeue(); !ok {
		t.Fatal("dequeue should succeed after queue is full")
	}
	if q.Full() {
		t.Fatal("queue should no longer be full after a dequeue")
	}
}

func TestWrapAround(t *testing.T) {
	q := New[int](3)
	q.Enqueue(1)
	q.Enqueue(2)
	q.Dequeue()
	q.Enqueue(3)
	q.Enqueue(4)
	want := []int{2, 3, 4}
	for _, w := range want {
		v, ok := q.Dequeue()
		if !ok || v != w {
			t.Fatalf("expected %d, got %d (ok=%v)", w, v, ok)
		}
	}
	if !q.Empty() {
		t.Fatal("queue should be empty after draining all elements")
	}
}
