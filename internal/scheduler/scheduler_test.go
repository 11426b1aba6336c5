package scheduler

import (
	"testing"

	"ringzero/internal/physmem"
	"ringzero/internal/task"
)

func newTestScheduler(t *testing.T) (*Scheduler, *task.Pool) {
	t.Helper()
	pool := task.New()
	mem := physmem.New()
	return New(pool, mem), pool
}

func allocAt(t *testing.T, pool *task.Pool, priority int) uint64 {
	t.Helper()
	proc, id, ok := pool.Alloc()
	if !ok {
		t.Fatal("pool allocation failed")
	}
	proc.Set(priority, 0, 0, 4096)
	return id
}

func TestFIFOWithinPriority(t *testing.T) {
	sched, pool := newTestScheduler(t)
	a := allocAt(t, pool, 2)
	b := allocAt(t, pool, 2)
	c := allocAt(t, pool, 2)
	sched.AddReady(a)
	sched.AddReady(b)
	sched.AddReady(c)

	first, _, ok := sched.pickNextLocked()
	if !ok || first != a {
		t.Fatalf("expected %d first, got %d", a, first)
	}
	second, _, ok := sched.pickNextLocked()
	if !ok || second != b {
		t.Fatalf("expected %d second, got %d", b, second)
	}
}

func TestHigherPriorityRunsFirst(t *testing.T) {
	sched, pool := newTestScheduler(t)
	low := allocAt(t, pool, 4)
	high := allocAt(t, pool, 0)
	sched.AddReady(low)
	sched.AddReady(high)

	first, priority, ok := sched.pickNextLocked()
	if !ok || first != high || priority != 0 {
		t.Fatalf("expected high-priority task first, got id=%d priority=%d", first, priority)
	}
}

func TestLowPriorityNotStarvedForever(t *testing.T) {
	sched, pool := newTestScheduler(t)
	low := allocAt(t, pool, 4)
	sched.AddReady(low)

	// Keep re-adding a high-priority task after each pick to simulate it
	// always being ready; the low-priority task must eventually run once
	// priority 0's execute-count budget is used up.
	high := allocAt(t, pool, 0)
	sched.AddReady(high)
	seenLow := false
	for i := 0; i < 50 && !seenLow; i++ {
		id, _, ok := sched.pickNextLocked()
		if !ok {
			t.Fatal("pickNextLocked unexpectedly reported empty")
		}
		if id == low {
			seenLow = true
		} else {
			sched.AddReady(id)
		}
	}
	if !seenLow {
		t.Fatal("low-priority task was starved for 50 picks")
	}
}

func TestChangePriorityMovesQueues(t *testing.T) {
	sched, pool := newTestScheduler(t)
	id := allocAt(t, pool, 4)
	sched.AddReady(id)
	sched.ChangePriority(id, 0)

	if !sched.ready[0].remove(id) {
		t.Fatal("expected task to have moved into priority-0 queue")
	}
}

func TestWaitPriorityGoesToWaitList(t *testing.T) {
	sched, pool := newTestScheduler(t)
	id := allocAt(t, pool, task.PriorityWait)
	sched.AddReady(id)

	if _, _, ok := sched.pickNextLocked(); ok {
		t.Fatal("a waiting task must not be picked as ready")
	}
	if !sched.wait.remove(id) {
		t.Fatal("expected task to be queued on the wait list")
	}
}
