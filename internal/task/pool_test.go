package task

import "testing"

func TestAllocGivesDistinctIDs(t *testing.T) {
	p := New()
	_, id1, ok1 := p.Alloc()
	_, id2, ok2 := p.Alloc()
	if !ok1 || !ok2 {
		t.Fatal("expected both allocations to succeed")
	}
	if id1 == id2 {
		t.Fatal("expected distinct process IDs")
	}
}

func TestDeallocInvalidatesStaleID(t *testing.T) {
	p := New()
	_, id, _ := p.Alloc()
	if !p.Exists(id) {
		t.Fatal("expected freshly allocated process to exist")
	}
	p.Dealloc(id)
	if p.Exists(id) {
		t.Fatal("expected stale ID to no longer exist after Dealloc")
	}
	if p.Get(id) != nil {
		t.Fatal("expected Get on a stale ID to return nil")
	}
}

func TestExistsEqualityNotInverted(t *testing.T) {
	p := New()
	_, idA, _ := p.Alloc()
	_, idB, _ := p.Alloc()
	if !p.Exists(idA) || !p.Exists(idB) {
		t.Fatal("both processes should exist")
	}
	p.Dealloc(idA)
	if p.Exists(idA) {
		t.Fatal("idA should no longer exist")
	}
	if !p.Exists(idB) {
		t.Fatal("idB should still exist: Exists must not be the inverted predicate")
	}
}

func TestSlotReuseAfterDealloc(t *testing.T) {
	p := New()
	_, firstID, _ := p.Alloc()
	p.Dealloc(firstID)

	for i := 0; i < PoolSize; i++ {
		if _, _, ok := p.Alloc(); !ok {
			t.Fatalf("allocation %d should succeed after freeing a slot", i)
		}
	}
}

func TestPriorityFlagRoundTrip(t *testing.T) {
	proc, _, _ := New().Alloc()
	proc.SetPriority(3)
	if proc.Priority() != 3 {
		t.Fatalf("Priority() = %d, want 3", proc.Priority())
	}
	proc.Flags |= FlagEndTask
	if !proc.IsEndTask() {
		t.Fatal("expected end-task flag set")
	}
	if proc.Priority() != 3 {
		t.Fatal("setting the end-task flag must not disturb the priority bits")
	}
}
