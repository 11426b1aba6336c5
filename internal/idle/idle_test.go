package idle

import "testing"

func TestHaltCountDecreasesWithLoad(t *testing.T) {
	low := haltCountFor(5)
	mid := haltCountFor(50)
	high := haltCountFor(95)
	if !(low > mid && mid > high) {
		t.Fatalf("expected halt count to shrink as load grows, got low=%d mid=%d high=%d", low, mid, high)
	}
}

func TestObserveTickComputesLoad(t *testing.T) {
	task := &Task{}
	for i := 0; i < windowTicks; i++ {
		task.ObserveTick(i%2 == 0)
	}
	if task.LoadPercent() < 40 || task.LoadPercent() > 60 {
		t.Fatalf("expected roughly 50%% load for alternating idle ticks, got %d", task.LoadPercent())
	}
}
