// Package idle implements the idle task: a windowed CPU-load estimate and
// an adaptive number of HLT calls per load bracket, transcribed from
// process/idle.rs's idle_process.
package idle

import (
	"ringzero/internal/cpuctl"
	"ringzero/internal/scheduler"
)

// windowTicks is how many timer ticks the load estimate is averaged over,
// matching idle.rs's measurement window.
const windowTicks = 1000

// loadBracket maps a load percentage threshold to the number of
// consecutive HLT calls the idle task issues before yielding, transcribed
// from idle.rs's halting brackets: busier machines halt for fewer
// iterations so the idle task samples load more often.
type loadBracket struct {
	maxLoadPercent int
	haltCount      int
}

var brackets = []loadBracket{
	{maxLoadPercent: 39, haltCount: 3},
	{maxLoadPercent: 79, haltCount: 2},
	{maxLoadPercent: 94, haltCount: 1},
	{maxLoadPercent: 100, haltCount: 0},
}

func haltCountFor(loadPercent int) int {
	for _, b := range brackets {
		if loadPercent <= b.maxLoadPercent {
			return b.haltCount
		}
	}
	return 1
}

// Task is the idle task's runtime state: a rolling count of ticks observed
// idle versus ticks observed busy, used to derive the load estimate.
type Task struct {
	cpu   *cpuctl.CPU
	sched *scheduler.Scheduler

	windowTick int
	idleTicks  int
	lastLoad   int
}

// New returns an idle task bound to cpu and sched.
func New(cpu *cpuctl.CPU, sched *scheduler.Scheduler) *Task {
	return &Task{cpu: cpu, sched: sched}
}

// ObserveTick is called once per timer tick from the idle task's own
// execution context to update the rolling load window.
func (t *Task) ObserveTick(wasIdle bool) {
	t.windowTick++
	if wasIdle {
		t.idleTicks++
	}
	if t.windowTick >= windowTicks {
		t.lastLoad = 100 - (t.idleTicks*100)/windowTicks
		t.windowTick = 0
		t.idleTicks = 0
	}
}

// LoadPercent reports the most recently computed CPU load estimate,
// exposed to the shell's cpuload command.
func (t *Task) LoadPercent() int { return t.lastLoad }

// Run is the idle task's body: halt an adaptive number of times based on
// the current load bracket, call reapWaitList (when non-nil) to reclaim
// ended tasks, then yield, in an infinite loop matching idle_process's
// structure.
func (t *Task) Run(reapWaitList func()) {
	for {
		n := haltCountFor(t.lastLoad)
		for i := 0; i < n; i++ {
			t.cpu.Halt()
			t.ObserveTick(true)
		}
		if reapWaitList != nil {
			reapWaitList()
		}
		t.sched.YieldNext()
	}
}
