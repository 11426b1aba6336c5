// Package scheduler implements the multi-priority preemptive round-robin
// scheduler, transcribed from round_robin.rs's RRScheduler: five ready
// priority queues (0 highest .. 4 lowest) plus a wait list, a two-pass
// pick_next that favors high priorities without starving low ones, and
// both a preemptive Schedule path (driven by the PIT tick, swapping the
// saved context in the IST region) and a cooperative YieldNext path
// (direct context switch, no IST involvement).
package scheduler

import (
	"sync"

	"ringzero/internal/descriptor"
	"ringzero/internal/physmem"
	"ringzero/internal/task"
)

// QuantumTicks is the number of timer ticks a task runs before Schedule
// preempts it.
const QuantumTicks = 5

// Scheduler owns the ready/wait queues and the currently running task's
// bookkeeping. Pool supplies process lookups; mem is where Schedule reads
// and writes the IST-resident saved context.
type Scheduler struct {
	mu   sync.Mutex
	pool *task.Pool
	mem  *physmem.Region

	ready        [task.PriorityCount]runQueue
	wait         runQueue
	executeCount [task.PriorityCount]int

	current       uint64
	ticksRemaining int

	runtime *Runtime
}

// New returns a scheduler with empty queues, bound to pool and the shared
// physical memory region that holds the IST-resident saved context.
func New(pool *task.Pool, mem *physmem.Region) *Scheduler {
	s := &Scheduler{pool: pool, mem: mem}
	for i := range s.ready {
		s.ready[i] = newRunQueue()
	}
	s.wait = newRunQueue()
	s.runtime = newRuntime()
	return s
}

// Runtime exposes the goroutine-handoff runtime backing context switches.
func (s *Scheduler) Runtime() *Runtime { return s.runtime }

// AddReady inserts id into the ready queue matching its process's current
// priority, or the wait list if its priority is PriorityWait.
func (s *Scheduler) AddReady(id uint64) {
	proc := s.pool.Get(id)
	if proc == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueueLocked(id, proc.Priority())
}

func (s *Scheduler) enqueueLocked(id uint64, priority int) {
	if priority == task.PriorityWait {
		s.wait.push(id)
		return
	}
	if priority < 0 {
		priority = 0
	}
	if priority > task.PriorityLowest {
		priority = task.PriorityLowest
	}
	s.ready[priority].push(id)
}

// ChangePriority moves id between ready queues to match a new priority.
func (s *Scheduler) ChangePriority(id uint64, newPriority int) {
	proc := s.pool.Get(id)
	if proc == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	oldPriority := proc.Priority()
	if oldPriority != task.PriorityWait && oldPriority >= 0 && oldPriority <= task.PriorityLowest {
		s.ready[oldPriority].remove(id)
	} else {
		s.wait.remove(id)
	}
	proc.SetPriority(newPriority)
	if id != s.current {
		s.enqueueLocked(id, newPriority)
	}
}

// pickNextLocked implements the two-pass selection: the first pass only
// considers a priority level while its consecutive-run budget (the
// level's current ready-list length, so a busier priority earns more
// consecutive turns in proportion to its population) hasn't been
// exhausted; the second pass resets every budget and retries,
// guaranteeing a lower-priority queue is never starved forever.
func (s *Scheduler) pickNextLocked() (uint64, int, bool) {
	for priority := 0; priority < task.PriorityCount; priority++ {
		budget := s.ready[priority].count()
		if s.executeCount[priority] >= budget {
			continue
		}
		if id, ok := s.ready[priority].pop(); ok {
			s.executeCount[priority]++
			return id, priority, true
		}
	}

	for i := range s.executeCount {
		s.executeCount[i] = 0
	}
	for priority := 0; priority < task.PriorityCount; priority++ {
		if id, ok := s.ready[priority].pop(); ok {
			s.executeCount[priority]++
			return id, priority, true
		}
	}
	return 0, 0, false
}

// istContextAddr is where the currently running task's interrupt frame
// lives while executing, derived from the descriptor package's IST layout.
func istContextAddr() uint64 {
	return descriptor.ISTStartAddress + descriptor.ISTSize - task.Size
}

// Tick is called once per PIT interrupt. It decrements the current task's
// remaining quantum and reports whether Schedule should run a preemption.
func (s *Scheduler) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ticksRemaining > 0 {
		s.ticksRemaining--
	}
	return s.ticksRemaining == 0
}

// Schedule runs the preemptive switch path invoked from the timer
// interrupt handler: it saves the outgoing task's context out of the IST
// region, re-enqueues it (unless it ended or blocked), picks the next
// ready task, installs its context into the IST region, and hands the
// runtime token to its goroutine.
func (s *Scheduler) Schedule() {
	addr := istContextAddr()
	outgoing := s.currentID()
	if outgoing != 0 {
		ctx := task.ReadContext(s.mem, addr)
		if proc := s.pool.Get(outgoing); proc != nil {
			proc.Context = ctx
			if !proc.IsEndTask() {
				s.AddReady(outgoing)
			} else {
				s.pool.Dealloc(outgoing)
			}
		}
	}

	s.mu.Lock()
	next, _, ok := s.pickNextLocked()
	if !ok {
		s.mu.Unlock()
		return
	}
	s.current = next
	s.ticksRemaining = QuantumTicks
	s.mu.Unlock()

	proc := s.pool.Get(next)
	if proc == nil {
		return
	}
	proc.Context.WriteTo(s.mem, addr)
	s.runtime.resume(next)
}

// YieldNext is the cooperative path: the calling task gives up the
// remaining quantum voluntarily and a direct goroutine handoff happens
// without touching the IST region, matching round_robin.rs's
// yield_next using context_switch directly instead of schedule's
// IST-frame dance.
func (s *Scheduler) YieldNext() {
	outgoing := s.currentID()
	if outgoing != 0 {
		if proc := s.pool.Get(outgoing); proc != nil {
			if !proc.IsEndTask() {
				s.AddReady(outgoing)
			} else {
				s.pool.Dealloc(outgoing)
			}
		}
	}

	s.mu.Lock()
	next, _, ok := s.pickNextLocked()
	if !ok {
		s.mu.Unlock()
		return
	}
	s.current = next
	s.ticksRemaining = QuantumTicks
	s.mu.Unlock()

	s.runtime.switchTo(outgoing, next)
}

// EndProcess marks id for termination; it is reaped the next time it
// leaves the CPU through Schedule or YieldNext.
func (s *Scheduler) EndProcess(id uint64) {
	if proc := s.pool.Get(id); proc != nil {
		proc.Flags |= task.FlagEndTask
	}
}

func (s *Scheduler) currentID() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentID reports the currently running process ID, or 0 if none.
func (s *Scheduler) CurrentID() uint64 { return s.currentID() }
