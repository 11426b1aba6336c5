package scheduler

import "sync"

// Runtime is the goroutine-handoff substrate standing in for a single
// physical core: each task body runs in its own goroutine, which blocks
// on its resume token before its first run and inside YieldNext.
// Schedule hands the token to the next task but does not stop the
// outgoing goroutine, so a preempted task body keeps running until it
// next calls YieldNext.
// Grounded on coprocessor_manager.go's per-worker stop/done channel
// lifecycle, generalized here to a bidirectional per-task resume token.
type Runtime struct {
	mu     sync.Mutex
	tokens map[uint64]chan struct{}
}

func newRuntime() *Runtime {
	return &Runtime{tokens: make(map[uint64]chan struct{})}
}

// Register creates the resume token for a newly allocated task. Call this
// before the task's goroutine starts.
func (r *Runtime) Register(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[id] = make(chan struct{})
}

// Unregister removes a task's token once it has ended.
func (r *Runtime) Unregister(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, id)
}

func (r *Runtime) tokenFor(id uint64) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens[id]
}

// Wait blocks the calling goroutine (task id) until it is resumed.
func (r *Runtime) Wait(id uint64) {
	tok := r.tokenFor(id)
	if tok == nil {
		return
	}
	<-tok
}

// resume signals id's goroutine to proceed, used by the preemptive
// Schedule path where the caller (the interrupt handler) does not itself
// need to block.
func (r *Runtime) resume(id uint64) {
	tok := r.tokenFor(id)
	if tok == nil {
		return
	}
	select {
	case tok <- struct{}{}:
	default:
	}
}

// switchTo hands control from the outgoing task straight to next, then
// blocks the caller until it is resumed again: the cooperative yield_next
// path, a direct context switch with no interrupt involved.
func (r *Runtime) switchTo(outgoing, next uint64) {
	r.resume(next)
	if outgoing != 0 {
		r.Wait(outgoing)
	}
}
