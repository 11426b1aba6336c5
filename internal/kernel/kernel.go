// Package kernel wires every component into the running machine: the
// descriptor tables, the PIC/PIT/RTC/keyboard devices, the process pool
// and scheduler, the idle task, and the shell task. Grounded on main.go's
// top-level wiring, minus the GUI/audio/video construction it performed.
package kernel

import (
	"fmt"
	"time"

	"ringzero/internal/console"
	"ringzero/internal/cpuctl"
	"ringzero/internal/descriptor"
	"ringzero/internal/idle"
	"ringzero/internal/interrupt"
	"ringzero/internal/keyboard"
	"ringzero/internal/physmem"
	"ringzero/internal/pic"
	"ringzero/internal/pit"
	"ringzero/internal/portbus"
	"ringzero/internal/rtc"
	"ringzero/internal/scheduler"
	"ringzero/internal/shell"
	"ringzero/internal/task"
)

// Config holds boot-time settings.
type Config struct {
	// TickIntervalMS is how often the simulated PIT fires IRQ0. Spec
	// assumes a 1ms tick; tests may widen this to reduce goroutine churn.
	TickIntervalMS uint64
	// DefaultStackSize is used for every task this kernel allocates.
	DefaultStackSize uint64
}

// DefaultConfig returns the settings a real boot uses.
func DefaultConfig() Config {
	return Config{TickIntervalMS: 1, DefaultStackSize: 64 * 1024}
}

// Machine is the fully wired kernel instance.
type Machine struct {
	cfg Config

	mem      *physmem.Region
	bus      *portbus.Bus
	tables   *descriptor.Tables
	picPair  *pic.Pair
	pitDev   *pit.Device
	rtcDev   *rtc.Device
	kbCtrl   *keyboard.Controller
	kbMgr    *keyboard.Manager
	cpu      *cpuctl.CPU
	vectors  *interrupt.Table
	pool     *task.Pool
	sched    *scheduler.Scheduler
	idleTask *idle.Task

	console console.Console
	shellT  *shell.Shell

	stop chan struct{}
}

// New constructs a machine with every device and the scheduler wired, but
// without a console attached yet: callers that need to hand the
// keyboard manager to a console adapter (HostConsole) before that console
// exists call KeyboardManager first, build their console, then call
// AttachConsole before Boot.
func New(cfg Config) *Machine {
	m := &Machine{cfg: cfg, stop: make(chan struct{})}

	m.mem = physmem.New()
	m.bus = portbus.New()
	m.tables = descriptor.New(m.mem)
	m.picPair = pic.New(m.bus)
	m.pitDev = pit.New(m.bus)
	m.rtcDev = rtc.New()
	m.kbCtrl = keyboard.NewController(m.bus)
	m.cpu = cpuctl.New(time.Now())
	m.kbMgr = keyboard.NewManager(m.cpu, m.kbCtrl)
	m.vectors = interrupt.NewTable()
	m.pool = task.New()
	m.sched = scheduler.New(m.pool, m.mem)
	m.idleTask = idle.New(m.cpu, m.sched)

	m.wireInterrupts()
	return m
}

// KeyboardManager exposes the keyboard subsystem for a console host
// adapter to route real key presses into.
func (m *Machine) KeyboardManager() *keyboard.Manager { return m.kbMgr }

// AttachConsole binds con as the machine's console and builds the shell
// task against it. It must be called before Boot.
func (m *Machine) AttachConsole(con console.Console) {
	m.console = con
	m.shellT = shell.New(m.console, m.pool, m.sched, m.idleTask, m.cpu, m.pitDev, m.rtcDev, m.mem, m.spawnDemoTask)
}

func (m *Machine) wireInterrupts() {
	m.vectors.Install(interrupt.IRQTimer, func(interrupt.Number) {
		m.cpu.Wake()
		if m.sched.Tick() {
			m.sched.Schedule()
		}
		m.picPair.EOI(0)
	})
	m.vectors.Install(interrupt.IRQKeyboard, func(interrupt.Number) {
		m.kbMgr.HandleIRQ()
		m.picPair.EOI(1)
	})
}

// Boot brings the machine up: builds descriptor tables, remaps the PIC,
// unmasks the timer and keyboard IRQs, starts the idle and shell tasks,
// and starts the simulated PIT ticker. It returns once the shell task has
// been spawned; the machine then runs until Shutdown is called.
func (m *Machine) Boot() error {
	if m.shellT == nil {
		return fmt.Errorf("kernel: AttachConsole must be called before Boot")
	}
	m.tables.BuildGDT()
	m.tables.BuildIDT()
	m.picPair.Remap(0x20, 0x28)
	m.picPair.Unmask(0)
	m.picPair.Unmask(1)
	m.cpu.SetInterruptFlag(true)

	if !m.kbCtrl.Activate() {
		return fmt.Errorf("kernel: keyboard controller did not ACK activation")
	}

	if _, err := m.spawnTask(task.PriorityLowest, true, func() { m.idleTask.Run(nil) }); err != nil {
		return fmt.Errorf("kernel: failed to spawn idle task: %w", err)
	}

	if _, err := m.spawnTask(2, false, func() { m.shellT.Run() }); err != nil {
		return fmt.Errorf("kernel: failed to spawn shell task: %w", err)
	}

	go m.tickLoop()
	return nil
}

// Shutdown stops the PIT ticker. Task goroutines parked on the scheduler
// runtime are left to be garbage collected with the Machine.
func (m *Machine) Shutdown() {
	close(m.stop)
}

func (m *Machine) tickLoop() {
	interval := time.Duration(m.cfg.TickIntervalMS) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.vectors.Dispatch(interrupt.IRQTimer)
		}
	}
}

// spawnTask allocates a process, registers it with the scheduler runtime,
// and starts a goroutine that waits its turn before running body,
// matching the single-CPU cooperative/preemptive handoff the scheduler
// assumes.
func (m *Machine) spawnTask(priority int, idleFlag bool, body func()) (uint64, error) {
	proc, id, ok := m.pool.Alloc()
	if !ok {
		return 0, fmt.Errorf("process pool exhausted")
	}
	proc.Set(priority, 0, 0, m.cfg.DefaultStackSize)
	if idleFlag {
		proc.Flags |= task.FlagIdleTask
	}

	rt := m.sched.Runtime()
	rt.Register(id)
	m.sched.AddReady(id)

	go func() {
		rt.Wait(id)
		body()
	}()

	return id, nil
}

// spawnDemoTask is the TaskSpawner the shell's createtask command uses: a
// task with no real workload, just a body that repeatedly yields, useful
// for exercising the scheduler from the shell interactively.
func (m *Machine) spawnDemoTask(priority int) (uint64, error) {
	return m.spawnTask(priority, false, func() {
		for {
			m.sched.YieldNext()
		}
	})
}
