package keyboard

import (
	"ringzero/internal/cpuctl"
	"ringzero/internal/ringqueue"
)

// queueCapacity matches keyboard.rs's static key queue size.
const queueCapacity = 100

// Manager owns the translator and the queue interrupt handlers feed into,
// wrapping enqueue in cpuctl.Without the way convert_and_enqueue runs with
// interrupts disabled in keyboard.rs.
type Manager struct {
	cpu        *cpuctl.CPU
	translator *Translator
	controller *Controller
	queue      *ringqueue.Queue[KeyData]
}

// NewManager returns a manager bound to controller and cpu.
func NewManager(cpu *cpuctl.CPU, controller *Controller) *Manager {
	return &Manager{
		cpu:        cpu,
		translator: NewTranslator(),
		controller: controller,
		queue:      ringqueue.New[KeyData](queueCapacity),
	}
}

// HandleIRQ is the IRQ1 handler: it reads the scan code byte out of the
// controller's data port, translates it, and enqueues any resulting event.
func (m *Manager) HandleIRQ() {
	scancode := m.controller.In(dataPort)
	m.convertAndEnqueue(scancode)
}

func (m *Manager) convertAndEnqueue(scancode byte) {
	kd, ok := m.translator.Feed(scancode)
	if !ok {
		return
	}
	m.cpu.Without(func() {
		m.queue.Enqueue(kd)
	})
}

// GetKey dequeues the next decoded key event. ok is false when the queue
// is empty.
func (m *Manager) GetKey() (KeyData, bool) {
	var kd KeyData
	var ok bool
	m.cpu.Without(func() {
		kd, ok = m.queue.Dequeue()
	})
	return kd, ok
}

// PostScanCode injects a raw scan-code byte as if IRQ1 had just fired,
// used by HostFeed to turn real stdin bytes into keyboard events.
func (m *Manager) PostScanCode(scancode byte) {
	m.controller.postKey(scancode)
	m.HandleIRQ()
}
