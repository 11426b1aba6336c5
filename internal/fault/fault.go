// Package fault reports unrecoverable CPU exceptions: a banner naming the
// vector, then a halt forever. Status is printed directly with fmt rather
// than through a structured logger, the same convention cmd/ringzero's
// main.go uses.
package fault

import (
	"fmt"

	"ringzero/internal/cpuctl"
	"ringzero/internal/interrupt"
)

// Console is the minimal surface fault reporting needs; internal/console's
// Console interface satisfies it.
type Console interface {
	Println(s string)
}

// Report prints the exception banner for vector and parks the CPU forever,
// matching the kernel's "this is not recoverable" stance on CPU exceptions.
func Report(vector interrupt.Number, errorCode uint64, console Console, cpu *cpuctl.CPU) {
	console.Println(fmt.Sprintf("Vector : %02d (%s)", int(vector), vector))
	console.Println(fmt.Sprintf("Error code : %#x", errorCode))
	console.Println("System halted.")
	for {
		cpu.Halt()
	}
}
