// Command ringzero boots the kernel simulator: an interactive terminal
// session by default, or a headless boot (useful for scripted smoke
// tests) with -headless.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ringzero/internal/console"
	"ringzero/internal/kernel"
)

func main() {
	headless := flag.Bool("headless", false, "boot without attaching a real terminal")
	tickMS := flag.Uint64("tick-ms", 1, "simulated PIT tick interval in milliseconds")
	flag.Parse()

	cfg := kernel.DefaultConfig()
	cfg.TickIntervalMS = *tickMS

	if *headless {
		runHeadless(cfg)
		return
	}
	runInteractive(cfg)
}

func runHeadless(cfg kernel.Config) {
	m := kernel.New(cfg)
	m.AttachConsole(console.NewBufferConsole(nil))
	if err := m.Boot(); err != nil {
		fmt.Fprintln(os.Stderr, "boot failed:", err)
		os.Exit(1)
	}
	defer m.Shutdown()

	waitForSignal()
}

func runInteractive(cfg kernel.Config) {
	m := kernel.New(cfg)

	host, err := console.NewHostConsole(m.KeyboardManager())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to attach terminal:", err)
		os.Exit(1)
	}
	defer host.Stop()

	m.AttachConsole(host)
	if err := m.Boot(); err != nil {
		fmt.Fprintln(os.Stderr, "boot failed:", err)
		os.Exit(1)
	}
	defer m.Shutdown()

	waitForSignal()
}

func waitForSignal() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
