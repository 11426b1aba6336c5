package shell

import (
	"fmt"
	"strconv"

	"ringzero/internal/physmem"
	"ringzero/internal/pit"
	"ringzero/internal/task"
)

type commandFunc func(s *Shell, args []string)

var commands = map[string]commandFunc{
	"help":           cmdHelp,
	"cls":            cmdCls,
	"totalram":       cmdTotalRAM,
	"shutdown":       cmdShutdown,
	"settimer":       cmdSetTimer,
	"wait":           cmdWait,
	"cpuspeed":       cmdCPUSpeed,
	"date":           cmdDate,
	"createtask":     cmdCreateTask,
	"listtask":       cmdListTask,
	"killtask":       cmdKillTask,
	"changepriority": cmdChangePriority,
	"cpuload":        cmdCPULoad,
}

func cmdHelp(s *Shell, args []string) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	s.console.Println("commands:")
	for _, name := range names {
		s.console.Println("  " + name)
	}
}

func cmdCls(s *Shell, args []string) {
	s.console.Clear()
}

func cmdTotalRAM(s *Shell, args []string) {
	s.console.Println(fmt.Sprintf("%d bytes", physmem.Size))
}

func cmdShutdown(s *Shell, args []string) {
	s.console.Println("shutting down.")
	for {
		s.cpu.Halt()
	}
}

func cmdSetTimer(s *Shell, args []string) {
	if len(args) != 1 {
		s.console.Println("usage: settimer <milliseconds>")
		return
	}
	ms, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		s.console.Println("invalid millisecond count")
		return
	}
	s.pitDev.Init(pit.ToCountsMS(ms), true)
	s.console.Println("timer reprogrammed.")
}

func cmdWait(s *Shell, args []string) {
	if len(args) != 1 {
		s.console.Println("usage: wait <milliseconds>")
		return
	}
	ms, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		s.console.Println("invalid millisecond count")
		return
	}
	s.pitDev.Wait(ms)
}

func cmdCPUSpeed(s *Shell, args []string) {
	s.console.Println(fmt.Sprintf("tsc: %d", s.cpu.ReadTSC()))
}

func cmdDate(s *Shell, args []string) {
	d := s.rtcDev.CurrentDate()
	tm := s.rtcDev.CurrentTime()
	s.console.Println(fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", d.Year, d.Month, d.Day, tm.Hour, tm.Minute, tm.Second))
}

func cmdCreateTask(s *Shell, args []string) {
	priority := task.PriorityLowest
	if len(args) == 1 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 0 || p > task.PriorityLowest {
			s.console.Println("usage: createtask [priority 0-4]")
			return
		}
		priority = p
	}
	if s.spawn == nil {
		s.console.Println("task creation unavailable")
		return
	}
	id, err := s.spawn(priority)
	if err != nil {
		s.console.Println("createtask failed: " + err.Error())
		return
	}
	s.console.Println(fmt.Sprintf("created task 0x%x", id))
}

func cmdListTask(s *Shell, args []string) {
	s.console.Println(fmt.Sprintf("%-18s %-5s %s", "ID", "PRIO", "STATE"))
	for id, proc := range s.pool.Snapshot() {
		state := "READY"
		if proc.IsIdleTask() {
			state = "IDLE"
		}
		if proc.IsEndTask() {
			state = "ENDING"
		}
		if proc.Priority() == task.PriorityWait {
			state = "WAIT"
		}
		if s.sched.CurrentID() == id {
			state = "RUNNING"
		}
		s.console.Println(fmt.Sprintf("0x%-16x %-5d %s", id, proc.Priority(), state))
	}
}

func cmdKillTask(s *Shell, args []string) {
	if len(args) != 1 {
		s.console.Println("usage: killtask <pid>")
		return
	}
	id, err := parsePID(args[0])
	if err != nil {
		s.console.Println(err.Error())
		return
	}
	if !s.pool.Exists(id) {
		s.console.Println("no such task")
		return
	}
	s.sched.EndProcess(id)
	s.console.Println("task marked for termination.")
}

func cmdChangePriority(s *Shell, args []string) {
	if len(args) != 2 {
		s.console.Println("usage: changepriority <pid> <0-4>")
		return
	}
	id, err := parsePID(args[0])
	if err != nil {
		s.console.Println(err.Error())
		return
	}
	priority, err := strconv.Atoi(args[1])
	if err != nil || priority < 0 || priority > task.PriorityLowest {
		s.console.Println("priority must be 0-4")
		return
	}
	if !s.pool.Exists(id) {
		s.console.Println("no such task")
		return
	}
	s.sched.ChangePriority(id, priority)
	s.console.Println("priority changed.")
}

func cmdCPULoad(s *Shell, args []string) {
	s.console.Println(fmt.Sprintf("%d%%", s.idle.LoadPercent()))
}
