package notify

import (
	"log"
	"sync"

	"github.com/shirou/gopsutil/v4/process"
)

// Debug enables logging of discovery and delivery failures.
var Debug bool

// SignalNotifier sends SIGRTMIN+Offset to every process named ProcessName.
// Matching pids are cached and rediscovered once when delivery fails.
type SignalNotifier struct {
	ProcessName string
	Offset      int

	mu   sync.Mutex
	pids []int32

	// Seams for tests.
	discover func(name string) ([]int32, error)
	kill     func(pid int32, sig int) error
}

// NewSignalNotifier creates a notifier for processes named name.
func NewSignalNotifier(name string, offset int) *SignalNotifier {
	return &SignalNotifier{
		ProcessName: name,
		Offset:      offset,
		discover:    FindProcesses,
		kill:        sendSignal,
	}
}

// Notify delivers the signal. Failures are swallowed.
func (n *SignalNotifier) Notify() {
	sig, ok := RealtimeSignal(n.Offset)
	if !ok {
		debugf("[notify] signal offset %d out of range", n.Offset)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	hadCache := len(n.pids) > 0
	if !hadCache {
		n.refresh()
	}
	if n.deliver(sig) || !hadCache {
		return
	}

	// Cached pids went stale (UI restarted); look again once.
	n.pids = nil
	n.refresh()
	n.deliver(sig)
}

func (n *SignalNotifier) refresh() {
	pids, err := n.discover(n.ProcessName)
	if err != nil {
		debugf("[notify] failed to discover %s: %v", n.ProcessName, err)
		return
	}
	n.pids = pids
}

// deliver signals every cached pid and reports whether all succeeded.
func (n *SignalNotifier) deliver(sig int) bool {
	if len(n.pids) == 0 {
		return false
	}
	ok := true
	for _, pid := range n.pids {
		if err := n.kill(pid, sig); err != nil {
			debugf("[notify] failed to signal %d: %v", pid, err)
			ok = false
		}
	}
	return ok
}

// FindProcesses returns the pids of processes whose executable name is
// exactly name.
func FindProcesses(name string) ([]int32, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	var pids []int32
	for _, p := range procs {
		pname, err := p.Name()
		if err != nil {
			continue
		}
		if pname == name {
			pids = append(pids, p.Pid)
		}
	}
	return pids, nil
}

func debugf(format string, args ...any) {
	if Debug {
		log.Printf(format, args...)
	}
}
