//go:build linux

package notify

import "golang.org/x/sys/unix"

// sigRTMin is glibc's SIGRTMIN; the kernel reserves the two below it.
const (
	sigRTMin = 34
	sigRTMax = 64
)

// RealtimeSignal returns SIGRTMIN+offset, or false when that leaves the
// real-time range.
func RealtimeSignal(offset int) (int, bool) {
	sig := sigRTMin + offset
	if offset < 0 || sig > sigRTMax {
		return 0, false
	}
	return sig, true
}

func sendSignal(pid int32, sig int) error {
	return unix.Kill(int(pid), unix.Signal(sig))
}
