//go:build !linux

package notify

import "errors"

var errUnsupported = errors.New("real-time signals are only supported on linux")

// RealtimeSignal reports false: there is no portable real-time signal range.
func RealtimeSignal(offset int) (int, bool) {
	return 0, false
}

func sendSignal(pid int32, sig int) error {
	return errUnsupported
}
