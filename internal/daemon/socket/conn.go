package socket

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// sendTimeout bounds a client write.
const sendTimeout = 100 * time.Millisecond

// Listen binds a unixgram socket at path, replacing any stale file, and
// restricts it to the owner.
func Listen(path string) (*net.UnixConn, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create socket dir: %w", err)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove stale socket %s: %w", path, err)
	}

	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: path, Net: "unixgram"})
	if err != nil {
		return nil, fmt.Errorf("failed to bind socket %s: %w", path, err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to chmod socket %s: %w", path, err)
	}
	return conn, nil
}

// Send delivers m to the daemon listening at path. It reports false with a
// nil error when no daemon is listening, so callers can fall back.
func Send(path string, m Message) (bool, error) {
	data := m.Encode()
	if len(data) > MaxDatagram {
		return false, fmt.Errorf("message of %d bytes exceeds %d", len(data), MaxDatagram)
	}

	conn, err := net.DialUnix("unixgram", nil, &net.UnixAddr{Name: path, Net: "unixgram"})
	if err != nil {
		if noListener(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to connect to %s: %w", path, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(sendTimeout))
	if _, err := conn.Write(data); err != nil {
		if noListener(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to send to %s: %w", path, err)
	}
	return true, nil
}

func noListener(err error) bool {
	return errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, syscall.ENOENT) ||
		errors.Is(err, syscall.ECONNREFUSED)
}

// IsTimeout reports whether err is a read/write deadline expiry.
func IsTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
