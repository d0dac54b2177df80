package config

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for daemon log files.
const (
	LogMaxSizeMB  = 5
	LogMaxBackups = 3
	LogMaxAgeDays = 14
)

// Debug enables verbose logging through Debugf.
var Debug bool

// SetupLogOutput points the standard logger at a size-rotated file, or at
// stderr when path is empty. The returned closer flushes the file.
func SetupLogOutput(path string) io.Closer {
	if path == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil)
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    LogMaxSizeMB,
		MaxBackups: LogMaxBackups,
		MaxAge:     LogMaxAgeDays,
	}
	log.SetOutput(w)
	return w
}

// Debugf logs only when Debug is set.
func Debugf(format string, args ...any) {
	if Debug {
		log.Printf(format, args...)
	}
}
