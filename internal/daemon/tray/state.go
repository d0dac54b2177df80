// Package tray implements the system tray icon and menu for the aggregator.
package tray

import (
	_ "embed"
)

//go:embed icon.png
var iconData []byte

// Controller lets the tray act on the running process.
type Controller interface {
	StatePath() string
	RequestShutdown()
}
