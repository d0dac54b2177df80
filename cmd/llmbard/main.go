// Package main is the entry point for the llmbard daemon.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/watchfire-io/llmbar/internal/buildinfo"
	"github.com/watchfire-io/llmbar/internal/config"
	"github.com/watchfire-io/llmbar/internal/daemon/aggregator"
	"github.com/watchfire-io/llmbar/internal/daemon/notify"
	"github.com/watchfire-io/llmbar/internal/daemon/server"
	"github.com/watchfire-io/llmbar/internal/daemon/tray"
	"github.com/watchfire-io/llmbar/internal/models"
)

func main() {
	os.Exit(run())
}

func run() int {
	aggregate := flag.Bool("aggregate", false, "Aggregate session files instead of listening on the socket")
	withTray := flag.Bool("tray", false, "Show a system tray icon (aggregate mode only)")
	sessionsDir := flag.String("sessions-dir", "", "Directory of per-session state files")
	statePath := flag.String("state-path", "", "Path of the state file the status bar reads")
	socketPath := flag.String("socket", "", "Path of the datagram socket")
	sigOffset := flag.Int("signal", 0, "Refresh signal offset from SIGRTMIN")
	format := flag.String("format", "", "Text format for the status bar")
	logFile := flag.String("log-file", "", "Write logs to a rotated file instead of stderr")
	debug := flag.Bool("debug", false, "Enable debug logging")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("llmbard", buildinfo.String())
		return 0
	}

	log.SetPrefix("[llmbard] ")
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	closer := config.SetupLogOutput(*logFile)
	defer closer.Close()

	config.Debug = *debug
	notify.Debug = *debug

	settings, err := config.LoadSettings()
	if err != nil {
		log.Printf("Failed to load settings: %v", err)
		return 1
	}
	override(&settings.SessionsDir, *sessionsDir)
	override(&settings.StatePath, *statePath)
	override(&settings.SocketPath, *socketPath)
	override(&settings.Format, *format)
	if *sigOffset != 0 {
		settings.Signal = *sigOffset
	}

	mode := models.DaemonModeRelay
	if *aggregate {
		mode = models.DaemonModeAggregate
	}

	lock, err := config.AcquireDaemonLock(mode)
	if err != nil {
		if errors.Is(err, config.ErrDaemonRunning) {
			if _, info, _ := config.IsDaemonRunning(mode); info != nil {
				log.Printf("Daemon already running in %s mode (PID %d)", mode, info.PID)
				return 1
			}
		}
		log.Printf("Failed to acquire daemon lock: %v", err)
		return 1
	}
	defer lock.Release()

	info := models.NewDaemonInfo(mode, os.Getpid(), settings.StatePath)
	if mode == models.DaemonModeRelay {
		info.SocketPath = settings.SocketPath
	} else {
		info.SessionsDir = settings.SessionsDir
	}
	if err := config.SaveDaemonInfo(info); err != nil {
		log.Printf("Failed to write daemon info: %v", err)
		return 1
	}
	defer func() {
		if err := config.RemoveDaemonInfo(mode); err != nil {
			log.Printf("Failed to remove daemon info: %v", err)
		}
	}()

	notifier := notify.NewSignalNotifier(settings.UIProcess, settings.Signal)

	switch {
	case mode == models.DaemonModeRelay:
		err = runRelay(settings, notifier)
	case *withTray:
		err = runWithTray(settings, notifier)
	default:
		err = runAggregate(settings, notifier)
	}
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	return 0
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// runRelay runs the socket daemon in the foreground.
func runRelay(s *models.Settings, n notify.Notifier) error {
	ctx, stop := signalContext()
	defer stop()

	d := server.New(server.Options{
		SocketPath:  s.SocketPath,
		StatePath:   s.StatePath,
		SessionsDir: s.SessionsDir,
		Format:      s.Format,
		Notifier:    n,
	})

	log.Printf("Daemon started in relay mode (PID %d)", os.Getpid())
	return d.Run(ctx)
}

// runAggregate runs the session aggregator in the foreground.
func runAggregate(s *models.Settings, n notify.Notifier) error {
	ctx, stop := signalContext()
	defer stop()

	a := aggregator.New(aggregator.Options{
		SessionsDir: s.SessionsDir,
		OutputPath:  s.StatePath,
		Notifier:    n,
	})

	log.Printf("Daemon started in aggregate mode (PID %d), watching %s", os.Getpid(), s.SessionsDir)
	return a.Watch(ctx)
}

// runWithTray runs the aggregator with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(s *models.Settings, n notify.Notifier) error {
	ctx, stop := signalContext()
	defer stop()

	errCh := make(chan error, 1)

	onStart := func() {
		a := aggregator.New(aggregator.Options{
			SessionsDir: s.SessionsDir,
			OutputPath:  s.StatePath,
			Notifier:    n,
			OnUpdate:    tray.Update,
		})

		log.Printf("Daemon started in aggregate mode with tray (PID %d)", os.Getpid())

		go func() {
			errCh <- a.Watch(ctx)
			tray.Quit()
		}()
	}

	onExit := func() {
		stop()
		fmt.Println("Daemon stopped")
	}

	// This blocks the main goroutine until tray exits.
	tray.Run(&trayController{statePath: s.StatePath, stop: stop}, onStart, onExit)

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// trayController adapts the running process to tray.Controller.
type trayController struct {
	statePath string
	stop      context.CancelFunc
}

func (c *trayController) StatePath() string { return c.statePath }

func (c *trayController) RequestShutdown() {
	c.stop()
}
