package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rook-computer/pixelfix/internal/fbinfo"
	"github.com/rook-computer/pixelfix/internal/input"
	"github.com/rook-computer/pixelfix/internal/pixelfix"
)

type App struct {
	Devices Devices
	Mode    pixelfix.Mode
	FBPath  string
	Hint    time.Duration
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  Logger

	// Loop is the frame loop of the last Run, kept for inspection.
	Loop *pixelfix.Loop
}

func New(devices Devices, mode pixelfix.Mode, stdout, stderr io.Writer) *App {
	return &App{
		Devices: devices,
		Mode:    mode,
		FBPath:  fbinfo.DefaultDevice,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  NoopLogger{},
	}
}

// Run acquires the surface and the gamepad, runs the frame loop and releases
// everything it acquired, input first, on every return path. The returned
// error is always fatal.
func (app *App) Run(ctx context.Context) error {
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	resolver := fbinfo.Resolver{Probe: app.Devices.Probe, Stdout: app.Stdout, Stderr: app.Stderr, Logger: app.Logger}
	geometry := resolver.Resolve(app.FBPath)

	surface, err := app.Devices.OpenSurface(geometry)
	if err != nil {
		app.Logger.Errorf("app", "surface open failed: %v", err)
		return fmt.Errorf("create display: %w", err)
	}
	defer func() {
		if err := surface.Close(); err != nil {
			app.Logger.Errorf("app", "surface close: %v", err)
		}
	}()

	if app.Devices.Console != nil {
		if err := app.Devices.Console.Enter(); err != nil {
			app.Logger.Errorf("app", "console graphics mode: %v", err)
		}
		defer func() { _ = app.Devices.Console.Restore() }()
	}

	if app.Devices.CountGamepads() < 1 {
		app.Logger.Errorf("app", "no gamepad")
		return input.ErrNoGamepad
	}
	pad, err := app.Devices.OpenGamepad(0)
	if err != nil {
		app.Logger.Errorf("app", "gamepad open failed: %v", err)
		return fmt.Errorf("open gamepad: %w", err)
	}
	sources := []input.Source{pad}
	if app.Devices.OpenExtra != nil {
		sources = append(sources, app.Devices.OpenExtra()...)
	}
	events := input.Multi(sources...)
	defer func() {
		if err := events.Close(); err != nil {
			app.Logger.Errorf("app", "input close: %v", err)
		}
	}()

	cfg := pixelfix.DefaultConfig(app.Mode)
	cfg.Hint = app.Hint
	for _, line := range pixelfix.Instructions(app.Mode) {
		fmt.Fprintln(app.Stdout, line)
	}

	app.Loop = pixelfix.NewLoop(cfg, surface, events, pad)
	app.Loop.Stdout = app.Stdout
	app.Loop.Logger = app.Logger
	if err := app.Loop.Run(ctx); err != nil {
		app.Logger.Errorf("app", "frame loop: %v", err)
		return err
	}
	app.Logger.Infof("app", "exited after %d redraws", app.Loop.Redraws())
	return nil
}
