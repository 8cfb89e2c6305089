package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rook-computer/pixelfix/internal/app"
	"github.com/rook-computer/pixelfix/internal/fbinfo"
	"github.com/rook-computer/pixelfix/internal/input"
	"github.com/rook-computer/pixelfix/internal/pixelfix"
)

type options struct {
	mode     pixelfix.Mode
	backend  app.Backend
	fbPath   string
	hint     time.Duration
	debug    bool
	debugLog string
	stdioLog string
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("pixelfix", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	modeName := fs.String("mode", "cycle", "cycle: flash the whole screen through red, green, blue, white, black; patch: flash a gamepad-steered 64x64 square")
	backendName := fs.String("backend", "fb", "fb: draw to the Linux framebuffer and read evdev input; sdl: SDL window and joystick (requires a build tagged sdl)")
	fbPath := fs.String("fb", fbinfo.DefaultDevice, "framebuffer device queried for the screen resolution")
	hint := fs.Duration("hint", 0, "show the exit instructions on screen for this long before flashing, e.g. 2s; 0 disables")
	debug := fs.Bool("debug", false, "enable debug logging")
	debugLog := fs.String("debug-log", "./pixelfix-debug.log", "debug log file used with -debug")
	stdioLog := fs.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via PIXELFIX_STDIO_LOG")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	mode, err := pixelfix.ParseMode(*modeName)
	if err != nil {
		return options{}, err
	}
	backend, err := app.ParseBackend(*backendName)
	if err != nil {
		return options{}, err
	}
	opts := options{
		mode:     mode,
		backend:  backend,
		fbPath:   *fbPath,
		hint:     *hint,
		debug:    *debug,
		debugLog: *debugLog,
		stdioLog: *stdioLog,
	}
	if opts.stdioLog == "" {
		opts.stdioLog = os.Getenv("PIXELFIX_STDIO_LOG")
	}
	return opts, nil
}

// run returns the process exit code. Everything it opens is closed before it
// returns, so main can exit right after.
func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, err)
		}
		return 2
	}

	// Best-effort: the console is in graphics mode while we run, so a crash
	// is only diagnosable from a file.
	if opts.stdioLog != "" {
		if err := redirectStdIO(opts.stdioLog); err != nil {
			fmt.Fprintln(stderr, "stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if opts.debug {
		f, err := os.OpenFile(opts.debugLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled, mode=%s backend=%s", opts.mode, opts.backend)
		} else {
			fmt.Fprintln(stderr, "debug log open error:", err)
		}
	}

	devices := app.FramebufferDevices(opts.fbPath, logger)
	if opts.backend == app.BackendSDL {
		devices = app.SDLDevices(logger)
	}

	a := app.New(devices, opts.mode, stdout, stderr)
	a.FBPath = opts.fbPath
	a.Hint = opts.hint
	a.Logger = logger

	if err := a.Run(context.Background()); err != nil {
		if errors.Is(err, input.ErrNoGamepad) {
			fmt.Fprintln(stderr, "no gamepad detected")
		} else {
			fmt.Fprintln(stderr, "error:", err)
		}
		logger.Infof("main", "exit 1")
		return 1
	}
	logger.Infof("main", "exit 0")
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
