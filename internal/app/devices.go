package app

import (
	"fmt"

	"github.com/rook-computer/pixelfix/internal/fbinfo"
	"github.com/rook-computer/pixelfix/internal/input"
	"github.com/rook-computer/pixelfix/internal/render"
	"github.com/rook-computer/pixelfix/internal/system"
)

type Backend string

const (
	BackendFB  Backend = "fb"
	BackendSDL Backend = "sdl"
)

func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "", BackendFB:
		return BackendFB, nil
	case BackendSDL:
		return BackendSDL, nil
	}
	return "", fmt.Errorf("unknown backend %q (want fb or sdl)", s)
}

// Console is switched into graphics mode while a backend draws to the VT.
type Console interface {
	Enter() error
	Restore() error
}

// Devices bundles how one backend acquires its resources.
type Devices struct {
	Probe         func(path string) (fbinfo.Geometry, error)
	OpenSurface   func(g fbinfo.Geometry) (render.Surface, error)
	CountGamepads func() int
	OpenGamepad   func(index int) (input.Gamepad, error)
	// OpenExtra opens additional event sources (keyboards, signals). Optional.
	OpenExtra func() []input.Source
	// Console is optional.
	Console Console
}

// FramebufferDevices draws to the framebuffer at fbPath and reads evdev input.
func FramebufferDevices(fbPath string, log Logger) Devices {
	return Devices{
		Probe: fbinfo.Probe,
		OpenSurface: func(g fbinfo.Geometry) (render.Surface, error) {
			return render.OpenFBSurface(fbPath, g.Width, g.Height, log)
		},
		CountGamepads: input.CountGamepads,
		OpenGamepad:   func(index int) (input.Gamepad, error) { return input.OpenGamepad(index, log) },
		OpenExtra: func() []input.Source {
			return []input.Source{input.OpenKeyboards(log), input.NewSignalSource()}
		},
		Console: system.NewConsole(log),
	}
}

// SDLDevices uses an SDL window, renderer and joystick. Only functional in
// builds tagged sdl.
func SDLDevices(log Logger) Devices {
	return Devices{
		Probe: fbinfo.Probe,
		OpenSurface: func(g fbinfo.Geometry) (render.Surface, error) {
			return render.OpenSDLSurface(g.Width, g.Height, log)
		},
		CountGamepads: input.CountSDLGamepads,
		OpenGamepad:   func(index int) (input.Gamepad, error) { return input.OpenSDLGamepad(index, log) },
		OpenExtra: func() []input.Source {
			return []input.Source{input.NewSignalSource()}
		},
	}
}
