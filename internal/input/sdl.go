//go:build sdl

package input

import (
	"errors"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// SDLGamepad reads the SDL event queue and one opened joystick. SDL must
// already be initialized with joystick support.
type SDLGamepad struct {
	joy    *sdl.Joystick
	Logger logger
}

// CountSDLGamepads reports the joysticks SDL knows about.
func CountSDLGamepads() int { return sdl.NumJoysticks() }

func OpenSDLGamepad(index int, log logger) (Gamepad, error) {
	if sdl.NumJoysticks() < 1 {
		return nil, ErrNoGamepad
	}
	joy := sdl.JoystickOpen(index)
	if joy == nil {
		err := sdl.GetError()
		if err == nil {
			err = errors.New("unknown SDL error")
		}
		return nil, fmt.Errorf("open joystick %d: %w", index, err)
	}
	if log != nil {
		log.Infof("input", "SDL joystick %q, %d buttons, %d axes", joy.Name(), joy.NumButtons(), joy.NumAxes())
	}
	return &SDLGamepad{joy: joy, Logger: log}, nil
}

func (g *SDLGamepad) Poll() []Event {
	var out []Event
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			out = append(out, Event{Kind: EventQuit})
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			key := KeyOther
			switch e.Keysym.Sym {
			case sdl.K_ESCAPE:
				key = KeyEscape
			case sdl.K_MENU, sdl.K_APPLICATION:
				key = KeyMenu
			}
			out = append(out, Event{Kind: EventKeyDown, Key: key})
		case *sdl.JoyButtonEvent:
			if e.Type == sdl.JOYBUTTONDOWN {
				out = append(out, Event{Kind: EventButtonDown, Button: int(e.Button)})
			}
		}
	}
	return out
}

func (g *SDLGamepad) Axis(axis int) int16 { return g.joy.Axis(axis) }

func (g *SDLGamepad) Name() string { return g.joy.Name() }

func (g *SDLGamepad) Close() error {
	if g.joy != nil {
		g.joy.Close()
		g.joy = nil
	}
	return nil
}
