//go:build !sdl

package input

func CountSDLGamepads() int { return 0 }

// OpenSDLGamepad is only available in builds tagged sdl.
func OpenSDLGamepad(index int, log logger) (Gamepad, error) { return nil, ErrUnavailable }
