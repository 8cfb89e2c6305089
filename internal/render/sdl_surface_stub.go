//go:build !sdl

package render

// OpenSDLSurface is only available in builds tagged sdl.
func OpenSDLSurface(width, height int, log logger) (Surface, error) {
	return nil, ErrBackendUnavailable
}
