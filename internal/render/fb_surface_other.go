//go:build !linux

package render

func OpenFBSurface(path string, width, height int, log logger) (Surface, error) {
	return nil, ErrBackendUnavailable
}
