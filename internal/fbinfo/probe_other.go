//go:build !linux

package fbinfo

func Probe(path string) (Geometry, error) { return Geometry{}, ErrUnsupported }
