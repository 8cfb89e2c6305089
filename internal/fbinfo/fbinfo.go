// Package fbinfo probes the native geometry of a Linux framebuffer device.
package fbinfo

import (
	"errors"
	"fmt"
	"io"
)

// DefaultDevice is the framebuffer queried when no other path is given.
const DefaultDevice = "/dev/fb0"

// Geometry is the visible resolution of a display in pixels.
type Geometry struct {
	Width  int
	Height int
}

func (g Geometry) String() string { return fmt.Sprintf("%dx%d", g.Width, g.Height) }

// Default is used whenever the framebuffer cannot be queried.
var Default = Geometry{Width: 640, Height: 480}

var (
	ErrUnsupported = errors.New("framebuffer probing is not supported on this platform")
	ErrEmptyMode   = errors.New("framebuffer reports an empty resolution")
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Resolver turns a probe result into the effective geometry, falling back to
// Default on any failure.
type Resolver struct {
	Probe  func(path string) (Geometry, error)
	Stdout io.Writer
	Stderr io.Writer
	Logger logger
}

// Resolve never fails: a probe error is reported on Stderr and Default is
// returned unchanged.
func (r Resolver) Resolve(path string) Geometry {
	probe := r.Probe
	if probe == nil {
		probe = Probe
	}
	geometry, err := probe(path)
	if err != nil {
		if r.Stderr != nil {
			fmt.Fprintf(r.Stderr, "could not read resolution from %s (%v), using default %s\n", path, err, Default)
		}
		if r.Logger != nil {
			r.Logger.Errorf("fbinfo", "probe %s failed: %v", path, err)
		}
		return Default
	}
	if r.Stdout != nil {
		fmt.Fprintf(r.Stdout, "resolution detected: %s\n", geometry)
	}
	if r.Logger != nil {
		r.Logger.Infof("fbinfo", "probe %s: %s", path, geometry)
	}
	return geometry
}
