package fbinfo

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveFallsBackOnProbeFailure(t *testing.T) {
	failures := []error{
		errors.New("open /dev/fb0: no such file or directory"),
		errors.New("FBIOGET_VSCREENINFO on /dev/fb0: inappropriate ioctl for device"),
		ErrEmptyMode,
		ErrUnsupported,
	}
	for _, failure := range failures {
		var stdout, stderr bytes.Buffer
		r := Resolver{
			Probe:  func(string) (Geometry, error) { return Geometry{Width: 1, Height: 1}, failure },
			Stdout: &stdout,
			Stderr: &stderr,
		}
		got := r.Resolve(DefaultDevice)
		assert.Equal(t, Geometry{Width: 640, Height: 480}, got)
		assert.Contains(t, stderr.String(), "using default 640x480")
		assert.Contains(t, stderr.String(), failure.Error())
		assert.Empty(t, stdout.String())
	}
}

func TestResolveReturnsProbedGeometry(t *testing.T) {
	for _, want := range []Geometry{{1920, 1080}, {800, 480}, {32, 16}} {
		var stdout, stderr bytes.Buffer
		var gotPath string
		r := Resolver{
			Probe: func(path string) (Geometry, error) {
				gotPath = path
				return want, nil
			},
			Stdout: &stdout,
			Stderr: &stderr,
		}
		assert.Equal(t, want, r.Resolve("/dev/fb1"))
		assert.Equal(t, "/dev/fb1", gotPath)
		assert.Equal(t, "resolution detected: "+want.String()+"\n", stdout.String())
		assert.Empty(t, stderr.String())
	}
}

func TestResolveDoesNotMutateDefault(t *testing.T) {
	r := Resolver{Probe: func(string) (Geometry, error) { return Geometry{}, ErrEmptyMode }}
	got := r.Resolve(DefaultDevice)
	got.Width = 1
	assert.Equal(t, 640, Default.Width)
}
