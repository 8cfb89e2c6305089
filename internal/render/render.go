package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrBackendUnavailable is returned when a backend was not compiled in.
var ErrBackendUnavailable = errors.New("render backend not available in this build")

// Surface is a full-screen drawing target. Drawing calls only touch the back
// buffer; nothing becomes visible until Present.
type Surface interface {
	// Size returns the logical surface size in pixels.
	Size() (width int, height int)

	// Fill sets the draw color and clears the whole surface with it.
	Fill(c color.RGBA)
	// FillRect paints r, clipped to the surface, without touching the rest.
	FillRect(r image.Rectangle, c color.RGBA)
	DrawPoint(x, y int, c color.RGBA)
	DrawImage(img image.Image, at image.Point)

	Present() error
	Close() error
}

// ClearToColor fills s with c and presents it.
func ClearToColor(s Surface, c color.RGBA) error {
	s.Fill(c)
	return s.Present()
}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}
