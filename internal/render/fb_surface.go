//go:build linux

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	fb "github.com/gonutz/framebuffer"
)

// FBSurface renders to the Linux framebuffer through an offscreen canvas.
// Present copies whatever changed since the previous Present to the device.
type FBSurface struct {
	fbDev  *fb.Device
	canvas *image.RGBA
	dirty  image.Rectangle
	Logger logger
}

// OpenFBSurface opens the framebuffer at path and prepares a canvas of the
// given logical size, which is scaled to the device's bounds on Present.
func OpenFBSurface(path string, width, height int, log logger) (Surface, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer %s: %w", path, err)
	}
	s := &FBSurface{
		fbDev:  dev,
		canvas: image.NewRGBA(image.Rect(0, 0, width, height)),
		Logger: log,
	}
	if s.Logger != nil {
		bounds := dev.Bounds()
		s.Logger.Infof("fb", "framebuffer open, bounds=%dx%d canvas=%dx%d", bounds.Dx(), bounds.Dy(), width, height)
	}
	return s, nil
}

func (s *FBSurface) Size() (int, int) {
	b := s.canvas.Bounds()
	return b.Dx(), b.Dy()
}

func (s *FBSurface) Fill(c color.RGBA) {
	draw.Draw(s.canvas, s.canvas.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	s.dirty = s.canvas.Bounds()
}

// FillRect adds only r to the dirty region.
func (s *FBSurface) FillRect(r image.Rectangle, c color.RGBA) {
	r = r.Intersect(s.canvas.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.canvas, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
	s.dirty = s.dirty.Union(r)
}

func (s *FBSurface) DrawPoint(x, y int, c color.RGBA) {
	p := image.Pt(x, y)
	if !p.In(s.canvas.Bounds()) {
		return
	}
	s.canvas.SetRGBA(x, y, c)
	s.dirty = s.dirty.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
}

func (s *FBSurface) DrawImage(img image.Image, at image.Point) {
	b := img.Bounds()
	rect := image.Rectangle{Min: at, Max: at.Add(b.Size())}
	draw.Draw(s.canvas, rect, img, b.Min, draw.Over)
	s.dirty = s.dirty.Union(rect.Intersect(s.canvas.Bounds()))
}

func (s *FBSurface) Present() error {
	if s.fbDev == nil {
		return fmt.Errorf("framebuffer closed")
	}
	blitScaled(s.fbDev, s.canvas, s.dirty)
	s.dirty = image.Rectangle{}
	return nil
}

func (s *FBSurface) Close() error {
	if s.fbDev == nil {
		return nil
	}
	s.fbDev.Close()
	s.fbDev = nil
	if s.Logger != nil {
		s.Logger.Infof("fb", "framebuffer closed")
	}
	return nil
}
