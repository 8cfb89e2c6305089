package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ImageSurface is an in-memory Surface. The simulator and tests draw into it.
type ImageSurface struct {
	Canvas *image.RGBA

	// Presents counts calls to Present.
	Presents int
	// OnPresent, when set, observes every presented frame.
	OnPresent func(frame *image.RGBA)

	closed bool
}

func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{Canvas: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *ImageSurface) Size() (int, int) {
	b := s.Canvas.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ImageSurface) Fill(c color.RGBA) {
	draw.Draw(s.Canvas, s.Canvas.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (s *ImageSurface) FillRect(r image.Rectangle, c color.RGBA) {
	draw.Draw(s.Canvas, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func (s *ImageSurface) DrawPoint(x, y int, c color.RGBA) {
	if !image.Pt(x, y).In(s.Canvas.Bounds()) {
		return
	}
	s.Canvas.SetRGBA(x, y, c)
}

func (s *ImageSurface) DrawImage(img image.Image, at image.Point) {
	b := img.Bounds()
	draw.Draw(s.Canvas, image.Rectangle{Min: at, Max: at.Add(b.Size())}, img, b.Min, draw.Over)
}

func (s *ImageSurface) Present() error {
	s.Presents++
	if s.OnPresent != nil {
		s.OnPresent(s.Canvas)
	}
	return nil
}

func (s *ImageSurface) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *ImageSurface) Closed() bool { return s.closed }
