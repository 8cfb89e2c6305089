//go:build sdl

package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// SDLSurface draws through an accelerated SDL renderer bound to one
// full-screen window.
type SDLSurface struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	width    int
	height   int
	Logger   logger
}

// OpenSDLSurface initializes SDL video and joystick support, then creates the
// window and renderer. Anything created before a failure is released.
func OpenSDLSurface(width, height int, log logger) (Surface, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_JOYSTICK); err != nil {
		return nil, fmt.Errorf("SDL init: %w", err)
	}

	window, err := sdl.CreateWindow(
		WindowTitle,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(width),
		int32(height),
		sdl.WINDOW_FULLSCREEN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	if log != nil {
		log.Infof("sdl", "window %dx%d with accelerated renderer", width, height)
	}
	return &SDLSurface{window: window, renderer: renderer, width: width, height: height, Logger: log}, nil
}

func (s *SDLSurface) Size() (int, int) { return s.width, s.height }

func (s *SDLSurface) Fill(c color.RGBA) {
	s.renderer.SetDrawColor(c.R, c.G, c.B, 0xFF)
	s.renderer.Clear()
}

func (s *SDLSurface) FillRect(r image.Rectangle, c color.RGBA) {
	if r.Empty() {
		return
	}
	s.renderer.SetDrawColor(c.R, c.G, c.B, 0xFF)
	s.renderer.FillRect(&sdl.Rect{X: int32(r.Min.X), Y: int32(r.Min.Y), W: int32(r.Dx()), H: int32(r.Dy())})
}

func (s *SDLSurface) DrawPoint(x, y int, c color.RGBA) {
	s.renderer.SetDrawColor(c.R, c.G, c.B, 0xFF)
	s.renderer.DrawPoint(int32(x), int32(y))
}

func (s *SDLSurface) DrawImage(img image.Image, at image.Point) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	texture, err := s.renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STATIC, int32(b.Dx()), int32(b.Dy()))
	if err != nil {
		if s.Logger != nil {
			s.Logger.Errorf("sdl", "create texture: %v", err)
		}
		return
	}
	defer texture.Destroy()
	if err := texture.Update(nil, unsafe.Pointer(&rgba.Pix[0]), rgba.Stride); err != nil {
		if s.Logger != nil {
			s.Logger.Errorf("sdl", "update texture: %v", err)
		}
		return
	}
	s.renderer.Copy(texture, nil, &sdl.Rect{X: int32(at.X), Y: int32(at.Y), W: int32(b.Dx()), H: int32(b.Dy())})
}

func (s *SDLSurface) Present() error {
	s.renderer.Present()
	return nil
}

// Close destroys the renderer, then the window, then shuts SDL down.
func (s *SDLSurface) Close() error {
	if s.renderer != nil {
		s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
	sdl.Quit()
	return nil
}
