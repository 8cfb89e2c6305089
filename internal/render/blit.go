package render

import (
	"image"
	"image/color"
)

// pixelSetter is the part of a device blitScaled writes to.
type pixelSetter interface {
	Bounds() image.Rectangle
	Set(x, y int, c color.Color)
}

// blitScaled copies the dirty part of canvas onto dst using nearest-neighbor
// sampling, stretching the canvas over dst's bounds.
func blitScaled(dst pixelSetter, canvas *image.RGBA, dirty image.Rectangle) {
	src := canvas.Bounds()
	dirty = dirty.Intersect(src)
	if dst == nil || dirty.Empty() {
		return
	}
	bounds := dst.Bounds()
	dstWidth, dstHeight := bounds.Dx(), bounds.Dy()
	srcWidth, srcHeight := src.Dx(), src.Dy()

	// Map the dirty canvas rect to device space, rounding outwards.
	x0 := (dirty.Min.X - src.Min.X) * dstWidth / srcWidth
	x1 := ceilDiv((dirty.Max.X-src.Min.X)*dstWidth, srcWidth)
	y0 := (dirty.Min.Y - src.Min.Y) * dstHeight / srcHeight
	y1 := ceilDiv((dirty.Max.Y-src.Min.Y)*dstHeight, srcHeight)

	for y := y0; y < y1; y++ {
		sy := src.Min.Y + (y*srcHeight)/dstHeight
		for x := x0; x < x1; x++ {
			sx := src.Min.X + (x*srcWidth)/dstWidth
			pixel := canvas.RGBAAt(sx, sy)
			dst.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
