package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/pixelfix/internal/render/layout"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	minTextSize   = 12
	lineSpacing   = 1.4
	hintPaddingPx = 16
)

// TextRenderer lays out centered lines of text into an image. It uses the
// embedded Go Regular font through freetype and falls back to basicfont when
// that font cannot be parsed.
type TextRenderer struct {
	ttFont *truetype.Font
	size   float64
	Logger logger
}

// NewTextRenderer picks a font size proportional to screenHeight.
func NewTextRenderer(screenHeight int, log logger) *TextRenderer {
	size := float64(screenHeight) / 20
	if size < minTextSize {
		size = minTextSize
	}
	r := &TextRenderer{size: size, Logger: log}
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		if log != nil {
			log.Errorf("text", "truetype parse failed, using basicfont: %v", err)
		}
		return r
	}
	r.ttFont = tt
	return r
}

func (r *TextRenderer) face() font.Face {
	if r.ttFont == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(r.ttFont, &truetype.Options{Size: r.size, DPI: 72, Hinting: font.HintingFull})
}

// Render draws lines centered on a width×height image filled with bg.
func (r *TextRenderer) Render(lines []string, width, height int, fg, bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	if len(lines) == 0 {
		return img
	}

	face := r.face()
	metrics := face.Metrics()
	lineHeight := int(float64(metrics.Height.Ceil()) * lineSpacing)
	area := layout.Inset(img.Bounds(), hintPaddingPx)
	block := layout.Centered(area, area.Dx(), lineHeight*len(lines))
	ascent := metrics.Ascent.Ceil()

	var ctx *freetype.Context
	if r.ttFont != nil {
		ctx = freetype.NewContext()
		ctx.SetDPI(72)
		ctx.SetFont(r.ttFont)
		ctx.SetFontSize(r.size)
		ctx.SetHinting(font.HintingFull)
		ctx.SetClip(img.Bounds())
		ctx.SetDst(img)
		ctx.SetSrc(image.NewUniform(fg))
	}

	for i, line := range lines {
		textWidth := font.MeasureString(face, line).Ceil()
		x := area.Min.X + (area.Dx()-textWidth)/2
		baseline := block.Min.Y + i*lineHeight + ascent
		if ctx != nil {
			if _, err := ctx.DrawString(line, freetype.Pt(x, baseline)); err == nil {
				continue
			} else if r.Logger != nil {
				r.Logger.Errorf("text", "freetype draw failed, using font.Drawer: %v", err)
			}
		}
		drawer := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}
		drawer.Dot = fixed.P(x, baseline)
		drawer.DrawString(line)
	}
	return img
}
