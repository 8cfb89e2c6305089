package pixelfix

import (
	"image"

	"github.com/rook-computer/pixelfix/internal/render/layout"
)

// Patch is the top-left corner of the flashing square.
type Patch struct {
	X int
	Y int
}

// axisStep converts an axis reading into a signed step. Readings inside the
// dead zone do not move.
func axisStep(value int16, deadZone, step int) int {
	v := int(value)
	switch {
	case v > deadZone:
		return step
	case v < -deadZone:
		return -step
	}
	return 0
}

// MovePatch applies one pair of axis readings and clamps the result so the
// patch stays fully on a width×height screen.
func MovePatch(p Patch, horizontal, vertical int16, cfg Config, width, height int) Patch {
	p.X += axisStep(horizontal, cfg.DeadZone, cfg.PatchStep)
	p.Y += axisStep(vertical, cfg.DeadZone, cfg.PatchStep)
	return ClampPatch(p, cfg.PatchSize, width, height)
}

func ClampPatch(p Patch, size, width, height int) Patch {
	pt := layout.ClampOrigin(image.Pt(p.X, p.Y), size, size, image.Rect(0, 0, width, height))
	return Patch{X: pt.X, Y: pt.Y}
}

// CenteredPatch is where the patch starts.
func CenteredPatch(size, width, height int) Patch {
	r := layout.Centered(image.Rect(0, 0, width, height), size, size)
	return ClampPatch(Patch{X: r.Min.X, Y: r.Min.Y}, size, width, height)
}
