package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Centered returns a rectangle of size (widthPx,heightPx) centered in rect.
// It may extend past rect when the size is larger than rect.
func Centered(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// ClampOrigin moves origin so that a box of size (widthPx,heightPx) anchored
// there stays inside bounds. When the box is larger than bounds on an axis the
// coordinate is pinned to bounds.Min on that axis.
func ClampOrigin(origin image.Point, widthPx, heightPx int, bounds image.Rectangle) image.Point {
	bounds = Normalize(bounds)
	origin.X = clampAxis(origin.X, bounds.Min.X, bounds.Max.X-widthPx)
	origin.Y = clampAxis(origin.Y, bounds.Min.Y, bounds.Max.Y-heightPx)
	return origin
}

func clampAxis(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
