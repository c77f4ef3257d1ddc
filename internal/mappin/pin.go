// Package mappin models the normalized map coordinate attached to a
// post. Coordinates are stored in [0,1] per axis relative to a fixed
// reference image, so a pin keeps its place at any rendered size.
package mappin

import "math"

// Pin is a normalized (0..1, 0..1) coordinate pair.
type Pin struct {
	X float64
	Y float64
}

// Rect is the rendered bounding box of the reference image, in pixels.
type Rect struct {
	Width  float64
	Height float64
}

// FromPointer converts a pointer position inside the rendered image into
// a normalized pin, clamping to the image bounds. A degenerate rect
// (zero or negative extent on an axis) pins that axis to the origin
// rather than dividing by it.
func FromPointer(pointerX, pointerY float64, rect Rect) Pin {
	return Pin{
		X: normalize(pointerX, rect.Width),
		Y: normalize(pointerY, rect.Height),
	}
}

func normalize(v, extent float64) float64 {
	if extent <= 0 {
		return 0
	}
	return clamp01(v / extent)
}

// FromCoords builds a pin from a post's stored coordinates. Both values
// must be present and finite; anything else means "no pin".
func FromCoords(x, y *float64) (Pin, bool) {
	if x == nil || y == nil {
		return Pin{}, false
	}
	if !isFinite(*x) || !isFinite(*y) {
		return Pin{}, false
	}
	return Pin{X: *x, Y: *y}, true
}

// PixelPosition maps the pin back to marker pixel coordinates for the
// image's current rendered size. Recomputing against the live size is
// what keeps the marker tracking the image across resizes.
func (p Pin) PixelPosition(rect Rect) (left, top float64) {
	return p.X * rect.Width, p.Y * rect.Height
}

// Coords returns the pin as a pointer pair suitable for storing on a post.
func (p Pin) Coords() (*float64, *float64) {
	x, y := p.X, p.Y
	return &x, &y
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
