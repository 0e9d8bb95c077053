package images

import (
	"image"
	"image/color"
	"image/draw"
)

// GuidePoint converts a guide position in percent of the frame (0..100 on
// each axis) to a pixel location inside bounds. Out-of-range values clamp.
func GuidePoint(bounds image.Rectangle, pct image.Point) image.Point {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > 100 {
			return 100
		}
		return v
	}
	x := bounds.Min.X + (bounds.Dx()-1)*clamp(pct.X)/100
	y := bounds.Min.Y + (bounds.Dy()-1)*clamp(pct.Y)/100
	if x < bounds.Min.X {
		x = bounds.Min.X
	}
	if y < bounds.Min.Y {
		y = bounds.Min.Y
	}
	return image.Pt(x, y)
}

// Guide marker colours.
var (
	CenterColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	EyesColor   = color.RGBA{R: 64, G: 200, B: 255, A: 255}
	MouthColor  = color.RGBA{R: 255, G: 120, B: 64, A: 255}
)

// Marker is one guide to draw.
type Marker struct {
	Pct   image.Point
	Color color.Color
}

// DrawGuides returns a copy of frame with a crosshair of half-length size per
// marker. The frame is not modified.
func DrawGuides(frame image.Image, size int, markers ...Marker) *image.RGBA {
	if frame == nil {
		return nil
	}
	b := frame.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), frame, b.Min, draw.Src)
	if size < 1 {
		size = 1
	}
	ob := out.Bounds()
	for _, m := range markers {
		p := GuidePoint(ob, m.Pct)
		for d := -size; d <= size; d++ {
			if q := image.Pt(p.X+d, p.Y); q.In(ob) {
				out.Set(q.X, q.Y, m.Color)
			}
			if q := image.Pt(p.X, p.Y+d); q.In(ob) {
				out.Set(q.X, q.Y, m.Color)
			}
		}
	}
	return out
}

// HorizontalLine draws a full-width line at percent height pct into img.
func HorizontalLine(img *image.RGBA, pct int, c color.Color) {
	if img == nil {
		return
	}
	b := img.Bounds()
	y := GuidePoint(b, image.Pt(0, pct)).Y
	for x := b.Min.X; x < b.Max.X; x++ {
		img.Set(x, y, c)
	}
}
