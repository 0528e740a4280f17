package renderer

import (
	"image"
	"image/color"

	"github.com/qrplanet/qrplanet/internal/pkg/symbol"
)

// renderPattern draws the module matrix at box-size resolution using the
// selected module shape. It returns the base image every later stage
// builds on.
func renderPattern(m *symbol.Matrix, fg, bg color.NRGBA, pattern string) *image.NRGBA {
	box := symbol.DefaultBoxSize
	border := symbol.DefaultBorder
	size := (m.Size() + 2*border) * box

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	fillRect(img, img.Bounds(), bg)

	for my := 0; my < m.Size(); my++ {
		for mx := 0; mx < m.Size(); mx++ {
			if !m.Module(mx, my) {
				continue
			}
			x0 := (mx + border) * box
			y0 := (my + border) * box
			cell := image.Rect(x0, y0, x0+box, y0+box)

			switch pattern {
			case PatternRounded:
				fillRoundedRect(img, cell, box/3, fg)
			case PatternCircle:
				fillCircle(img, cell, fg)
			case PatternGapped:
				gap := box / 8
				fillRect(img, image.Rect(x0+gap, y0+gap, x0+box-gap, y0+box-gap), fg)
			default:
				fillRect(img, cell, fg)
			}
		}
	}

	return img
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// fillRoundedRect fills r with quarter-circle corners of the given radius.
func fillRoundedRect(img *image.NRGBA, r image.Rectangle, radius int, c color.NRGBA) {
	if radius <= 0 {
		fillRect(img, r, c)
		return
	}
	rr := radius * radius
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			// Distance from the nearest corner arc center; pixels outside
			// the arc stay untouched.
			cx, cy := -1, -1
			if x < r.Min.X+radius {
				cx = r.Min.X + radius
			} else if x >= r.Max.X-radius {
				cx = r.Max.X - radius - 1
			}
			if y < r.Min.Y+radius {
				cy = r.Min.Y + radius
			} else if y >= r.Max.Y-radius {
				cy = r.Max.Y - radius - 1
			}
			if cx >= 0 && cy >= 0 {
				dx, dy := x-cx, y-cy
				if dx*dx+dy*dy > rr {
					continue
				}
			}
			img.SetNRGBA(x, y, c)
		}
	}
}

// fillCircle fills the largest circle that fits in r.
func fillCircle(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	d := r.Dx()
	if r.Dy() < d {
		d = r.Dy()
	}
	radius := float64(d) / 2
	cx := float64(r.Min.X) + float64(r.Dx())/2
	cy := float64(r.Min.Y) + float64(r.Dy())/2
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}
