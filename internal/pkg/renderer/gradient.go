package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// applyGradient recolors the symbol with a two-color gradient field.
// Every pixel that is not exactly the background color is replaced by
// the gradient value at its coordinate; true background pixels are left
// untouched. This is literal per-pixel replacement, not a blend, so the
// module edges stay crisp for scanners.
func applyGradient(img *image.NRGBA, spec *GradientSpec, bg color.NRGBA) (*image.NRGBA, error) {
	start, err := ParseHexColor(spec.StartColor)
	if err != nil {
		return nil, fmt.Errorf("gradient start: %w", err)
	}
	end, err := ParseHexColor(spec.EndColor)
	if err != nil {
		return nil, fmt.Errorf("gradient end: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(b)

	cx := float64(w) / 2
	cy := float64(h) / 2
	maxDist := math.Sqrt(cx*cx + cy*cy)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := img.NRGBAAt(x, y)
			if px == bg {
				out.SetNRGBA(x, y, px)
				continue
			}

			var t float64
			switch spec.Direction {
			case GradientVertical:
				if h > 1 {
					t = float64(y-b.Min.Y) / float64(h-1)
				}
			case GradientRadial:
				dx := float64(x-b.Min.X) - cx
				dy := float64(y-b.Min.Y) - cy
				t = math.Sqrt(dx*dx+dy*dy) / maxDist
			default: // linear-horizontal
				if w > 1 {
					t = float64(x-b.Min.X) / float64(w-1)
				}
			}

			out.SetNRGBA(x, y, lerpColor(start, end, t))
		}
	}

	return out, nil
}

// lerpColor interpolates each RGB channel independently.
func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
		A: 255,
	}
}
