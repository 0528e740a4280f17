package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Frame band width relative to the symbol width.
const frameMarginPercent = 15

// applyFrame expands the canvas on every side, pastes the symbol
// centered and draws a frame outline. The caption, if any, is centered
// in the bottom band.
func applyFrame(img *image.NRGBA, spec *FrameSpec) (*image.NRGBA, error) {
	col, err := ParseHexColor(spec.Color)
	if err != nil {
		return nil, fmt.Errorf("frame color: %w", err)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	margin := w * frameMarginPercent / 100
	if margin < 4 {
		margin = 4
	}

	out := imaging.New(w+2*margin, h+2*margin, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	out = imaging.PasteCenter(out, img)

	thickness := margin / 3
	if thickness < 2 {
		thickness = 2
	}
	inset := margin / 2

	ow, oh := out.Bounds().Dx(), out.Bounds().Dy()
	outer := image.Rect(inset, inset, ow-inset, oh-inset)
	inner := image.Rect(outer.Min.X+thickness, outer.Min.Y+thickness, outer.Max.X-thickness, outer.Max.Y-thickness)

	switch spec.Shape {
	case FrameRounded:
		radius := margin
		for y := 0; y < oh; y++ {
			for x := 0; x < ow; x++ {
				if roundedRectContains(outer, radius, x, y) && !roundedRectContains(inner, radius-thickness, x, y) {
					out.SetNRGBA(x, y, col)
				}
			}
		}
	case FrameEllipse:
		for y := 0; y < oh; y++ {
			for x := 0; x < ow; x++ {
				if ellipseContains(outer, x, y) && !ellipseContains(inner, x, y) {
					out.SetNRGBA(x, y, col)
				}
			}
		}
	default: // square
		for y := 0; y < oh; y++ {
			for x := 0; x < ow; x++ {
				p := image.Pt(x, y)
				if p.In(outer) && !p.In(inner) {
					out.SetNRGBA(x, y, col)
				}
			}
		}
	}

	if spec.Caption != "" {
		baseline := oh - margin/2
		drawCenteredText(out, spec.Caption, col, ow/2, baseline)
	}

	return out, nil
}

func roundedRectContains(r image.Rectangle, radius int, x, y int) bool {
	if !image.Pt(x, y).In(r) {
		return false
	}
	if radius <= 0 {
		return true
	}
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
		return dx*dx+dy*dy <= radius*radius
	}
	return true
}

func ellipseContains(r image.Rectangle, x, y int) bool {
	rx := float64(r.Dx()) / 2
	ry := float64(r.Dy()) / 2
	if rx <= 0 || ry <= 0 {
		return false
	}
	dx := (float64(x) + 0.5 - (float64(r.Min.X) + rx)) / rx
	dy := (float64(y) + 0.5 - (float64(r.Min.Y) + ry)) / ry
	return dx*dx+dy*dy <= 1
}
