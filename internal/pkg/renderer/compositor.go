// Package renderer turns a QR module matrix into a styled PNG. The
// pipeline order is fixed: pattern, gradient, logo, frame, watermark.
// Later stages intentionally overwrite parts of earlier ones, and a
// failing optional stage is skipped rather than failing the render.
package renderer

import (
	"bytes"
	"image/color"
	"image/png"

	"github.com/gofiber/fiber/v2/log"

	"github.com/qrplanet/qrplanet/internal/pkg/symbol"
)

// Options carries per-request render inputs that are not part of the
// stored style. The watermark flag is derived from the owner's plan.
type Options struct {
	Watermark bool
}

// Render composites the matrix into PNG bytes. The function is pure and
// stateless; identical inputs produce byte-identical output.
func Render(m *symbol.Matrix, spec StyleSpec, opts Options) ([]byte, error) {
	spec.Normalize()

	fg, err := ParseHexColor(spec.ForegroundColor)
	if err != nil {
		log.Warnf("render: bad foreground color %q, using default: %v", spec.ForegroundColor, err)
		fg = color.NRGBA{A: 255}
	}
	bg, err := ParseHexColor(spec.BackgroundColor)
	if err != nil {
		log.Warnf("render: bad background color %q, using default: %v", spec.BackgroundColor, err)
		bg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}

	img := renderPattern(m, fg, bg, spec.Pattern)

	if spec.Gradient != nil && spec.Gradient.Enabled {
		if out, err := applyGradient(img, spec.Gradient, bg); err != nil {
			log.Warnf("render: skipping gradient stage: %v", err)
		} else {
			img = out
		}
	}

	if spec.Logo != nil && (spec.Logo.Preset != "" || len(spec.Logo.Data) > 0) {
		if out, err := applyLogo(img, spec.Logo); err != nil {
			log.Warnf("render: skipping logo stage: %v", err)
		} else {
			img = out
		}
	}

	if spec.Frame != nil && spec.Frame.Enabled {
		if out, err := applyFrame(img, spec.Frame); err != nil {
			log.Warnf("render: skipping frame stage: %v", err)
		} else {
			img = out
		}
	}

	if opts.Watermark {
		img = applyWatermark(img)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
