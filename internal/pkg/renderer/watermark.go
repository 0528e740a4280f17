package renderer

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Watermark text for unprivileged output. Applied as the last stage so
// neither the logo nor the frame can cover it.
const watermarkText = "QRPlanet"

var watermarkColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

func applyWatermark(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	drawCenteredText(img, watermarkText, watermarkColor, b.Min.X+b.Dx()/2, b.Max.Y-10)
	return img
}

// drawCenteredText draws text horizontally centered on centerX with the
// given baseline, using the bundled bitmap face so rendering never
// depends on system fonts.
func drawCenteredText(img *image.NRGBA, text string, c color.NRGBA, centerX, baseline int) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(centerX-width/2, baseline),
	}
	drawer.DrawString(text)
}
