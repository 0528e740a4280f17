package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Logo geometry relative to the symbol. The backing plate keeps a quiet
// zone around the logo so scanners can still lock onto the modules.
const (
	logoScalePercent  = 20
	platePadPercent   = 20
	presetBadgeSize   = 120
	presetLetterScale = 5
)

type presetLogo struct {
	letter string
	color  color.NRGBA
}

// Built-in logo catalog. Badges are drawn on demand and cached; decoding
// is a pure function of the catalog so recomputation is byte-identical.
var presetCatalog = map[string]presetLogo{
	"facebook":  {letter: "f", color: color.NRGBA{R: 0x18, G: 0x77, B: 0xF2, A: 255}},
	"instagram": {letter: "i", color: color.NRGBA{R: 0xE4, G: 0x40, B: 0x5F, A: 255}},
	"x":         {letter: "x", color: color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 255}},
	"youtube":   {letter: "y", color: color.NRGBA{R: 0xFF, G: 0x00, B: 0x00, A: 255}},
	"linkedin":  {letter: "in", color: color.NRGBA{R: 0x0A, G: 0x66, B: 0xC2, A: 255}},
	"whatsapp":  {letter: "w", color: color.NRGBA{R: 0x25, G: 0xD3, B: 0x66, A: 255}},
}

var presetCache sync.Map // name -> image.Image

// applyLogo composites a logo onto the center of the symbol: the logo is
// fitted to a fraction of the symbol, placed on an opaque white backing
// plate and the plate is pasted centered.
func applyLogo(img *image.NRGBA, spec *LogoSpec) (*image.NRGBA, error) {
	logo, err := resolveLogo(spec)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	minDim := b.Dx()
	if b.Dy() < minDim {
		minDim = b.Dy()
	}
	target := minDim * logoScalePercent / 100
	if target < 1 {
		return nil, fmt.Errorf("symbol too small for logo overlay")
	}

	fitted := imaging.Fit(logo, target, target, imaging.Lanczos)

	fw := fitted.Bounds().Dx()
	fh := fitted.Bounds().Dy()
	plateW := fw + fw*platePadPercent/100
	plateH := fh + fh*platePadPercent/100
	plate := imaging.New(plateW, plateH, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	// Alpha-composite the logo onto the plate so transparency is honored.
	plate = imaging.OverlayCenter(plate, fitted, 1.0)

	return imaging.PasteCenter(img, plate), nil
}

func resolveLogo(spec *LogoSpec) (image.Image, error) {
	if len(spec.Data) > 0 {
		logo, err := imaging.Decode(bytes.NewReader(spec.Data))
		if err != nil {
			return nil, fmt.Errorf("decode logo bytes: %w", err)
		}
		return logo, nil
	}
	if spec.Preset != "" {
		return presetLogoImage(spec.Preset)
	}
	return nil, fmt.Errorf("logo spec carries neither preset nor data")
}

func presetLogoImage(name string) (image.Image, error) {
	if cached, ok := presetCache.Load(name); ok {
		return cached.(image.Image), nil
	}
	preset, ok := presetCatalog[name]
	if !ok {
		return nil, fmt.Errorf("unknown logo preset %q", name)
	}
	badge := drawPresetBadge(preset)
	presetCache.Store(name, badge)
	return badge, nil
}

// drawPresetBadge renders a rounded badge in the preset color with its
// letter centered in white.
func drawPresetBadge(preset presetLogo) image.Image {
	badge := image.NewNRGBA(image.Rect(0, 0, presetBadgeSize, presetBadgeSize))
	fillRoundedRect(badge, badge.Bounds(), presetBadgeSize/5, preset.color)

	// Draw the letter small and scale it up with nearest neighbor so the
	// glyph edges stay solid.
	face := basicfont.Face7x13
	textW := font.MeasureString(face, preset.letter).Ceil()
	small := image.NewNRGBA(image.Rect(0, 0, textW, face.Height))
	drawer := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	drawer.DrawString(preset.letter)

	scaled := imaging.Resize(small, textW*presetLetterScale, face.Height*presetLetterScale, imaging.NearestNeighbor)
	return imaging.OverlayCenter(badge, scaled, 1.0)
}
