package renderer

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// Pattern shapes for rendering individual QR modules
const (
	PatternSquare  = "square"
	PatternRounded = "rounded"
	PatternCircle  = "circle"
	PatternGapped  = "gapped"
)

// Gradient directions
const (
	GradientHorizontal = "linear-horizontal"
	GradientVertical   = "linear-vertical"
	GradientRadial     = "radial"
)

// Frame shapes
const (
	FrameSquare  = "square"
	FrameRounded = "rounded"
	FrameEllipse = "ellipse"
)

// GradientSpec recolors foreground pixels between two colors.
type GradientSpec struct {
	Enabled    bool   `json:"enabled"`
	StartColor string `json:"start_color"`
	EndColor   string `json:"end_color"`
	Direction  string `json:"direction"`
}

// FrameSpec draws a decorative border band around the symbol.
type FrameSpec struct {
	Enabled bool   `json:"enabled"`
	Shape   string `json:"shape"`
	Color   string `json:"color"`
	Caption string `json:"caption"`
}

// LogoSpec places a centered logo on the symbol. Either a named preset
// from the built-in catalog or inline image bytes (base64 over the wire).
type LogoSpec struct {
	Preset string `json:"preset,omitempty"`
	Data   []byte `json:"data,omitempty"`
}

// StyleSpec is the full set of visual customization parameters applied
// during compositing. Stored as a JSON column on the QR code record.
type StyleSpec struct {
	ForegroundColor string        `json:"foreground_color"`
	BackgroundColor string        `json:"background_color"`
	ErrorCorrection string        `json:"error_correction"`
	Pattern         string        `json:"pattern"`
	Gradient        *GradientSpec `json:"gradient,omitempty"`
	Frame           *FrameSpec    `json:"frame,omitempty"`
	Logo            *LogoSpec     `json:"logo,omitempty"`
}

// DefaultStyle returns the style applied when a record carries none.
func DefaultStyle() StyleSpec {
	return StyleSpec{
		ForegroundColor: "#000000",
		BackgroundColor: "#FFFFFF",
		ErrorCorrection: "H",
		Pattern:         PatternSquare,
	}
}

// Normalize fills empty core fields with defaults so older records and
// partial requests always render.
func (s *StyleSpec) Normalize() {
	def := DefaultStyle()
	if s.ForegroundColor == "" {
		s.ForegroundColor = def.ForegroundColor
	}
	if s.BackgroundColor == "" {
		s.BackgroundColor = def.BackgroundColor
	}
	if s.ErrorCorrection == "" {
		s.ErrorCorrection = def.ErrorCorrection
	}
	if s.Pattern == "" {
		s.Pattern = def.Pattern
	}
}

// ParseStyleSpec decodes a JSON style document, rejecting unknown keys.
func ParseStyleSpec(data []byte) (StyleSpec, error) {
	var spec StyleSpec
	if len(data) == 0 {
		spec.Normalize()
		return spec, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return StyleSpec{}, fmt.Errorf("invalid style spec: %w", err)
	}
	spec.Normalize()
	return spec, nil
}

// Value implements the driver.Valuer interface for GORM persistence
func (s StyleSpec) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface for GORM persistence
func (s *StyleSpec) Scan(value interface{}) error {
	if value == nil {
		*s = DefaultStyle()
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("invalid scan source for style spec")
	}
	if err := json.Unmarshal(data, s); err != nil {
		return err
	}
	s.Normalize()
	return nil
}

// ParseHexColor parses #RGB / #RRGGBB color notation.
func ParseHexColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: missing # prefix", s)
	}
	hex := s[1:]
	parse := func(b []byte) (uint8, error) {
		var v uint8
		for _, c := range b {
			v <<= 4
			switch {
			case c >= '0' && c <= '9':
				v |= c - '0'
			case c >= 'a' && c <= 'f':
				v |= c - 'a' + 10
			case c >= 'A' && c <= 'F':
				v |= c - 'A' + 10
			default:
				return 0, fmt.Errorf("invalid hex digit %q", c)
			}
		}
		return v, nil
	}
	switch len(hex) {
	case 6:
		r, err := parse([]byte(hex[0:2]))
		if err != nil {
			return color.NRGBA{}, err
		}
		g, err := parse([]byte(hex[2:4]))
		if err != nil {
			return color.NRGBA{}, err
		}
		b, err := parse([]byte(hex[4:6]))
		if err != nil {
			return color.NRGBA{}, err
		}
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	case 3:
		r, err := parse([]byte{hex[0], hex[0]})
		if err != nil {
			return color.NRGBA{}, err
		}
		g, err := parse([]byte{hex[1], hex[1]})
		if err != nil {
			return color.NRGBA{}, err
		}
		b, err := parse([]byte{hex[2], hex[2]})
		if err != nil {
			return color.NRGBA{}, err
		}
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q: expected #RGB or #RRGGBB", s)
	}
}
