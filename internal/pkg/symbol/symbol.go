// Package symbol produces standard QR module matrices from payload strings.
// The heavy lifting (version selection, error correction coding, masking)
// is delegated to a conformant generator so output stays scannable by
// off-the-shelf readers.
package symbol

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Default module geometry used by the renderer. Matches the classic
// box_size=10 / border=4 output most scanners are tuned for.
const (
	DefaultBoxSize = 10
	DefaultBorder  = 4
)

var (
	// ErrPayloadTooLarge is returned when the payload exceeds the data
	// capacity of the largest QR version at the requested level.
	ErrPayloadTooLarge = errors.New("payload exceeds maximum QR capacity")

	// ErrEmptyPayload is returned for empty input strings.
	ErrEmptyPayload = errors.New("payload is empty")
)

// Matrix is the square boolean module grid of a generated symbol,
// without the quiet zone (the renderer adds the border itself).
type Matrix struct {
	modules [][]bool
}

// Size returns the symbol width/height in modules.
func (m *Matrix) Size() int {
	return len(m.modules)
}

// Module reports whether the module at (x, y) is dark.
func (m *Matrix) Module(x, y int) bool {
	if y < 0 || y >= len(m.modules) || x < 0 || x >= len(m.modules[y]) {
		return false
	}
	return m.modules[y][x]
}

// NewMatrix builds a matrix from raw modules. Used by tests and the
// generator below; rows must form a square grid.
func NewMatrix(modules [][]bool) *Matrix {
	return &Matrix{modules: modules}
}

// RecoveryLevel maps the single-letter error correction level (L/M/Q/H)
// to the generator's representation. Unknown values default to H, the
// level needed for logo overlay resilience.
func RecoveryLevel(level string) qrcode.RecoveryLevel {
	switch level {
	case "L":
		return qrcode.Low
	case "M":
		return qrcode.Medium
	case "Q":
		return qrcode.High
	default:
		return qrcode.Highest
	}
}

// Generate encodes payload into a QR module matrix at the given error
// correction level ("L", "M", "Q" or "H"; default "H").
func Generate(payload, level string) (*Matrix, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}

	code, err := qrcode.New(payload, RecoveryLevel(level))
	if err != nil {
		// The only runtime failure for non-empty input is exceeding the
		// capacity of version 40 at the requested level.
		return nil, fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}
	code.DisableBorder = true

	return &Matrix{modules: code.Bitmap()}, nil
}
