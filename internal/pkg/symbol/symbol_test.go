package symbol_test

import (
	"errors"
	"strings"
	"testing"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrplanet/qrplanet/internal/pkg/symbol"
)

func TestGenerate_ValidPayload(t *testing.T) {
	t.Parallel()

	m, err := symbol.Generate("https://example.com", "H")
	require.NoError(t, err)

	// Smallest symbols are version 1 (21 modules); the exact version
	// depends on the payload but the grid is always square and odd.
	assert.GreaterOrEqual(t, m.Size(), 21)
	assert.Equal(t, 1, m.Size()%4)

	// Finder pattern corner module is always dark.
	assert.True(t, m.Module(0, 0))
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	a, err := symbol.Generate("tel:+4915112345678", "Q")
	require.NoError(t, err)
	b, err := symbol.Generate("tel:+4915112345678", "Q")
	require.NoError(t, err)

	require.Equal(t, a.Size(), b.Size())
	for y := 0; y < a.Size(); y++ {
		for x := 0; x < a.Size(); x++ {
			if a.Module(x, y) != b.Module(x, y) {
				t.Fatalf("matrices differ at (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerate_EmptyPayload(t *testing.T) {
	t.Parallel()

	_, err := symbol.Generate("", "H")
	assert.True(t, errors.Is(err, symbol.ErrEmptyPayload))
}

func TestGenerate_CapacityBoundary(t *testing.T) {
	t.Parallel()

	// Version 40 at level H holds at most 1273 bytes in byte mode.
	fits := strings.Repeat("a", 1273)
	_, err := symbol.Generate(fits, "H")
	require.NoError(t, err)

	tooLarge := strings.Repeat("a", 1274)
	_, err = symbol.Generate(tooLarge, "H")
	assert.True(t, errors.Is(err, symbol.ErrPayloadTooLarge))
}

func TestRecoveryLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, qrcode.Low, symbol.RecoveryLevel("L"))
	assert.Equal(t, qrcode.Medium, symbol.RecoveryLevel("M"))
	assert.Equal(t, qrcode.High, symbol.RecoveryLevel("Q"))
	assert.Equal(t, qrcode.Highest, symbol.RecoveryLevel("H"))
	assert.Equal(t, qrcode.Highest, symbol.RecoveryLevel(""))
	assert.Equal(t, qrcode.Highest, symbol.RecoveryLevel("X"))
}
