package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyleSpec_Defaults(t *testing.T) {
	t.Parallel()

	spec, err := ParseStyleSpec(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultStyle(), spec)

	spec, err = ParseStyleSpec([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, DefaultStyle(), spec)
}

func TestParseStyleSpec_PartialFillsDefaults(t *testing.T) {
	t.Parallel()

	spec, err := ParseStyleSpec([]byte(`{"foreground_color":"#112233"}`))
	require.NoError(t, err)

	assert.Equal(t, "#112233", spec.ForegroundColor)
	assert.Equal(t, "#FFFFFF", spec.BackgroundColor)
	assert.Equal(t, "H", spec.ErrorCorrection)
	assert.Equal(t, PatternSquare, spec.Pattern)
}

func TestParseStyleSpec_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	_, err := ParseStyleSpec([]byte(`{"foreground_colour":"#112233"}`))
	assert.Error(t, err)
}

func TestParseStyleSpec_Nested(t *testing.T) {
	t.Parallel()

	spec, err := ParseStyleSpec([]byte(`{
		"pattern": "circle",
		"gradient": {"enabled": true, "start_color": "#FF0000", "end_color": "#0000FF", "direction": "radial"},
		"frame": {"enabled": true, "shape": "rounded", "color": "#333333", "caption": "SCAN ME"},
		"logo": {"preset": "youtube"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, PatternCircle, spec.Pattern)
	require.NotNil(t, spec.Gradient)
	assert.Equal(t, GradientRadial, spec.Gradient.Direction)
	require.NotNil(t, spec.Frame)
	assert.Equal(t, "SCAN ME", spec.Frame.Caption)
	require.NotNil(t, spec.Logo)
	assert.Equal(t, "youtube", spec.Logo.Preset)
}

func TestStyleSpec_ScanValueRoundtrip(t *testing.T) {
	t.Parallel()

	original := StyleSpec{
		ForegroundColor: "#112233",
		BackgroundColor: "#FFFFFF",
		ErrorCorrection: "Q",
		Pattern:         PatternGapped,
		Frame:           &FrameSpec{Enabled: true, Shape: FrameEllipse, Color: "#000000"},
	}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned StyleSpec
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestStyleSpec_ScanNilGivesDefaults(t *testing.T) {
	t.Parallel()

	var spec StyleSpec
	require.NoError(t, spec.Scan(nil))
	assert.Equal(t, DefaultStyle(), spec)
}
