package controllers

import (
	"io"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrplanet/qrplanet/app/models"
	"github.com/qrplanet/qrplanet/internal/pkg/renderer"
	"github.com/qrplanet/qrplanet/internal/pkg/security"
	"github.com/qrplanet/qrplanet/internal/pkg/usercontext"
)

func queryFrom(values map[string]string) func(string, ...string) string {
	return func(key string, _ ...string) string { return values[key] }
}

func TestStyleOverrides(t *testing.T) {
	t.Parallel()

	t.Run("no parameters leaves style unchanged", func(t *testing.T) {
		t.Parallel()
		stored := renderer.DefaultStyle()
		got := styleOverrides(stored, queryFrom(nil))
		assert.Equal(t, stored, got)
	})

	t.Run("colors and pattern", func(t *testing.T) {
		t.Parallel()
		got := styleOverrides(renderer.DefaultStyle(), queryFrom(map[string]string{
			"foreground_color": "#112233",
			"background_color": "#FFEEDD",
			"pattern":          renderer.PatternCircle,
		}))
		assert.Equal(t, "#112233", got.ForegroundColor)
		assert.Equal(t, "#FFEEDD", got.BackgroundColor)
		assert.Equal(t, renderer.PatternCircle, got.Pattern)
	})

	t.Run("gradient parameters enable a gradient", func(t *testing.T) {
		t.Parallel()
		got := styleOverrides(renderer.DefaultStyle(), queryFrom(map[string]string{
			"gradient_start_color": "#FF0000",
			"gradient_end_color":   "#0000FF",
			"gradient_direction":   renderer.GradientVertical,
		}))
		require.NotNil(t, got.Gradient)
		assert.True(t, got.Gradient.Enabled)
		assert.Equal(t, "#FF0000", got.Gradient.StartColor)
		assert.Equal(t, "#0000FF", got.Gradient.EndColor)
		assert.Equal(t, renderer.GradientVertical, got.Gradient.Direction)
	})

	t.Run("gradient override merges onto stored gradient", func(t *testing.T) {
		t.Parallel()
		stored := renderer.DefaultStyle()
		stored.Gradient = &renderer.GradientSpec{
			Enabled:    true,
			StartColor: "#111111",
			EndColor:   "#222222",
			Direction:  renderer.GradientHorizontal,
		}
		got := styleOverrides(stored, queryFrom(map[string]string{
			"gradient_end_color": "#00FF00",
		}))
		require.NotNil(t, got.Gradient)
		assert.Equal(t, "#111111", got.Gradient.StartColor, "unspecified fields keep stored values")
		assert.Equal(t, "#00FF00", got.Gradient.EndColor)
		assert.Equal(t, "#222222", stored.Gradient.EndColor, "stored spec is never mutated")
	})

	t.Run("frame parameters enable a frame", func(t *testing.T) {
		t.Parallel()
		got := styleOverrides(renderer.DefaultStyle(), queryFrom(map[string]string{
			"frame_shape":   renderer.FrameRounded,
			"frame_color":   "#333333",
			"frame_caption": "SCAN ME",
		}))
		require.NotNil(t, got.Frame)
		assert.True(t, got.Frame.Enabled)
		assert.Equal(t, renderer.FrameRounded, got.Frame.Shape)
		assert.Equal(t, "#333333", got.Frame.Color)
		assert.Equal(t, "SCAN ME", got.Frame.Caption)
	})

	t.Run("logo preset replaces stored logo", func(t *testing.T) {
		t.Parallel()
		stored := renderer.DefaultStyle()
		stored.Logo = &renderer.LogoSpec{Data: []byte{0x01, 0x02}}
		got := styleOverrides(stored, queryFrom(map[string]string{
			"logo_preset": "heart",
		}))
		require.NotNil(t, got.Logo)
		assert.Equal(t, "heart", got.Logo.Preset)
		assert.Empty(t, got.Logo.Data)
	})
}

func TestHandlePublicQRCodeImage_QueryOverrides(t *testing.T) {
	code := &models.QRCode{
		ID:        1,
		UUID:      "11111111-2222-3333-4444-555555555555",
		UserID:    7,
		Name:      "site",
		QRType:    "url",
		Content:   models.JSON(`{"url":"https://example.com"}`),
		Design:    renderer.DefaultStyle(),
		UpdatedAt: time.Now(),
	}
	qr := &stubQRCodeRepo{byUUID: map[string]*models.QRCode{code.UUID: code}}
	users := &stubUserRepo{users: map[uint]*models.User{
		7: {ID: 7, Plan: "pro"},
	}}
	withStubRepos(t, qr, users)

	app := testApp(usercontext.UserContext{})
	app.Get("/public/qr/:uuid/image", HandlePublicQRCodeImage)

	sig := security.SignImageToken(code.UUID, code.UserID, code.UpdatedAt, imageSignSecret())

	fetch := func(params url.Values) []byte {
		params.Set("sig", sig)
		req := httptest.NewRequest(fiber.MethodGet, "/public/qr/"+code.UUID+"/image?"+params.Encode(), nil)
		resp, err := app.Test(req, 10000)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		png, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return png
	}

	plain := fetch(url.Values{})
	gradient := fetch(url.Values{
		"gradient_start_color": {"#FF0000"},
		"gradient_end_color":   {"#0000FF"},
	})
	framed := fetch(url.Values{
		"frame_shape":   {renderer.FrameSquare},
		"frame_caption": {"SCAN ME"},
	})

	assert.NotEqual(t, plain, gradient, "gradient override changes the render")
	assert.NotEqual(t, plain, framed, "frame override changes the render")
	assert.Equal(t, renderer.DefaultStyle(), code.Design, "overrides are never written back")
}
