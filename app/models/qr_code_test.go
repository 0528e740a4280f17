package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCode_TokenInvariant(t *testing.T) {
	t.Parallel()

	token := "r_abc123XYZ0"
	tests := []struct {
		name    string
		code    QRCode
		wantErr bool
	}{
		{name: "static without token", code: QRCode{IsDynamic: false}},
		{name: "dynamic with token", code: QRCode{IsDynamic: true, RedirectToken: &token}},
		{name: "dynamic without token", code: QRCode{IsDynamic: true}, wantErr: true},
		{name: "static with token", code: QRCode{IsDynamic: false, RedirectToken: &token}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.code.BeforeSave(nil)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTokenInvariant)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQRCode_TokenInvariant_EmptyToken(t *testing.T) {
	t.Parallel()

	empty := ""
	code := QRCode{IsDynamic: true, RedirectToken: &empty}
	assert.ErrorIs(t, code.BeforeSave(nil), ErrTokenInvariant)
}

func TestQRCode_MakeDynamic(t *testing.T) {
	t.Parallel()

	var code QRCode
	require.NoError(t, code.MakeDynamic("r_abc123XYZ0"))

	assert.True(t, code.IsDynamic)
	require.NotNil(t, code.RedirectToken)
	assert.Equal(t, "r_abc123XYZ0", *code.RedirectToken)
	assert.NoError(t, code.BeforeSave(nil))
}

func TestQRCode_MakeDynamic_EmptyToken(t *testing.T) {
	t.Parallel()

	var code QRCode
	assert.ErrorIs(t, code.MakeDynamic(""), ErrTokenInvariant)
	assert.False(t, code.IsDynamic)
}

func TestQRCode_RedirectURL(t *testing.T) {
	t.Parallel()

	token := "r_abc123XYZ0"
	code := QRCode{IsDynamic: true, RedirectToken: &token}

	assert.Equal(t, "https://qrp.example.com/r/r_abc123XYZ0", code.RedirectURL("https://qrp.example.com"))
}

func TestQRCode_BeforeCreateAssignsUUID(t *testing.T) {
	t.Parallel()

	var code QRCode
	require.NoError(t, code.BeforeCreate(nil))
	assert.Len(t, code.UUID, 36)

	// An explicit UUID survives.
	fixed := QRCode{UUID: "preset"}
	require.NoError(t, fixed.BeforeCreate(nil))
	assert.Equal(t, "preset", fixed.UUID)
}
