package payload_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qrplanet/qrplanet/internal/pkg/payload"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		qrType  string
		content map[string]interface{}
		want    string
	}{
		{
			name:    "url passes through",
			qrType:  payload.TypeURL,
			content: map[string]interface{}{"url": "https://example.com/page?a=1"},
			want:    "https://example.com/page?a=1",
		},
		{
			name:    "text passes through",
			qrType:  payload.TypeText,
			content: map[string]interface{}{"text": "hello world"},
			want:    "hello world",
		},
		{
			name:    "phone gets tel scheme",
			qrType:  payload.TypePhone,
			content: map[string]interface{}{"phone": "+4915112345678"},
			want:    "tel:+4915112345678",
		},
		{
			name:   "email escapes subject and body",
			qrType: payload.TypeEmail,
			content: map[string]interface{}{
				"email":   "info@example.com",
				"subject": "Hello & Goodbye",
				"body":    "line one\nline two",
			},
			want: "mailto:info@example.com?subject=Hello+%26+Goodbye&body=line+one%0Aline+two",
		},
		{
			name:    "email with empty optionals",
			qrType:  payload.TypeEmail,
			content: map[string]interface{}{"email": "info@example.com"},
			want:    "mailto:info@example.com?subject=&body=",
		},
		{
			name:    "sms escapes message",
			qrType:  payload.TypeSMS,
			content: map[string]interface{}{"phone": "+123", "message": "see you @ 5"},
			want:    "sms:+123?body=see+you+%40+5",
		},
		{
			name:    "whatsapp uses wa.me",
			qrType:  payload.TypeWhatsApp,
			content: map[string]interface{}{"phone": "4915112345678", "message": "hi there"},
			want:    "https://wa.me/4915112345678?text=hi+there",
		},
		{
			name:    "wifi canonical form",
			qrType:  payload.TypeWifi,
			content: map[string]interface{}{"ssid": "Home", "password": "secret", "encryption": "WPA"},
			want:    "WIFI:T:WPA;S:Home;P:secret;;",
		},
		{
			name:    "wifi defaults to WPA",
			qrType:  payload.TypeWifi,
			content: map[string]interface{}{"ssid": "Cafe"},
			want:    "WIFI:T:WPA;S:Cafe;P:;;",
		},
		{
			name:   "vcard full",
			qrType: payload.TypeVCard,
			content: map[string]interface{}{
				"name":    "Jane Doe",
				"phone":   "+123",
				"email":   "jane@example.com",
				"company": "Acme",
				"website": "https://jane.example.com",
			},
			want: "BEGIN:VCARD\nVERSION:3.0\nFN:Jane Doe\nTEL:+123\nEMAIL:jane@example.com\nORG:Acme\nURL:https://jane.example.com\nEND:VCARD",
		},
		{
			name:    "location formats geo uri",
			qrType:  payload.TypeLocation,
			content: map[string]interface{}{"latitude": 52.52, "longitude": 13.405},
			want:    "geo:52.52,13.405",
		},
		{
			name:    "location with whole-number coordinates",
			qrType:  payload.TypeLocation,
			content: map[string]interface{}{"latitude": float64(52), "longitude": float64(13)},
			want:    "geo:52,13",
		},
		{
			name:    "payment passes through",
			qrType:  payload.TypePayment,
			content: map[string]interface{}{"payment_url": "https://pay.example.com/inv/42"},
			want:    "https://pay.example.com/inv/42",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := payload.Encode(tt.qrType, tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_MissingRequiredField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		qrType  string
		content map[string]interface{}
	}{
		{payload.TypeURL, map[string]interface{}{}},
		{payload.TypeText, map[string]interface{}{"text": ""}},
		{payload.TypePhone, nil},
		{payload.TypeEmail, map[string]interface{}{"subject": "no address"}},
		{payload.TypeWifi, map[string]interface{}{"password": "secret"}},
		{payload.TypeVCard, map[string]interface{}{"phone": "+123"}},
		{payload.TypeLocation, map[string]interface{}{"latitude": 52.52}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.qrType, func(t *testing.T) {
			t.Parallel()

			_, err := payload.Encode(tt.qrType, tt.content)
			require.Error(t, err)
			assert.True(t, errors.Is(err, payload.ErrInvalidContent))
		})
	}
}

func TestEncode_UnknownType(t *testing.T) {
	t.Parallel()

	_, err := payload.Encode("hologram", map[string]interface{}{})
	assert.True(t, errors.Is(err, payload.ErrInvalidContent))
}

func TestIsValidType(t *testing.T) {
	t.Parallel()

	for _, qrType := range payload.ValidTypes {
		assert.True(t, payload.IsValidType(qrType), qrType)
	}
	assert.False(t, payload.IsValidType("hologram"))
	assert.False(t, payload.IsValidType(""))
}

func TestIsRedirectable(t *testing.T) {
	t.Parallel()

	for _, qrType := range []string{payload.TypeText, payload.TypeWifi, payload.TypeVCard} {
		assert.False(t, payload.IsRedirectable(qrType), qrType)
	}
	for _, qrType := range []string{payload.TypeURL, payload.TypeEmail, payload.TypePhone, payload.TypeSMS, payload.TypeWhatsApp, payload.TypeLocation, payload.TypePayment} {
		assert.True(t, payload.IsRedirectable(qrType), qrType)
	}
}
