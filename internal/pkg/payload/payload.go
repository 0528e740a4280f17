// Package payload converts typed QR content into the canonical string
// encoded into the symbol. Values embedded inside a URI scheme are
// always percent-encoded, on both the symbol and the redirect path, so
// the same canonical form is valid everywhere it is used.
package payload

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Supported QR content types.
const (
	TypeURL      = "url"
	TypeText     = "text"
	TypeEmail    = "email"
	TypePhone    = "phone"
	TypeSMS      = "sms"
	TypeWhatsApp = "whatsapp"
	TypeWifi     = "wifi"
	TypeVCard    = "vcard"
	TypeLocation = "location"
	TypePayment  = "payment"
)

// ErrInvalidContent is returned when a required field for the declared
// type is missing or structurally unusable. Optional fields never fail;
// they substitute the empty string.
var ErrInvalidContent = errors.New("invalid content for QR type")

// ValidTypes lists every supported content type.
var ValidTypes = []string{
	TypeURL, TypeText, TypeEmail, TypePhone, TypeSMS,
	TypeWhatsApp, TypeWifi, TypeVCard, TypeLocation, TypePayment,
}

// IsValidType reports whether qrType is one of the supported types.
func IsValidType(qrType string) bool {
	for _, t := range ValidTypes {
		if t == qrType {
			return true
		}
	}
	return false
}

// IsRedirectable reports whether scans of this type resolve to a
// protocol redirect. The remaining types (text, wifi, vcard) have no
// single valid redirect URI and render a landing page instead.
func IsRedirectable(qrType string) bool {
	switch qrType {
	case TypeText, TypeWifi, TypeVCard:
		return false
	default:
		return true
	}
}

// Encode converts the structured content map into the canonical payload
// string for the declared type.
func Encode(qrType string, content map[string]interface{}) (string, error) {
	switch qrType {
	case TypeURL:
		return requireField(content, "url", qrType)
	case TypeText:
		return requireField(content, "text", qrType)
	case TypePayment:
		return requireField(content, "payment_url", qrType)
	case TypePhone:
		phone, err := requireField(content, "phone", qrType)
		if err != nil {
			return "", err
		}
		return "tel:" + phone, nil
	case TypeEmail:
		email, err := requireField(content, "email", qrType)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
			email,
			url.QueryEscape(field(content, "subject")),
			url.QueryEscape(field(content, "body")),
		), nil
	case TypeSMS:
		phone, err := requireField(content, "phone", qrType)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("sms:%s?body=%s", phone, url.QueryEscape(field(content, "message"))), nil
	case TypeWhatsApp:
		phone, err := requireField(content, "phone", qrType)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(field(content, "message"))), nil
	case TypeWifi:
		ssid, err := requireField(content, "ssid", qrType)
		if err != nil {
			return "", err
		}
		encryption := field(content, "encryption")
		if encryption == "" {
			encryption = "WPA"
		}
		return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;;", encryption, ssid, field(content, "password")), nil
	case TypeVCard:
		name, err := requireField(content, "name", qrType)
		if err != nil {
			return "", err
		}
		lines := []string{
			"BEGIN:VCARD",
			"VERSION:3.0",
			"FN:" + name,
			"TEL:" + field(content, "phone"),
			"EMAIL:" + field(content, "email"),
			"ORG:" + field(content, "company"),
			"URL:" + field(content, "website"),
			"END:VCARD",
		}
		return strings.Join(lines, "\n"), nil
	case TypeLocation:
		lat, err := requireField(content, "latitude", qrType)
		if err != nil {
			return "", err
		}
		lng, err := requireField(content, "longitude", qrType)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("geo:%s,%s", lat, lng), nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidContent, qrType)
	}
}

func requireField(content map[string]interface{}, key, qrType string) (string, error) {
	v := field(content, key)
	if v == "" {
		return "", fmt.Errorf("%w: %s requires field %q", ErrInvalidContent, qrType, key)
	}
	return v, nil
}

// field converts a content value to its string form. JSON numbers arrive
// as float64 and are formatted without a trailing fraction when whole.
func field(content map[string]interface{}, key string) string {
	switch v := content[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
