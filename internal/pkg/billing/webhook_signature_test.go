package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func signPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"event_type":"plan.changed","user_id":7,"plan":"pro"}`)
	secret := "whsec_test"
	sig := signPayload(payload, secret)

	if !VerifyWebhookSignature(payload, sig, secret) {
		t.Fatalf("expected valid signature to verify")
	}
	if !VerifyWebhookSignature(payload, strings.ToUpper(sig), secret) {
		t.Fatalf("expected uppercase hex signature to verify")
	}
	if !VerifyWebhookSignature(payload, "  "+sig+"  ", secret) {
		t.Fatalf("expected surrounding whitespace to be tolerated")
	}
}

func TestVerifyWebhookSignature_Rejections(t *testing.T) {
	t.Parallel()

	payload := []byte(`{"event_type":"plan.changed"}`)
	secret := "whsec_test"
	sig := signPayload(payload, secret)

	if VerifyWebhookSignature([]byte(`{"tampered":true}`), sig, secret) {
		t.Fatalf("expected tampered payload to fail verification")
	}
	if VerifyWebhookSignature(payload, sig, "other-secret") {
		t.Fatalf("expected wrong secret to fail verification")
	}
	if VerifyWebhookSignature(payload, "", secret) {
		t.Fatalf("expected empty signature to fail verification")
	}
	if VerifyWebhookSignature(payload, "not-hex", secret) {
		t.Fatalf("expected malformed signature to fail verification")
	}
	if VerifyWebhookSignature(payload, sig, "") {
		t.Fatalf("expected empty secret to fail verification")
	}
}
