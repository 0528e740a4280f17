package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// SignImageToken computes the tamper-evident token that gates public,
// unauthenticated image retrieval. The record's updated_at is part of
// the signed material, so any edit silently invalidates every
// previously issued public link without a revocation list.
func SignImageToken(qrUUID string, userID uint, updatedAt time.Time, secret string) string {
	msg := fmt.Sprintf("%s:%d:%s", qrUUID, userID, updatedAt.UTC().Format(time.RFC3339Nano))
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyImageToken recomputes the signature from the record's current
// state and compares it against the presented token in constant time.
func VerifyImageToken(token, qrUUID string, userID uint, updatedAt time.Time, secret string) bool {
	expected := SignImageToken(qrUUID, userID, updatedAt, secret)
	return hmac.Equal([]byte(token), []byte(expected))
}
