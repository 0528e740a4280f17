package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/qrplanet/qrplanet/internal/pkg/env"
)

// jsonError writes the shared API error shape.
func jsonError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

// imageSignSecret returns the server-held secret for public image tokens.
func imageSignSecret() string {
	return env.GetEnv("QR_IMAGE_SIGN_SECRET", "qr-image-secret")
}

// publicBaseURL is the externally reachable base used when baking
// indirection URLs into dynamic symbols.
func publicBaseURL() string {
	return strings.TrimRight(env.GetEnv("PUBLIC_BASE_URL", "http://localhost:4000"), "/")
}

// GetClientIP determines the actual client IP address considering proxies.
func GetClientIP(c *fiber.Ctx) string {
	// Cloudflare provides the original client IP in this header
	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	// X-Forwarded-For can contain a list of IPs - the first one is the
	// original client IP
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}

	ip := c.IP()
	// Unwrap ::ffff: IPv4-mapped-IPv6 addresses
	if strings.HasPrefix(ip, "::ffff:") && strings.Contains(ip, ".") {
		return strings.TrimPrefix(ip, "::ffff:")
	}
	return ip
}
