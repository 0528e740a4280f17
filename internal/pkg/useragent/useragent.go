// Package useragent classifies user-agent strings into coarse device,
// browser and OS labels by case-insensitive substring matching. This is
// deliberately not a full parser; scan analytics only need buckets.
package useragent

import "strings"

// Classification is the coarse device profile attached to a scan event.
type Classification struct {
	Device  string
	Browser string
	OS      string
}

// Classify buckets the user-agent string. Unknown agents fall back to
// desktop/unknown/unknown.
func Classify(userAgent string) Classification {
	ua := strings.ToLower(userAgent)

	c := Classification{
		Device:  "desktop",
		Browser: "unknown",
		OS:      "unknown",
	}

	switch {
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		c.Device = "tablet"
	case strings.Contains(ua, "mobile") || strings.Contains(ua, "iphone") || strings.Contains(ua, "android"):
		c.Device = "mobile"
	}

	// Order matters: Edge and Opera embed "chrome", Chrome embeds "safari".
	switch {
	case strings.Contains(ua, "edg"):
		c.Browser = "edge"
	case strings.Contains(ua, "opr") || strings.Contains(ua, "opera"):
		c.Browser = "opera"
	case strings.Contains(ua, "firefox"):
		c.Browser = "firefox"
	case strings.Contains(ua, "chrome"):
		c.Browser = "chrome"
	case strings.Contains(ua, "safari"):
		c.Browser = "safari"
	}

	switch {
	case strings.Contains(ua, "android"):
		c.OS = "android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad") || strings.Contains(ua, "ios"):
		c.OS = "ios"
	case strings.Contains(ua, "windows"):
		c.OS = "windows"
	case strings.Contains(ua, "mac os") || strings.Contains(ua, "macintosh"):
		c.OS = "macos"
	case strings.Contains(ua, "linux"):
		c.OS = "linux"
	}

	return c
}
