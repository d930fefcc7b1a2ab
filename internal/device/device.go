// Package device derives display names and stable fingerprints from client
// user-agent strings. The fingerprint rides along as login client metadata
// and into audit events; it is a coarse identifier, not a security boundary.
package device

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/mssola/useragent"
)

// Service computes device fingerprints. When disabled it returns empty
// fingerprints so callers can treat the feature as absent.
type Service struct {
	enabled bool
}

func NewService(enabled bool) *Service {
	return &Service{enabled: enabled}
}

// ParseUserAgent returns a human-readable device name such as
// "Chrome on Mac OS X". Unknown agents still produce a non-empty name.
func ParseUserAgent(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return "Unknown Device"
	}

	parsed := useragent.New(ua)
	browser, _ := parsed.Browser()
	os := parsed.OSInfo().Name
	if os == "" {
		os = parsed.Platform()
	}

	if browser == "" {
		browser = "Unknown Browser"
	}
	if os == "" {
		os = "Unknown OS"
	}
	return strings.TrimSpace(browser + " on " + os)
}

// ComputeFingerprint hashes the stable parts of a user agent: browser name,
// browser major version, and OS. Minor and patch version bumps do not change
// the fingerprint; a major upgrade or OS change does.
func (s *Service) ComputeFingerprint(ua string) string {
	if !s.enabled {
		return ""
	}

	parsed := useragent.New(ua)
	browser, version := parsed.Browser()
	major := version
	if i := strings.IndexByte(version, '.'); i >= 0 {
		major = version[:i]
	}
	os := parsed.OSInfo().FullName

	sum := sha256.Sum256([]byte(browser + "|" + major + "|" + os))
	return hex.EncodeToString(sum[:])
}
