// Package prefs is the session-scoped key-value store shared between the
// orchestrator and its caller. It owns no schema beyond flat typed keys; the
// orchestrator treats reads and writes as synchronous and ordered.
package prefs

import (
	"context"
	"errors"

	"moneyguard/pkg/platform/sentinel"
)

// Keys persisted across a session's lifetime. Everything else produced by a
// scan is discarded once the gate pipeline consumes it.
const (
	KeyToken               = "mg.token"
	KeySessionID           = "mg.session_id"
	KeyFullName            = "mg.full_name"
	KeyInstallationID      = "mg.installation_id"
	KeyIdentityCompromised = "mg.identity_compromised"
	KeySuspiciousLogin     = "mg.suspicious_login"
	KeyLoggedOut           = "mg.logged_out"
	KeyRiskScore           = "mg.risk_score"
	KeyHighRiskThreshold   = "mg.high_risk_threshold"
)

// Store is the abstract get/set capability. Getters return
// sentinel.ErrNotFound (possibly wrapped) for absent keys.
type Store interface {
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string) error
	GetBool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
	GetInt(ctx context.Context, key string) (int, error)
	SetInt(ctx context.Context, key string, value int) error
	Delete(ctx context.Context, key string) error
}

// Flag reads a boolean key, treating an absent key as false. Store errors
// also read as false: preference reads sit on fail-open paths and must never
// block an orchestration on their own.
func Flag(ctx context.Context, s Store, key string) bool {
	v, err := s.GetBool(ctx, key)
	if err != nil {
		return false
	}
	return v
}

// IntOr reads an integer key, falling back to def for absent keys or store
// errors.
func IntOr(ctx context.Context, s Store, key string, def int) int {
	v, err := s.GetInt(ctx, key)
	if err != nil {
		return def
	}
	return v
}

// StringOr reads a string key, falling back to def for absent keys or store
// errors.
func StringOr(ctx context.Context, s Store, key string, def string) string {
	v, err := s.GetString(ctx, key)
	if err != nil {
		return def
	}
	return v
}

// IsNotFound reports whether err is the absent-key case rather than an
// infrastructure failure.
func IsNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound)
}
