package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and collaborator adapters
// return these (optionally wrapped) so services can translate them into the
// step's fail-open or fail-closed outcome.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity or preference key does not exist in store
// - ErrExpired: token/session has expired
// - ErrInvalidState: orchestration attempt in wrong state for requested operation
// - ErrUnavailable: collaborator or resource temporarily unavailable
// - ErrAborted: attempt abandoned by the caller; no further work runs for it
var (
	ErrNotFound     = errors.New("not found")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrAborted      = errors.New("aborted")
)
