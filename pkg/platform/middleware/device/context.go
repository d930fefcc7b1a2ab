// Package device computes a client-device fingerprint per request.
package device

import (
	"net/http"

	"moneyguard/pkg/requestcontext"
)

// Fingerprinter derives a stable fingerprint from a raw User-Agent string.
// An empty result means fingerprinting is disabled.
type Fingerprinter interface {
	ComputeFingerprint(userAgent string) string
}

// Fingerprint stores the computed device fingerprint in the context. Runs
// after metadata.ClientMetadata so the User-Agent is already extracted.
func Fingerprint(fp Fingerprinter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if v := fp.ComputeFingerprint(requestcontext.UserAgent(ctx)); v != "" {
				ctx = requestcontext.WithDeviceFingerprint(ctx, v)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
