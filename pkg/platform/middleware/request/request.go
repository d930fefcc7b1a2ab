// Package request provides request-ID middleware: every request gets a UUID
// that is echoed in the X-Request-ID response header and threaded through
// logs via the context.
package request

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"moneyguard/pkg/requestcontext"
)

const headerRequestID = "X-Request-ID"

// RequestID assigns an ID to the request, honoring one supplied by an
// upstream proxy.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
