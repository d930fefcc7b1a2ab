// Package auth guards routes behind a bearer session token.
package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	request "moneyguard/pkg/platform/middleware/request"
	"moneyguard/pkg/requestcontext"
)

// Claims are the token fields the middleware cares about. The concrete token
// service maps its own claim type onto this one so the middleware stays free
// of JWT library details.
type Claims struct {
	Username  string
	AttemptID string
}

// TokenValidator validates a raw bearer token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAuth rejects requests without a valid bearer token and injects the
// token's username and attempt ID into the context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(r.Context(), "unauthorized access - missing token",
					"request_id", request.GetRequestID(r.Context()),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				logger.WarnContext(r.Context(), "unauthorized access - invalid token",
					"error", err,
					"request_id", request.GetRequestID(r.Context()),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx := requestcontext.WithUsername(r.Context(), claims.Username)
			ctx = requestcontext.WithAttemptID(ctx, claims.AttemptID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
