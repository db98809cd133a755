package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/aicraft/storycraft/internal/shared/httpx"
	"github.com/aicraft/storycraft/internal/shared/token"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const subjectIDKey contextKey = "subjectID"

// GetSubjectID extracts the authenticated subject ID from the request context
func GetSubjectID(ctx context.Context) string {
	subjectID, _ := ctx.Value(subjectIDKey).(string)
	return subjectID
}

// RequireToken validates the Authorization bearer token and injects the
// subject ID into the request context. The response never says whether the
// token was expired, tampered with or absent.
func RequireToken(tokens *token.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			scheme, raw, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") {
				unauthorized(w, r)
				return
			}

			subjectID, err := tokens.Validate(strings.TrimSpace(raw))
			if err != nil {
				hlog.FromRequest(r).Warn().Err(err).Msg("Token validation failed")
				unauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), subjectIDKey, subjectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	httpx.WriteError(w, r, httpx.E(httpx.CodeUnauthorized, "invalid or missing token"), false)
}
