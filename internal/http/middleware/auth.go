package middleware

import (
	"context"
	"net/http"
	"strings"

	"voltledger/internal/service"
)

type contextKey string

const participantKey contextKey = "participantID"

// Auth validates bearer tokens and stores the caller identity in the
// request context. Role checks happen later, against the directory.
func Auth(tokens *service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), participantKey, claims.ParticipantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerFromContext retrieves the authenticated participant id.
func CallerFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(participantKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
