package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type ctxKey string

const sessionKey ctxKey = "session"

func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey).(Session)
	return s, ok
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// Authenticate verifies a Bearer token when one is sent. With required set,
// requests without a token are rejected too.
func Authenticate(jwtSvc *JWT, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				if required {
					unauthorized(w)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(h, "Bearer ") {
				unauthorized(w)
				return
			}

			s, err := jwtSvc.Verify(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// unauthorized answers in the same envelope the handlers use. The body has
// not been read yet, so the username is unknown.
func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"username": "",
		"success":  false,
		"detail":   "unauthorized",
	})
}
