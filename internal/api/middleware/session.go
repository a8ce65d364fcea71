package middleware

import (
	"context"
	"net/http"

	"mercadinho/internal/session"
)

type contextKey string

const sessionCtxKey contextKey = "session"

// Session resolves the request's session (creating one for first-time
// visitors) and stores the handle in the request context.
func Session(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := manager.GetOrCreate(w, r)
			if err != nil {
				http.Error(w, "session store unavailable", http.StatusInternalServerError)
				return
			}
			ctx := context.WithValue(r.Context(), sessionCtxKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom returns the session placed in the context by Session.
// Routes are only reachable through that middleware, so absence is a
// programming error.
func SessionFrom(ctx context.Context) *session.Session {
	sess, ok := ctx.Value(sessionCtxKey).(*session.Session)
	if !ok {
		panic("session middleware not installed")
	}
	return sess
}

// RequireAuth gates item routes: anonymous requests are redirected to the
// login page with no side effects.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFrom(r.Context()).IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
