package handler

import (
	"context"
	"net/http"
)

type contextKey struct{}

var userNameKey = contextKey{}

// loadSession puts the session's user name, if any, into the request context.
// It never rejects a request: pages decide for themselves what a visitor may do.
func (h *ForumHTTPHandler) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.sessions.Load(r)
		if err != nil {
			h.handleError(w, r, err)
			return
		}

		if sess != nil && sess.UserName != "" {
			r = r.WithContext(context.WithValue(r.Context(), userNameKey, sess.UserName))
		}

		next.ServeHTTP(w, r)
	})
}

func currentUser(ctx context.Context) string {
	userName, _ := ctx.Value(userNameKey).(string)
	return userName
}
