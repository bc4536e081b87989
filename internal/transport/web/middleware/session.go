package middleware

import (
	"context"
	"net/http"

	"congeadmin/internal/requestctx"
	"congeadmin/internal/session"
)

type ctxKey string

const sessionKey ctxKey = "session"

// RequireSession is the route guard: pages behind it redirect anonymous
// visitors to the login screen. The bearer token rides along in the request
// context so the API client can attach it.
func RequireSession(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := manager.Read(r)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			ctx = requestctx.WithToken(ctx, sess.Token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSession(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(sessionKey).(session.Session)
	return sess, ok
}
