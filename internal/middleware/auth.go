// Package middleware gates protected routes on the session's
// authenticated flag.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samrachcambopay/SMSV2-API-Key-Generate/internal/session"
)

// sessionKey is the gin context key the authenticated session is stored
// under.
const sessionKey = "auth.session"

// CurrentSession extracts the authenticated session set by RequireAuth.
func CurrentSession(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return session.Session{}, false
	}
	s, ok := v.(session.Session)
	return s, ok
}

// RequireAuth allows the request through iff the cookie names a stored
// session with Authenticated set. Anything else redirects to /login with no
// side effects.
func RequireAuth(store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			redirectToLogin(c)
			return
		}

		sess, err := store.Get(c.Request.Context(), cookie.Value)
		if err != nil || sess == nil || !sess.Authenticated {
			redirectToLogin(c)
			return
		}

		c.Set(sessionKey, *sess)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
