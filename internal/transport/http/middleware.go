package httptransport

import (
	"time"

	"github.com/gin-gonic/gin"

	"keneviz-panel-go/internal/domain/session"
	"keneviz-panel-go/internal/platform/logging"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "keneviz_session"

const sessionContextKey = "keneviz.session"

// SessionMiddleware resolves the session cookie to a server-side
// session, issuing a fresh one when the cookie is absent or invalid.
func SessionMiddleware(manager *session.Manager, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if token, err := c.Cookie(SessionCookie); err == nil {
			if sess, err := manager.Load(ctx, token); err == nil {
				c.Set(sessionContextKey, sess)
				c.Next()
				return
			}
		}

		sess, token, err := manager.Issue(ctx)
		if err != nil {
			logger.Error("failed to issue session: %v", err)
			RespondError(c, 500, "session unavailable", nil)
			c.Abort()
			return
		}
		maxAge := int(time.Until(sess.ExpiresAt).Seconds())
		c.SetCookie(SessionCookie, token, maxAge, "/", "", false, true)
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// CurrentSession returns the request's session. The session middleware
// guarantees one exists on every route under the root group.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return &session.Session{}
	}
	sess, ok := v.(*session.Session)
	if !ok {
		return &session.Session{}
	}
	return sess
}
