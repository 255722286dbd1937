package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yates-Labs/roam/internal/session"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "roam_session"

const sessionKey = "session"

// withSession attaches the caller's session, creating one (and setting the
// cookie) when the request carries no live session id.
func (s *Server) withSession(c *gin.Context) {
	id, _ := c.Cookie(SessionCookie)
	sess, created := s.store.GetOrCreate(id)
	if created {
		s.logger.Debug("session created", zap.String("session", sess.ID))
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sess.ID, int(s.options.SessionTTL.Seconds()), "/", "", false, true)
	c.Set(sessionKey, sess)
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}
