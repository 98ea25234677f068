package http

import (
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/travel-planner-backend/internal/trips/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "trip_session"
	sessionIDKey  = "session_id"
)

// SessionMiddleware pins every browser to a session id carried in a cookie.
func SessionMiddleware(ttl time.Duration) gin.HandlerFunc {
	maxAge := int(ttl.Seconds())
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, maxAge, "/", "", false, true)
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func (h *Handler) loadSession(c *gin.Context) (*session.Session, error) {
	return h.sessions.Get(c.Request.Context(), c.GetString(sessionIDKey))
}
