package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cartCookieName = "cart_session"
	sessionKey     = "cart_session_id"

	cartCookieMaxAge = int(30 * 24 * time.Hour / time.Second)
)

// CartSession gives every visitor a stable cart session id via cookie,
// issuing one on first touch. The id keys the session store.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cartCookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(cartCookieName, sid, cartCookieMaxAge, "/", "", false, true)
		}
		c.Set(sessionKey, sid)
		c.Next()
	}
}

// SessionID returns the cart session id set by CartSession.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
