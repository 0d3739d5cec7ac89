package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionContextKey = "client_session_id"
	sessionHeader     = "X-Session-ID"
	sessionCookie     = "nysc_session"
)

// ClientSession assigns every browser a stable session ID that keys the draft
// store. SPA clients may send their own via the X-Session-ID header; otherwise
// a cookie is issued on first contact.
func ClientSession(ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Get(sessionHeader)
		if sessionID == "" {
			sessionID = c.Cookies(sessionCookie)
		}

		if sessionID == "" {
			sessionID = uuid.New().String()
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Expires:  time.Now().Add(ttl),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Path:     "/",
			})
		}

		c.Locals(SessionContextKey, sessionID)
		return c.Next()
	}
}

func GetSessionID(c *fiber.Ctx) string {
	sessionID, ok := c.Locals(SessionContextKey).(string)
	if !ok {
		return ""
	}
	return sessionID
}
