package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SessionLocal is the Fiber locals key holding the anonymous session ID.
const SessionLocal = "sessionID"

// SessionCookie is the cookie carrying the anonymous session ID. There are no
// accounts; the session exists only to scope the once-per-session like guard.
const SessionCookie = "hyg_session"

const sessionTTL = 24 * time.Hour

// AnonymousSession assigns a random session ID to first-time visitors and
// exposes the ID through Fiber locals for handlers and the logging context.
func AnonymousSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(SessionCookie)
		if sid == "" {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Expires:  time.Now().Add(sessionTTL),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}

		c.Locals(SessionLocal, sid)
		return c.Next()
	}
}

// SessionID returns the anonymous session ID for the current request, or ""
// when the session middleware did not run.
func SessionID(c *fiber.Ctx) string {
	if sid, ok := c.Locals(SessionLocal).(string); ok {
		return sid
	}
	return ""
}
