package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const (
	IPContextKey        = "request_ip"
	UserAgentContextKey = "request_user_agent"
)

// RequestInfo captures the caller's IP and user agent for the audit trail.
func RequestInfo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(IPContextKey, c.IP())
		c.Locals(UserAgentContextKey, c.Get("User-Agent"))
		return c.Next()
	}
}

func GetRequestIP(c *fiber.Ctx) *string {
	ip, ok := c.Locals(IPContextKey).(string)
	if !ok || ip == "" {
		return nil
	}
	return &ip
}

func GetRequestUserAgent(c *fiber.Ctx) *string {
	ua, ok := c.Locals(UserAgentContextKey).(string)
	if !ok || ua == "" {
		return nil
	}
	return &ua
}
