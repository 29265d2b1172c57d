package middleware

import (
	"log"

	"akun/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session_token"

// IdentityKey is the Locals key the resolved identity is stored under.
const IdentityKey = "identity"

// SessionRequired is a Fiber middleware that resolves the caller's
// identity from the session cookie before any protected handler runs.
func SessionRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(SessionCookie)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  fiber.StatusUnauthorized,
				"message": "Authentication required",
				"data":    nil,
			})
		}

		identity, err := authService.ValidateToken(tokenString)
		if err != nil {
			log.Printf("Session validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  fiber.StatusUnauthorized,
				"message": "Invalid or expired session",
				"data":    nil,
			})
		}

		// Store the identity in the Fiber context for subsequent handlers
		c.Locals(IdentityKey, identity)

		return c.Next()
	}
}

// CallerIdentity returns the identity attached by SessionRequired.
func CallerIdentity(c *fiber.Ctx) (services.Identity, bool) {
	identity, ok := c.Locals(IdentityKey).(services.Identity)
	return identity, ok
}
