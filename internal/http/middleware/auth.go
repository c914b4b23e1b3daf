package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"printhub/internal/auth"
)

// Keys used to expose the authenticated account in Fiber's context locals.
const (
	AuthIDLocalKey    = "auth_id"
	AuthEmailLocalKey = "auth_email"
	AuthRoleLocalKey  = "auth_role"
)

// RequireAuth validates the bearer token and stores the account's id, email
// and role in context locals. When roles are given, the token's role must be
// one of them.
func RequireAuth(jwt *auth.JWTManager, log *zap.Logger, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(fiber.HeaderAuthorization)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authorization token required")
		}
		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwt.Validate(token)
		if err != nil {
			log.Warn("invalid token", zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		if len(roles) > 0 {
			allowed := false
			for _, r := range roles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				return fiber.NewError(fiber.StatusForbidden, "insufficient role")
			}
		}

		c.Locals(AuthIDLocalKey, claims.Subject)
		c.Locals(AuthEmailLocalKey, claims.Email)
		c.Locals(AuthRoleLocalKey, claims.Role)

		return c.Next()
	}
}
