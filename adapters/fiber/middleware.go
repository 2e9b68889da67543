package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/sardor-dev/myid-auth/core"
)

// requireToken validates the locally issued access token and stores the
// resolved user in the context for downstream handlers.
func (a *Adapter) requireToken(c fiber.Ctx) error {
	token := extractToken(c)
	if token == "" {
		return c.Status(http.StatusUnauthorized).JSON(map[string]string{
			"error": "missing authorization header",
		})
	}

	record, err := a.db.GetAccessTokenByValue(c.Context(), token)
	if err != nil {
		if errors.Is(err, core.ErrTokenNotFound) {
			return c.Status(http.StatusUnauthorized).JSON(map[string]string{
				"error": "invalid access token",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(map[string]string{
			"error": "internal server error",
		})
	}

	user, err := a.db.GetUserByID(c.Context(), record.UserID)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]string{
			"error": "internal server error",
		})
	}

	c.Locals("user", user)

	return c.Next()
}

// extractToken pulls the bearer token from the Authorization header.
func extractToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	return ""
}
