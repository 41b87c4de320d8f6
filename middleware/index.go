package middleware

import (
	"errors"
	"os"
	"strings"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"pos_manager/constants"
	"pos_manager/helper"
	"pos_manager/utils"
)

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			// check header Authorization: Bearer xxx
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// RequireRole allows only the listed staff roles through.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, err := helper.GetClaimsFromToken(c)
		if err != nil {
			return utils.ErrorResponse(c, 401, constants.UNAUTHORIZED_MSG, err)
		}
		for _, role := range roles {
			if claim.Role == role {
				return c.Next()
			}
		}
		return utils.ErrorResponse(c, 403, constants.NOT_ADMIN, errors.New("insufficient role"))
	}
}

// WebsocketUpgrade authenticates the upgrade request and stashes the
// organization id for the feed subscriber.
func WebsocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		claim, err := helper.GetClaimsFromToken(c)
		if err != nil {
			return utils.ErrorResponse(c, 401, constants.UNAUTHORIZED_MSG, err)
		}
		c.Locals("organizationId", claim.OrganizationID)
		return c.Next()
	}
}
