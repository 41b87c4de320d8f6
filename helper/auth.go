package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"pos_manager/model"
)

// GetClaimsFromToken pulls the POS claims the auth middleware stored on the
// request. Every handler scopes its queries by the organization id found here.
func GetClaimsFromToken(c *fiber.Ctx) (model.TokenClaim, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, errors.New("missing token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.TokenClaim{}, errors.New("malformed claims")
	}

	result := model.TokenClaim{}
	if v, ok := claims["userId"].(string); ok {
		result.UserID = v
	}
	if v, ok := claims["profileId"].(float64); ok {
		result.ProfileID = uint(v)
	}
	if v, ok := claims["organizationId"].(float64); ok {
		result.OrganizationID = uint(v)
	}
	if v, ok := claims["role"].(string); ok {
		result.Role = v
	}
	if result.OrganizationID == 0 {
		return result, errors.New("token has no organization claim")
	}
	return result, nil
}
