package validate

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"pos_manager/constants"
	"pos_manager/helper"
	"pos_manager/model"
	"pos_manager/utils"
)

func CreateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateUserProfileInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		claim, err := helper.GetClaimsFromToken(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
		}
		if claim.Role != constants.RoleAdmin && claim.Role != constants.RoleManager {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("staff management requires a manager"))
		}

		if input.Role != constants.RoleAdmin && input.Role != constants.RoleManager && input.Role != constants.RoleCashier {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "unknown role", errors.New("role must be admin, manager or cashier"), "role")
		}

		return c.Next()
	}
}

func VerifyPin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.VerifyPinInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Next()
	}
}
