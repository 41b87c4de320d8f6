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

func UpdateOrganization() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateOrganizationInput
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
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("settings require a manager"))
		}

		return c.Next()
	}
}

func ConnectProcessor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ConnectProcessorInput
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
		if claim.Role != constants.RoleAdmin {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("processor credentials require the admin"))
		}

		return c.Next()
	}
}
