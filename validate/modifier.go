package validate

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"pos_manager/constants"
	"pos_manager/helper"
	"pos_manager/model"
	"pos_manager/utils"
)

func CreateModifierGroup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateModifierGroupInput
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
		if claim.Role == constants.RoleCashier {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("cashiers cannot manage the catalog"))
		}

		if input.MaxSelections != nil && *input.MaxSelections > 0 && *input.MaxSelections < input.MinSelections {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "max selections must not be below min selections", errors.New("selection bounds inverted"), "maxSelections")
		}

		return c.Next()
	}
}

func CreateModifierOption() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateModifierOptionInput
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
		if claim.Role == constants.RoleCashier {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("cashiers cannot manage the catalog"))
		}

		if input.PriceAdjustment != "" {
			if _, err := decimal.NewFromString(input.PriceAdjustment); err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "price adjustment is not a valid amount", err, "priceAdjustment")
			}
		}

		return c.Next()
	}
}
