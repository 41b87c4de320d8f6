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

func CreateItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateItemInput
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

		if _, err := helper.ParseAmount(input.BasePrice, "base price"); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "base price is not a valid amount", err, "basePrice")
		}

		return c.Next()
	}
}

func UpdateItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateItemInput
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

		if input.BasePrice != "" {
			if _, err := helper.ParseAmount(input.BasePrice, "base price"); err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "base price is not a valid amount", err, "basePrice")
			}
		}

		return c.Next()
	}
}

func CreateVariant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateVariantInput
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

		if input.PriceAdjustment != "" {
			if _, err := decimal.NewFromString(input.PriceAdjustment); err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "price adjustment is not a valid amount", err, "priceAdjustment")
			}
		}

		return c.Next()
	}
}
