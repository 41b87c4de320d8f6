package validate

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"pos_manager/helper"
	"pos_manager/model"
	"pos_manager/utils"
)

func InitializePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.InitializePaymentInput
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

		if _, err := helper.ParseAmount(input.Amount, "amount"); err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "amount is not a valid amount", err, "amount")
		}

		return c.Next()
	}
}

func ValidatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ValidatePaymentInput
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
