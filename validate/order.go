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

func Checkout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CheckoutInput
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

		if input.PaymentMethod != constants.MethodCash && input.PaymentMethod != constants.MethodCard {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "payment method must be cash or card", errors.New("unknown payment method"), "paymentMethod")
		}

		if input.TipPercent != "" && input.TipAmount != "" {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "tip percent and tip amount are mutually exclusive", errors.New("both tip fields set"), "tipPercent")
		}

		if input.DiscountAmount != "" {
			if _, err := helper.ParseAmount(input.DiscountAmount, "discount"); err != nil {
				return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "discount is not a valid amount", err, "discountAmount")
			}
		}

		return c.Next()
	}
}

func RefundOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, err := helper.GetClaimsFromToken(c)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
		}
		if claim.Role != constants.RoleAdmin && claim.Role != constants.RoleManager {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("refunds require a manager"))
		}
		return c.Next()
	}
}
