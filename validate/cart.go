package validate

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"pos_manager/model"
)

func AddCartLine() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AddCartLineInput
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

func UpdateCartLine() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateCartLineInput
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
