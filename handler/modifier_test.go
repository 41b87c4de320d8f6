package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemGroupParamsReadFromPath(t *testing.T) {
	app := fiber.New()
	var gotItem, gotGroup int
	app.Post("/items/:itemId/modifier-groups/:groupId", func(c *fiber.Ctx) error {
		itemID, groupID, err := itemGroupParams(c)
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		gotItem, gotGroup = itemID, groupID
		return c.SendStatus(fiber.StatusOK)
	})

	// No body: both ids come from the URL alone.
	resp, err := app.Test(httptest.NewRequest("POST", "/items/3/modifier-groups/9", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, gotItem)
	assert.Equal(t, 9, gotGroup)
}

func TestItemGroupParamsRejectNonNumeric(t *testing.T) {
	app := fiber.New()
	app.Post("/items/:itemId/modifier-groups/:groupId", func(c *fiber.Ctx) error {
		if _, _, err := itemGroupParams(c); err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/items/3/modifier-groups/size", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
