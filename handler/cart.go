package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pos_manager/cache"
	"pos_manager/constants"
	"pos_manager/helper"
	"pos_manager/model"
	"pos_manager/utils"
)

type CartHandler struct {
	DB    *gorm.DB
	Carts *cache.CartStore
}

// CreateCart opens a new cart session for the terminal.
func (h *CartHandler) CreateCart(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	cart, err := h.Carts.CreateCart(c.UserContext(), claim.OrganizationID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create cart", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, cart)
}

// GetCart reads the cart with a live totals preview.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	cart, err := h.loadCart(c, claim.OrganizationID)
	if err != nil {
		return h.cartLoadError(c, err)
	}
	return h.respondWithTotals(c, cart)
}

// AddLine snapshots an item (and its selected modifiers) into the cart at the
// catalog's current prices.
func (h *CartHandler) AddLine(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var input model.AddCartLineInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	cart, err := h.loadCart(c, claim.OrganizationID)
	if err != nil {
		return h.cartLoadError(c, err)
	}

	var item model.Item
	if err := h.DB.Where("id = ? AND organization_id = ? AND is_active = true",
		input.ItemID, claim.OrganizationID).First(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, err)
	}

	line := model.CartLine{
		LineID:    uuid.NewString(),
		ItemID:    item.ID,
		ItemName:  item.Name,
		UnitPrice: item.BasePrice,
		Quantity:  input.Quantity,
		TaxRate:   item.TaxRate,
		Notes:     input.Notes,
	}

	if input.VariantID != nil {
		var variant model.Variant
		if err := h.DB.Where("id = ? AND item_id = ? AND is_active = true",
			*input.VariantID, item.ID).First(&variant).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Variant not found", err)
		}
		line.VariantID = &variant.ID
		line.VariantName = variant.Name
		line.UnitPrice = item.BasePrice.Add(variant.PriceAdjustment)
	}

	for _, sel := range input.Modifiers {
		var option model.ModifierOption
		if err := h.DB.Where("id = ? AND modifier_group_id = ? AND is_active = true",
			sel.OptionID, sel.GroupID).First(&option).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Modifier option not found", err)
		}
		var group model.ModifierGroup
		if err := h.DB.Where("id = ? AND organization_id = ?",
			sel.GroupID, claim.OrganizationID).First(&group).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Modifier group not found", err)
		}
		line.Modifiers = append(line.Modifiers, model.CartModifier{
			GroupID:         group.ID,
			OptionID:        option.ID,
			Name:            group.Name,
			OptionName:      option.Name,
			PriceAdjustment: option.PriceAdjustment,
		})
	}

	// Reject unpriceable lines before they enter the cart.
	if _, err := helper.LineSubtotal(line); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	cart.Lines = append(cart.Lines, line)
	if err := h.Carts.SaveCart(c.UserContext(), cart); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save cart", err)
	}
	return h.respondWithTotals(c, cart)
}

// UpdateLine changes a line's quantity. A quantity at or below zero removes
// the line rather than erroring.
func (h *CartHandler) UpdateLine(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var input model.UpdateCartLineInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	cart, err := h.loadCart(c, claim.OrganizationID)
	if err != nil {
		return h.cartLoadError(c, err)
	}

	lines, found := applyLineQuantity(cart.Lines, c.Params("lineId"), input.Quantity)
	if !found {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Cart line not found", nil)
	}
	cart.Lines = lines

	if err := h.Carts.SaveCart(c.UserContext(), cart); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save cart", err)
	}
	return h.respondWithTotals(c, cart)
}

// RemoveLine deletes one line from the cart.
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	cart, err := h.loadCart(c, claim.OrganizationID)
	if err != nil {
		return h.cartLoadError(c, err)
	}

	lineID := c.Params("lineId")
	lines := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.LineID != lineID {
			lines = append(lines, line)
		}
	}
	cart.Lines = lines

	if err := h.Carts.SaveCart(c.UserContext(), cart); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save cart", err)
	}
	return h.respondWithTotals(c, cart)
}

// ClearCart destroys the cart session.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	if err := h.Carts.DeleteCart(c.UserContext(), claim.OrganizationID, c.Params("cartId")); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to clear cart", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"cleared": true})
}

// applyLineQuantity rewrites the matched line with its new quantity. A
// quantity at or below zero drops the line, the rest stay untouched. Reports
// whether the line existed.
func applyLineQuantity(lines []model.CartLine, lineID string, quantity int) ([]model.CartLine, bool) {
	found := false
	out := lines[:0]
	for _, line := range lines {
		if line.LineID != lineID {
			out = append(out, line)
			continue
		}
		found = true
		if quantity > 0 {
			line.Quantity = quantity
			out = append(out, line)
		}
	}
	return out, found
}

func (h *CartHandler) loadCart(c *fiber.Ctx, orgID uint) (*model.Cart, error) {
	return h.Carts.GetCart(c.UserContext(), orgID, c.Params("cartId"))
}

func (h *CartHandler) cartLoadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, cache.ErrCartNotFound) {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CART_NOT_FOUND, err)
	}
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load cart", err)
}

func (h *CartHandler) respondWithTotals(c *fiber.Ctx, cart *model.Cart) error {
	totals := model.CartTotals{Subtotal: decimal.Zero, Tax: decimal.Zero, Total: decimal.Zero}
	subtotal, err := helper.CartSubtotal(cart.Lines)
	if err == nil {
		tax, taxErr := helper.CartTax(cart.Lines)
		if taxErr == nil {
			totals.Subtotal = subtotal
			totals.Tax = tax
			totals.Total = subtotal.Add(tax)
		}
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"cart":   cart,
		"totals": totals,
	})
}
