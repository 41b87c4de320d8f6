package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pos_manager/constants"
	"pos_manager/helper"
	"pos_manager/model"
	"pos_manager/utils"
)

type ModifierHandler struct {
	DB *gorm.DB
}

// GetModifierGroups lists the organization's modifier groups with their
// options, ordered by sort_order in the query.
func (h *ModifierHandler) GetModifierGroups(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var groups []model.ModifierGroup
	if err := h.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, id")
		}).
		Where("organization_id = ?", claim.OrganizationID).
		Order("sort_order, id").
		Find(&groups).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load modifier groups", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, groups)
}

func (h *ModifierHandler) CreateModifierGroup(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var input model.CreateModifierGroupInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}
	if input.MaxSelections != nil && *input.MaxSelections < input.MinSelections {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "maxSelections below minSelections", nil)
	}

	group := model.ModifierGroup{
		OrganizationID: claim.OrganizationID,
		Name:           input.Name,
		SelectionType:  input.SelectionType,
		MinSelections:  input.MinSelections,
		MaxSelections:  input.MaxSelections,
		IsRequired:     input.IsRequired,
		SortOrder:      input.SortOrder,
	}
	if err := h.DB.Create(&group).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create modifier group", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, group)
}

func (h *ModifierHandler) CreateModifierOption(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	groupID, err := c.ParamsInt("groupId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var input model.CreateModifierOptionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var group model.ModifierGroup
	if err := h.DB.Where("id = ? AND organization_id = ?", groupID, claim.OrganizationID).
		First(&group).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Modifier group not found", err)
	}

	adjustment := decimal.Zero
	if input.PriceAdjustment != "" {
		adjustment, err = decimal.NewFromString(input.PriceAdjustment)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid price adjustment", err)
		}
	}

	option := model.ModifierOption{
		ModifierGroupID: group.ID,
		Name:            input.Name,
		PriceAdjustment: adjustment,
		IsDefault:       input.IsDefault,
		IsActive:        true,
		SortOrder:       input.SortOrder,
	}
	if err := h.DB.Create(&option).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create modifier option", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, option)
}

// AttachModifierGroup links a modifier group to an item at a display
// position.
func (h *ModifierHandler) AttachModifierGroup(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	itemID, groupID, err := itemGroupParams(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	// Body is optional, it only carries the display position.
	var input model.AttachModifierGroupInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
	}

	var item model.Item
	if err := h.DB.Where("id = ? AND organization_id = ?", itemID, claim.OrganizationID).
		First(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, err)
	}
	var group model.ModifierGroup
	if err := h.DB.Where("id = ? AND organization_id = ?", groupID, claim.OrganizationID).
		First(&group).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Modifier group not found", err)
	}

	link := model.ItemModifierGroup{
		ItemID:          item.ID,
		ModifierGroupID: group.ID,
		SortOrder:       input.SortOrder,
	}
	if err := h.DB.Where(model.ItemModifierGroup{ItemID: item.ID, ModifierGroupID: group.ID}).
		FirstOrCreate(&link).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to attach modifier group", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, link)
}

// DetachModifierGroup removes the item↔group link.
func (h *ModifierHandler) DetachModifierGroup(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	itemID, groupID, err := itemGroupParams(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var item model.Item
	if err := h.DB.Where("id = ? AND organization_id = ?", itemID, claim.OrganizationID).
		First(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, err)
	}

	if err := h.DB.Where("item_id = ? AND modifier_group_id = ?", item.ID, groupID).
		Delete(&model.ItemModifierGroup{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to detach modifier group", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"detached": true})
}

// itemGroupParams reads the item and modifier group ids from the route path.
func itemGroupParams(c *fiber.Ctx) (int, int, error) {
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return 0, 0, err
	}
	groupID, err := c.ParamsInt("groupId")
	if err != nil {
		return 0, 0, err
	}
	return itemID, groupID, nil
}
