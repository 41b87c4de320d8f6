package handler

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pos_manager/config"
	"pos_manager/constants"
	"pos_manager/helper"
	"pos_manager/model"
	"pos_manager/utils"
)

type ItemHandler struct {
	DB *gorm.DB
}

// GetItems lists catalog items for the organization. Filtering and ordering
// happen in the query, not client-side: category is a WHERE clause and the
// display order is an explicit ORDER BY.
func (h *ItemHandler) GetItems(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	query := h.DB.Model(&model.Item{}).Where("organization_id = ?", claim.OrganizationID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("active", "true") == "true" {
		query = query.Where("is_active = true")
	}

	var totalCount int64
	query.Count(&totalCount)

	limit := c.QueryInt("limit", 50)
	page := c.QueryInt("page", 1)

	var items []model.Item
	if err := utils.ApplyPagination(query, &limit, &page).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = true").Order("sort_order, id")
		}).
		Preload("ModifierGroups", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, id")
		}).
		Preload("ModifierGroups.ModifierGroup").
		Preload("ModifierGroups.ModifierGroup.Options", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = true").Order("sort_order, id")
		}).
		Order("category, name").
		Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load items", err)
	}

	return c.JSON(model.ResponseCustom{
		Rows:       items,
		Limit:      &limit,
		Page:       &page,
		TotalCount: totalCount,
	})
}

// GetCategories returns the distinct categories in use, computed at query
// time.
func (h *ItemHandler) GetCategories(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var categories []string
	if err := h.DB.Model(&model.Item{}).
		Where("organization_id = ? AND category <> ''", claim.OrganizationID).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load categories", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

func (h *ItemHandler) GetItemById(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var item model.Item
	if err := h.DB.
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, id") }).
		Preload("ModifierGroups", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order, id") }).
		Preload("ModifierGroups.ModifierGroup").
		Preload("ModifierGroups.ModifierGroup.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, id")
		}).
		Where("id = ? AND organization_id = ?", itemID, claim.OrganizationID).
		First(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var input model.CreateItemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	basePrice, err := helper.ParseAmount(input.BasePrice, "base price")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}
	cost, err := helper.ParseAmount(input.Cost, "cost")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}
	taxRate, err := helper.ParseAmount(input.TaxRate, "tax rate")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	item := model.Item{
		OrganizationID: claim.OrganizationID,
		Name:           input.Name,
		Description:    input.Description,
		ItemType:       input.ItemType,
		SKU:            input.SKU,
		BasePrice:      basePrice,
		Cost:           cost,
		TaxRate:        taxRate,
		Category:       input.Category,
		IsActive:       true,
		TrackInventory: input.TrackInventory,
		CurrentStock:   input.CurrentStock,
		LowStockAlert:  input.LowStockAlert,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create item", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var input model.UpdateItemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var item model.Item
	if err := h.DB.Where("id = ? AND organization_id = ?", itemID, claim.OrganizationID).
		First(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, err)
	}

	if err := copier.CopyWithOption(&item, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to apply update", err)
	}
	if input.BasePrice != "" {
		price, err := helper.ParseAmount(input.BasePrice, "base price")
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		item.BasePrice = price
	}
	if input.Cost != "" {
		cost, err := helper.ParseAmount(input.Cost, "cost")
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		item.Cost = cost
	}
	if input.TaxRate != "" {
		rate, err := helper.ParseAmount(input.TaxRate, "tax rate")
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		item.TaxRate = rate
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if input.CurrentStock != nil {
		item.CurrentStock = *input.CurrentStock
	}

	if err := h.DB.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update item", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

// DeleteItems deactivates items in bulk. Order items snapshot names and
// prices, so the catalog row is only ever hidden, never destroyed.
func (h *ItemHandler) DeleteItems(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var input model.ArrayId
	if err := c.BodyParser(&input); err != nil || len(input.IDs) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	if err := h.DB.Model(&model.Item{}).
		Where("id IN ? AND organization_id = ?", input.IDs, claim.OrganizationID).
		Update("is_active", false).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete items", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deactivated": input.IDs})
}

// UploadItemImage stores an item photo in Cloudinary and saves its URL.
func (h *ItemHandler) UploadItemImage(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var item model.Item
	if err := h.DB.Where("id = ? AND organization_id = ?", itemID, claim.OrganizationID).
		First(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, err)
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing image file", err)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cannot read image file", err)
	}
	defer file.Close()

	cld, err := cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cloudinary init failed", err)
	}

	result, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder: "pos/items",
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Image upload failed", err)
	}

	if err := h.DB.Model(&item).Update("image_url", result.SecureURL).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save image URL", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"imageUrl": result.SecureURL})
}

// CreateVariant adds a variant under an item.
func (h *ItemHandler) CreateVariant(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	itemID, err := c.ParamsInt("itemId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var input model.CreateVariantInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var item model.Item
	if err := h.DB.Where("id = ? AND organization_id = ?", itemID, claim.OrganizationID).
		First(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ITEM_NOT_FOUND, err)
	}

	adjustment := decimal.Zero
	if input.PriceAdjustment != "" {
		adjustment, err = decimal.NewFromString(input.PriceAdjustment)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid price adjustment", err)
		}
	}

	variant := model.Variant{
		ItemID:          item.ID,
		Name:            input.Name,
		PriceAdjustment: adjustment,
		SKU:             input.SKU,
		IsActive:        true,
		SortOrder:       input.SortOrder,
	}
	if err := h.DB.Create(&variant).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create variant", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, variant)
}
