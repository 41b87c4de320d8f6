package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pos_manager/constants"
	"pos_manager/helper"
	"pos_manager/model"
	"pos_manager/utils"
)

type OrganizationHandler struct {
	DB        *gorm.DB
	Processor processorClient
}

// GetMyOrganization returns the caller's organization.
func (h *OrganizationHandler) GetMyOrganization(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var org model.Organization
	if err := h.DB.First(&org, "id = ?", claim.OrganizationID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORG_NOT_FOUND, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, org)
}

// UpdateMyOrganization applies profile edits; a name change refreshes the
// slug.
func (h *OrganizationHandler) UpdateMyOrganization(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	if claim.Role != constants.RoleAdmin && claim.Role != constants.RoleManager {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	var input model.UpdateOrganizationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var org model.Organization
	if err := h.DB.First(&org, "id = ?", claim.OrganizationID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORG_NOT_FOUND, err)
	}

	renamed := input.Name != "" && input.Name != org.Name
	if err := copier.CopyWithOption(&org, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to apply update", err)
	}
	if renamed {
		org.Slug = helper.GenerateUniqueOrgSlug(h.DB, org.Name)
	}

	if err := h.DB.Save(&org).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update organization", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, org)
}

// ConnectProcessor saves the Helcim merchant credential after proving it
// works with a minimal initialize call. The token is stored server-side only
// and never echoed back.
func (h *OrganizationHandler) ConnectProcessor(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	if claim.Role != constants.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	var input model.ConnectProcessorInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var org model.Organization
	if err := h.DB.First(&org, "id = ?", claim.OrganizationID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORG_NOT_FOUND, err)
	}

	// Smoke-test the credential before persisting it.
	if _, err := h.Processor.InitializeSession(c.UserContext(), input.APIToken,
		decimal.NewFromInt(1), org.Currency); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Credential check failed with the processor", err)
	}

	now := time.Now()
	org.HelcimMerchantID = input.MerchantID
	org.HelcimAPIToken = input.APIToken
	org.HelcimConnectedAt = &now
	if err := h.DB.Save(&org).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to save credential", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"connected":   true,
		"connectedAt": now,
	})
}

// DisconnectProcessor removes the merchant credential; card checkout becomes
// unavailable until a new one is connected.
func (h *OrganizationHandler) DisconnectProcessor(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	if claim.Role != constants.RoleAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	if err := h.DB.Model(&model.Organization{}).
		Where("id = ?", claim.OrganizationID).
		Updates(map[string]interface{}{
			"helcim_merchant_id":  "",
			"helcim_api_token":    "",
			"helcim_connected_at": nil,
		}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to disconnect processor", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"connected": false})
}
