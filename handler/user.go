package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pos_manager/constants"
	"pos_manager/helper"
	"pos_manager/model"
	"pos_manager/utils"
)

type UserHandler struct {
	DB *gorm.DB
}

func (h *UserHandler) GetProfiles(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var profiles []model.UserProfile
	if err := h.DB.Where("organization_id = ?", claim.OrganizationID).
		Order("role, last_name, first_name").
		Find(&profiles).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load profiles", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, profiles)
}

func (h *UserHandler) CreateProfile(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	if claim.Role != constants.RoleAdmin && claim.Role != constants.RoleManager {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	var input model.CreateUserProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	profile := model.UserProfile{
		UserID:         input.UserID,
		OrganizationID: claim.OrganizationID,
		Role:           input.Role,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Phone:          input.Phone,
		IsActive:       true,
	}
	if input.PinCode != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.PinCode), 10)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash PIN", err)
		}
		profile.PinCode = string(hash)
	}

	if err := h.DB.Create(&profile).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create profile", err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	if claim.Role != constants.RoleAdmin && claim.Role != constants.RoleManager {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}
	profileID, err := c.ParamsInt("profileId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var input model.UpdateUserProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var profile model.UserProfile
	if err := h.DB.Where("id = ? AND organization_id = ?", profileID, claim.OrganizationID).
		First(&profile).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", err)
	}

	if err := copier.CopyWithOption(&profile, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to apply update", err)
	}
	if input.PinCode != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.PinCode), 10)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to hash PIN", err)
		}
		profile.PinCode = string(hash)
	}
	if input.IsActive != nil {
		profile.IsActive = *input.IsActive
	}

	if err := h.DB.Save(&profile).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update profile", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, profile)
}

// VerifyPin checks a cashier's PIN for terminal unlock.
func (h *UserHandler) VerifyPin(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var input model.VerifyPinInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	var profile model.UserProfile
	if err := h.DB.Where("id = ? AND organization_id = ? AND is_active = true",
		input.ProfileID, claim.OrganizationID).First(&profile).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Profile not found", err)
	}

	if profile.PinCode == "" ||
		bcrypt.CompareHashAndPassword([]byte(profile.PinCode), []byte(input.PinCode)) != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Incorrect PIN", nil)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"profileId": profile.ID,
		"verified":  true,
	})
}
