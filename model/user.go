package model

type UserProfile struct {
	DTO
	UserID         string `gorm:"index;not null" json:"userId"`
	OrganizationID uint   `gorm:"index;not null" json:"organizationId"`
	Role           string `gorm:"not null" json:"role"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Phone          string `json:"phone"`
	PinCode        string `json:"-"` // bcrypt hash
	IsActive       bool   `gorm:"default:true" json:"isActive"`
}

type CreateUserProfileInput struct {
	UserID    string `json:"userId" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=admin manager cashier"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	PinCode   string `json:"pinCode" validate:"omitempty,len=4,numeric"`
}

type UpdateUserProfileInput struct {
	Role      string `json:"role" validate:"omitempty,oneof=admin manager cashier"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	PinCode   string `json:"pinCode" validate:"omitempty,len=4,numeric"`
	IsActive  *bool  `json:"isActive"`
}

type VerifyPinInput struct {
	ProfileID uint   `json:"profileId" validate:"required,gt=0"`
	PinCode   string `json:"pinCode" validate:"required,len=4,numeric"`
}
