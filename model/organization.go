package model

import "time"

type Organization struct {
	DTO
	Name         string `gorm:"not null" json:"name"`
	Slug         string `gorm:"unique;not null" json:"slug"`
	BusinessType string `json:"businessType"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `gorm:"default:US" json:"country"`
	Timezone     string `gorm:"default:America/New_York" json:"timezone"`
	Currency     string `gorm:"default:USD" json:"currency"`

	// Helcim merchant credential. The API token is the long-lived secret the
	// payment coordinator exchanges for per-order checkout sessions; it never
	// appears in responses or logs.
	HelcimMerchantID  string     `json:"helcimMerchantId"`
	HelcimAPIToken    string     `json:"-"`
	HelcimConnectedAt *time.Time `json:"helcimConnectedAt,omitempty"`

	Status string `gorm:"default:active" json:"status"`
}

type UpdateOrganizationInput struct {
	Name         string `json:"name" validate:"omitempty,min=2,max=120"`
	BusinessType string `json:"businessType"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country" validate:"omitempty,len=2"`
	Timezone     string `json:"timezone"`
	Currency     string `json:"currency" validate:"omitempty,len=3"`
}

type ConnectProcessorInput struct {
	MerchantID string `json:"merchantId" validate:"required"`
	APIToken   string `json:"apiToken" validate:"required,min=16"`
}
