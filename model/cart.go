package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is an ephemeral checkout session held in Redis. It is destroyed on
// checkout or clear; nothing here is a durable row.
type Cart struct {
	ID             string     `json:"id"`
	OrganizationID uint       `json:"organizationId"`
	Lines          []CartLine `json:"lines"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type CartLine struct {
	LineID      string          `json:"lineId"`
	ItemID      uint            `json:"itemId"`
	VariantID   *uint           `json:"variantId,omitempty"`
	ItemName    string          `json:"itemName"`
	VariantName string          `json:"variantName,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	TaxRate     decimal.Decimal `json:"taxRate"` // percentage, e.g. 8 means 8%
	Modifiers   []CartModifier  `json:"modifiers,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

type CartModifier struct {
	GroupID         uint            `json:"groupId"`
	OptionID        uint            `json:"optionId"`
	Name            string          `json:"name"`
	OptionName      string          `json:"optionName"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
}

type AddCartLineInput struct {
	ItemID    uint                   `json:"itemId" validate:"required,gt=0"`
	VariantID *uint                  `json:"variantId"`
	Quantity  int                    `json:"quantity" validate:"required,gte=1"`
	Modifiers []CartModifierSelection `json:"modifiers" validate:"dive"`
	Notes     string                 `json:"notes"`
}

type CartModifierSelection struct {
	GroupID  uint `json:"groupId" validate:"required,gt=0"`
	OptionID uint `json:"optionId" validate:"required,gt=0"`
}

type UpdateCartLineInput struct {
	Quantity int `json:"quantity"` // <= 0 removes the line
}

// CartTotals is the pricing preview returned with every cart read.
type CartTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
