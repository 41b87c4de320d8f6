package model

import "github.com/shopspring/decimal"

type Item struct {
	DTO
	OrganizationID uint            `gorm:"index;not null" json:"organizationId"`
	Name           string          `gorm:"not null" json:"name"`
	Description    string          `json:"description"`
	ItemType       string          `gorm:"not null" json:"itemType"`
	SKU            string          `json:"sku"`
	BasePrice      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"basePrice"`
	Cost           decimal.Decimal `gorm:"type:numeric(12,2)" json:"cost"`
	TaxRate        decimal.Decimal `gorm:"type:numeric(5,2);default:0" json:"taxRate"`
	Category       string          `gorm:"index" json:"category"`
	ImageURL       string          `json:"imageUrl"`
	IsActive       bool            `gorm:"default:true" json:"isActive"`
	TrackInventory bool            `gorm:"default:false" json:"trackInventory"`
	CurrentStock   int             `gorm:"default:0" json:"currentStock"`
	LowStockAlert  *int            `json:"lowStockAlert,omitempty"`

	Variants       []Variant           `gorm:"foreignKey:ItemID" json:"variants,omitempty"`
	ModifierGroups []ItemModifierGroup `gorm:"foreignKey:ItemID" json:"modifierGroups,omitempty"`
}

type Variant struct {
	DTO
	ItemID          uint            `gorm:"index;not null" json:"itemId"`
	Name            string          `gorm:"not null" json:"name"`
	PriceAdjustment decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"priceAdjustment"`
	SKU             string          `json:"sku"`
	IsActive        bool            `gorm:"default:true" json:"isActive"`
	SortOrder       int             `gorm:"default:0" json:"sortOrder"`
}

type ModifierGroup struct {
	DTO
	OrganizationID uint   `gorm:"index;not null" json:"organizationId"`
	Name           string `gorm:"not null" json:"name"`
	SelectionType  string `gorm:"not null" json:"selectionType"` // single, multiple
	MinSelections  int    `gorm:"default:0" json:"minSelections"`
	MaxSelections  *int   `json:"maxSelections,omitempty"`
	IsRequired     bool   `gorm:"default:false" json:"isRequired"`
	SortOrder      int    `gorm:"default:0" json:"sortOrder"`

	Options []ModifierOption `gorm:"foreignKey:ModifierGroupID" json:"options,omitempty"`
}

type ModifierOption struct {
	DTO
	ModifierGroupID uint            `gorm:"index;not null" json:"modifierGroupId"`
	Name            string          `gorm:"not null" json:"name"`
	PriceAdjustment decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"priceAdjustment"`
	IsDefault       bool            `gorm:"default:false" json:"isDefault"`
	IsActive        bool            `gorm:"default:true" json:"isActive"`
	SortOrder       int             `gorm:"default:0" json:"sortOrder"`
}

// ItemModifierGroup links an item to a modifier group with its own display
// position.
type ItemModifierGroup struct {
	DTO
	ItemID          uint `gorm:"index;not null" json:"itemId"`
	ModifierGroupID uint `gorm:"index;not null" json:"modifierGroupId"`
	SortOrder       int  `gorm:"default:0" json:"sortOrder"`

	ModifierGroup ModifierGroup `gorm:"foreignKey:ModifierGroupID" json:"modifierGroup"`
}

type CreateItemInput struct {
	Name           string  `json:"name" validate:"required,min=1,max=120"`
	Description    string  `json:"description"`
	ItemType       string  `json:"itemType" validate:"required"`
	SKU            string  `json:"sku"`
	BasePrice      string  `json:"basePrice" validate:"required"`
	Cost           string  `json:"cost"`
	TaxRate        string  `json:"taxRate"`
	Category       string  `json:"category"`
	TrackInventory bool    `json:"trackInventory"`
	CurrentStock   int     `json:"currentStock" validate:"gte=0"`
	LowStockAlert  *int    `json:"lowStockAlert"`
}

type UpdateItemInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	ItemType      string `json:"itemType"`
	SKU           string `json:"sku"`
	BasePrice     string `json:"basePrice"`
	Cost          string `json:"cost"`
	TaxRate       string `json:"taxRate"`
	Category      string `json:"category"`
	IsActive      *bool  `json:"isActive"`
	CurrentStock  *int   `json:"currentStock"`
	LowStockAlert *int   `json:"lowStockAlert"`
}

type CreateVariantInput struct {
	Name            string `json:"name" validate:"required"`
	PriceAdjustment string `json:"priceAdjustment"`
	SKU             string `json:"sku"`
	SortOrder       int    `json:"sortOrder"`
}

type CreateModifierGroupInput struct {
	Name          string `json:"name" validate:"required"`
	SelectionType string `json:"selectionType" validate:"required,oneof=single multiple"`
	MinSelections int    `json:"minSelections" validate:"gte=0"`
	MaxSelections *int   `json:"maxSelections"`
	IsRequired    bool   `json:"isRequired"`
	SortOrder     int    `json:"sortOrder"`
}

type CreateModifierOptionInput struct {
	Name            string `json:"name" validate:"required"`
	PriceAdjustment string `json:"priceAdjustment"`
	IsDefault       bool   `json:"isDefault"`
	SortOrder       int    `json:"sortOrder"`
}

type AttachModifierGroupInput struct {
	SortOrder int `json:"sortOrder"`
}
