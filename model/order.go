package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"pos_manager/constants"
)

type Order struct {
	DTO
	OrganizationID uint    `gorm:"index;not null" json:"organizationId"`
	OrderNumber    string  `gorm:"unique;size:24;not null" json:"orderNumber"`
	CashierID      *uint   `json:"cashierId,omitempty"`
	CustomerName   string  `json:"customerName,omitempty"`
	CustomerEmail  string  `json:"customerEmail,omitempty"`
	CustomerPhone  string  `json:"customerPhone,omitempty"`

	// Monetary fields are fixed at creation. Only status, payment fields and
	// completed_at change afterwards, through Transition.
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"taxAmount"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"discountAmount"`
	TipAmount      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"tipAmount"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalAmount"`

	Status        string     `gorm:"default:pending;index" json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
	PaymentStatus string     `gorm:"default:unpaid" json:"paymentStatus"`
	Notes         string     `json:"notes,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem snapshots a cart line at checkout. Names and prices are
// denormalized so later catalog edits never rewrite history.
type OrderItem struct {
	DTO
	OrderID     uint            `gorm:"index;not null" json:"orderId"`
	ItemID      *uint           `json:"itemId,omitempty"`
	VariantID   *uint           `json:"variantId,omitempty"`
	ItemName    string          `gorm:"not null" json:"itemName"`
	VariantName string          `json:"variantName,omitempty"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unitPrice"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Notes       string          `json:"notes,omitempty"`

	Modifiers []OrderItemModifier `gorm:"foreignKey:OrderItemID" json:"modifiers,omitempty"`
}

type OrderItemModifier struct {
	DTO
	OrderItemID      uint            `gorm:"index;not null" json:"orderItemId"`
	ModifierOptionID *uint           `json:"modifierOptionId,omitempty"`
	ModifierName     string          `gorm:"not null" json:"modifierName"`
	OptionName       string          `gorm:"not null" json:"optionName"`
	PriceAdjustment  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"priceAdjustment"`
}

// orderTransitions lists every legal status edge. pending is initial,
// refunded and cancelled are terminal, paid can still move to refunded.
var orderTransitions = map[string][]string{
	constants.OrderPending:   {constants.OrderPaid, constants.OrderCancelled},
	constants.OrderPaid:      {constants.OrderRefunded},
	constants.OrderRefunded:  {},
	constants.OrderCancelled: {},
}

// CanTransition reports whether from → to is a legal order status edge.
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the order to the given status, keeping payment fields and
// completed_at in step. On an illegal edge the order is left untouched and
// ErrInvalidStateTransition is returned.
func (o *Order) Transition(to string, at time.Time) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, o.Status, to)
	}
	o.Status = to
	switch to {
	case constants.OrderPaid:
		o.PaymentStatus = constants.PaymentCompleted
		o.CompletedAt = &at
	case constants.OrderRefunded:
		o.PaymentStatus = constants.PaymentRefunded
	}
	return nil
}

type CheckoutInput struct {
	CartID        string `json:"cartId" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=cash card"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone string `json:"customerPhone"`
	Notes         string `json:"notes"`

	DiscountAmount string `json:"discountAmount"`
	// Exactly one tip mode: a percent preset (10/15/20 or any percentage) or
	// an absolute amount. Both empty means no tip.
	TipPercent string `json:"tipPercent"`
	TipAmount  string `json:"tipAmount"`
}
