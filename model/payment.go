package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	DTO
	OrganizationID uint            `gorm:"index;not null" json:"organizationId"`
	OrderID        uint            `gorm:"index;not null" json:"orderId"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod  string          `gorm:"not null" json:"paymentMethod"`

	HelcimTransactionID string `json:"helcimTransactionId,omitempty"`
	CardLastFour        string `gorm:"size:4" json:"cardLastFour,omitempty"`
	CardBrand           string `json:"cardBrand,omitempty"`

	Status       string     `gorm:"default:pending" json:"status"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// PaymentSession holds the processor-issued token pair for one order and one
// amount. It lives only in Redis with the processor's expiry; the secret token
// never leaves the server tier and is never written to a database row.
type PaymentSession struct {
	OrderID       uint            `json:"orderId"`
	CheckoutToken string          `json:"checkoutToken"`
	SecretToken   string          `json:"secretToken"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type InitializePaymentInput struct {
	OrderID  uint   `json:"order_id" validate:"required,gt=0"`
	Amount   string `json:"amount" validate:"required"`
	Currency string `json:"currency" validate:"required,len=3"`
}

type InitializePaymentResult struct {
	CheckoutToken string `json:"checkoutToken"`
	SecretToken   string `json:"secretToken"`
}

type ValidatePaymentInput struct {
	OrderID       uint   `json:"order_id" validate:"required,gt=0"`
	TransactionID string `json:"transaction_id" validate:"required"`
	ResponseHash  string `json:"response_hash" validate:"required"`
	CardLastFour  string `json:"card_last_four" validate:"omitempty,len=4,numeric"`
	CardBrand     string `json:"card_brand"`
}

type ValidatePaymentResult struct {
	Success     bool   `json:"success"`
	PaymentID   uint   `json:"payment_id"`
	OrderStatus string `json:"order_status"`
}

// HelcimSession is the processor's initialize response.
type HelcimSession struct {
	CheckoutToken string `json:"checkoutToken"`
	SecretToken   string `json:"secretToken"`
}

// HelcimTransaction is the processor's card-transaction status record.
type HelcimTransaction struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"` // APPROVED, DECLINED, ...
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	CardNumber    string `json:"cardNumber,omitempty"`
	CardBrand     string `json:"cardType,omitempty"`
}

// Approved reports whether the processor settled the transaction.
func (t *HelcimTransaction) Approved() bool {
	return t.Status == "APPROVED"
}
