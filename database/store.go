package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pos_manager/constants"
	"pos_manager/model"
)

// OrderStore is the data-access handle the payment coordinator works through.
// Constructed once in main and injected; handlers never reach for a global.
type OrderStore struct {
	DB *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{DB: db}
}

// GetOrder loads an order scoped to the organization.
func (s *OrderStore) GetOrder(orgID, orderID uint) (*model.Order, error) {
	var order model.Order
	err := s.DB.Where("id = ? AND organization_id = ?", orderID, orgID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) GetOrganization(orgID uint) (*model.Organization, error) {
	var org model.Organization
	if err := s.DB.First(&org, "id = ?", orgID).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// CompletedPayment returns the completed payment row for an order, if any.
func (s *OrderStore) CompletedPayment(orderID uint) (*model.Payment, error) {
	var payment model.Payment
	err := s.DB.Where("order_id = ? AND status = ?", orderID, constants.PaymentCompleted).
		Order("id").First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// CompleteCardPayment flips the order to paid and writes the payment record
// in one transaction. The status update is guarded by the current status, so
// two concurrent validations can never both settle the same order: the loser
// sees zero affected rows and gets ErrInvalidStateTransition.
func (s *OrderStore) CompleteCardPayment(order *model.Order, payment *model.Payment) error {
	now := time.Now()
	return s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", order.ID, constants.OrderPending).
			Updates(map[string]interface{}{
				"status":         constants.OrderPaid,
				"payment_status": constants.PaymentCompleted,
				"payment_method": constants.MethodCard,
				"completed_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return model.ErrInvalidStateTransition
		}

		payment.ProcessedAt = &now
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		order.Status = constants.OrderPaid
		order.PaymentStatus = constants.PaymentCompleted
		order.PaymentMethod = constants.MethodCard
		order.CompletedAt = &now
		return nil
	})
}
