package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"pos_manager/cache"
	"pos_manager/constants"
	"pos_manager/helper"
	"pos_manager/model"
	"pos_manager/utils"
)

// Narrow seams the coordinator works through, so the handshake logic is
// testable without Postgres or Redis.
type paymentStore interface {
	GetOrder(orgID, orderID uint) (*model.Order, error)
	GetOrganization(orgID uint) (*model.Organization, error)
	CompletedPayment(orderID uint) (*model.Payment, error)
	CompleteCardPayment(order *model.Order, payment *model.Payment) error
}

type processorClient interface {
	InitializeSession(ctx context.Context, apiToken string, amount decimal.Decimal, currency string) (*model.HelcimSession, error)
	TransactionStatus(ctx context.Context, apiToken, transactionID string) (*model.HelcimTransaction, error)
}

type paymentSessions interface {
	SaveSession(ctx context.Context, session model.PaymentSession) error
	GetSession(ctx context.Context, orderID uint) (*model.PaymentSession, error)
	DeleteSession(ctx context.Context, orderID uint) error
}

// PaymentCoordinator bridges pending orders to the card processor. The order
// row's status, checked and updated inside one transaction, is the only
// serialization guard; no external locks.
type PaymentCoordinator struct {
	Store     paymentStore
	Processor processorClient
	Sessions  paymentSessions
	Feed      *OrderFeed
}

func NewPaymentCoordinator(store paymentStore, processor processorClient, sessions paymentSessions, feed *OrderFeed) *PaymentCoordinator {
	return &PaymentCoordinator{Store: store, Processor: processor, Sessions: sessions, Feed: feed}
}

// Initialize opens a processor checkout session for a pending order. The
// requested amount must match the order total exactly; the session is scoped
// to that amount and stored in Redis under the order id.
func (pc *PaymentCoordinator) Initialize(ctx context.Context, orgID uint, input model.InitializePaymentInput) (*model.InitializePaymentResult, error) {
	order, err := pc.Store.GetOrder(orgID, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status != constants.OrderPending {
		return nil, fmt.Errorf("%w: order %d is %s", model.ErrOrderNotPending, order.ID, order.Status)
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return nil, model.NewValidationError("invalid amount")
	}
	if !amount.Equal(order.TotalAmount) {
		return nil, model.NewValidationError("amount does not match order total")
	}

	org, err := pc.Store.GetOrganization(orgID)
	if err != nil {
		return nil, err
	}
	if org.HelcimAPIToken == "" {
		return nil, model.ErrOrgNotConfigured
	}

	session, err := pc.Processor.InitializeSession(ctx, org.HelcimAPIToken, amount, input.Currency)
	if err != nil {
		return nil, fmt.Errorf("initialize payment for order %d: %w", order.ID, err)
	}

	err = pc.Sessions.SaveSession(ctx, model.PaymentSession{
		OrderID:       order.ID,
		CheckoutToken: session.CheckoutToken,
		SecretToken:   session.SecretToken,
		Amount:        amount,
		Currency:      input.Currency,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("store payment session for order %d: %w", order.ID, err)
	}

	return &model.InitializePaymentResult{
		CheckoutToken: session.CheckoutToken,
		SecretToken:   session.SecretToken,
	}, nil
}

// Validate settles a card payment. The callback hash is recomputed from the
// retained secret token, then the processor's transaction record is fetched
// as the authoritative confirmation. Only after both pass does the order flip
// to paid, atomically with the payment row. Retried callbacks for an already
// paid order return the original outcome without a second payment row.
func (pc *PaymentCoordinator) Validate(ctx context.Context, orgID uint, input model.ValidatePaymentInput) (*model.ValidatePaymentResult, error) {
	order, err := pc.Store.GetOrder(orgID, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Status == constants.OrderPaid {
		return pc.existingOutcome(order)
	}
	if order.Status != constants.OrderPending {
		return nil, fmt.Errorf("%w: order %d is %s", model.ErrInvalidStateTransition, order.ID, order.Status)
	}

	session, err := pc.Sessions.GetSession(ctx, order.ID)
	if err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			// No live session means the callback cannot be checked against
			// anything; treat it like a forged hash.
			return nil, fmt.Errorf("%w: no session for order %d", model.ErrHashMismatch, order.ID)
		}
		return nil, err
	}

	if !VerifyResponseHash(input.TransactionID, session.SecretToken, input.ResponseHash) {
		return nil, fmt.Errorf("%w: order %d", model.ErrHashMismatch, order.ID)
	}

	org, err := pc.Store.GetOrganization(orgID)
	if err != nil {
		return nil, err
	}
	txn, err := pc.Processor.TransactionStatus(ctx, org.HelcimAPIToken, input.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("validate payment for order %d: %w", order.ID, err)
	}
	if !txn.Approved() {
		return nil, fmt.Errorf("%w: order %d, processor status %s", model.ErrPaymentNotApproved, order.ID, txn.Status)
	}

	payment := &model.Payment{
		OrganizationID:      orgID,
		OrderID:             order.ID,
		Amount:              session.Amount,
		PaymentMethod:       constants.MethodCard,
		HelcimTransactionID: input.TransactionID,
		CardLastFour:        input.CardLastFour,
		CardBrand:           input.CardBrand,
		Status:              constants.PaymentCompleted,
	}
	if err := pc.Store.CompleteCardPayment(order, payment); err != nil {
		if errors.Is(err, model.ErrInvalidStateTransition) {
			// Lost the CAS race. If the winner settled the order, report that
			// outcome instead of failing the retry.
			settled, reloadErr := pc.Store.GetOrder(orgID, order.ID)
			if reloadErr == nil && settled.Status == constants.OrderPaid {
				return pc.existingOutcome(settled)
			}
		}
		return nil, err
	}

	if err := pc.Sessions.DeleteSession(ctx, order.ID); err != nil {
		log.Printf("failed to drop payment session for order %d: %v", order.ID, err)
	}
	if pc.Feed != nil {
		pc.Feed.PublishOrderPaid(ctx, order)
	}

	return &model.ValidatePaymentResult{
		Success:     true,
		PaymentID:   payment.ID,
		OrderStatus: order.Status,
	}, nil
}

func (pc *PaymentCoordinator) existingOutcome(order *model.Order) (*model.ValidatePaymentResult, error) {
	payment, err := pc.Store.CompletedPayment(order.ID)
	if err != nil {
		return nil, err
	}
	result := &model.ValidatePaymentResult{Success: true, OrderStatus: order.Status}
	if payment != nil {
		result.PaymentID = payment.ID
	}
	return result, nil
}

// PaymentHandler exposes the coordinator over HTTP.
type PaymentHandler struct {
	Coordinator *PaymentCoordinator
}

// InitializePayment handles POST /payments/initialize.
func (h *PaymentHandler) InitializePayment(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var input model.InitializePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	result, err := h.Coordinator.Initialize(c.UserContext(), claim.OrganizationID, input)
	if err != nil {
		return paymentErrorResponse(c, err)
	}
	return c.JSON(result)
}

// ValidatePayment handles POST /payments/validate.
func (h *PaymentHandler) ValidatePayment(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var input model.ValidatePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	result, err := h.Coordinator.Validate(c.UserContext(), claim.OrganizationID, input)
	if err != nil {
		return paymentErrorResponse(c, err)
	}
	return c.JSON(result)
}

// paymentErrorResponse maps the payment failure taxonomy onto HTTP statuses.
// Processor-side failures surface a generic retry message; local validation
// failures keep their specific message.
func paymentErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrOrderNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	case model.IsValidation(err):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	case errors.Is(err, model.ErrOrgNotConfigured):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Payment processor is not configured for this organization", err)
	case errors.Is(err, model.ErrHashMismatch), errors.Is(err, model.ErrPaymentNotApproved):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.PAYMENT_FAILED, err)
	case errors.Is(err, model.ErrOrderNotPending), errors.Is(err, model.ErrInvalidStateTransition):
		return utils.ErrorResponse(c, fiber.StatusConflict, "Order is not in a payable state", err)
	default:
		log.Printf("payment error: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.PAYMENT_FAILED, nil)
	}
}
