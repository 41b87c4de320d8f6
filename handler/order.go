package handler

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pos_manager/cache"
	"pos_manager/config"
	"pos_manager/constants"
	"pos_manager/helper"
	"pos_manager/model"
	"pos_manager/utils"
)

// orderNumberAttempts bounds the regenerate-and-retry loop on an order number
// unique violation.
const orderNumberAttempts = 3

type OrderHandler struct {
	DB    *gorm.DB
	Carts *cache.CartStore
	Feed  *OrderFeed
}

// Checkout turns a cart session into a persisted order. The order, its item
// snapshots and their modifier snapshots are written in one transaction; cash
// orders settle inside that same transaction, card orders stay pending for
// the payment coordinator.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	var input model.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	cart, err := h.Carts.GetCart(c.UserContext(), claim.OrganizationID, input.CartID)
	if err != nil {
		if errors.Is(err, cache.ErrCartNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CART_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load cart", err)
	}
	if len(cart.Lines) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Cart is empty", nil)
	}

	subtotal, err := helper.CartSubtotal(cart.Lines)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}
	tax, err := helper.CartTax(cart.Lines)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}
	discount, err := helper.ParseAmount(input.DiscountAmount, "discount")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}
	tip, err := helper.ResolveTip(subtotal, input.TipPercent, input.TipAmount)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}
	total, err := helper.OrderTotal(subtotal, tax, discount, tip)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
	}

	now := time.Now()
	order := model.Order{
		OrganizationID: claim.OrganizationID,
		CashierID:      &claim.ProfileID,
		CustomerName:   input.CustomerName,
		CustomerEmail:  input.CustomerEmail,
		CustomerPhone:  input.CustomerPhone,
		Subtotal:       subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		TipAmount:      tip,
		TotalAmount:    total,
		Status:         constants.OrderPending,
		PaymentMethod:  input.PaymentMethod,
		PaymentStatus:  constants.PaymentUnpaid,
		Notes:          input.Notes,
	}
	if claim.ProfileID == 0 {
		order.CashierID = nil
	}
	if input.PaymentMethod == constants.MethodCash {
		order.Status = constants.OrderPaid
		order.PaymentStatus = constants.PaymentCompleted
		order.CompletedAt = &now
	}

	items := make([]model.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lineSubtotal, err := helper.LineSubtotal(line)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), err)
		}
		item := model.OrderItem{
			ItemID:      utils.Ptr(line.ItemID),
			VariantID:   line.VariantID,
			ItemName:    line.ItemName,
			VariantName: line.VariantName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    lineSubtotal,
			Notes:       line.Notes,
		}
		for _, m := range line.Modifiers {
			item.Modifiers = append(item.Modifiers, model.OrderItemModifier{
				ModifierOptionID: utils.Ptr(m.OptionID),
				ModifierName:     m.Name,
				OptionName:       m.OptionName,
				PriceAdjustment:  m.PriceAdjustment,
			})
		}
		items = append(items, item)
	}
	order.Items = items

	// Order number collisions are retryable: regenerate and try again, a few
	// times at most.
	var createErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = helper.GenerateOrderNumber(now)
		createErr = h.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			if input.PaymentMethod == constants.MethodCash {
				payment := model.Payment{
					OrganizationID: claim.OrganizationID,
					OrderID:        order.ID,
					Amount:         total,
					PaymentMethod:  constants.MethodCash,
					Status:         constants.PaymentCompleted,
					ProcessedAt:    &now,
				}
				if err := tx.Create(&payment).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if createErr == nil {
			break
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			break
		}
		order.ID = 0
	}
	if createErr != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create order", createErr)
	}

	if err := h.Carts.DeleteCart(c.UserContext(), claim.OrganizationID, cart.ID); err != nil {
		log.Printf("failed to drop cart %s after checkout: %v", cart.ID, err)
	}

	if order.Status == constants.OrderPaid {
		if h.Feed != nil {
			h.Feed.PublishOrderPaid(c.UserContext(), &order)
		}
		h.emailReceipt(&order)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

// GetOrders lists the organization's orders, newest first. When the cashier
// scope policy is "own", cashiers only see orders they rang up.
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	query := h.DB.Model(&model.Order{}).
		Where("organization_id = ?", claim.OrganizationID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if claim.Role == constants.RoleCashier &&
		config.Config("CASHIER_ORDER_SCOPE") == constants.OrderScopeOwn {
		query = query.Where("cashier_id = ?", claim.ProfileID)
	}

	var totalCount int64
	query.Count(&totalCount)

	limit := c.QueryInt("limit", 20)
	page := c.QueryInt("page", 1)

	var orders []model.Order
	if err := utils.ApplyPagination(query, &limit, &page).
		Preload("Items").
		Preload("Items.Modifiers").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load orders", err)
	}

	return c.JSON(model.ResponseCustom{
		Rows:       orders,
		Limit:      &limit,
		Page:       &page,
		TotalCount: totalCount,
	})
}

// GetOrderByNumber returns one order with its item and payment detail.
func (h *OrderHandler) GetOrderByNumber(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	orderNumber := c.Params("orderNumber")

	var order model.Order
	if err := h.DB.
		Preload("Items").
		Preload("Items.Modifiers").
		Where("order_number = ? AND organization_id = ?", orderNumber, claim.OrganizationID).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	var payments []model.Payment
	h.DB.Where("order_id = ?", order.ID).Order("id").Find(&payments)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order":    order,
		"payments": payments,
	})
}

// GetReceipt renders the receipt payload for a settled order, including the
// QR code used for counter lookups.
func (h *OrderHandler) GetReceipt(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	orderNumber := c.Params("orderNumber")

	var order model.Order
	if err := h.DB.
		Preload("Items").
		Preload("Items.Modifiers").
		Where("order_number = ? AND organization_id = ?", orderNumber, claim.OrganizationID).
		First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	qrBase64 := ""
	qrBytes, err := utils.GenerateQRCode(order.OrderNumber, 400)
	if err != nil {
		log.Printf("failed to build QR for order %s: %v", order.OrderNumber, err)
	} else {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderNumber":    order.OrderNumber,
		"status":         order.Status,
		"subtotal":       order.Subtotal,
		"taxAmount":      order.TaxAmount,
		"discountAmount": order.DiscountAmount,
		"tipAmount":      order.TipAmount,
		"totalAmount":    order.TotalAmount,
		"paymentMethod":  order.PaymentMethod,
		"completedAt":    order.CompletedAt,
		"items":          order.Items,
		"qrCode":         qrBase64,
	})
}

// CancelOrder abandons a pending order. The status guard in the update keeps
// a concurrent payment validation from being overwritten.
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	orderID, err := c.ParamsInt("orderId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	res := h.DB.Model(&model.Order{}).
		Where("id = ? AND organization_id = ? AND status = ?",
			orderID, claim.OrganizationID, constants.OrderPending).
		Update("status", constants.OrderCancelled)
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to cancel order", res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Order is not pending",
			fmt.Errorf("%w: order %d", model.ErrInvalidStateTransition, orderID))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderId": orderID,
		"status":  constants.OrderCancelled,
	})
}

// RefundOrder marks a paid order refunded together with its payment record.
// Admin or manager only; the money movement itself is handled at the
// processor dashboard.
func (h *OrderHandler) RefundOrder(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}
	if claim.Role != constants.RoleAdmin && claim.Role != constants.RoleManager {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}
	orderID, err := c.ParamsInt("orderId")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Order{}).
			Where("id = ? AND organization_id = ? AND status = ?",
				orderID, claim.OrganizationID, constants.OrderPaid).
			Updates(map[string]interface{}{
				"status":         constants.OrderRefunded,
				"payment_status": constants.PaymentRefunded,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order %d is not paid", model.ErrInvalidStateTransition, orderID)
		}
		return tx.Model(&model.Payment{}).
			Where("order_id = ? AND status = ?", orderID, constants.PaymentCompleted).
			Update("status", constants.PaymentRefunded).Error
	})
	if err != nil {
		if errors.Is(err, model.ErrInvalidStateTransition) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Order is not refundable", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to refund order", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderId": orderID,
		"status":  constants.OrderRefunded,
	})
}

func (h *OrderHandler) emailReceipt(order *model.Order) {
	if order.CustomerEmail == "" {
		return
	}

	var org model.Organization
	if err := h.DB.First(&org, "id = ?", order.OrganizationID).Error; err != nil {
		log.Printf("failed to load organization for receipt: %v", err)
		return
	}

	lines := make([]utils.ReceiptLine, 0, len(order.Items))
	for _, item := range order.Items {
		name := item.ItemName
		if item.VariantName != "" {
			name += " (" + item.VariantName + ")"
		}
		lines = append(lines, utils.ReceiptLine{
			Name:     name,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal.StringFixed(2),
		})
	}

	qrBase64 := ""
	if qrBytes, err := utils.GenerateQRCode(order.OrderNumber, 300); err == nil {
		qrBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString(qrBytes)
	}

	utils.SendReceiptEmail(order.CustomerEmail, utils.ReceiptData{
		OrderNumber:   order.OrderNumber,
		StoreName:     org.Name,
		Lines:         lines,
		Subtotal:      order.Subtotal.StringFixed(2),
		Tax:           order.TaxAmount.StringFixed(2),
		Discount:      order.DiscountAmount.StringFixed(2),
		Tip:           order.TipAmount.StringFixed(2),
		Total:         order.TotalAmount.StringFixed(2),
		PaymentMethod: order.PaymentMethod,
		QRBase64:      qrBase64,
	})
}
