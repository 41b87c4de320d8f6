package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pos_manager/constants"
	"pos_manager/helper"
	"pos_manager/model"
	"pos_manager/utils"
)

type ReportHandler struct {
	DB *gorm.DB
}

type salesSummary struct {
	TodayRevenue    float64 `json:"todayRevenue"`
	TodayOrders     int64   `json:"todayOrders"`
	TodayTips       float64 `json:"todayTips"`
	YesterdayRevenue float64 `json:"yesterdayRevenue"`
	YesterdayOrders int64   `json:"yesterdayOrders"`
	RevenueGrowth   float64 `json:"revenueGrowth"`
	OrdersGrowth    float64 `json:"ordersGrowth"`
}

type methodBreakdown struct {
	PaymentMethod string  `json:"paymentMethod"`
	Orders        int64   `json:"orders"`
	Revenue       float64 `json:"revenue"`
}

type topItem struct {
	ItemName string  `json:"itemName"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

// GetSalesSummary compares today's paid orders with yesterday's.
func (h *ReportHandler) GetSalesSummary(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	now := time.Now()
	todayStart, todayEnd := dayBounds(now)
	yesterdayStart, yesterdayEnd := dayBounds(now.AddDate(0, 0, -1))

	var summary salesSummary
	h.DB.Raw(`
        SELECT COALESCE(SUM(total_amount), 0) AS today_revenue,
               COUNT(*)                       AS today_orders,
               COALESCE(SUM(tip_amount), 0)   AS today_tips
        FROM orders
        WHERE organization_id = ? AND status = ?
          AND completed_at >= ? AND completed_at < ?
    `, claim.OrganizationID, constants.OrderPaid, todayStart, todayEnd).Scan(&summary)

	h.DB.Raw(`
        SELECT COALESCE(SUM(total_amount), 0) AS yesterday_revenue,
               COUNT(*)                       AS yesterday_orders
        FROM orders
        WHERE organization_id = ? AND status = ?
          AND completed_at >= ? AND completed_at < ?
    `, claim.OrganizationID, constants.OrderPaid, yesterdayStart, yesterdayEnd).Scan(&summary)

	summary.RevenueGrowth = utils.CalculateGrowth(summary.TodayRevenue, summary.YesterdayRevenue)
	summary.OrdersGrowth = utils.CalculateGrowth(float64(summary.TodayOrders), float64(summary.YesterdayOrders))

	var breakdown []methodBreakdown
	h.DB.Raw(`
        SELECT payment_method,
               COUNT(*)                       AS orders,
               COALESCE(SUM(total_amount), 0) AS revenue
        FROM orders
        WHERE organization_id = ? AND status = ?
          AND completed_at >= ? AND completed_at < ?
        GROUP BY payment_method
    `, claim.OrganizationID, constants.OrderPaid, todayStart, todayEnd).Scan(&breakdown)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"summary":   summary,
		"byMethod":  breakdown,
		"reportDay": todayStart.Format("2006-01-02"),
	})
}

// GetTopItems ranks items sold in a date range by quantity.
func (h *ReportHandler) GetTopItems(c *fiber.Ctx) error {
	claim, err := helper.GetClaimsFromToken(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.UNAUTHORIZED_MSG, err)
	}

	days := c.QueryInt("days", 7)
	if days < 1 || days > 365 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "days must be between 1 and 365", nil)
	}
	limit := c.QueryInt("limit", 10)
	since := time.Now().AddDate(0, 0, -days)

	var items []topItem
	h.DB.Raw(`
        SELECT oi.item_name,
               SUM(oi.quantity)             AS quantity,
               COALESCE(SUM(oi.subtotal), 0) AS revenue
        FROM order_items oi
        JOIN orders o ON o.id = oi.order_id
        WHERE o.organization_id = ? AND o.status = ? AND o.completed_at >= ?
        GROUP BY oi.item_name
        ORDER BY quantity DESC
        LIMIT ?
    `, claim.OrganizationID, constants.OrderPaid, since, limit).Scan(&items)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"sinceDays": days,
		"items":     items,
	})
}

// DailyReportHTML builds the body for the scheduled report email.
func (h *ReportHandler) DailyReportHTML(org *model.Organization, day time.Time) string {
	start, end := dayBounds(day)

	var summary salesSummary
	h.DB.Raw(`
        SELECT COALESCE(SUM(total_amount), 0) AS today_revenue,
               COUNT(*)                       AS today_orders,
               COALESCE(SUM(tip_amount), 0)   AS today_tips
        FROM orders
        WHERE organization_id = ? AND status = ?
          AND completed_at >= ? AND completed_at < ?
    `, org.ID, constants.OrderPaid, start, end).Scan(&summary)

	return fmt.Sprintf(
		"<h2>%s daily sales %s</h2><p>Orders: %d<br/>Revenue: %.2f %s<br/>Tips: %.2f %s</p>",
		org.Name, start.Format("2006-01-02"),
		summary.TodayOrders, summary.TodayRevenue, org.Currency,
		summary.TodayTips, org.Currency,
	)
}
