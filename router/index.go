package router

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"pos_manager/constants"
	"pos_manager/handler"
	"pos_manager/middleware"
	"pos_manager/validate"
)

type Handlers struct {
	Items         *handler.ItemHandler
	Modifiers     *handler.ModifierHandler
	Carts         *handler.CartHandler
	Orders        *handler.OrderHandler
	Payments      *handler.PaymentHandler
	Organizations *handler.OrganizationHandler
	Users         *handler.UserHandler
	Reports       *handler.ReportHandler
	Feed          *handler.OrderFeed
}

func SetupRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	item := v1.Group("/items", logger.New())
	item.Get("/", middleware.Protected(), h.Items.GetItems)
	item.Get("/categories", middleware.Protected(), h.Items.GetCategories)
	item.Get("/:itemId", middleware.Protected(), validate.GetById("itemId"), h.Items.GetItemById)
	item.Post("/", middleware.Protected(), validate.CreateItem(), h.Items.CreateItem)
	item.Put("/:itemId", middleware.Protected(), validate.GetById("itemId"), validate.UpdateItem(), h.Items.UpdateItem)
	item.Delete("/", middleware.Protected(), validate.Delete(), h.Items.DeleteItems)
	item.Post("/:itemId/image", middleware.Protected(), validate.GetById("itemId"), h.Items.UploadItemImage)
	item.Post("/:itemId/variants", middleware.Protected(), validate.GetById("itemId"), validate.CreateVariant(), h.Items.CreateVariant)
	item.Post("/:itemId/modifier-groups/:groupId", middleware.Protected(), h.Modifiers.AttachModifierGroup)
	item.Delete("/:itemId/modifier-groups/:groupId", middleware.Protected(), h.Modifiers.DetachModifierGroup)

	modifier := v1.Group("/modifier-groups", logger.New())
	modifier.Get("/", middleware.Protected(), h.Modifiers.GetModifierGroups)
	modifier.Post("/", middleware.Protected(), validate.CreateModifierGroup(), h.Modifiers.CreateModifierGroup)
	modifier.Post("/:groupId/options", middleware.Protected(), validate.GetById("groupId"), validate.CreateModifierOption(), h.Modifiers.CreateModifierOption)

	cart := v1.Group("/carts", logger.New())
	cart.Post("/", middleware.Protected(), h.Carts.CreateCart)
	cart.Get("/:cartId", middleware.Protected(), h.Carts.GetCart)
	cart.Post("/:cartId/lines", middleware.Protected(), validate.AddCartLine(), h.Carts.AddLine)
	cart.Put("/:cartId/lines/:lineId", middleware.Protected(), validate.UpdateCartLine(), h.Carts.UpdateLine)
	cart.Delete("/:cartId/lines/:lineId", middleware.Protected(), h.Carts.RemoveLine)
	cart.Delete("/:cartId", middleware.Protected(), h.Carts.ClearCart)

	order := v1.Group("/orders", logger.New())
	order.Post("/checkout", middleware.Protected(), validate.Checkout(), h.Orders.Checkout)
	order.Get("/", middleware.Protected(), h.Orders.GetOrders)
	order.Get("/:orderNumber", middleware.Protected(), h.Orders.GetOrderByNumber)
	order.Get("/:orderNumber/receipt", middleware.Protected(), h.Orders.GetReceipt)
	order.Post("/:orderId/cancel", middleware.Protected(), validate.GetById("orderId"), h.Orders.CancelOrder)
	order.Post("/:orderId/refund", middleware.Protected(), validate.GetById("orderId"), validate.RefundOrder(), h.Orders.RefundOrder)

	payment := v1.Group("/payments", logger.New())
	payment.Post("/initialize", middleware.Protected(), validate.InitializePayment(), h.Payments.InitializePayment)
	payment.Post("/validate", middleware.Protected(), validate.ValidatePayment(), h.Payments.ValidatePayment)

	org := v1.Group("/organization", logger.New())
	org.Get("/me", middleware.Protected(), h.Organizations.GetMyOrganization)
	org.Put("/me", middleware.Protected(), validate.UpdateOrganization(), h.Organizations.UpdateMyOrganization)
	org.Post("/processor", middleware.Protected(), validate.ConnectProcessor(), h.Organizations.ConnectProcessor)
	org.Delete("/processor", middleware.Protected(), middleware.RequireRole(constants.RoleAdmin), h.Organizations.DisconnectProcessor)

	user := v1.Group("/profiles", logger.New())
	user.Get("/", middleware.Protected(), h.Users.GetProfiles)
	user.Post("/", middleware.Protected(), validate.CreateProfile(), h.Users.CreateProfile)
	user.Put("/:profileId", middleware.Protected(), validate.GetById("profileId"), h.Users.UpdateProfile)
	user.Post("/verify-pin", middleware.Protected(), validate.VerifyPin(), h.Users.VerifyPin)

	report := v1.Group("/reports", logger.New())
	report.Get("/summary", middleware.Protected(), h.Reports.GetSalesSummary)
	report.Get("/top-items", middleware.Protected(), h.Reports.GetTopItems)

	v1.Get("/orders-feed", middleware.Protected(), middleware.WebsocketUpgrade(), websocket.New(h.Feed.Subscribe))
}
