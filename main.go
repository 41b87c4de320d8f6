package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"pos_manager/cache"
	"pos_manager/config"
	"pos_manager/database"
	"pos_manager/handler"
	"pos_manager/router"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // item images
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.Config("CORS_ORIGIN"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	db := database.ConnectDB()
	cache.ConnectRedis()

	carts := cache.NewCartStore(cache.Client)
	sessions := cache.NewPaymentSessionStore(cache.Client)
	feed := handler.NewOrderFeed(cache.Client)
	helcim := handler.NewHelcimClient()
	store := &database.OrderStore{DB: db}

	coordinator := &handler.PaymentCoordinator{
		Store:     store,
		Processor: helcim,
		Sessions:  sessions,
		Feed:      feed,
	}

	h := router.Handlers{
		Items:         &handler.ItemHandler{DB: db},
		Modifiers:     &handler.ModifierHandler{DB: db},
		Carts:         &handler.CartHandler{DB: db, Carts: carts},
		Orders:        &handler.OrderHandler{DB: db, Carts: carts, Feed: feed},
		Payments:      &handler.PaymentHandler{Coordinator: coordinator},
		Organizations: &handler.OrganizationHandler{DB: db, Processor: helcim},
		Users:         &handler.UserHandler{DB: db},
		Reports:       &handler.ReportHandler{DB: db},
		Feed:          feed,
	}

	handler.StartOrderExpiryScheduler(db)
	handler.StartDailyReportScheduler(db)

	router.SetupRoutes(app, h)

	port := config.Config("PORT")
	if port == "" {
		port = "8002"
	}
	log.Fatal(app.Listen(":" + port))
}
