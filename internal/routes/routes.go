package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/templhub/internal/config"
	"github.com/example/templhub/internal/handlers"
	"github.com/example/templhub/internal/middleware"
	"github.com/example/templhub/internal/services"
	"github.com/example/templhub/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	users := store.NewUserStore(db)
	templates := store.NewTemplateStore(db)
	purchases := store.NewPurchaseStore(db)

	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	gateway := services.NewHotpayClient(cfg)
	checkoutService := services.NewCheckoutService(purchases, templates, gateway)
	reconcileService := services.NewReconcileService(purchases, gateway, telegramService)

	authHandler := handlers.NewAuthHandler(users, cfg)
	templateHandler := handlers.NewTemplateHandler(templates)
	orderHandler := handlers.NewOrderHandler(checkoutService, reconcileService)
	hotpayHandler := handlers.NewHotpayHandler(reconcileService)
	purchaseHandler := handlers.NewPurchaseHandler(purchases)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Template catalog
	templatesGroup := api.Group("/templates")
	templatesGroup.Get("/", templateHandler.ListTemplates)
	templatesGroup.Post("/", templateHandler.CreateTemplate)
	templatesGroup.Get("/:slug", templateHandler.GetTemplate)
	templatesGroup.Put("/:id", templateHandler.UpdateTemplate)
	templatesGroup.Delete("/:id", templateHandler.DeleteTemplate)

	// Gateway callback
	api.Post("/hotpay/webhook", middleware.WebhookAuthMiddleware(cfg.HotpayWebhookSecret), hotpayHandler.Webhook)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Post("/orders", orderHandler.CreateOrder)
	protected.Get("/orders/verify", orderHandler.VerifyOrder)
	protected.Get("/purchases", purchaseHandler.ListPurchases)
}
