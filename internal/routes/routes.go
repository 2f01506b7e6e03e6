// Package routes assembles the fiber application: global middleware, the
// public storefront, per-role sign-in and the signed-in feature routes.
package routes

import (
	"errors"
	"time"

	"orusweb/internal/config"
	"orusweb/internal/handlers"
	"orusweb/internal/middleware"
	"orusweb/internal/session"
	"orusweb/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// bodyLimit leaves room for a KYC submission with a few documents.
const bodyLimit = 16 << 20

// NewApp creates the fiber app with every route mounted.
func NewApp(deps *handlers.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "orusweb",
		BodyLimit:    bodyLimit,
		ErrorHandler: errorHandler(deps.Logger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	SetupRoutes(app, deps)
	return app
}

// errorHandler answers errors no handler turned into a response, such as
// unknown routes, in the same envelope.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		} else {
			log.Error("unhandled request error", zap.String("path", c.Path()), zap.Error(err))
		}
		message := "something went wrong, please try again"
		if fe != nil {
			message = fe.Message
		}
		return c.Status(code).JSON(utils.Envelope{Error: message, Effects: utils.Effects(c).Snapshot()})
	}
}

// authLimiter throttles credential guessing per client IP.
func authLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(utils.Envelope{
				Error:   "Too many requests. Please try again later.",
				Effects: utils.Effects(c).Snapshot(),
			})
		},
	})
}

func SetupRoutes(app *fiber.App, deps *handlers.Deps) {
	app.Get("/health", deps.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	sessions := middleware.NewSessionMiddleware(
		deps.Config.SessionSecret, deps.Config.SessionTTL, config.IsProduction(), deps.Logger)
	api := app.Group("/api", sessions.Handler)

	setupStorefrontRoutes(api, handlers.NewStorefrontHandler(deps))

	for _, role := range []session.Role{session.RoleUser, session.RoleSeller} {
		setupAuthRoutes(api.Group("/auth/"+string(role)), handlers.NewAuthHandler(deps, role))

		gate := middleware.NewAuthMiddleware(deps.Repo, role, deps.Logger)
		protected := api.Group("/"+string(role), gate.Handler)
		setupAccountRoutes(protected, deps, role)

		if role == session.RoleUser {
			setupUserRoutes(protected, deps)
		} else {
			setupSellerRoutes(protected, handlers.NewMerchantHandler(deps))
		}
	}
}

func setupStorefrontRoutes(router fiber.Router, h *handlers.StorefrontHandler) {
	router.Get("/home", h.Home)
	router.Get("/settings", h.Settings)
	router.Get("/categories", h.Categories)
	router.Get("/products", h.Products)
	router.Get("/products/:slug", h.Product)

	cart := router.Group("/cart")
	cart.Get("/", h.Cart)
	cart.Post("/", h.AddToCart)
	cart.Patch("/:id", h.SetQuantity)
	cart.Delete("/:id", h.RemoveFromCart)

	router.Get("/wishlist", h.Wishlist)
	router.Post("/wishlist/:slug", h.ToggleWishlist)
}

func setupAuthRoutes(router fiber.Router, h *handlers.AuthHandler) {
	router.Post("/login", authLimiter(), h.Login)
	router.Post("/register", authLimiter(), h.Register)
	router.Post("/2fa", authLimiter(), h.VerifyTwoFactor)
	router.Post("/forgot-password", authLimiter(), h.ForgotPassword)
	router.Post("/logout", h.Logout)
}

// setupAccountRoutes mounts what users and sellers share.
func setupAccountRoutes(router fiber.Router, deps *handlers.Deps, role session.Role) {
	dashboard := handlers.NewDashboardHandler(deps, role)
	router.Get("/dashboard", dashboard.Dashboard)
	router.Get("/transactions", dashboard.Transactions)
	router.Post("/wallet/currency", dashboard.SelectCurrency)

	profile := handlers.NewProfileHandler(deps, role)
	router.Get("/profile", profile.Profile)
	router.Put("/profile", profile.UpdateProfile)
	router.Post("/profile/password", profile.ChangePassword)
	router.Get("/kyc", profile.KYC)
	router.Post("/kyc", profile.SubmitKYC)

	auth := handlers.NewAuthHandler(deps, role)
	router.Get("/2fa/setup", auth.TwoFactorSetup)
	router.Post("/2fa/enable", auth.EnableTwoFactor)
	router.Post("/2fa/disable", auth.DisableTwoFactor)

	withdraw := handlers.NewWithdrawHandler(deps, role)
	w := router.Group("/withdraw")
	w.Get("/", withdraw.Load)
	w.Post("/preview", withdraw.Preview)
	w.Post("/next", withdraw.Next)
	w.Post("/back", withdraw.Back)
	w.Delete("/", withdraw.Cancel)
	w.Post("/confirm", withdraw.Submit)
}

func setupUserRoutes(router fiber.Router, deps *handlers.Deps) {
	deposit := handlers.NewDepositHandler(deps)
	router.Get("/deposit", deposit.Load)
	router.Post("/deposit/preview", deposit.Preview)
	router.Post("/deposit", deposit.Submit)

	transfer := handlers.NewTransferHandler(deps)
	router.Get("/transfer", transfer.Load)
	router.Get("/transfer/recipients", transfer.Search)
	router.Post("/transfer/preview", transfer.Preview)
	router.Post("/transfer", transfer.Submit)

	payment := handlers.NewPaymentHandler(deps)
	router.Get("/payment", payment.Load)
	router.Post("/payment/scan", payment.Scan)
	router.Get("/payment/merchants/:uid", payment.Merchant)
	router.Post("/payment/preview", payment.Preview)
	router.Post("/payment", payment.Submit)

	bill := handlers.NewBillHandler(deps)
	router.Get("/bills", bill.Load)
	router.Post("/bills/preview", bill.Preview)
	router.Post("/bills", bill.Submit)

	gift := handlers.NewGiftCardHandler(deps)
	router.Get("/gift-cards", gift.Load)
	router.Post("/gift-cards/preview", gift.Preview)
	router.Post("/gift-cards", gift.Buy)
	router.Post("/gift-cards/redeem", gift.Redeem)

	cards := handlers.NewVirtualCardHandler(deps)
	router.Get("/virtual-cards", cards.Load)
	router.Post("/virtual-cards/preview", cards.Preview)
	router.Post("/virtual-cards", cards.Create)
	router.Post("/virtual-cards/:id/top-up", cards.TopUp)
	router.Post("/virtual-cards/:id/freeze", cards.Freeze)
	router.Post("/virtual-cards/:id/unfreeze", cards.Unfreeze)

	links := handlers.NewPaymentLinkHandler(deps)
	router.Get("/payment-links", links.Load)
	router.Post("/payment-links", links.Create)
	router.Delete("/payment-links/:id", links.Delete)

	checkout := handlers.NewCheckoutHandler(deps)
	router.Get("/checkout", checkout.Load)
	router.Post("/checkout/next", checkout.Next)
	router.Post("/checkout/back", checkout.Back)
	router.Delete("/checkout", checkout.Cancel)
	router.Post("/checkout/confirm", checkout.Submit)
	router.Get("/orders", checkout.Orders)
}

func setupSellerRoutes(router fiber.Router, h *handlers.MerchantHandler) {
	router.Get("/orders", h.Orders)
	router.Patch("/orders/:id/status", h.UpdateOrderStatus)
	router.Get("/products", h.Products)
}
