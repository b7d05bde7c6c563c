package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/gharkeseva/gharseva-api/internal/application/auth"
	"github.com/gharkeseva/gharseva-api/internal/application/booking"
	"github.com/gharkeseva/gharseva-api/internal/application/catalog"
	"github.com/gharkeseva/gharseva-api/internal/application/dashboard"
	"github.com/gharkeseva/gharseva-api/internal/application/directory"
	"github.com/gharkeseva/gharseva-api/internal/application/payment"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/internal/realtime"
	"github.com/gharkeseva/gharseva-api/pkg/logger"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	BookingUC   *booking.UseCase
	CatalogUC   *catalog.UseCase
	DashboardUC *dashboard.UseCase
	PaymentUC   *payment.UseCase
	Resolver    *directory.Resolver
	Bus         *realtime.Bus
	JWTSecret   string
	Log         *logger.Logger
}

// Router registers the API routes. Everything hangs under /api/auth, the
// prefix the frontend already speaks.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/auth")

	// Public: registration, login, catalog browsing
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/register", authHandler.RegisterCustomer)
	api.Post("/login", authHandler.LoginCustomer)
	api.Post("/vendor/register", authHandler.RegisterVendor)
	api.Post("/vendor/login", authHandler.LoginVendor)
	api.Post("/admin/register", authHandler.RegisterAdmin)
	api.Post("/admin/login", authHandler.LoginAdmin)

	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/services/:category", catalogHandler.ListByCategory)

	// Protected (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	bookingHandler := NewBookingHandler(deps.BookingUC)
	protected.Post("/bookings/create", bookingHandler.Create)
	protected.Get("/bookings/user/:userId", bookingHandler.ForCustomer)

	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	protected.Post("/payments/create-order", paymentHandler.CreateOrder)

	// Vendor-only
	vendorOnly := protected.Group("/vendor", RequireRole(entity.RoleVendor))
	vendorHandler := NewVendorHandler(deps.AuthUC, deps.BookingUC)
	vendorOnly.Post("/logout", authHandler.LogoutVendor)
	vendorOnly.Get("/profile/:vendorId", vendorHandler.Profile)
	vendorOnly.Get("/jobs/:vendorId", vendorHandler.Jobs)
	vendorOnly.Put("/update-job/:bookingId", vendorHandler.UpdateJob)
	vendorOnly.Get("/history/:vendorId", vendorHandler.History)

	// Admin-only
	adminOnly := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.Resolver, deps.DashboardUC)
	adminOnly.Get("/vendors", adminHandler.Vendors)
	adminOnly.Get("/stats", adminHandler.Stats)
	adminOnly.Post("/services/add", catalogHandler.AddPackage)

	// Websocket presence and notification endpoint
	wsHandler := NewWSHandler(deps.Bus, deps.Log)
	app.Use("/ws", wsHandler.Upgrade)
	app.Get("/ws", websocket.New(wsHandler.Serve))
}
