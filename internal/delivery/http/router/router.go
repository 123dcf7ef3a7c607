// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"playden/internal/delivery/http/middleware"
	"playden/internal/delivery/http/router/handler"
	"playden/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	WalletHandler  *handler.WalletHandler
	SessionHandler *handler.SessionHandler
	RoomHandler    *handler.RoomHandler
	MenuHandler    *handler.MenuHandler
	OrderHandler   *handler.OrderHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	walletHandler  *handler.WalletHandler
	sessionHandler *handler.SessionHandler
	roomHandler    *handler.RoomHandler
	menuHandler    *handler.MenuHandler
	orderHandler   *handler.OrderHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		walletHandler:  params.WalletHandler,
		sessionHandler: params.SessionHandler,
		roomHandler:    params.RoomHandler,
		menuHandler:    params.MenuHandler,
		orderHandler:   params.OrderHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Payment gateway webhooks are authenticated by signature, not by JWT.
	e.POST("/webhooks/stripe", r.walletHandler.StripeWebhook)

	// Customer routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.authHandler.GetProfile)

		userGroup.GET("/wallet", r.walletHandler.GetWallet)
		userGroup.GET("/wallet/transactions", r.walletHandler.GetTransactions)
		userGroup.POST("/wallet/deposits", r.walletHandler.CreateDeposit)
		userGroup.POST("/wallet/deposits/confirm", r.walletHandler.ConfirmDeposit)

		userGroup.POST("/sessions", r.sessionHandler.StartSession)
		userGroup.POST("/sessions/:id/end", r.sessionHandler.EndSession)
		userGroup.GET("/sessions/active", r.sessionHandler.GetActiveSession)
		userGroup.GET("/sessions/:id", r.sessionHandler.GetSession)
		userGroup.GET("/sessions", r.sessionHandler.GetHistory)

		userGroup.POST("/orders", r.orderHandler.CreateOrder)
		userGroup.GET("/orders", r.orderHandler.GetMyOrders)
		userGroup.GET("/orders/:id", r.orderHandler.GetOrder)
	}

	// Catalog routes readable by any authenticated user
	catalogGroup := e.Group("", r.authMiddleware.Authenticate)
	{
		catalogGroup.GET("/rooms", r.roomHandler.ListRooms)
		catalogGroup.GET("/rooms/:id", r.roomHandler.GetRoom)
		catalogGroup.POST("/rooms/verify-qr", r.roomHandler.VerifyQR)

		catalogGroup.GET("/menu", r.menuHandler.ListItems)
		catalogGroup.GET("/menu/categories", r.menuHandler.ListCategories)
		catalogGroup.GET("/menu/:id", r.menuHandler.GetItem)
	}

	// Admin routes that require authentication and the admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		adminGroup.GET("/stats", r.adminHandler.GetStats)
		adminGroup.GET("/activity", r.adminHandler.GetActivity)
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.PATCH("/users/:id/active", r.adminHandler.SetUserActive)
		adminGroup.GET("/sessions", r.adminHandler.ListSessions)
		adminGroup.GET("/sessions/active", r.adminHandler.ListActiveSessions)

		adminGroup.POST("/rooms", r.roomHandler.CreateRoom)
		adminGroup.PATCH("/rooms/:id", r.roomHandler.UpdateRoom)
		adminGroup.DELETE("/rooms/:id", r.roomHandler.DeleteRoom)
		adminGroup.GET("/rooms/:id/qr", r.roomHandler.GetQRImage)

		adminGroup.POST("/menu", r.menuHandler.CreateItem)
		adminGroup.PATCH("/menu/:id", r.menuHandler.UpdateItem)
		adminGroup.DELETE("/menu/:id", r.menuHandler.DeleteItem)

		adminGroup.GET("/orders", r.orderHandler.ListOrders)
		adminGroup.PATCH("/orders/:id/status", r.orderHandler.UpdateStatus)
	}
}
