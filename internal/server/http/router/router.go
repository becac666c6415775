package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/waytodrive/orderadmin/internal/server/http/handlers"
	"github.com/waytodrive/orderadmin/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.AdminFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	historyHandler := handlers.NewHistoryHandler(facade)

	api := engine.Group("/api")
	admin := api.Group("/admin")
	admin.POST("/login", authHandler.Login)

	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AuthRequired(facade))
	adminAuth.GET("/orders", orderHandler.List)
	adminAuth.POST("/orders", orderHandler.Create)
	adminAuth.POST("/orders/:id/status", orderHandler.UpdateStatus)
	adminAuth.POST("/refresh", orderHandler.Refresh)
	adminAuth.GET("/orders/:id/history", historyHandler.ListForOrder)
	adminAuth.GET("/history", historyHandler.List)
	adminAuth.GET("/statuses", orderHandler.StatusOptions)
	adminAuth.GET("/feed", orderHandler.FeedStatus)

	return engine
}
