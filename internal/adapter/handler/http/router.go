package http

import (
	"github.com/gin-gonic/gin"
	"github.com/procuramart/backoffice/internal/adapter/config"
	"github.com/procuramart/backoffice/internal/core/port"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	orderHandler *OrderHandler,
	userHandler *UserHandler,
	logger *zap.Logger) (*Router, error) {

	router := gin.New()

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authMiddleware := authCheck(tokenService, NewHandler(logger))

	api := router.Group("/api")
	{
		user := api.Group("/user")
		{
			user.POST("/login", userHandler.LoginUser)
		}

		orders := api.Group("/orders")
		{
			orders.Use(authMiddleware)
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("", orderHandler.ListOrdersByClient)
			orders.GET("/:order", orderHandler.GetOrder)
			orders.POST("/:order/status", orderHandler.ChangeStatus)
			orders.POST("/:order/import", orderHandler.ImportBulkLines)

			items := orders.Group("/:order/items")
			{
				items.POST("", orderHandler.AddLineItem)
				items.DELETE("/:item", orderHandler.RemoveLineItem)
				items.PATCH("/:item/active", orderHandler.SetLineItemActive)

				items.POST("/:item/quotes", orderHandler.AddQuote)
				items.DELETE("/:item/quotes/:quote", orderHandler.RemoveQuote)
				items.GET("/:item/quotes/compare", orderHandler.CompareQuotes)
			}
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
