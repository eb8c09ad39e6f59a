package routes

import (
	"ecommerce_api/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders = "/orders"
)

// Orders are addressed by query parameters (email, orderId), not path segments.
func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.DELETE("", orderHandler.DeleteOrder)
	}
}
