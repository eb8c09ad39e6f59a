package routes

import (
	"ecommerce_api/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProducts = "/products"
)

func addCatalogRoutes(rg *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	products := rg.Group(PathProducts)
	{
		products.POST("", productHandler.CreateProduct)
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}
}
