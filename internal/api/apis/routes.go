package apis

import (
	"github.com/gin-gonic/gin"

	"github.com/LionsAd/commerce/internal/api/handler"
)

// RegisterPublicRoutes 注册不需要特殊权限的路由
func RegisterPublicRoutes(v1 *gin.RouterGroup, userHandler *handler.UserHandler, variationHandler *handler.ProductVariationHandler) {
	v1.POST("/login", userHandler.Login)

	variations := v1.Group("/product-variations")
	{
		variations.GET("/:id", variationHandler.Get)
		variations.GET("/sku/:sku", variationHandler.GetBySKU)
		variations.GET("/uuid/:uuid", variationHandler.GetByUUID)
	}
}
