package admin

import (
	"github.com/gin-gonic/gin"
)

// RegisterAdminRoutes 注册管理员API路由
func RegisterAdminRoutes(router *gin.RouterGroup, variationHandler *ProductVariationAdminHandler) {
	variations := router.Group("/product-variations")
	{
		variations.GET("", variationHandler.List)
		variations.POST("", variationHandler.Create)
		variations.GET("/schema", variationHandler.Schema)
		variations.GET("/:id", variationHandler.Get)
		variations.PUT("/:id", variationHandler.Update)
		variations.DELETE("/:id", variationHandler.Delete)
		variations.GET("/:id/translations", variationHandler.Translations)
		variations.POST("/:id/translations", variationHandler.AddTranslation)
		variations.DELETE("/:id/translations/:langcode", variationHandler.DeleteTranslation)
	}
}
