package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/LionsAd/commerce/config"
	"github.com/LionsAd/commerce/internal/api/admin"
	"github.com/LionsAd/commerce/internal/api/apis"
	"github.com/LionsAd/commerce/internal/api/handler"
	"github.com/LionsAd/commerce/internal/middleware"
	"github.com/LionsAd/commerce/internal/model"
	"github.com/LionsAd/commerce/internal/repository"
	"github.com/LionsAd/commerce/internal/service"
	"github.com/LionsAd/commerce/pkg/async"
	"github.com/LionsAd/commerce/pkg/logger"
)

// SetupRouter 设置API路由
func SetupRouter(cfg *config.Config, logger *logger.Logger, db *sqlx.DB, redisClient *redis.Client, worker *async.Worker) *gin.Engine {
	// 初始化存储库
	userRepo := repository.NewUserRepository(db)
	variationRepo := repository.NewProductVariationRepository(db)

	// 初始化服务
	userService := service.NewUserService(userRepo, logger)
	variationService := service.NewProductVariationService(
		variationRepo, userRepo, redisClient, worker, cfg.DefaultLangcode, cfg.CacheTTL, logger)

	return NewRouter(cfg.LogLevel, logger, userService, variationService)
}

// NewRouter 基于已创建的服务注册中间件和路由
func NewRouter(logLevel string, logger *logger.Logger, userService service.UserService, variationService service.ProductVariationService) *gin.Engine {
	if logLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// 使用中间件
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestTime())

	// 初始化处理器
	userHandler := handler.NewUserHandler(userService, logger)
	variationHandler := handler.NewProductVariationHandler(variationService, logger)
	variationAdminHandler := admin.NewProductVariationAdminHandler(variationService, logger)

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API版本v1，所有请求都先确定当前用户
	v1 := router.Group("/api/v1")
	v1.Use(middleware.CurrentAccount(userService))

	apis.RegisterPublicRoutes(v1, userHandler, variationHandler)

	// 注册管理员API路由
	adminRouter := v1.Group("/admin")
	adminRouter.Use(middleware.RequirePermission(model.PermissionAdministerProducts))
	admin.RegisterAdminRoutes(adminRouter, variationAdminHandler)

	return router
}
