package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LionsAd/commerce/internal/constants"
	"github.com/LionsAd/commerce/internal/field"
	"github.com/LionsAd/commerce/pkg/logger"
)

// Logger 日志中间件
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// 处理请求
		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("访问日志",
			"status", c.Writer.Status(),
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
			"method", c.Request.Method,
			"path", path,
			"user_id", c.GetUint64("user_id"),
		)
	}
}

// Recovery 恢复中间件
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("服务器错误", "panic", err, "path", c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
			}
		}()
		c.Next()
	}
}

// RequestTime 记录请求开始时间，created/changed 的默认值在同一请求内保持一致
func RequestTime() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := field.WithRequestTime(c.Request.Context(), time.Now())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CORS 跨域中间件
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
