package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LionsAd/commerce/internal/account"
	"github.com/LionsAd/commerce/internal/constants"
	"github.com/LionsAd/commerce/internal/repository"
	"github.com/LionsAd/commerce/internal/service"
)

// CurrentAccount 根据 Authorization 头确定当前用户并写入请求上下文。
// 没有Token的请求以匿名用户继续
func CurrentAccount(userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if token == "" {
			c.Request = c.Request.WithContext(account.WithAccount(c.Request.Context(), account.Anonymous()))
			c.Next()
			return
		}

		user, err := userService.GetByToken(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrInvalidToken})
				return
			}
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"code": 500, "msg": constants.ErrInternalServer})
			return
		}
		if !user.IsActive() {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"code": 403, "msg": constants.ErrAccountDisabled})
			return
		}

		// 将用户ID和GroupID存储到上下文中，供后续处理使用
		c.Set("user_id", user.ID)
		c.Set("group_id", user.GroupID)
		c.Request = c.Request.WithContext(account.WithAccount(c.Request.Context(), user.Account()))
		c.Next()
	}
}
