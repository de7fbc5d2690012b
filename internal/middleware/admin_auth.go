package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LionsAd/commerce/internal/account"
	"github.com/LionsAd/commerce/internal/constants"
)

// RequirePermission 要求当前用户拥有指定权限，必须在 CurrentAccount 之后使用
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct := account.FromContext(c.Request.Context())
		if acct.ID() == account.AnonymousID {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"code": 401, "msg": constants.ErrUnauthorized})
			return
		}
		if !acct.HasPermission(permission) {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"code": 403, "msg": constants.ErrInsufficientPermission})
			return
		}
		c.Next()
	}
}
