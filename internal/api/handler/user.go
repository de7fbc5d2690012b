package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/LionsAd/commerce/internal/constants"
	"github.com/LionsAd/commerce/internal/service"
	"github.com/LionsAd/commerce/pkg/logger"
)

// UserHandler 用户处理器
type UserHandler struct {
	userService service.UserService
	logger      *logger.Logger
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userService service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 用户登录
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, 400, constants.ErrInvalidParams)
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	// 只返回token
	Success(c, constants.SuccessLogin, gin.H{"token": user.Token})
}
