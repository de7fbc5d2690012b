package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LionsAd/commerce/internal/constants"
	"github.com/LionsAd/commerce/internal/repository"
	"github.com/LionsAd/commerce/internal/service"
	"github.com/LionsAd/commerce/pkg/logger"
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field  string `json:"field"`
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

// Success 返回成功响应
func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": 200, "msg": msg, "data": data})
}

// Fail 返回业务错误响应
func Fail(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, gin.H{"code": code, "msg": msg})
}

// RespondError 将服务层错误转换为响应码
func RespondError(c *gin.Context, log *logger.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]FieldError, 0, len(verr.Errors))
		for _, e := range verr.Errors {
			detail := e.Detail
			if detail == "" {
				detail = e.ErrorBody()
			}
			details = append(details, FieldError{Field: e.Field, Type: string(e.Type), Detail: detail})
		}
		c.JSON(http.StatusOK, gin.H{"code": 400, "msg": constants.ErrValidation, "data": details})
	case errors.Is(err, repository.ErrTranslationNotFound):
		Fail(c, 404, constants.ErrTranslationNotFound)
	case errors.Is(err, repository.ErrNotFound):
		Fail(c, 404, constants.ErrVariationNotFound)
	case errors.Is(err, repository.ErrTranslationExists):
		Fail(c, 409, constants.ErrTranslationExists)
	case errors.Is(err, repository.ErrDefaultTranslation):
		Fail(c, 400, constants.ErrDefaultTranslation)
	case errors.Is(err, service.ErrAuthFailed):
		Fail(c, 401, constants.ErrAuthFailed)
	case errors.Is(err, service.ErrAccountDisabled):
		Fail(c, 403, constants.ErrAccountDisabled)
	default:
		log.Error("请求处理失败", "path", c.Request.URL.Path, "error", err)
		Fail(c, 500, constants.ErrInternalServer)
	}
}

// ParseID 解析路径中的变体ID
func ParseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		Fail(c, 400, constants.ErrInvalidID)
		return 0, false
	}
	return id, true
}
