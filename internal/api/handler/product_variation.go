package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/LionsAd/commerce/internal/account"
	"github.com/LionsAd/commerce/internal/constants"
	"github.com/LionsAd/commerce/internal/model"
	"github.com/LionsAd/commerce/internal/service"
	"github.com/LionsAd/commerce/pkg/logger"
)

// ProductVariationHandler 面向前台的商品变体处理器
type ProductVariationHandler struct {
	variationService service.ProductVariationService
	logger           *logger.Logger
}

// NewProductVariationHandler 创建商品变体处理器
func NewProductVariationHandler(variationService service.ProductVariationService, logger *logger.Logger) *ProductVariationHandler {
	return &ProductVariationHandler{
		variationService: variationService,
		logger:           logger,
	}
}

// Get 获取商品变体，可通过 langcode 指定翻译
func (h *ProductVariationHandler) Get(c *gin.Context) {
	id, ok := ParseID(c)
	if !ok {
		return
	}

	v, err := h.variationService.Get(c.Request.Context(), id, c.Query("langcode"))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	h.respondVisible(c, v)
}

// GetBySKU 根据SKU获取商品变体
func (h *ProductVariationHandler) GetBySKU(c *gin.Context) {
	v, err := h.variationService.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	h.respondVisible(c, v)
}

// GetByUUID 根据UUID获取商品变体的默认翻译
func (h *ProductVariationHandler) GetByUUID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		Fail(c, 400, constants.ErrInvalidUUID)
		return
	}

	v, err := h.variationService.GetByUUID(c.Request.Context(), id.String())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	h.respondVisible(c, v)
}

// 已停用的变体只对商品管理员可见
func (h *ProductVariationHandler) respondVisible(c *gin.Context, v *model.ProductVariation) {
	if !v.Status() && !account.FromContext(c.Request.Context()).HasPermission(model.PermissionAdministerProducts) {
		Fail(c, 404, constants.ErrVariationDisabled)
		return
	}
	Success(c, constants.SuccessGet, v)
}
