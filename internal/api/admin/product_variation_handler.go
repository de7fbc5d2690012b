package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LionsAd/commerce/internal/api/handler"
	"github.com/LionsAd/commerce/internal/constants"
	"github.com/LionsAd/commerce/internal/repository"
	"github.com/LionsAd/commerce/internal/service"
	"github.com/LionsAd/commerce/pkg/logger"
)

const maxPageSize = 50

// ProductVariationAdminHandler 管理员商品变体处理器
type ProductVariationAdminHandler struct {
	variationService service.ProductVariationService
	logger           *logger.Logger
}

// NewProductVariationAdminHandler 创建管理员商品变体处理器
func NewProductVariationAdminHandler(variationService service.ProductVariationService, logger *logger.Logger) *ProductVariationAdminHandler {
	return &ProductVariationAdminHandler{
		variationService: variationService,
		logger:           logger,
	}
}

// TranslationRequest 添加翻译的请求
type TranslationRequest struct {
	Langcode string `json:"langcode" binding:"required"`
	service.UpdateProductVariationInput
}

// List 分页获取商品变体
func (h *ProductVariationAdminHandler) List(c *gin.Context) {
	filter := repository.ProductVariationFilter{
		Type:     c.Query("type"),
		Langcode: c.Query("langcode"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 10),
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	if s := c.Query("status"); s != "" {
		status, err := strconv.ParseBool(s)
		if err != nil {
			handler.Fail(c, 400, constants.ErrInvalidParams)
			return
		}
		filter.Status = &status
	}

	result, err := h.variationService.List(c.Request.Context(), filter)
	if err != nil {
		handler.RespondError(c, h.logger, err)
		return
	}

	// 计算总页数
	pages := (result.Total + filter.PageSize - 1) / filter.PageSize
	if pages == 0 {
		pages = 1
	}

	handler.Success(c, constants.SuccessGet, gin.H{
		"items": result.Items,
		"pagination": gin.H{
			"page":      filter.Page,
			"page_size": filter.PageSize,
			"pages":     pages,
			"total":     result.Total,
		},
	})
}

// Get 获取单个商品变体，停用的也返回
func (h *ProductVariationAdminHandler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	v, err := h.variationService.Get(c.Request.Context(), id, c.Query("langcode"))
	if err != nil {
		handler.RespondError(c, h.logger, err)
		return
	}
	handler.Success(c, constants.SuccessGet, v)
}

// Create 创建商品变体
func (h *ProductVariationAdminHandler) Create(c *gin.Context) {
	var req service.CreateProductVariationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Fail(c, 400, constants.ErrInvalidRequest)
		return
	}

	v, err := h.variationService.Create(c.Request.Context(), req)
	if err != nil {
		handler.RespondError(c, h.logger, err)
		return
	}
	handler.Success(c, constants.SuccessCreate, v)
}

// Update 更新商品变体，langcode 查询参数指定要修改的翻译
func (h *ProductVariationAdminHandler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	var req service.UpdateProductVariationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Fail(c, 400, constants.ErrInvalidRequest)
		return
	}

	v, err := h.variationService.Update(c.Request.Context(), id, c.Query("langcode"), req)
	if err != nil {
		handler.RespondError(c, h.logger, err)
		return
	}
	handler.Success(c, constants.SuccessUpdate, v)
}

// Delete 删除商品变体
func (h *ProductVariationAdminHandler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	if err := h.variationService.Delete(c.Request.Context(), id); err != nil {
		handler.RespondError(c, h.logger, err)
		return
	}
	handler.Success(c, constants.SuccessDelete, nil)
}

// Translations 获取已有翻译的语言
func (h *ProductVariationAdminHandler) Translations(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	langcodes, err := h.variationService.Translations(c.Request.Context(), id)
	if err != nil {
		handler.RespondError(c, h.logger, err)
		return
	}
	handler.Success(c, constants.SuccessGet, langcodes)
}

// AddTranslation 添加翻译
func (h *ProductVariationAdminHandler) AddTranslation(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	var req TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.Fail(c, 400, constants.ErrInvalidRequest)
		return
	}

	v, err := h.variationService.AddTranslation(c.Request.Context(), id, req.Langcode, req.UpdateProductVariationInput)
	if err != nil {
		handler.RespondError(c, h.logger, err)
		return
	}
	handler.Success(c, constants.SuccessCreate, v)
}

// DeleteTranslation 删除翻译
func (h *ProductVariationAdminHandler) DeleteTranslation(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		return
	}
	err := h.variationService.DeleteTranslation(c.Request.Context(), id, c.Param("langcode"))
	if err != nil {
		handler.RespondError(c, h.logger, err)
		return
	}
	handler.Success(c, constants.SuccessDelete, nil)
}

// Schema 返回商品变体的字段声明
func (h *ProductVariationAdminHandler) Schema(c *gin.Context) {
	handler.Success(c, constants.SuccessGet, h.variationService.Schema())
}

func queryInt(c *gin.Context, key string, def int) int {
	if n, err := strconv.Atoi(c.Query(key)); err == nil && n > 0 {
		return n
	}
	return def
}
