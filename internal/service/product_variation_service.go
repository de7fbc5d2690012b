package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	apifield "k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/LionsAd/commerce/internal/account"
	"github.com/LionsAd/commerce/internal/field"
	"github.com/LionsAd/commerce/internal/model"
	"github.com/LionsAd/commerce/internal/repository"
	"github.com/LionsAd/commerce/internal/validation"
	"github.com/LionsAd/commerce/pkg/async"
	"github.com/LionsAd/commerce/pkg/logger"
)

const cachePrefix = model.ProductVariationEntityTypeID

// ValidationError 字段校验失败
type ValidationError struct {
	Errors apifield.ErrorList
}

func (e *ValidationError) Error() string {
	return e.Errors.ToAggregate().Error()
}

// CreateProductVariationInput 创建商品变体的参数
type CreateProductVariationInput struct {
	Type     string  `json:"type" binding:"required"`
	SKU      string  `json:"sku"`
	Langcode string  `json:"langcode"`
	Status   *bool   `json:"status"`
	OwnerID  *uint64 `json:"uid"`
}

// UpdateProductVariationInput 更新商品变体的参数，nil 表示不修改
type UpdateProductVariationInput struct {
	SKU         *string `json:"sku"`
	Status      *bool   `json:"status"`
	OwnerID     *uint64 `json:"uid"`
	CreatedTime *int64  `json:"created"`
}

// ProductVariationSchema 对外公开的模式契约
type ProductVariationSchema struct {
	EntityType field.EntityType   `json:"entity_type"`
	Fields     *field.Definitions `json:"fields"`
}

// PaginatedProductVariations 分页结果
type PaginatedProductVariations struct {
	Total int                       `json:"total"`
	Items []*model.ProductVariation `json:"items"`
}

// ProductVariationService 商品变体服务接口
type ProductVariationService interface {
	Create(ctx context.Context, in CreateProductVariationInput) (*model.ProductVariation, error)
	Get(ctx context.Context, id uint64, langcode string) (*model.ProductVariation, error)
	GetBySKU(ctx context.Context, sku string) (*model.ProductVariation, error)
	GetByUUID(ctx context.Context, uuid string) (*model.ProductVariation, error)
	Update(ctx context.Context, id uint64, langcode string, in UpdateProductVariationInput) (*model.ProductVariation, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter repository.ProductVariationFilter) (*PaginatedProductVariations, error)
	AddTranslation(ctx context.Context, id uint64, langcode string, in UpdateProductVariationInput) (*model.ProductVariation, error)
	DeleteTranslation(ctx context.Context, id uint64, langcode string) error
	Translations(ctx context.Context, id uint64) ([]string, error)
	Schema() ProductVariationSchema
}

// productVariationService 商品变体服务实现
type productVariationService struct {
	repo            repository.ProductVariationRepository
	userRepo        repository.UserRepository
	validator       *validation.Validator
	redisClient     *redis.Client
	worker          *async.Worker
	defaultLangcode string
	cacheTTL        time.Duration
	logger          *logger.Logger
}

// NewProductVariationService 创建商品变体服务。worker 为nil时列表缓存同步失效
func NewProductVariationService(
	repo repository.ProductVariationRepository,
	userRepo repository.UserRepository,
	redisClient *redis.Client,
	worker *async.Worker,
	defaultLangcode string,
	cacheTTL time.Duration,
	logger *logger.Logger,
) ProductVariationService {
	return &productVariationService{
		repo:            repo,
		userRepo:        userRepo,
		validator:       validation.NewProductVariationValidator(repo),
		redisClient:     redisClient,
		worker:          worker,
		defaultLangcode: defaultLangcode,
		cacheTTL:        cacheTTL,
		logger:          logger.With("entity_type", model.ProductVariationEntityTypeID),
	}
}

// Create 创建商品变体，未指定的字段取字段声明中的默认值
func (s *productVariationService) Create(ctx context.Context, in CreateProductVariationInput) (*model.ProductVariation, error) {
	langcode := in.Langcode
	if langcode == "" {
		langcode = s.defaultLangcode
	}

	v := model.NewProductVariation(ctx, strings.TrimSpace(in.Type), langcode).SetSKU(strings.TrimSpace(in.SKU))
	if in.Status != nil {
		v.SetStatus(*in.Status)
	}
	if in.OwnerID != nil {
		v.SetOwnerID(*in.OwnerID)
	}

	if err := s.validate(ctx, v); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("保存商品变体失败: %w", err)
	}

	s.invalidateLists(ctx)
	s.logger.Info("商品变体已创建", "variation_id", v.ID(), "sku", v.SKU(), "type", v.Type(), "uid", v.OwnerID())
	return v, nil
}

// Get 获取指定语言的商品变体，langcode 为空时返回默认翻译
func (s *productVariationService) Get(ctx context.Context, id uint64, langcode string) (*model.ProductVariation, error) {
	cacheKey := detailCacheKey(id, langcode)
	if data, err := s.redisClient.Get(ctx, cacheKey).Bytes(); err == nil {
		var v model.ProductVariation
		if err := json.Unmarshal(data, &v); err == nil {
			return &v, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.logger.Warn("读取商品变体缓存失败", "key", cacheKey, "error", err)
	}

	v, err := s.repo.Load(ctx, id, langcode)
	if err != nil {
		return nil, err
	}
	if err := s.loadOwner(ctx, v); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(v); err == nil {
		if err := s.redisClient.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("写入商品变体缓存失败", "key", cacheKey, "error", err)
		}
	}
	return v, nil
}

// GetBySKU 根据SKU获取商品变体
func (s *productVariationService) GetBySKU(ctx context.Context, sku string) (*model.ProductVariation, error) {
	v, err := s.repo.LoadBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if err := s.loadOwner(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// GetByUUID 根据UUID获取商品变体的默认翻译
func (s *productVariationService) GetByUUID(ctx context.Context, uuid string) (*model.ProductVariation, error) {
	v, err := s.repo.LoadByUUID(ctx, uuid)
	if err != nil {
		return nil, err
	}
	if err := s.loadOwner(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Update 更新指定翻译，langcode 为空时更新默认翻译
func (s *productVariationService) Update(ctx context.Context, id uint64, langcode string, in UpdateProductVariationInput) (*model.ProductVariation, error) {
	v, err := s.repo.Load(ctx, id, langcode)
	if err != nil {
		return nil, err
	}
	applyUpdate(v, in)
	v.Touch(ctx)

	if err := s.validate(ctx, v); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, v); err != nil {
		return nil, fmt.Errorf("保存商品变体失败: %w", err)
	}

	s.invalidate(ctx, id)
	s.logger.Info("商品变体已更新", "variation_id", id, "langcode", v.Langcode(), "sku", v.SKU())
	return v, nil
}

func applyUpdate(v *model.ProductVariation, in UpdateProductVariationInput) {
	if in.SKU != nil {
		v.SetSKU(strings.TrimSpace(*in.SKU))
	}
	if in.Status != nil {
		v.SetStatus(*in.Status)
	}
	if in.OwnerID != nil {
		v.SetOwnerID(*in.OwnerID)
	}
	if in.CreatedTime != nil {
		v.SetCreatedTime(*in.CreatedTime)
	}
}

// Delete 删除商品变体及全部翻译
func (s *productVariationService) Delete(ctx context.Context, id uint64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.logger.Info("商品变体已删除", "variation_id", id)
	return nil
}

// List 分页查询商品变体，结果短暂缓存
func (s *productVariationService) List(ctx context.Context, filter repository.ProductVariationFilter) (*PaginatedProductVariations, error) {
	cacheKey := listCacheKey(filter)
	if data, err := s.redisClient.Get(ctx, cacheKey).Bytes(); err == nil {
		var result PaginatedProductVariations
		if err := json.Unmarshal(data, &result); err == nil {
			return &result, nil
		}
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("获取商品变体列表失败", "error", err)
		return nil, err
	}
	result := &PaginatedProductVariations{Total: total, Items: items}

	if data, err := json.Marshal(result); err == nil {
		s.redisClient.Set(ctx, cacheKey, data, s.cacheTTL)
	}
	return result, nil
}

// AddTranslation 以默认翻译为基础创建新的语言版本
func (s *productVariationService) AddTranslation(ctx context.Context, id uint64, langcode string, in UpdateProductVariationInput) (*model.ProductVariation, error) {
	base, err := s.repo.Load(ctx, id, "")
	if err != nil {
		return nil, err
	}
	if langcode == "" || langcode == base.Langcode() {
		return nil, repository.ErrTranslationExists
	}

	tr := base.Translation(langcode)
	applyUpdate(tr, in)
	tr.SetCreatedTime(field.RequestTime(ctx).Unix())
	tr.Touch(ctx)

	if err := s.validate(ctx, tr); err != nil {
		return nil, err
	}
	if err := s.repo.AddTranslation(ctx, tr); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.logger.Info("商品变体翻译已添加", "variation_id", id, "langcode", langcode)
	return tr, nil
}

// DeleteTranslation 删除非默认翻译
func (s *productVariationService) DeleteTranslation(ctx context.Context, id uint64, langcode string) error {
	if err := s.repo.DeleteTranslation(ctx, id, langcode); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.logger.Info("商品变体翻译已删除", "variation_id", id, "langcode", langcode)
	return nil
}

// Translations 返回变体已有的语言
func (s *productVariationService) Translations(ctx context.Context, id uint64) ([]string, error) {
	return s.repo.Languages(ctx, id)
}

// Schema 返回实体类型和基础字段声明
func (s *productVariationService) Schema() ProductVariationSchema {
	return ProductVariationSchema{
		EntityType: model.ProductVariationEntityType(),
		Fields:     model.ProductVariationFields(),
	}
}

// validate 执行字段校验，并确认所有者存在
func (s *productVariationService) validate(ctx context.Context, v *model.ProductVariation) error {
	errs, err := s.validator.Validate(ctx, v)
	if err != nil {
		return err
	}

	if uid := v.OwnerID(); uid != 0 && (v.Owner() == nil || v.Owner().ID != uid) {
		// 当前用户已由令牌加载，无需再查一次
		if current := model.UserFromAccount(account.FromContext(ctx)); current != nil && current.ID == uid {
			v.SetOwner(current)
		} else {
			owner, err := s.userRepo.GetByID(ctx, uid)
			switch {
			case errors.Is(err, repository.ErrNotFound):
				errs = append(errs, apifield.NotFound(apifield.NewPath("uid"), uid))
			case err != nil:
				return fmt.Errorf("获取所有者失败: %w", err)
			default:
				v.SetOwner(owner)
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func (s *productVariationService) loadOwner(ctx context.Context, v *model.ProductVariation) error {
	if v.OwnerID() == 0 {
		return nil
	}
	owner, err := s.userRepo.GetByID(ctx, v.OwnerID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("商品变体的所有者不存在", "variation_id", v.ID(), "uid", v.OwnerID())
			return nil
		}
		return fmt.Errorf("获取所有者失败: %w", err)
	}
	v.SetOwner(owner)
	return nil
}

func detailCacheKey(id uint64, langcode string) string {
	if langcode == "" {
		langcode = "default"
	}
	return fmt.Sprintf("%s:detail:%d:%s", cachePrefix, id, langcode)
}

func listCacheKey(f repository.ProductVariationFilter) string {
	status := "any"
	if f.Status != nil {
		status = fmt.Sprintf("%t", *f.Status)
	}
	return fmt.Sprintf("%s:list:%s:%s:%s:%d:%d", cachePrefix, f.Type, status, f.Langcode, f.Page, f.PageSize)
}

// invalidate 同步清除该变体的详情缓存，列表缓存交给异步任务
func (s *productVariationService) invalidate(ctx context.Context, id uint64) {
	if err := s.deleteKeys(ctx, fmt.Sprintf("%s:detail:%d:*", cachePrefix, id)); err != nil {
		s.logger.Error("清除商品变体缓存失败", "variation_id", id, "error", err)
	}
	s.invalidateLists(ctx)
}

func (s *productVariationService) invalidateLists(ctx context.Context) {
	pattern := cachePrefix + ":list:*"
	if s.worker == nil {
		if err := s.deleteKeys(ctx, pattern); err != nil {
			s.logger.Error("清除商品变体列表缓存失败", "error", err)
		}
		return
	}
	s.worker.AddTask("invalidate-variation-lists", func(ctx context.Context) error {
		return s.deleteKeys(ctx, pattern)
	})
}

func (s *productVariationService) deleteKeys(ctx context.Context, pattern string) error {
	iter := s.redisClient.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := s.redisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
