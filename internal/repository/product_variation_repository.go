package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/LionsAd/commerce/internal/model"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrTranslationNotFound 变体没有该语言的翻译
	ErrTranslationNotFound = errors.New("翻译不存在")
	// ErrTranslationExists 该语言的翻译已存在
	ErrTranslationExists = errors.New("翻译已存在")
	// ErrDefaultTranslation 默认翻译不能单独删除
	ErrDefaultTranslation = errors.New("不能删除默认翻译")
)

const mysqlDuplicateEntry = 1062

const (
	variationBaseTable = "commerce_product_variation"
	variationDataTable = "commerce_product_variation_field_data"

	variationSelect = `SELECT b.variation_id, b.type, b.uuid, d.langcode, d.default_langcode, d.uid, d.sku, d.status, d.created, d.changed
		FROM commerce_product_variation b
		INNER JOIN commerce_product_variation_field_data d ON d.variation_id = b.variation_id`

	variationInsertBase = `INSERT INTO commerce_product_variation (type, uuid, langcode) VALUES (?, ?, ?)`

	variationInsertData = `INSERT INTO commerce_product_variation_field_data (variation_id, uid, langcode, sku, type, status, created, changed, default_langcode)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// ProductVariationFilter 列表查询条件
type ProductVariationFilter struct {
	Type     string
	Status   *bool
	Langcode string // 为空时返回默认翻译
	Page     int
	PageSize int
}

// ProductVariationRepository 商品变体存储接口
type ProductVariationRepository interface {
	Create(ctx context.Context, v *model.ProductVariation) error
	Load(ctx context.Context, id uint64, langcode string) (*model.ProductVariation, error)
	LoadByUUID(ctx context.Context, uuid string) (*model.ProductVariation, error)
	LoadBySKU(ctx context.Context, sku string) (*model.ProductVariation, error)
	SKUExists(ctx context.Context, sku string, excludeID uint64) (bool, error)
	Save(ctx context.Context, v *model.ProductVariation) error
	AddTranslation(ctx context.Context, v *model.ProductVariation) error
	DeleteTranslation(ctx context.Context, id uint64, langcode string) error
	Languages(ctx context.Context, id uint64) ([]string, error)
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context, filter ProductVariationFilter) ([]*model.ProductVariation, int, error)
}

// productVariationRepository 基于MySQL的实现
type productVariationRepository struct {
	db *sqlx.DB
}

// NewProductVariationRepository 创建商品变体存储库
func NewProductVariationRepository(db *sqlx.DB) ProductVariationRepository {
	return &productVariationRepository{db: db}
}

// Create 在一个事务中写入基础表和默认翻译，并回填ID
func (r *productVariationRepository) Create(ctx context.Context, v *model.ProductVariation) error {
	if !v.IsNew() {
		return fmt.Errorf("商品变体 %d 已保存: %w", v.ID(), model.ErrReadOnlyField)
	}
	rec := v.Record()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, variationInsertBase, rec.Type, rec.UUID, rec.Langcode)
	if err != nil {
		return fmt.Errorf("写入商品变体失败: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("获取商品变体ID失败: %w", err)
	}
	rec.ID = uint64(id)
	rec.DefaultLangcode = true

	if err := insertTranslation(ctx, tx, rec); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return v.AssignID(rec.ID)
}

func insertTranslation(ctx context.Context, exec sqlx.ExecerContext, rec model.ProductVariationRecord) error {
	_, err := exec.ExecContext(ctx, variationInsertData,
		rec.ID, rec.UID, rec.Langcode, rec.SKU, rec.Type, rec.Status, rec.Created, rec.Changed, rec.DefaultLangcode)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrTranslationExists
		}
		return fmt.Errorf("写入商品变体翻译失败: %w", err)
	}
	return nil
}

func (r *productVariationRepository) getOne(ctx context.Context, where string, args ...interface{}) (*model.ProductVariation, error) {
	var rec model.ProductVariationRecord
	err := r.db.GetContext(ctx, &rec, variationSelect+" WHERE "+where, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return model.ProductVariationFromRecord(rec), nil
}

// Load 加载指定语言的翻译，langcode 为空时加载默认翻译
func (r *productVariationRepository) Load(ctx context.Context, id uint64, langcode string) (*model.ProductVariation, error) {
	if langcode == "" {
		return r.getOne(ctx, "b.variation_id = ? AND d.default_langcode = 1", id)
	}
	return r.getOne(ctx, "b.variation_id = ? AND d.langcode = ?", id, langcode)
}

// LoadByUUID 按UUID加载默认翻译
func (r *productVariationRepository) LoadByUUID(ctx context.Context, uuid string) (*model.ProductVariation, error) {
	return r.getOne(ctx, "b.uuid = ? AND d.default_langcode = 1", uuid)
}

// LoadBySKU 按SKU加载，多个翻译命中时优先默认翻译
func (r *productVariationRepository) LoadBySKU(ctx context.Context, sku string) (*model.ProductVariation, error) {
	return r.getOne(ctx, "d.sku = ? ORDER BY d.default_langcode DESC, d.langcode LIMIT 1", sku)
}

// SKUExists SKU是否被其他变体的任一翻译使用
func (r *productVariationRepository) SKUExists(ctx context.Context, sku string, excludeID uint64) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM commerce_product_variation_field_data WHERE sku = ? AND variation_id <> ?`
	if err := r.db.GetContext(ctx, &count, query, sku, excludeID); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save 更新当前翻译的可翻译字段，翻译行已不存在时返回 ErrNotFound。
// 依赖连接参数 clientFoundRows，未变化的行也计入影响行数
func (r *productVariationRepository) Save(ctx context.Context, v *model.ProductVariation) error {
	if v.IsNew() {
		return r.Create(ctx, v)
	}
	rec := v.Record()
	query := `UPDATE commerce_product_variation_field_data
		SET uid = ?, sku = ?, status = ?, created = ?, changed = ?
		WHERE variation_id = ? AND langcode = ?`
	result, err := r.db.ExecContext(ctx, query, rec.UID, rec.SKU, rec.Status, rec.Created, rec.Changed, rec.ID, rec.Langcode)
	if err != nil {
		return fmt.Errorf("更新商品变体失败: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddTranslation 写入一个新的非默认翻译
func (r *productVariationRepository) AddTranslation(ctx context.Context, v *model.ProductVariation) error {
	if v.IsNew() {
		return ErrNotFound
	}
	rec := v.Record()
	rec.DefaultLangcode = false
	return insertTranslation(ctx, r.db, rec)
}

// DeleteTranslation 删除非默认翻译
func (r *productVariationRepository) DeleteTranslation(ctx context.Context, id uint64, langcode string) error {
	var isDefault bool
	err := r.db.GetContext(ctx, &isDefault,
		`SELECT default_langcode FROM commerce_product_variation_field_data WHERE variation_id = ? AND langcode = ?`, id, langcode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTranslationNotFound
		}
		return err
	}
	if isDefault {
		return ErrDefaultTranslation
	}
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM commerce_product_variation_field_data WHERE variation_id = ? AND langcode = ? AND default_langcode = 0`, id, langcode)
	return err
}

// Languages 返回已有翻译的语言，默认语言在前
func (r *productVariationRepository) Languages(ctx context.Context, id uint64) ([]string, error) {
	var langcodes []string
	query := `SELECT langcode FROM commerce_product_variation_field_data WHERE variation_id = ? ORDER BY default_langcode DESC, langcode`
	if err := r.db.SelectContext(ctx, &langcodes, query, id); err != nil {
		return nil, err
	}
	if len(langcodes) == 0 {
		return nil, ErrNotFound
	}
	return langcodes, nil
}

// Delete 删除变体及其所有翻译
func (r *productVariationRepository) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM commerce_product_variation_field_data WHERE variation_id = ?`, id); err != nil {
		return fmt.Errorf("删除商品变体翻译失败: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM commerce_product_variation WHERE variation_id = ?`, id)
	if err != nil {
		return fmt.Errorf("删除商品变体失败: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// List 分页查询变体并返回总数
func (r *productVariationRepository) List(ctx context.Context, filter ProductVariationFilter) ([]*model.ProductVariation, int, error) {
	var conds []string
	var args []interface{}

	if filter.Langcode == "" {
		conds = append(conds, "d.default_langcode = 1")
	} else {
		conds = append(conds, "d.langcode = ?")
		args = append(args, filter.Langcode)
	}
	if filter.Type != "" {
		conds = append(conds, "b.type = ?")
		args = append(args, filter.Type)
	}
	if filter.Status != nil {
		conds = append(conds, "d.status = ?")
		args = append(args, *filter.Status)
	}
	where := strings.Join(conds, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM commerce_product_variation b
		INNER JOIN commerce_product_variation_field_data d ON d.variation_id = b.variation_id WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("统计商品变体失败: %w", err)
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	query := variationSelect + " WHERE " + where + " ORDER BY b.variation_id LIMIT ? OFFSET ?"
	var records []model.ProductVariationRecord
	if err := r.db.SelectContext(ctx, &records, query, append(args, pageSize, (page-1)*pageSize)...); err != nil {
		return nil, 0, fmt.Errorf("查询商品变体失败: %w", err)
	}

	variations := make([]*model.ProductVariation, 0, len(records))
	for _, rec := range records {
		variations = append(variations, model.ProductVariationFromRecord(rec))
	}
	return variations, total, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 50 {
		pageSize = 50
	}
	return page, pageSize
}
