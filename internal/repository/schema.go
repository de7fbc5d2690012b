package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/LionsAd/commerce/internal/model"
)

// SchemaStatements 返回建表语句：用户表以及由商品变体字段声明推导出的表
func SchemaStatements() []string {
	stmts := []string{usersTableSQL}
	for _, t := range model.ProductVariationEntityType().Tables(model.ProductVariationFields()) {
		stmts = append(stmts, t.CreateSQL())
	}
	return stmts
}

// EnsureSchema 创建缺失的表
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range SchemaStatements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("创建数据表失败: %w", err)
		}
	}
	return nil
}
