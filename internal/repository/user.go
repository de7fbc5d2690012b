package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/LionsAd/commerce/internal/model"
)

const usersTableSQL = "CREATE TABLE IF NOT EXISTS `users` (\n" +
	"  `id` INT UNSIGNED NOT NULL AUTO_INCREMENT,\n" +
	"  `username` VARCHAR(60) NOT NULL,\n" +
	"  `email` VARCHAR(254) NOT NULL DEFAULT '',\n" +
	"  `password` VARCHAR(255) NOT NULL,\n" +
	"  `group_id` INT NOT NULL DEFAULT 1,\n" +
	"  `status` TINYINT NOT NULL DEFAULT 1,\n" +
	"  `token` VARCHAR(64) NOT NULL DEFAULT '',\n" +
	"  `created_at` DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,\n" +
	"  `updated_at` DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,\n" +
	"  PRIMARY KEY (`id`),\n" +
	"  UNIQUE KEY `users__username` (`username`),\n" +
	"  KEY `users__token` (`token`)\n" +
	") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"

const userColumns = `id, username, email, password, group_id, status, token, created_at, updated_at`

// UserRepository 用户仓库接口
type UserRepository interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByToken(ctx context.Context, token string) (*model.User, error)
	UpdateToken(ctx context.Context, id uint64, token string) error
}

// userRepository 用户仓库实现
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository 创建用户仓库实例
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) getOne(ctx context.Context, where string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	err := r.db.GetContext(ctx, user, "SELECT "+userColumns+" FROM users WHERE "+where, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

// GetByToken 根据Token获取用户
func (r *userRepository) GetByToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	return r.getOne(ctx, "token = ?", token)
}

// UpdateToken 更新用户Token
func (r *userRepository) UpdateToken(ctx context.Context, id uint64, token string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET token = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, token, id)
	if err != nil {
		return fmt.Errorf("更新用户Token失败: %w", err)
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
