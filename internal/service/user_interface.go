package service

import (
	"context"

	"github.com/LionsAd/commerce/internal/model"
)

// UserService 用户服务接口
type UserService interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
	GetByToken(ctx context.Context, token string) (*model.User, error)
}
