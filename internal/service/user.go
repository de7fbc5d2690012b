package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"k8s.io/apimachinery/pkg/util/rand"

	"github.com/LionsAd/commerce/internal/model"
	"github.com/LionsAd/commerce/internal/repository"
	"github.com/LionsAd/commerce/pkg/logger"
)

var (
	// ErrAuthFailed 用户名或密码错误
	ErrAuthFailed = errors.New("用户不存在或密码错误")
	// ErrAccountDisabled 账号被禁用
	ErrAccountDisabled = errors.New("账号已被禁用")
)

const tokenLength = 32

// userService 用户服务实现
type userService struct {
	userRepo repository.UserRepository
	logger   *logger.Logger
}

// NewUserService 创建用户服务实例
func NewUserService(userRepo repository.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetByID 根据ID获取用户
func (s *userService) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByToken 根据Token获取用户
func (s *userService) GetByToken(ctx context.Context, token string) (*model.User, error) {
	return s.userRepo.GetByToken(ctx, token)
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthFailed
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrAuthFailed
	}
	if !user.IsActive() {
		return nil, ErrAccountDisabled
	}

	// 只有在用户没有token时才生成新的token
	if user.Token == "" {
		token := rand.String(tokenLength)
		if err := s.userRepo.UpdateToken(ctx, user.ID, token); err != nil {
			return nil, err
		}
		user.Token = token
		s.logger.Info("用户Token已生成", "user_id", user.ID)
	}

	return user, nil
}
