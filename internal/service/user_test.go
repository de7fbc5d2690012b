package service

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"
	"golang.org/x/crypto/bcrypt"

	"github.com/LionsAd/commerce/internal/model"
	"github.com/LionsAd/commerce/internal/repository"
	"github.com/LionsAd/commerce/pkg/logger"
)

func hashPassword(c *qt.C, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	c.Assert(err, qt.IsNil)
	return string(hash)
}

func TestLogin(t *testing.T) {
	c := qt.New(t)
	repo := newFakeUserRepo(&model.User{
		ID:       1,
		Username: "alice",
		Password: hashPassword(c, "secret"),
		Status:   model.UserStatusActive,
	})
	svc := NewUserService(repo, logger.NewNop())
	ctx := context.Background()

	user, err := svc.Login(ctx, "alice", "secret")
	c.Assert(err, qt.IsNil)
	c.Assert(user.Token, qt.HasLen, tokenLength)

	// 已有token时不重新生成
	again, err := svc.Login(ctx, "alice", "secret")
	c.Assert(err, qt.IsNil)
	c.Assert(again.Token, qt.Equals, user.Token)

	byToken, err := svc.GetByToken(ctx, user.Token)
	c.Assert(err, qt.IsNil)
	c.Assert(byToken.ID, qt.Equals, uint64(1))
}

func TestLogin_Failures(t *testing.T) {
	c := qt.New(t)
	repo := newFakeUserRepo(
		&model.User{ID: 1, Username: "alice", Password: hashPassword(c, "secret"), Status: model.UserStatusActive},
		&model.User{ID: 2, Username: "bob", Password: hashPassword(c, "secret"), Status: model.UserStatusBlocked},
	)
	svc := NewUserService(repo, logger.NewNop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "alice", "wrong")
	c.Assert(err, qt.ErrorIs, ErrAuthFailed)
	_, err = svc.Login(ctx, "nobody", "secret")
	c.Assert(err, qt.ErrorIs, ErrAuthFailed)
	_, err = svc.Login(ctx, "bob", "secret")
	c.Assert(err, qt.ErrorIs, ErrAccountDisabled)

	_, err = svc.GetByToken(ctx, "")
	c.Assert(err, qt.ErrorIs, repository.ErrNotFound)
}
