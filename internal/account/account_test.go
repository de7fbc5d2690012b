package account_test

import (
	"context"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/LionsAd/commerce/internal/account"
)

type staticAccount struct {
	id    uint64
	perms map[string]bool
}

func (a staticAccount) ID() uint64                  { return a.id }
func (a staticAccount) HasPermission(p string) bool { return a.perms[p] }

func TestFromContext_Anonymous(t *testing.T) {
	c := qt.New(t)

	acct := account.FromContext(context.Background())
	c.Assert(acct.ID(), qt.Equals, account.AnonymousID)
	c.Assert(acct.HasPermission("administer products"), qt.IsFalse)
	c.Assert(account.CurrentUserID(context.Background()), qt.Equals, uint64(0))
}

func TestWithAccount(t *testing.T) {
	c := qt.New(t)

	ctx := account.WithAccount(context.Background(), staticAccount{
		id:    7,
		perms: map[string]bool{"administer products": true},
	})

	c.Assert(account.CurrentUserID(ctx), qt.Equals, uint64(7))
	c.Assert(account.FromContext(ctx).HasPermission("administer products"), qt.IsTrue)
}

func TestWithAccount_NilFallsBackToAnonymous(t *testing.T) {
	c := qt.New(t)

	ctx := account.WithAccount(context.Background(), nil)
	c.Assert(account.CurrentUserID(ctx), qt.Equals, account.AnonymousID)
}
