// Package account 保存当前请求的认证用户。
package account

import "context"

// AnonymousID 匿名用户ID
const AnonymousID uint64 = 0

// Account 已认证或匿名的调用方
type Account interface {
	ID() uint64
	HasPermission(permission string) bool
}

type anonymous struct{}

func (anonymous) ID() uint64                { return AnonymousID }
func (anonymous) HasPermission(string) bool { return false }

// Anonymous 返回匿名用户
func Anonymous() Account { return anonymous{} }

type contextKey struct{}

// WithAccount 将当前用户放入上下文
func WithAccount(ctx context.Context, acct Account) context.Context {
	return context.WithValue(ctx, contextKey{}, acct)
}

// FromContext 取出当前用户，没有时返回匿名用户
func FromContext(ctx context.Context) Account {
	if acct, ok := ctx.Value(contextKey{}).(Account); ok && acct != nil {
		return acct
	}
	return Anonymous()
}

// CurrentUserID 当前用户ID，匿名时为0
func CurrentUserID(ctx context.Context) uint64 {
	return FromContext(ctx).ID()
}
