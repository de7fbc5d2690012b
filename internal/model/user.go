package model

import (
	"time"

	"github.com/LionsAd/commerce/internal/account"
)

// AdminGroupID 管理员用户组
const AdminGroupID int64 = 4

// 用户状态
const (
	UserStatusBlocked = 0
	UserStatusActive  = 1
)

// User 用户模型，商品变体的所有者
type User struct {
	ID        uint64    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email,omitempty"`
	Password  string    `db:"password" json:"-"`
	GroupID   int64     `db:"group_id" json:"group_id"`
	Status    int       `db:"status" json:"status"`
	Token     string    `db:"token" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsActive 用户是否可用
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// HasPermission 管理员组拥有全部权限，被禁用的用户没有任何权限
func (u *User) HasPermission(permission string) bool {
	if !u.IsActive() {
		return false
	}
	return u.GroupID == AdminGroupID
}

// Account 将用户包装为请求上下文中的当前用户
func (u *User) Account() account.Account {
	return userAccount{u}
}

type userAccount struct{ u *User }

func (a userAccount) ID() uint64                  { return a.u.ID }
func (a userAccount) HasPermission(p string) bool { return a.u.HasPermission(p) }

// UserFromAccount 取回账户背后的用户，匿名账户返回nil
func UserFromAccount(acct account.Account) *User {
	if ua, ok := acct.(userAccount); ok {
		return ua.u
	}
	return nil
}
