// Package domain 定义领域模型和接口
package domain

import "context"

// BookmarkRepository 书签仓储接口
// Every method is scoped to the owner uid; a row of another user behaves as absent.
type BookmarkRepository interface {
	// List 获取用户的全部书签，按存储顺序
	List(ctx context.Context, uid int64) ([]*Bookmark, error)

	// GetByID 根据ID获取书签，不存在时返回 gorm.ErrRecordNotFound
	GetByID(ctx context.Context, id, uid int64) (*Bookmark, error)

	// Create 创建书签，所有者固定为 uid
	Create(ctx context.Context, bookmark *Bookmark, uid int64) (*Bookmark, error)

	// Update 部分更新书签并返回更新后的记录
	Update(ctx context.Context, id, uid int64, patch BookmarkPatch) (*Bookmark, error)

	// Delete 物理删除书签
	Delete(ctx context.Context, id, uid int64) error
}

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByID 根据ID获取用户
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// Update 部分更新用户资料并返回更新后的记录
	Update(ctx context.Context, id int64, patch UserPatch) (*User, error)
}
