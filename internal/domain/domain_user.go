package domain

import "time"

// User 用户领域模型
type User struct {
	ID        int64
	Email     string
	Hash      string
	FirstName *string
	LastName  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserPatch holds the profile fields to change; nil fields are left untouched
// UserPatch 需要修改的用户字段，nil 字段保持不变
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// IsEmpty 判断是否没有任何需要修改的字段
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil
}
