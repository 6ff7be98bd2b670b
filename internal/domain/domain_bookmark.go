package domain

import "time"

// Bookmark 书签领域模型
type Bookmark struct {
	ID          int64
	UserID      int64
	Title       string
	Link        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy 判断书签是否属于指定用户
func (b *Bookmark) IsOwnedBy(uid int64) bool {
	return b != nil && b.UserID == uid
}

// BookmarkPatch holds the fields of a partial edit; nil fields are left untouched
// BookmarkPatch 书签部分更新的字段，nil 字段保持不变
type BookmarkPatch struct {
	Title       *string
	Link        *string
	Description *string
}

// IsEmpty 判断是否没有任何需要修改的字段
func (p BookmarkPatch) IsEmpty() bool {
	return p.Title == nil && p.Link == nil && p.Description == nil
}

// Apply merges the patch into a copy of b
// Apply 将补丁合并到 b 的副本上
func (p BookmarkPatch) Apply(b Bookmark) Bookmark {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Link != nil {
		b.Link = *p.Link
	}
	if p.Description != nil {
		d := *p.Description
		b.Description = &d
	}
	return b
}
