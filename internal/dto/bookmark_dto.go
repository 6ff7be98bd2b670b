package dto

import "time"

// BookmarkCreateRequest create bookmark request parameters
// The owner always comes from the token; an owner sent in the body is not bound.
// BookmarkCreateRequest 创建书签请求参数
type BookmarkCreateRequest struct {
	Title       string  `json:"title" form:"title" binding:"required,notblank"` // Title // 标题
	Link        string  `json:"link" form:"link" binding:"required,notblank"`   // Link // 链接
	Description *string `json:"description" form:"description"`                 // Description // 描述
}

// BookmarkEditRequest partial update; nil fields are left untouched
// BookmarkEditRequest 修改书签请求参数，nil 字段保持不变
type BookmarkEditRequest struct {
	Title       *string `json:"title" form:"title" binding:"omitnil,notblank"` // Title // 标题
	Link        *string `json:"link" form:"link" binding:"omitnil,notblank"`   // Link // 链接
	Description *string `json:"description" form:"description"`                // Description // 描述
}

// BookmarkIDRequest bookmark id from the path
// BookmarkIDRequest 路径中的书签 ID
type BookmarkIDRequest struct {
	ID int64 `uri:"id" json:"id" binding:"min=0"`
}

// ---------------- DTO / Response ----------------

// BookmarkDTO Bookmark data transfer object
// BookmarkDTO 书签数据传输对象
type BookmarkDTO struct {
	ID          int64     `json:"id"`          // Bookmark ID // 书签 ID
	UserID      int64     `json:"userId"`      // Owner ID // 所有者 ID
	Title       string    `json:"title"`       // Title // 标题
	Link        string    `json:"link"`        // Link // 链接
	Description *string   `json:"description"` // Description // 描述
	CreatedAt   time.Time `json:"createdAt"`   // Created time // 创建时间
	UpdatedAt   time.Time `json:"updatedAt"`   // Updated time // 更新时间
}
