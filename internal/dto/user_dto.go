package dto

import "time"

// UserEditRequest partial profile update; omitted fields are left untouched
// UserEditRequest 修改用户资料请求参数，未提供的字段保持不变
type UserEditRequest struct {
	Email     *string `json:"email" form:"email" binding:"omitnil,email"` // User email // 用户邮箱
	FirstName *string `json:"firstName" form:"firstName"`                 // First name // 名
	LastName  *string `json:"lastName" form:"lastName"`                   // Last name // 姓
}

// ---------------- DTO / Response ----------------

// UserDTO User data transfer object
// UserDTO 用户数据传输对象
type UserDTO struct {
	ID        int64     `json:"id"`        // User ID (primary key) // 用户唯一标识（主键）
	Email     string    `json:"email"`     // Email address // 邮件地址
	FirstName *string   `json:"firstName"` // First name // 名
	LastName  *string   `json:"lastName"`  // Last name // 姓
	CreatedAt time.Time `json:"createdAt"` // Account created time // 账号创建时间
	UpdatedAt time.Time `json:"updatedAt"` // Last updated time // 最后更新时间
}
