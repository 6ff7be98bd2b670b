// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

// AuthRequest sign up / log in request parameters
// AuthRequest 注册与登录请求参数
type AuthRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`       // User email // 用户邮箱
	Password string `json:"password" form:"password" binding:"required,notblank"` // User password // 用户密码
}

// TokenDTO access token issued on sign up / log in
// TokenDTO 注册或登录后签发的访问令牌
type TokenDTO struct {
	AccessToken string `json:"access_token"`
}
