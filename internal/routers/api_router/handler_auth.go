package api_router

import (
	"github.com/haierkeys/bookmark-service/internal/app"
	"github.com/haierkeys/bookmark-service/internal/dto"
	pkgapp "github.com/haierkeys/bookmark-service/pkg/app"
	"github.com/haierkeys/bookmark-service/pkg/code"
	apperrors "github.com/haierkeys/bookmark-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AuthHandler sign-up and log-in API router handler
// AuthHandler 注册与登录 API 路由处理器
type AuthHandler struct {
	*Handler
}

// NewAuthHandler creates AuthHandler instance
// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(a *app.App) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(a),
	}
}

// Signup user registration
// @Summary User registration
// @Description Create an account and return an access token. Registration may be disabled in server settings.
// @Description 创建账号并返回访问令牌。注册功能可能在服务器设置中被禁用。
// @Tags Auth
// @Accept json
// @Produce json
// @Param params body dto.AuthRequest true "Signup Parameters"
// @Success 201 {object} dto.TokenDTO "Created"
// @Failure 400 {object} apperrors.AppError "Invalid Parameters"
// @Failure 403 {object} apperrors.AppError "Credentials taken"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AuthRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.invalidParams(c, "AuthHandler.Signup", errs)
		return
	}

	// 获取请求上下文（包含 Trace ID）
	ctx := c.Request.Context()

	token, err := h.App.UserService.Register(ctx, params)
	if err != nil {
		h.logError(ctx, "AuthHandler.Signup", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreate, token)
}

// Login user login
// @Summary User login
// @Description Verify credentials and return an access token.
// @Description 验证邮箱和密码并返回访问令牌。
// @Tags Auth
// @Accept json
// @Produce json
// @Param params body dto.AuthRequest true "Login Parameters"
// @Success 200 {object} dto.TokenDTO "Success"
// @Failure 400 {object} apperrors.AppError "Invalid Parameters"
// @Failure 403 {object} apperrors.AppError "Credentials incorrect"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.AuthRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.invalidParams(c, "AuthHandler.Login", errs)
		return
	}

	ctx := c.Request.Context()

	token, err := h.App.UserService.Login(ctx, params)
	if err != nil {
		h.logError(ctx, "AuthHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessLogin, token)
}
