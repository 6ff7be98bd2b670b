package api_router

import (
	"github.com/haierkeys/bookmark-service/internal/app"
	"github.com/haierkeys/bookmark-service/internal/dto"
	pkgapp "github.com/haierkeys/bookmark-service/pkg/app"
	"github.com/haierkeys/bookmark-service/pkg/code"
	apperrors "github.com/haierkeys/bookmark-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// UserHandler user API router handler
// UserHandler 用户 API 路由处理器
// Uses App Container to inject dependencies, supports unified error handling
// 使用 App Container 注入依赖，支持统一错误处理
type UserHandler struct {
	*Handler
}

// NewUserHandler creates UserHandler instance
// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(a),
	}
}

// Me gets the current user
// @Summary Get current user info
// @Description Get the profile of the user identified by the access token
// @Description 获取当前 Token 对应的用户信息
// @Tags User
// @Security UserAuthToken
// @Param Authorization header string true "Bearer Token"
// @Produce json
// @Success 200 {object} dto.UserDTO "Success"
// @Failure 401 {object} apperrors.AppError "Unauthorized"
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		apperrors.ErrorResponse(c, code.ErrorInvalidUserAuthToken)
		return
	}

	user, err := h.App.UserService.GetInfo(ctx, uid)
	if err != nil {
		h.logError(ctx, "UserHandler.Me", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success, user)
}

// Edit updates the current user
// @Summary Edit current user
// @Description Partially update email, first name or last name of the current user
// @Description 部分更新当前用户的邮箱、名、姓
// @Tags User
// @Security UserAuthToken
// @Param Authorization header string true "Bearer Token"
// @Accept json
// @Produce json
// @Param params body dto.UserEditRequest true "Edit Parameters"
// @Success 200 {object} dto.UserDTO "Success"
// @Failure 400 {object} apperrors.AppError "Invalid Parameters"
// @Failure 403 {object} apperrors.AppError "Credentials taken"
// @Router /users [patch]
func (h *UserHandler) Edit(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserEditRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.invalidParams(c, "UserHandler.Edit", errs)
		return
	}

	ctx := c.Request.Context()

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		apperrors.ErrorResponse(c, code.ErrorInvalidUserAuthToken)
		return
	}

	user, err := h.App.UserService.Edit(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "UserHandler.Edit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate, user)
}
