package api_router

import (
	"github.com/haierkeys/bookmark-service/internal/app"
	"github.com/haierkeys/bookmark-service/internal/dto"
	pkgapp "github.com/haierkeys/bookmark-service/pkg/app"
	"github.com/haierkeys/bookmark-service/pkg/code"
	apperrors "github.com/haierkeys/bookmark-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// BookmarkHandler bookmark API router handler
// BookmarkHandler 书签 API 路由处理器
// Every operation is scoped to the user carried by the access token
// 所有操作都限定在 Token 对应的用户范围内
type BookmarkHandler struct {
	*Handler
}

// NewBookmarkHandler creates BookmarkHandler instance
// NewBookmarkHandler 创建 BookmarkHandler 实例
func NewBookmarkHandler(a *app.App) *BookmarkHandler {
	return &BookmarkHandler{
		Handler: NewHandler(a),
	}
}

// List lists the bookmarks of the current user
// @Summary List bookmarks
// @Description Get all bookmarks owned by the current user, empty array when none
// @Description 获取当前用户的全部书签，没有时返回空数组
// @Tags Bookmark
// @Security UserAuthToken
// @Param Authorization header string true "Bearer Token"
// @Produce json
// @Success 200 {array} dto.BookmarkDTO "Success"
// @Failure 401 {object} apperrors.AppError "Unauthorized"
// @Router /bookmarks [get]
func (h *BookmarkHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	bookmarks, err := h.App.BookmarkService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "BookmarkHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success, bookmarks)
}

// Get gets one bookmark of the current user
// @Summary Get bookmark
// @Description Get a bookmark by id. A bookmark owned by another user is reported as not found.
// @Description 根据 ID 获取书签，其他用户的书签同样返回不存在
// @Tags Bookmark
// @Security UserAuthToken
// @Param Authorization header string true "Bearer Token"
// @Param id path int true "Bookmark ID"
// @Produce json
// @Success 200 {object} dto.BookmarkDTO "Success"
// @Failure 400 {object} apperrors.AppError "Invalid Parameters"
// @Failure 404 {object} apperrors.AppError "Bookmark not found"
// @Router /bookmarks/{id} [get]
func (h *BookmarkHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BookmarkIDRequest{}

	valid, errs := pkgapp.BindUriAndValid(c, params)
	if !valid {
		h.invalidParams(c, "BookmarkHandler.Get", errs)
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	bookmark, err := h.App.BookmarkService.GetByID(ctx, uid, params.ID)
	if err != nil {
		h.logError(ctx, "BookmarkHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if bookmark == nil {
		apperrors.ErrorResponse(c, code.ErrorBookmarkNotFound)
		return
	}

	response.ToResponse(code.Success, bookmark)
}

// Create creates a bookmark for the current user
// @Summary Create bookmark
// @Description Create a bookmark owned by the current user
// @Description 为当前用户创建书签
// @Tags Bookmark
// @Security UserAuthToken
// @Param Authorization header string true "Bearer Token"
// @Accept json
// @Produce json
// @Param params body dto.BookmarkCreateRequest true "Create Parameters"
// @Success 201 {object} dto.BookmarkDTO "Created"
// @Failure 400 {object} apperrors.AppError "Invalid Parameters"
// @Router /bookmarks [post]
func (h *BookmarkHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BookmarkCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.invalidParams(c, "BookmarkHandler.Create", errs)
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	bookmark, err := h.App.BookmarkService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "BookmarkHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessCreate, bookmark)
}

// Edit partially updates a bookmark of the current user
// @Summary Edit bookmark
// @Description Update only the supplied fields of a bookmark
// @Description 只更新请求中提供的字段
// @Tags Bookmark
// @Security UserAuthToken
// @Param Authorization header string true "Bearer Token"
// @Param id path int true "Bookmark ID"
// @Accept json
// @Produce json
// @Param params body dto.BookmarkEditRequest true "Edit Parameters"
// @Success 200 {object} dto.BookmarkDTO "Success"
// @Failure 400 {object} apperrors.AppError "Invalid Parameters"
// @Failure 404 {object} apperrors.AppError "Bookmark not found"
// @Router /bookmarks/{id} [patch]
func (h *BookmarkHandler) Edit(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	idParams := &dto.BookmarkIDRequest{}
	params := &dto.BookmarkEditRequest{}

	valid, errs := pkgapp.BindUriAndValid(c, idParams)
	if !valid {
		h.invalidParams(c, "BookmarkHandler.Edit", errs)
		return
	}
	valid, errs = pkgapp.BindAndValid(c, params)
	if !valid {
		h.invalidParams(c, "BookmarkHandler.Edit", errs)
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	bookmark, err := h.App.BookmarkService.Edit(ctx, uid, idParams.ID, params)
	if err != nil {
		h.logError(ctx, "BookmarkHandler.Edit", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate, bookmark)
}

// Delete deletes a bookmark of the current user
// @Summary Delete bookmark
// @Description Permanently delete a bookmark, responds with an empty body
// @Description 永久删除书签，成功时响应体为空
// @Tags Bookmark
// @Security UserAuthToken
// @Param Authorization header string true "Bearer Token"
// @Param id path int true "Bookmark ID"
// @Success 204 "No Content"
// @Failure 400 {object} apperrors.AppError "Invalid Parameters"
// @Failure 404 {object} apperrors.AppError "Bookmark not found"
// @Router /bookmarks/{id} [delete]
func (h *BookmarkHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.BookmarkIDRequest{}

	valid, errs := pkgapp.BindUriAndValid(c, params)
	if !valid {
		h.invalidParams(c, "BookmarkHandler.Delete", errs)
		return
	}

	ctx := c.Request.Context()
	uid := pkgapp.GetUID(c)

	if err := h.App.BookmarkService.Delete(ctx, uid, params.ID); err != nil {
		h.logError(ctx, "BookmarkHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete, nil)
}
