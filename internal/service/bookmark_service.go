package service

import (
	"context"
	"errors"

	"github.com/haierkeys/bookmark-service/internal/domain"
	"github.com/haierkeys/bookmark-service/internal/dto"
	"github.com/haierkeys/bookmark-service/pkg/code"
	"github.com/haierkeys/bookmark-service/pkg/logger"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookmarkService 定义书签业务服务接口
// uid is the caller established by the auth middleware; a bookmark owned by
// someone else is indistinguishable from one that does not exist.
type BookmarkService interface {
	// List 获取用户的全部书签，没有书签时返回空切片
	List(ctx context.Context, uid int64) ([]*dto.BookmarkDTO, error)

	// GetByID 获取单个书签，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, uid int64, id int64) (*dto.BookmarkDTO, error)

	// Create 创建书签，所有者为 uid
	Create(ctx context.Context, uid int64, params *dto.BookmarkCreateRequest) (*dto.BookmarkDTO, error)

	// Edit 部分更新书签，不存在时返回 code.ErrorBookmarkNotFound
	Edit(ctx context.Context, uid int64, id int64, params *dto.BookmarkEditRequest) (*dto.BookmarkDTO, error)

	// Delete 删除书签，不存在时返回 code.ErrorBookmarkNotFound
	Delete(ctx context.Context, uid int64, id int64) error
}

// bookmarkService 实现 BookmarkService 接口
type bookmarkService struct {
	repo   domain.BookmarkRepository
	logger *zap.Logger
}

// NewBookmarkService 创建 BookmarkService 实例
func NewBookmarkService(repo domain.BookmarkRepository, lg *zap.Logger) BookmarkService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &bookmarkService{
		repo:   repo,
		logger: lg,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *bookmarkService) domainToDTO(b *domain.Bookmark) *dto.BookmarkDTO {
	if b == nil {
		return nil
	}
	out := &dto.BookmarkDTO{}
	_ = copier.Copy(out, b)
	return out
}

func (s *bookmarkService) dbError(method string, uid, id int64, err error) error {
	s.logger.Error("BookmarkService db error",
		zap.String(logger.FieldMethod, method),
		zap.Int64(logger.FieldUID, uid),
		zap.Int64(logger.FieldBookmarkID, id),
		zap.Error(err),
	)
	return code.ErrorDBQuery.WithDetails(err.Error())
}

// List 获取用户的全部书签
func (s *bookmarkService) List(ctx context.Context, uid int64) ([]*dto.BookmarkDTO, error) {
	list, err := s.repo.List(ctx, uid)
	if err != nil {
		return nil, s.dbError("List", uid, 0, err)
	}

	out := make([]*dto.BookmarkDTO, 0, len(list))
	for _, b := range list {
		out = append(out, s.domainToDTO(b))
	}
	return out, nil
}

// lookup 所有权查询，不存在或不属于 uid 时返回 (nil, nil)
func (s *bookmarkService) lookup(ctx context.Context, method string, uid, id int64) (*domain.Bookmark, error) {
	b, err := s.repo.GetByID(ctx, id, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, s.dbError(method, uid, id, err)
	}
	if !b.IsOwnedBy(uid) {
		return nil, nil
	}
	return b, nil
}

// GetByID 获取单个书签
func (s *bookmarkService) GetByID(ctx context.Context, uid int64, id int64) (*dto.BookmarkDTO, error) {
	b, err := s.lookup(ctx, "GetByID", uid, id)
	if err != nil {
		return nil, err
	}
	return s.domainToDTO(b), nil
}

// Create 创建书签
func (s *bookmarkService) Create(ctx context.Context, uid int64, params *dto.BookmarkCreateRequest) (*dto.BookmarkDTO, error) {
	b, err := s.repo.Create(ctx, &domain.Bookmark{
		Title:       params.Title,
		Link:        params.Link,
		Description: params.Description,
	}, uid)
	if err != nil {
		return nil, s.dbError("Create", uid, 0, err)
	}
	return s.domainToDTO(b), nil
}

// Edit 部分更新书签
func (s *bookmarkService) Edit(ctx context.Context, uid int64, id int64, params *dto.BookmarkEditRequest) (*dto.BookmarkDTO, error) {
	current, err := s.lookup(ctx, "Edit", uid, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, code.ErrorBookmarkNotFound
	}

	patch := domain.BookmarkPatch{
		Title:       params.Title,
		Link:        params.Link,
		Description: params.Description,
	}
	if patch.IsEmpty() {
		return s.domainToDTO(current), nil
	}

	b, err := s.repo.Update(ctx, id, uid, patch)
	if err != nil {
		// 查询与更新之间被删除
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorBookmarkNotFound
		}
		return nil, s.dbError("Edit", uid, id, err)
	}
	return s.domainToDTO(b), nil
}

// Delete 删除书签
func (s *bookmarkService) Delete(ctx context.Context, uid int64, id int64) error {
	current, err := s.lookup(ctx, "Delete", uid, id)
	if err != nil {
		return err
	}
	if current == nil {
		return code.ErrorBookmarkNotFound
	}

	if err := s.repo.Delete(ctx, id, uid); err != nil {
		return s.dbError("Delete", uid, id, err)
	}
	return nil
}

// 确保 bookmarkService 实现了 BookmarkService 接口
var _ BookmarkService = (*bookmarkService)(nil)
