package dao

import (
	"context"

	"github.com/haierkeys/bookmark-service/internal/domain"
	"github.com/haierkeys/bookmark-service/internal/model"

	"gorm.io/gorm"
)

// bookmarkRepository 实现 domain.BookmarkRepository 接口
// Every statement carries the user_id condition.
type bookmarkRepository struct {
	dao *Dao
}

// NewBookmarkRepository 创建 BookmarkRepository 实例
func NewBookmarkRepository(dao *Dao) domain.BookmarkRepository {
	return &bookmarkRepository{dao: dao}
}

// db 获取已迁移的数据库句柄
func (r *bookmarkRepository) db(ctx context.Context) *gorm.DB {
	return r.dao.UseWithOnceFunc(func(g *gorm.DB) error {
		return model.AutoMigrate(g, "Bookmark")
	}, "bookmark#bookmark").WithContext(ctx)
}

// bookmark 获取属于 uid 的书签查询
func (r *bookmarkRepository) bookmark(ctx context.Context, uid int64) *gorm.DB {
	return r.db(ctx).Model(&model.Bookmark{}).Where("user_id = ?", uid)
}

// toDomain 将数据库模型转换为领域模型
func (r *bookmarkRepository) toDomain(m *model.Bookmark) *domain.Bookmark {
	if m == nil {
		return nil
	}
	return &domain.Bookmark{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Link:        m.Link,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// toModel 将领域模型转换为数据库模型
func (r *bookmarkRepository) toModel(b *domain.Bookmark) *model.Bookmark {
	if b == nil {
		return nil
	}
	return &model.Bookmark{
		ID:          b.ID,
		UserID:      b.UserID,
		Title:       b.Title,
		Link:        b.Link,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// List 获取用户全部书签
func (r *bookmarkRepository) List(ctx context.Context, uid int64) ([]*domain.Bookmark, error) {
	var ms []*model.Bookmark
	if err := r.bookmark(ctx, uid).Find(&ms).Error; err != nil {
		return nil, err
	}

	list := make([]*domain.Bookmark, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// GetByID 根据ID获取书签
func (r *bookmarkRepository) GetByID(ctx context.Context, id, uid int64) (*domain.Bookmark, error) {
	var m model.Bookmark
	if err := r.bookmark(ctx, uid).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建书签
func (r *bookmarkRepository) Create(ctx context.Context, bookmark *domain.Bookmark, uid int64) (*domain.Bookmark, error) {
	m := r.toModel(bookmark)
	m.ID = 0
	m.UserID = uid

	if err := r.db(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 部分更新书签，返回更新后的记录
func (r *bookmarkRepository) Update(ctx context.Context, id, uid int64, patch domain.BookmarkPatch) (*domain.Bookmark, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Link != nil {
		updates["link"] = *patch.Link
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	if len(updates) > 0 {
		if err := r.bookmark(ctx, uid).Where("id = ?", id).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id, uid)
}

// Delete 物理删除书签
func (r *bookmarkRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.bookmark(ctx, uid).Where("id = ?", id).Delete(&model.Bookmark{}).Error
}

// 确保 bookmarkRepository 实现了 domain.BookmarkRepository 接口
var _ domain.BookmarkRepository = (*bookmarkRepository)(nil)
