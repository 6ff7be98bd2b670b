package service

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/bookmark-service/internal/domain"

	"gorm.io/gorm"
)

// memBookmarkRepo in-memory domain.BookmarkRepository honoring the owner filter
type memBookmarkRepo struct {
	domain.BookmarkRepository

	mu     sync.Mutex
	nextID int64
	rows   []*domain.Bookmark

	getCalls    int
	updateCalls int
	deleteCalls int
	failWith    error
}

func newMemBookmarkRepo() *memBookmarkRepo {
	return &memBookmarkRepo{nextID: 1}
}

func clone(b *domain.Bookmark) *domain.Bookmark {
	c := *b
	if b.Description != nil {
		d := *b.Description
		c.Description = &d
	}
	return &c
}

func (m *memBookmarkRepo) List(ctx context.Context, uid int64) ([]*domain.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []*domain.Bookmark{}
	for _, r := range m.rows {
		if r.UserID == uid {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

func (m *memBookmarkRepo) find(id, uid int64) (int, bool) {
	for i, r := range m.rows {
		if r.ID == id && r.UserID == uid {
			return i, true
		}
	}
	return 0, false
}

func (m *memBookmarkRepo) GetByID(ctx context.Context, id, uid int64) (*domain.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.failWith != nil {
		return nil, m.failWith
	}
	i, ok := m.find(id, uid)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(m.rows[i]), nil
}

func (m *memBookmarkRepo) Create(ctx context.Context, b *domain.Bookmark, uid int64) (*domain.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	row := clone(b)
	row.ID = m.nextID
	row.UserID = uid
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	m.nextID++
	m.rows = append(m.rows, row)
	return clone(row), nil
}

func (m *memBookmarkRepo) Update(ctx context.Context, id, uid int64, patch domain.BookmarkPatch) (*domain.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	i, ok := m.find(id, uid)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	merged := patch.Apply(*m.rows[i])
	merged.UpdatedAt = time.Now()
	m.rows[i] = &merged
	return clone(&merged), nil
}

func (m *memBookmarkRepo) Delete(ctx context.Context, id, uid int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCalls++
	if i, ok := m.find(id, uid); ok {
		m.rows = append(m.rows[:i], m.rows[i+1:]...)
	}
	return nil
}

// memUserRepo in-memory domain.UserRepository
type memUserRepo struct {
	domain.UserRepository

	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.User

	getByEmailCalls int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, rows: map[int64]*domain.User{}}
}

func (m *memUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *u
	return &c, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getByEmailCalls++
	for _, u := range m.rows {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == user.Email {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	c := *user
	c.ID = m.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.nextID++
	m.rows[c.ID] = &c
	out := c
	return &out, nil
}

func (m *memUserRepo) Update(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.FirstName != nil {
		u.FirstName = patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = patch.LastName
	}
	c := *u
	return &c, nil
}
