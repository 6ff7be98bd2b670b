// Package model 定义数据模型
package model

import (
	"time"

	"gorm.io/gorm"
)

// User mapped from table <user>
type User struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:idx_user_email" json:"email" form:"email"`
	Hash      string    `gorm:"column:hash;type:varchar(255);not null" json:"-" form:"-"`
	FirstName *string   `gorm:"column:first_name;type:varchar(255)" json:"firstName" form:"firstName"`
	LastName  *string   `gorm:"column:last_name;type:varchar(255)" json:"lastName" form:"lastName"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt" form:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt" form:"updatedAt"`
}

// Bookmark mapped from table <bookmark>
// Rows are removed together with their owner.
type Bookmark struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UserID      int64     `gorm:"column:user_id;not null;index:idx_bookmark_user_id" json:"userId" form:"userId"`
	Title       string    `gorm:"column:title;type:text;not null" json:"title" form:"title"`
	Link        string    `gorm:"column:link;type:text;not null" json:"link" form:"link"`
	Description *string   `gorm:"column:description;type:text" json:"description" form:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt" form:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt" form:"updatedAt"`

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-" form:"-"`
}

// AutoMigrate migrates the table registered under key
// AutoMigrate 按 key 迁移对应的数据表
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {

	case "User":
		return db.AutoMigrate(User{})

	case "Bookmark":
		// bookmark 依赖 user 外键，先迁移 user
		if err := db.AutoMigrate(User{}); err != nil {
			return err
		}
		return db.AutoMigrate(Bookmark{})
	}
	return nil
}
