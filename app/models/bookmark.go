package models

import (
	"time"

	"gorm.io/gorm"
)

type Bookmark struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ArticleID uint           `gorm:"uniqueIndex:idx_bookmark_article_user" json:"article_id"`
	Article   Article        `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	UserID    uint           `gorm:"uniqueIndex:idx_bookmark_article_user" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Notes     string         `gorm:"type:varchar(500)" json:"notes" validate:"max=500"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Bookmark model
func (Bookmark) TableName() string {
	return "bookmarks"
}

// OwnerID implements the Ownable capability; bookmarks belong to their user.
func (b *Bookmark) OwnerID() uint {
	return b.UserID
}
