package models

import (
	"time"

	"gorm.io/gorm"
)

type Comment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ArticleID  uint           `gorm:"index:idx_comments_article_approved" json:"article_id"`
	Article    Article        `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	AuthorID   uint           `gorm:"index" json:"author_id"`
	Author     User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content    string         `gorm:"type:varchar(1000)" json:"content" validate:"required,min=1,max=1000"`
	ParentID   *uint          `gorm:"index" json:"parent_id"`
	Parent     *Comment       `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Replies    []Comment      `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	IsApproved bool           `gorm:"default:true;index:idx_comments_article_approved" json:"is_approved"`
	IsFlagged  bool           `gorm:"default:false" json:"is_flagged"`
	LikeCount  uint           `gorm:"default:0" json:"like_count"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}

// OwnerID implements the Ownable capability; comments belong to their author.
func (cm *Comment) OwnerID() uint {
	return cm.AuthorID
}

// IsReply reports whether the comment is a reply to another comment
func (cm *Comment) IsReply() bool {
	return cm.ParentID != nil
}
