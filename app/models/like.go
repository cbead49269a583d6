package models

import (
	"time"

	"gorm.io/gorm"
)

type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"uniqueIndex:idx_like_article_user" json:"article_id"`
	Article   Article   `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	UserID    uint      `gorm:"uniqueIndex:idx_like_article_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Like model
func (Like) TableName() string {
	return "likes"
}

// ToggleLike creates or removes a like for the given user and article.
// Returns true when the article is liked after the call.
func ToggleLike(db *gorm.DB, userID, articleID uint) (bool, error) {
	var like Like
	result := db.Where("user_id = ? AND article_id = ?", userID, articleID).First(&like)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			newLike := Like{
				UserID:    userID,
				ArticleID: articleID,
			}
			return true, db.Create(&newLike).Error
		}
		return false, result.Error
	}

	return false, db.Delete(&like).Error
}
