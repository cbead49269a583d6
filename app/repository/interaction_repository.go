package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/presswire/PressWire/app/models"
)

// interactionRepository implements the InteractionRepository interface
type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository instance
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// CreateComment creates a new comment in the database
func (r *interactionRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by its ID
func (r *interactionRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("Author").First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListApprovedComments retrieves approved top-level comments for an article
// with their approved replies, newest first.
func (r *interactionRepository) ListApprovedComments(articleID uint, offset, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").
		Preload("Replies", "is_approved = ?", true).
		Preload("Replies.Author").
		Where("article_id = ? AND is_approved = ? AND parent_id IS NULL", articleID, true).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&comments).Error
	return comments, err
}

// DeleteComment soft deletes a comment by its ID
func (r *interactionRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// CountApprovedComments returns the number of approved comments on an article
func (r *interactionRepository) CountApprovedComments(articleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).
		Where("article_id = ? AND is_approved = ?", articleID, true).Count(&count).Error
	return count, err
}

// ToggleLike creates or removes a like; returns true when the article is
// liked after the call.
func (r *interactionRepository) ToggleLike(userID, articleID uint) (bool, error) {
	return models.ToggleLike(r.db, userID, articleID)
}

// CountLikes returns the number of likes on an article
func (r *interactionRepository) CountLikes(articleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("article_id = ?", articleID).Count(&count).Error
	return count, err
}

// ToggleBookmark creates or removes a bookmark; returns true when the
// article is bookmarked after the call.
func (r *interactionRepository) ToggleBookmark(userID, articleID uint, notes string) (bool, error) {
	var bookmark models.Bookmark
	err := r.db.Where("user_id = ? AND article_id = ?", userID, articleID).First(&bookmark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bookmark = models.Bookmark{
				UserID:    userID,
				ArticleID: articleID,
				Notes:     notes,
			}
			return true, r.db.Create(&bookmark).Error
		}
		return false, err
	}

	return false, r.db.Delete(&bookmark).Error
}

// ListBookmarksByUser retrieves a user's bookmarks, newest first
func (r *interactionRepository) ListBookmarksByUser(userID uint, offset, limit int) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.Preload("Article").Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&bookmarks).Error
	return bookmarks, err
}

// CreateShare records an article share
func (r *interactionRepository) CreateShare(share *models.Share) error {
	return r.db.Create(share).Error
}

// CountShares returns the number of shares of an article
func (r *interactionRepository) CountShares(articleID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Share{}).Where("article_id = ?", articleID).Count(&count).Error
	return count, err
}
