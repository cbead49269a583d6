package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/presswire/PressWire/app/models"
)

// authorRepository implements the AuthorRepository interface
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository creates a new author repository instance
func NewAuthorRepository(db *gorm.DB) AuthorRepository {
	return &authorRepository{db: db}
}

// Create creates a new author profile in the database
func (r *authorRepository) Create(author *models.Author) error {
	return r.db.Create(author).Error
}

// GetByID retrieves an author profile by its ID
func (r *authorRepository) GetByID(id uint) (*models.Author, error) {
	var author models.Author
	err := r.db.Preload("User").First(&author, id).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// GetByUserID retrieves an author profile by the owning user ID
func (r *authorRepository) GetByUserID(userID uint) (*models.Author, error) {
	var author models.Author
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&author).Error
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// List retrieves author profiles with pagination
func (r *authorRepository) List(offset, limit int) ([]models.Author, error) {
	var authors []models.Author
	err := r.db.Preload("User").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&authors).Error
	return authors, err
}

// Update updates an existing author profile in the database
func (r *authorRepository) Update(author *models.Author) error {
	return r.db.Save(author).Error
}

// Count returns the total number of author profiles
func (r *authorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Author{}).Count(&count).Error
	return count, err
}

// CountVerified returns the number of verified authors
func (r *authorRepository) CountVerified() (int64, error) {
	var count int64
	err := r.db.Model(&models.Author{}).Where("is_verified = ?", true).Count(&count).Error
	return count, err
}

// CountStaffWriters returns the number of staff writers
func (r *authorRepository) CountStaffWriters() (int64, error) {
	var count int64
	err := r.db.Model(&models.Author{}).Where("is_staff_writer = ?", true).Count(&count).Error
	return count, err
}

// ArticleCount returns the number of published articles written by a user
func (r *authorRepository) ArticleCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).
		Where("author_id = ? AND status = ?", userID, models.ARTICLE_STATUS_PUBLISHED).
		Count(&count).Error
	return count, err
}

// MostProlific returns the author with the most published articles.
// Ties break on the lowest user ID for a deterministic result.
func (r *authorRepository) MostProlific() (*models.Author, int64, error) {
	var row struct {
		AuthorID     uint
		ArticleCount int64
	}
	err := r.db.Model(&models.Article{}).
		Select("author_id, COUNT(*) AS article_count").
		Where("status = ?", models.ARTICLE_STATUS_PUBLISHED).
		Group("author_id").
		Order("article_count DESC, author_id ASC").
		Limit(1).Scan(&row).Error
	if err != nil {
		return nil, 0, err
	}
	if row.AuthorID == 0 {
		return nil, 0, nil
	}

	author, err := r.GetByUserID(row.AuthorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// Prolific user without an author profile
			return nil, row.ArticleCount, nil
		}
		return nil, 0, err
	}
	return author, row.ArticleCount, nil
}

// Search performs a case-insensitive substring search over author profiles
// (username, first/last name, bio).
func (r *authorRepository) Search(query string, limit int) ([]models.Author, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var authors []models.Author
	err := r.db.Preload("User").
		Joins("JOIN users ON users.id = authors.user_id").
		Where("LOWER(users.username) LIKE ? OR LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ? OR LOWER(authors.bio) LIKE ?",
			pattern, pattern, pattern, pattern).
		Limit(limit).Find(&authors).Error
	return authors, err
}
