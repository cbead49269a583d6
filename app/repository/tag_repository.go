package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/presswire/PressWire/app/models"
)

// tagRepository implements the TagRepository interface
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create creates a new tag in the database
func (r *tagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// GetByID retrieves a tag by its ID
func (r *tagRepository) GetByID(id uint) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, id).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetBySlug retrieves a tag by its slug
func (r *tagRepository) GetBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("slug = ?", slug).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetAll retrieves all tags ordered by name
func (r *tagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// GetByIDs retrieves the tags matching the given IDs
func (r *tagRepository) GetByIDs(ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

// FindOrCreate loads the tag with the given name or creates it
func (r *tagRepository) FindOrCreate(tag *models.Tag) error {
	return tag.FindOrCreate(r.db)
}

// Update updates an existing tag in the database
func (r *tagRepository) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// Delete soft deletes a tag by its ID
func (r *tagRepository) Delete(id uint) error {
	return r.db.Delete(&models.Tag{}, id).Error
}

// Count returns the total number of tags
func (r *tagRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Tag{}).Count(&count).Error
	return count, err
}

// ArticleCount returns the number of published articles carrying a tag
func (r *tagRepository) ArticleCount(tagID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).
		Joins("JOIN article_tags ON article_tags.article_id = articles.id").
		Where("article_tags.tag_id = ? AND articles.status = ?", tagID, models.ARTICLE_STATUS_PUBLISHED).
		Count(&count).Error
	return count, err
}

// Search performs a case-insensitive substring search over tags
// (name, description).
func (r *tagRepository) Search(query string, limit int) ([]models.Tag, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var tags []models.Tag
	err := r.db.
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Limit(limit).Find(&tags).Error
	return tags, err
}
