package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/presswire/PressWire/app/models"
)

// categoryRepository implements the CategoryRepository interface
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category in the database
func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// GetByID retrieves a category by its ID
func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetBySlug retrieves a category by its slug
func (r *categoryRepository) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// GetActive retrieves active categories in display order
func (r *categoryRepository) GetActive() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("is_active = ?", true).
		Order("`order` ASC, name ASC").Find(&categories).Error
	return categories, err
}

// GetAll retrieves all categories in display order
func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("`order` ASC, name ASC").Find(&categories).Error
	return categories, err
}

// Update updates an existing category in the database
func (r *categoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete soft deletes a category by its ID
func (r *categoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// Count returns the total number of categories
func (r *categoryRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Count(&count).Error
	return count, err
}

// CountActive returns the number of active categories
func (r *categoryRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// ArticleCount returns the number of published articles in a category
func (r *categoryRepository) ArticleCount(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).
		Where("category_id = ? AND status = ?", categoryID, models.ARTICLE_STATUS_PUBLISHED).
		Count(&count).Error
	return count, err
}

// MostPopular returns the category with the most published articles.
// Ties break on the lowest category ID for a deterministic result.
func (r *categoryRepository) MostPopular() (*models.Category, int64, error) {
	var row struct {
		CategoryID   uint
		ArticleCount int64
	}
	err := r.db.Model(&models.Article{}).
		Select("category_id, COUNT(*) AS article_count").
		Where("status = ?", models.ARTICLE_STATUS_PUBLISHED).
		Group("category_id").
		Order("article_count DESC, category_id ASC").
		Limit(1).Scan(&row).Error
	if err != nil {
		return nil, 0, err
	}
	if row.CategoryID == 0 {
		return nil, 0, nil
	}

	category, err := r.GetByID(row.CategoryID)
	if err != nil {
		return nil, 0, err
	}
	return category, row.ArticleCount, nil
}

// Search performs a case-insensitive substring search over active
// categories (name, description).
func (r *categoryRepository) Search(query string, limit int) ([]models.Category, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var categories []models.Category
	err := r.db.Where("is_active = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Limit(limit).Find(&categories).Error
	return categories, err
}
