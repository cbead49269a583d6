package repository

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/presswire/PressWire/app/models"
)

// Default list ordering: newest publication first, creation time as tie-break.
const defaultArticleOrder = "published_at DESC, created_at DESC"

// articleRepository implements the ArticleRepository interface
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository instance
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create creates a new article in the database
func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

// GetByID retrieves an article by its ID with relations preloaded
func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").First(&article, id).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetBySlug retrieves an article by its slug
func (r *articleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		Where("slug = ?", slug).First(&article).Error
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// List retrieves articles of any status with pagination
func (r *articleRepository) List(offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		Order(defaultArticleOrder).Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// ListPublished retrieves published articles with pagination
func (r *articleRepository) ListPublished(offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.published().Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// ListByCategory retrieves published articles in a category
func (r *articleRepository) ListByCategory(categoryID uint, offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.published().Where("category_id = ?", categoryID).
		Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// ListByTag retrieves published articles carrying a tag
func (r *articleRepository) ListByTag(tagID uint, offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.published().
		Joins("JOIN article_tags ON article_tags.article_id = articles.id").
		Where("article_tags.tag_id = ?", tagID).
		Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// ListByAuthor retrieves published articles written by a user
func (r *articleRepository) ListByAuthor(authorID uint, offset, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.published().Where("author_id = ?", authorID).
		Offset(offset).Limit(limit).Find(&articles).Error
	return articles, err
}

// Update persists all fields of an existing article
func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

// ReplaceTags swaps the article's tag set
func (r *articleRepository) ReplaceTags(article *models.Article, tags []models.Tag) error {
	return r.db.Model(article).Association("Tags").Replace(tags)
}

// Delete soft deletes an article by its ID
func (r *articleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}

// Count returns the total number of articles
func (r *articleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Count(&count).Error
	return count, err
}

// CountByStatus returns the number of articles in the given status
func (r *articleRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// CountCreatedSince returns the number of articles created after the given time
func (r *articleRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// SlugExists checks if a slug already exists
func (r *articleRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Featured retrieves published featured articles in default order
func (r *articleRepository) Featured(limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.published().Where("is_featured = ?", true).Limit(limit).Find(&articles).Error
	return articles, err
}

// Trending retrieves articles published since the given time, most viewed
// first. Ordering beyond views_count is left to the store.
func (r *articleRepository) Trending(since time.Time, limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		Where("status = ? AND published_at >= ?", models.ARTICLE_STATUS_PUBLISHED, since).
		Order("views_count DESC").Limit(limit).Find(&articles).Error
	return articles, err
}

// MostViewed retrieves published articles ordered by their all-time view
// counter.
func (r *articleRepository) MostViewed(limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		Where("status = ?", models.ARTICLE_STATUS_PUBLISHED).
		Order("views_count DESC").Limit(limit).Find(&articles).Error
	return articles, err
}

// Breaking retrieves published breaking-news articles in default order
func (r *articleRepository) Breaking(limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.published().Where("is_breaking = ?", true).Limit(limit).Find(&articles).Error
	return articles, err
}

// Latest retrieves the most recently published articles
func (r *articleRepository) Latest(limit int) ([]models.Article, error) {
	var articles []models.Article
	err := r.published().Limit(limit).Find(&articles).Error
	return articles, err
}

// Stats aggregates platform-wide article numbers
func (r *articleRepository) Stats() (*ArticleStats, error) {
	stats := &ArticleStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalArticles, r.db.Model(&models.Article{})},
		{&stats.PublishedArticles, r.db.Model(&models.Article{}).Where("status = ?", models.ARTICLE_STATUS_PUBLISHED)},
		{&stats.DraftArticles, r.db.Model(&models.Article{}).Where("status = ?", models.ARTICLE_STATUS_DRAFT)},
		{&stats.FeaturedArticles, r.db.Model(&models.Article{}).Where("is_featured = ?", true)},
		{&stats.BreakingArticles, r.db.Model(&models.Article{}).Where("is_breaking = ?", true)},
		{&stats.TrendingArticles, r.db.Model(&models.Article{}).Where("is_trending = ?", true)},
		{&stats.TotalLikes, r.db.Model(&models.Like{})},
		{&stats.TotalComments, r.db.Model(&models.Comment{}).Where("is_approved = ?", true)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	err := r.db.Model(&models.Article{}).
		Select("COALESCE(SUM(views_count), 0)").Scan(&stats.TotalViews).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// Search performs a case-insensitive substring search over published
// articles (title, content, excerpt).
func (r *articleRepository) Search(query string, limit int) ([]models.Article, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var articles []models.Article
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		Where("status = ?", models.ARTICLE_STATUS_PUBLISHED).
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ?",
			pattern, pattern, pattern).
		Order(defaultArticleOrder).Limit(limit).Find(&articles).Error
	return articles, err
}

// RecordView stores a deduplicated view row per (article, session) and
// unconditionally bumps the aggregate views counter. A lost race on the
// unique (article_id, session_key) index is treated as a no-op, the counter
// increment still happens.
func (r *articleRepository) RecordView(article *models.Article, view *models.ArticleView) error {
	var existing models.ArticleView
	err := r.db.Where("article_id = ? AND session_key = ?", article.ID, view.SessionKey).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if createErr := r.db.Create(view).Error; createErr != nil &&
			!errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return createErr
		}
	} else if err != nil {
		return err
	}

	return r.db.Model(&models.Article{}).Where("id = ?", article.ID).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

// IncrementViews atomically bumps the views counter without creating a
// dedup row and returns the new value.
func (r *articleRepository) IncrementViews(id uint) (uint, error) {
	err := r.db.Model(&models.Article{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
	if err != nil {
		return 0, err
	}

	var count uint
	err = r.db.Model(&models.Article{}).Where("id = ?", id).
		Pluck("views_count", &count).Error
	return count, err
}

// CountViewsSince returns the number of tracked view rows after the given time
func (r *articleRepository) CountViewsSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.ArticleView{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// published is the base query for public listings
func (r *articleRepository) published() *gorm.DB {
	return r.db.Preload("Author").Preload("Category").Preload("Tags").
		Where("status = ?", models.ARTICLE_STATUS_PUBLISHED).
		Order(defaultArticleOrder)
}
