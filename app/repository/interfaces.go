package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/presswire/PressWire/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Update(user *models.User) error
	Count() (int64, error)
	TouchLastLogin(id uint, at time.Time) error
}

// AuthorRepository defines the interface for author-profile operations
type AuthorRepository interface {
	Create(author *models.Author) error
	GetByID(id uint) (*models.Author, error)
	GetByUserID(userID uint) (*models.Author, error)
	List(offset, limit int) ([]models.Author, error)
	Update(author *models.Author) error
	Count() (int64, error)
	CountVerified() (int64, error)
	CountStaffWriters() (int64, error)
	ArticleCount(userID uint) (int64, error)
	MostProlific() (*models.Author, int64, error)
	Search(query string, limit int) ([]models.Author, error)
}

// CategoryRepository defines the interface for category-related operations
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetBySlug(slug string) (*models.Category, error)
	GetActive() ([]models.Category, error)
	GetAll() ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uint) error
	Count() (int64, error)
	CountActive() (int64, error)
	ArticleCount(categoryID uint) (int64, error)
	MostPopular() (*models.Category, int64, error)
	Search(query string, limit int) ([]models.Category, error)
}

// TagRepository defines the interface for tag-related operations
type TagRepository interface {
	Create(tag *models.Tag) error
	GetByID(id uint) (*models.Tag, error)
	GetBySlug(slug string) (*models.Tag, error)
	GetAll() ([]models.Tag, error)
	GetByIDs(ids []uint) ([]models.Tag, error)
	FindOrCreate(tag *models.Tag) error
	Update(tag *models.Tag) error
	Delete(id uint) error
	Count() (int64, error)
	ArticleCount(tagID uint) (int64, error)
	Search(query string, limit int) ([]models.Tag, error)
}

// ArticleStats aggregates platform-wide article numbers for dashboards
type ArticleStats struct {
	TotalArticles     int64 `json:"total_articles"`
	PublishedArticles int64 `json:"published_articles"`
	DraftArticles     int64 `json:"draft_articles"`
	TotalViews        int64 `json:"total_views"`
	TotalLikes        int64 `json:"total_likes"`
	TotalComments     int64 `json:"total_comments"`
	FeaturedArticles  int64 `json:"featured_articles"`
	BreakingArticles  int64 `json:"breaking_articles"`
	TrendingArticles  int64 `json:"trending_articles"`
}

// ArticleRepository defines the interface for article-related database
// operations, including the ranking queries and the view tracker.
type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetBySlug(slug string) (*models.Article, error)
	List(offset, limit int) ([]models.Article, error)
	ListPublished(offset, limit int) ([]models.Article, error)
	ListByCategory(categoryID uint, offset, limit int) ([]models.Article, error)
	ListByTag(tagID uint, offset, limit int) ([]models.Article, error)
	ListByAuthor(authorID uint, offset, limit int) ([]models.Article, error)
	Update(article *models.Article) error
	ReplaceTags(article *models.Article, tags []models.Tag) error
	Delete(id uint) error
	Count() (int64, error)
	CountByStatus(status string) (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
	SlugExists(slug string) (bool, error)

	// Ranking queries, published articles only
	Featured(limit int) ([]models.Article, error)
	Trending(since time.Time, limit int) ([]models.Article, error)
	MostViewed(limit int) ([]models.Article, error)
	Breaking(limit int) ([]models.Article, error)
	Latest(limit int) ([]models.Article, error)
	Stats() (*ArticleStats, error)
	Search(query string, limit int) ([]models.Article, error)

	// View tracker
	RecordView(article *models.Article, view *models.ArticleView) error
	IncrementViews(id uint) (uint, error)
	CountViewsSince(since time.Time) (int64, error)
}

// NewsletterRepository defines the interface for subscriber operations
type NewsletterRepository interface {
	Subscribe(subscriber *models.Newsletter) error
	GetByID(id uint) (*models.Newsletter, error)
	GetByEmail(email string) (*models.Newsletter, error)
	GetByToken(token string) (*models.Newsletter, error)
	List(offset, limit int) ([]models.Newsletter, error)
	Update(subscriber *models.Newsletter) error
	ActiveConfirmed() ([]models.Newsletter, error)
	CountActive() (int64, error)
	CountActiveConfirmed() (int64, error)
}

// CampaignRepository defines the interface for newsletter campaigns
type CampaignRepository interface {
	Create(campaign *models.NewsletterCampaign) error
	GetByID(id uint) (*models.NewsletterCampaign, error)
	List(offset, limit int) ([]models.NewsletterCampaign, error)
	Update(campaign *models.NewsletterCampaign) error
	Delete(id uint) error
	// MarkSent transitions the campaign to sent with a conditional update
	// (status <> 'sent'); returns models.ErrAlreadySent when no row changed.
	MarkSent(id uint, sentAt time.Time, sentCount uint) error
}

// InteractionRepository defines the interface for reader interactions:
// comments, likes, bookmarks and shares.
type InteractionRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	ListApprovedComments(articleID uint, offset, limit int) ([]models.Comment, error)
	DeleteComment(id uint) error
	CountApprovedComments(articleID uint) (int64, error)

	ToggleLike(userID, articleID uint) (bool, error)
	CountLikes(articleID uint) (int64, error)

	ToggleBookmark(userID, articleID uint, notes string) (bool, error)
	ListBookmarksByUser(userID uint, offset, limit int) ([]models.Bookmark, error)

	CreateShare(share *models.Share) error
	CountShares(articleID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User        UserRepository
	Author      AuthorRepository
	Category    CategoryRepository
	Tag         TagRepository
	Article     ArticleRepository
	Newsletter  NewsletterRepository
	Campaign    CampaignRepository
	Interaction InteractionRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Author:      NewAuthorRepository(db),
		Category:    NewCategoryRepository(db),
		Tag:         NewTagRepository(db),
		Article:     NewArticleRepository(db),
		Newsletter:  NewNewsletterRepository(db),
		Campaign:    NewCampaignRepository(db),
		Interaction: NewInteractionRepository(db),
	}
}
