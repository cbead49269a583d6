package models

import (
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/presswire/PressWire/internal/pkg/slug"
)

const (
	ARTICLE_STATUS_DRAFT     = "draft"
	ARTICLE_STATUS_REVIEW    = "review"
	ARTICLE_STATUS_PUBLISHED = "published"
	ARTICLE_STATUS_ARCHIVED  = "archived"

	PRIORITY_LOW    = "low"
	PRIORITY_NORMAL = "normal"
	PRIORITY_HIGH   = "high"
	PRIORITY_URGENT = "urgent"
)

// Reading speed used for the read-time estimate, in words per minute.
const wordsPerMinute = 200

// Excerpts are cut at 497 characters plus an ellipsis once the content
// exceeds this length.
const excerptThreshold = 500

// Article is a publishable content unit with lifecycle state, authorship
// and classification.
type Article struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"type:varchar(200)" json:"title" validate:"required,min=3,max=200"`
	Slug     string `gorm:"uniqueIndex;type:varchar(200)" json:"slug"`
	Subtitle string `gorm:"type:varchar(300)" json:"subtitle" validate:"max=300"`
	Content  string `gorm:"type:text" json:"content" validate:"required"`
	Excerpt  string `gorm:"type:varchar(500)" json:"excerpt" validate:"max=500"`

	AuthorID   uint     `gorm:"index" json:"author_id"`
	Author     User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CategoryID uint     `gorm:"index" json:"category_id" validate:"required"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags       []Tag    `gorm:"many2many:article_tags;" json:"tags,omitempty"`

	Status      string     `gorm:"type:varchar(20);default:'draft';index:idx_articles_status_published_at" json:"status" validate:"oneof=draft review published archived"`
	Priority    string     `gorm:"type:varchar(20);default:'normal'" json:"priority" validate:"oneof=low normal high urgent"`
	PublishedAt *time.Time `gorm:"type:datetime;index:idx_articles_status_published_at" json:"published_at"`

	MetaTitle       string `gorm:"type:varchar(60)" json:"meta_title"`
	MetaDescription string `gorm:"type:varchar(160)" json:"meta_description"`
	MetaKeywords    string `gorm:"type:varchar(200)" json:"meta_keywords" validate:"max=200"`

	IsFeatured    bool `gorm:"default:false;index" json:"is_featured"`
	IsBreaking    bool `gorm:"default:false" json:"is_breaking"`
	IsTrending    bool `gorm:"default:false" json:"is_trending"`
	AllowComments bool `gorm:"default:true" json:"allow_comments"`

	ViewsCount uint   `gorm:"default:0;index" json:"views_count"`
	ReadTime   uint   `gorm:"default:0" json:"read_time"`
	Location   string `gorm:"type:varchar(100)" json:"location" validate:"max=100"`

	Comments  []Comment      `gorm:"foreignKey:ArticleID" json:"comments,omitempty"`
	Likes     []Like         `gorm:"foreignKey:ArticleID" json:"likes,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// ArticleTag is the join table between articles and tags
type ArticleTag struct {
	ArticleID uint `gorm:"primaryKey"`
	TagID     uint `gorm:"primaryKey"`
}

// TableName specifies the table name for the ArticleTag join model
func (ArticleTag) TableName() string {
	return "article_tags"
}

func (a *Article) Validate() error {
	v := validator.New()

	return v.Struct(a)
}

// OwnerID implements the Ownable capability; articles belong to their author.
func (a *Article) OwnerID() uint {
	return a.AuthorID
}

// IsPublished reports whether the article is live
func (a *Article) IsPublished() bool {
	return a.Status == ARTICLE_STATUS_PUBLISHED && a.PublishedAt != nil
}

// BeforeCreate derives a unique slug from the title. The slug is immutable
// afterwards, updates never touch it.
func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.Slug != "" {
		return nil
	}

	base := slug.Make(a.Title)
	unique, err := slug.Unique(base, func(candidate string) (bool, error) {
		var count int64
		err := tx.Model(&Article{}).Where("slug = ?", candidate).Count(&count).Error
		return count > 0, err
	})
	if err != nil {
		return err
	}
	a.Slug = unique
	return nil
}

// BeforeSave fills the derived fields on every write
func (a *Article) BeforeSave(tx *gorm.DB) error {
	a.DeriveFields()
	return nil
}

// DeriveFields computes excerpt, SEO defaults and read time. It never fails;
// defaults degrade gracefully for empty content.
func (a *Article) DeriveFields() {
	if a.Excerpt == "" && a.Content != "" {
		if len([]rune(a.Content)) > excerptThreshold {
			a.Excerpt = truncate(a.Content, excerptThreshold-3) + "..."
		} else {
			a.Excerpt = a.Content
		}
	}

	if a.MetaTitle == "" {
		a.MetaTitle = truncate(a.Title, 60)
	}
	if a.MetaDescription == "" {
		a.MetaDescription = truncate(a.Excerpt, 160)
	}

	// Empty content leaves the read time at its zero default
	if a.Content != "" {
		a.ReadTime = CalculateReadTime(a.Content)
	}
}

// CalculateReadTime estimates reading minutes from whitespace-separated
// words at 200 words per minute, never less than one minute.
func CalculateReadTime(content string) uint {
	words := len(strings.Fields(content))
	minutes := math.Round(float64(words) / wordsPerMinute)
	if minutes < 1 {
		minutes = 1
	}
	return uint(minutes)
}

// ValidateStatusTransition enforces the one publishing policy constraint:
// a published article cannot go back to draft. Every other pair is allowed,
// including archived -> published.
func ValidateStatusTransition(from, to string) error {
	if from == ARTICLE_STATUS_PUBLISHED && to == ARTICLE_STATUS_DRAFT {
		return ErrInvalidTransition
	}
	return nil
}

// ApplyStatusChange moves the article to the given status and stamps
// PublishedAt on the first entry into published. Re-entering published
// leaves an existing timestamp untouched.
func (a *Article) ApplyStatusChange(to string, now time.Time) error {
	if err := ValidateStatusTransition(a.Status, to); err != nil {
		return err
	}

	a.Status = to
	if to == ARTICLE_STATUS_PUBLISHED && a.PublishedAt == nil {
		a.PublishedAt = &now
	}
	return nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
