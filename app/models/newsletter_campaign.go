package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	CAMPAIGN_STATUS_DRAFT     = "draft"
	CAMPAIGN_STATUS_SCHEDULED = "scheduled"
	CAMPAIGN_STATUS_SENT      = "sent"
)

// NewsletterCampaign is a batch newsletter issue. Once sent it is terminal:
// sent_at and sent_count are written exactly once, at the moment of sending.
type NewsletterCampaign struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(200)" json:"title" validate:"required,min=3,max=200"`
	Subject     string         `gorm:"type:varchar(200)" json:"subject" validate:"required,min=3,max=200"`
	Content     string         `gorm:"type:text" json:"content" validate:"required"`
	Articles    []Article      `gorm:"many2many:campaign_articles;" json:"articles,omitempty"`
	Status      string         `gorm:"type:varchar(20);default:'draft'" json:"status" validate:"oneof=draft scheduled sent"`
	ScheduledAt *time.Time     `gorm:"type:datetime" json:"scheduled_at"`
	SentAt      *time.Time     `gorm:"type:datetime" json:"sent_at"`
	SentCount   uint           `gorm:"default:0" json:"sent_count"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the NewsletterCampaign model
func (NewsletterCampaign) TableName() string {
	return "newsletter_campaigns"
}

// CampaignArticle is the join table between campaigns and featured articles
type CampaignArticle struct {
	NewsletterCampaignID uint `gorm:"primaryKey"`
	ArticleID            uint `gorm:"primaryKey"`
}

// TableName specifies the table name for the CampaignArticle join model
func (CampaignArticle) TableName() string {
	return "campaign_articles"
}

func (nc *NewsletterCampaign) Validate() error {
	v := validator.New()

	return v.Struct(nc)
}

// IsSent reports whether the campaign has reached its terminal state
func (nc *NewsletterCampaign) IsSent() bool {
	return nc.Status == CAMPAIGN_STATUS_SENT
}
