package models

import (
	"time"
)

const (
	SHARE_FACEBOOK  = "facebook"
	SHARE_TWITTER   = "twitter"
	SHARE_LINKEDIN  = "linkedin"
	SHARE_WHATSAPP  = "whatsapp"
	SHARE_EMAIL     = "email"
	SHARE_COPY_LINK = "copy_link"
	SHARE_OTHER     = "other"
)

// Share records an article being shared to an external platform.
type Share struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"index:idx_shares_article_platform" json:"article_id"`
	Article   Article   `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Platform  string    `gorm:"type:varchar(20);index:idx_shares_article_platform" json:"platform" validate:"oneof=facebook twitter linkedin whatsapp email copy_link other"`
	IPAddress string    `gorm:"type:varchar(45)" json:"ip_address"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for the Share model
func (Share) TableName() string {
	return "shares"
}

// ValidSharePlatform reports whether the platform is one of the known values
func ValidSharePlatform(platform string) bool {
	switch platform {
	case SHARE_FACEBOOK, SHARE_TWITTER, SHARE_LINKEDIN, SHARE_WHATSAPP, SHARE_EMAIL, SHARE_COPY_LINK, SHARE_OTHER:
		return true
	}
	return false
}
