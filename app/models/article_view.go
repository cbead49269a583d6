package models

import (
	"time"
)

// ArticleView is one row per (article, session) pair, used to deduplicate
// views for analytics. The aggregate views counter on the article is
// incremented independently of this table.
type ArticleView struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ArticleID  uint      `gorm:"uniqueIndex:idx_article_session;index" json:"article_id"`
	Article    Article   `gorm:"foreignKey:ArticleID" json:"article,omitempty"`
	UserID     *uint     `gorm:"index" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IPAddress  string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent  string    `gorm:"type:text" json:"user_agent"`
	Referrer   string    `gorm:"type:varchar(255)" json:"referrer"`
	SessionKey string    `gorm:"uniqueIndex:idx_article_session;type:varchar(40)" json:"session_key"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name for the ArticleView model
func (ArticleView) TableName() string {
	return "article_views"
}
