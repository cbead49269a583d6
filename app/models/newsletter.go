package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Newsletter is a subscriber record. Only active subscribers with a
// confirmed address receive campaigns.
type Newsletter struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Email             string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email"`
	Name              string         `gorm:"type:varchar(100)" json:"name" validate:"max=100"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	ConfirmationToken string         `gorm:"uniqueIndex;type:char(36)" json:"-"`
	ConfirmedAt       *time.Time     `gorm:"type:datetime" json:"confirmed_at"`
	UnsubscribedAt    *time.Time     `gorm:"type:datetime" json:"unsubscribed_at"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Newsletter model
func (Newsletter) TableName() string {
	return "newsletters"
}

func (n *Newsletter) Validate() error {
	v := validator.New()

	return v.Struct(n)
}

// BeforeCreate generates the confirmation token
func (n *Newsletter) BeforeCreate(tx *gorm.DB) error {
	if n.ConfirmationToken == "" {
		n.ConfirmationToken = uuid.New().String()
	}
	return nil
}

// IsConfirmed reports whether the subscription has been confirmed
func (n *Newsletter) IsConfirmed() bool {
	return n.ConfirmedAt != nil
}
