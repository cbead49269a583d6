package models

import (
	"time"

	"gorm.io/gorm"
)

// Author is the editorial profile extension of a user account.
type Author struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"uniqueIndex" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Bio           string         `gorm:"type:varchar(500)" json:"bio" validate:"max=500"`
	Website       string         `gorm:"type:varchar(255)" json:"website" validate:"omitempty,url"`
	TwitterHandle string         `gorm:"type:varchar(50)" json:"twitter_handle" validate:"max=50"`
	IsVerified    bool           `gorm:"default:false" json:"is_verified"`
	IsStaffWriter bool           `gorm:"default:false" json:"is_staff_writer"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Author model
func (Author) TableName() string {
	return "authors"
}

// OwnerID implements the Ownable capability for author profiles.
func (a *Author) OwnerID() uint {
	return a.UserID
}
