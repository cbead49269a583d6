package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/presswire/PressWire/internal/pkg/slug"
)

type Tag struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;type:varchar(50)" json:"name" validate:"required,min=2,max=50"`
	Slug        string         `gorm:"uniqueIndex;type:varchar(50)" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Articles    []Article      `gorm:"many2many:article_tags;" json:"articles,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Tag model
func (Tag) TableName() string {
	return "tags"
}

func (t *Tag) Validate() error {
	v := validator.New()

	return v.Struct(t)
}

// BeforeCreate derives the slug from the name when none is set
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.Slug == "" {
		t.Slug = slug.Make(t.Name)
	}
	return nil
}

// FindOrCreate finds a tag by name or creates it if it does not exist
func (t *Tag) FindOrCreate(db *gorm.DB) error {
	result := db.Where("name = ?", t.Name).First(t)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return db.Create(t).Error
		}
		return result.Error
	}
	return nil
}
