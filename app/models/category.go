package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/presswire/PressWire/internal/pkg/slug"
)

// Category groups articles into sections (politics, sport, ...).
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;type:varchar(100)" json:"name" validate:"required,min=2,max=100"`
	Slug        string         `gorm:"uniqueIndex;type:varchar(100)" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Color       string         `gorm:"type:varchar(7);default:'#007bff'" json:"color" validate:"omitempty,hexcolor"`
	Icon        string         `gorm:"type:varchar(50)" json:"icon" validate:"max=50"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	Order       uint           `gorm:"default:0" json:"order"`
	Articles    []Article      `gorm:"foreignKey:CategoryID" json:"articles,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

func (cat *Category) Validate() error {
	v := validator.New()

	return v.Struct(cat)
}

// BeforeCreate derives the slug from the name when none is set
func (cat *Category) BeforeCreate(tx *gorm.DB) error {
	if cat.Slug == "" {
		cat.Slug = slug.Make(cat.Name)
	}
	return nil
}
