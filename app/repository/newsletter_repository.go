package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/presswire/PressWire/app/models"
)

// newsletterRepository implements the NewsletterRepository interface
type newsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository creates a new newsletter repository instance
func NewNewsletterRepository(db *gorm.DB) NewsletterRepository {
	return &newsletterRepository{db: db}
}

// Subscribe creates a subscriber record; a duplicate email is surfaced as
// models.ErrDuplicateEmail.
func (r *newsletterRepository) Subscribe(subscriber *models.Newsletter) error {
	var count int64
	if err := r.db.Model(&models.Newsletter{}).
		Where("email = ?", subscriber.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return models.ErrDuplicateEmail
	}

	err := r.db.Create(subscriber).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the race against a concurrent subscribe
		return models.ErrDuplicateEmail
	}
	return err
}

// GetByID retrieves a subscriber by ID
func (r *newsletterRepository) GetByID(id uint) (*models.Newsletter, error) {
	var subscriber models.Newsletter
	err := r.db.First(&subscriber, id).Error
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// GetByEmail retrieves a subscriber by email address
func (r *newsletterRepository) GetByEmail(email string) (*models.Newsletter, error) {
	var subscriber models.Newsletter
	err := r.db.Where("email = ?", email).First(&subscriber).Error
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// GetByToken retrieves a subscriber by confirmation token
func (r *newsletterRepository) GetByToken(token string) (*models.Newsletter, error) {
	var subscriber models.Newsletter
	err := r.db.Where("confirmation_token = ?", token).First(&subscriber).Error
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// List retrieves subscribers with pagination, newest first
func (r *newsletterRepository) List(offset, limit int) ([]models.Newsletter, error) {
	var subscribers []models.Newsletter
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&subscribers).Error
	return subscribers, err
}

// Update updates an existing subscriber record
func (r *newsletterRepository) Update(subscriber *models.Newsletter) error {
	return r.db.Save(subscriber).Error
}

// ActiveConfirmed retrieves the campaign recipients: active subscribers
// with a confirmed address.
func (r *newsletterRepository) ActiveConfirmed() ([]models.Newsletter, error) {
	var subscribers []models.Newsletter
	err := r.db.Where("is_active = ? AND confirmed_at IS NOT NULL", true).
		Find(&subscribers).Error
	return subscribers, err
}

// CountActive returns the number of active subscribers
func (r *newsletterRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Newsletter{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// CountActiveConfirmed returns the number of active confirmed subscribers
func (r *newsletterRepository) CountActiveConfirmed() (int64, error) {
	var count int64
	err := r.db.Model(&models.Newsletter{}).
		Where("is_active = ? AND confirmed_at IS NOT NULL", true).Count(&count).Error
	return count, err
}
