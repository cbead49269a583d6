package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/presswire/PressWire/app/models"
)

// campaignRepository implements the CampaignRepository interface
type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new campaign repository instance
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// Create creates a new campaign in the database
func (r *campaignRepository) Create(campaign *models.NewsletterCampaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves a campaign by its ID with featured articles preloaded
func (r *campaignRepository) GetByID(id uint) (*models.NewsletterCampaign, error) {
	var campaign models.NewsletterCampaign
	err := r.db.Preload("Articles").First(&campaign, id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// List retrieves campaigns with pagination, newest first
func (r *campaignRepository) List(offset, limit int) ([]models.NewsletterCampaign, error) {
	var campaigns []models.NewsletterCampaign
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&campaigns).Error
	return campaigns, err
}

// Update updates an existing campaign in the database
func (r *campaignRepository) Update(campaign *models.NewsletterCampaign) error {
	return r.db.Save(campaign).Error
}

// Delete soft deletes a campaign by its ID
func (r *campaignRepository) Delete(id uint) error {
	return r.db.Delete(&models.NewsletterCampaign{}, id).Error
}

// MarkSent transitions a campaign into its terminal sent state. The
// conditional update serializes concurrent send attempts: only one caller
// sees a row change, every other gets models.ErrAlreadySent.
func (r *campaignRepository) MarkSent(id uint, sentAt time.Time, sentCount uint) error {
	result := r.db.Model(&models.NewsletterCampaign{}).
		Where("id = ? AND status <> ?", id, models.CAMPAIGN_STATUS_SENT).
		Updates(map[string]interface{}{
			"status":     models.CAMPAIGN_STATUS_SENT,
			"sent_at":    sentAt,
			"sent_count": sentCount,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrAlreadySent
	}
	return nil
}
