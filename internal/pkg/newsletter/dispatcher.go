package newsletter

import (
	"log"
	"time"

	"github.com/presswire/PressWire/app/models"
)

// Mailer delivers a single email. Production wiring uses mail.SendMail.
type Mailer func(to, subject, body string) error

// CampaignStore is the slice of the campaign repository the dispatcher needs.
type CampaignStore interface {
	GetByID(id uint) (*models.NewsletterCampaign, error)
	MarkSent(id uint, sentAt time.Time, sentCount uint) error
}

// SubscriberStore yields the qualifying campaign recipients.
type SubscriberStore interface {
	ActiveConfirmed() ([]models.Newsletter, error)
}

// Dispatcher sends newsletter campaigns to all active confirmed
// subscribers. The subscriber count is snapshotted at send time and
// written into the campaign exactly once.
type Dispatcher struct {
	campaigns   CampaignStore
	subscribers SubscriberStore
	mailer      Mailer
	now         func() time.Time
}

// NewDispatcher creates a campaign dispatcher
func NewDispatcher(campaigns CampaignStore, subscribers SubscriberStore, mailer Mailer) *Dispatcher {
	return &Dispatcher{
		campaigns:   campaigns,
		subscribers: subscribers,
		mailer:      mailer,
		now:         time.Now,
	}
}

// Send snapshots the qualifying subscribers, marks the campaign sent and
// delivers one mail per subscriber. Returns models.ErrAlreadySent for a
// campaign in its terminal state and models.ErrNoSubscribers when nobody
// qualifies; neither mutates the campaign.
func (d *Dispatcher) Send(campaignID uint) (*models.NewsletterCampaign, error) {
	campaign, err := d.campaigns.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.IsSent() {
		return nil, models.ErrAlreadySent
	}

	recipients, err := d.subscribers.ActiveConfirmed()
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, models.ErrNoSubscribers
	}

	sentAt := d.now()
	sentCount := uint(len(recipients))

	// The conditional update is the serialization point between
	// concurrent sends of the same campaign.
	if err := d.campaigns.MarkSent(campaign.ID, sentAt, sentCount); err != nil {
		return nil, err
	}

	campaign.Status = models.CAMPAIGN_STATUS_SENT
	campaign.SentAt = &sentAt
	campaign.SentCount = sentCount

	for _, recipient := range recipients {
		if err := d.mailer(recipient.Email, campaign.Subject, campaign.Content); err != nil {
			// Delivery is best effort; the campaign stays sent
			log.Printf("campaign %d: failed to send to %s: %v", campaign.ID, recipient.Email, err)
		}
	}

	return campaign, nil
}
