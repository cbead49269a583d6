package newsletter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presswire/PressWire/app/models"
)

type fakeCampaignStore struct {
	campaign   *models.NewsletterCampaign
	markedAt   *time.Time
	markedWith uint
	markErr    error
}

func (f *fakeCampaignStore) GetByID(id uint) (*models.NewsletterCampaign, error) {
	c := *f.campaign
	return &c, nil
}

func (f *fakeCampaignStore) MarkSent(id uint, sentAt time.Time, sentCount uint) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedAt = &sentAt
	f.markedWith = sentCount
	return nil
}

type fakeSubscriberStore struct {
	subscribers []models.Newsletter
}

func (f *fakeSubscriberStore) ActiveConfirmed() ([]models.Newsletter, error) {
	return f.subscribers, nil
}

func confirmedSubscribers(emails ...string) []models.Newsletter {
	now := time.Now()
	var subs []models.Newsletter
	for _, e := range emails {
		subs = append(subs, models.Newsletter{Email: e, IsActive: true, ConfirmedAt: &now})
	}
	return subs
}

func TestDispatcherSend(t *testing.T) {
	t.Parallel()

	t.Run("delivers to every qualifying subscriber", func(t *testing.T) {
		t.Parallel()
		campaigns := &fakeCampaignStore{
			campaign: &models.NewsletterCampaign{ID: 1, Subject: "Weekly", Content: "<p>Hi</p>", Status: models.CAMPAIGN_STATUS_DRAFT},
		}
		subs := &fakeSubscriberStore{subscribers: confirmedSubscribers("a@x.com", "b@x.com", "c@x.com")}

		var sentTo []string
		d := NewDispatcher(campaigns, subs, func(to, subject, body string) error {
			sentTo = append(sentTo, to)
			assert.Equal(t, "Weekly", subject)
			return nil
		})

		campaign, err := d.Send(1)
		require.NoError(t, err)
		assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, sentTo)
		assert.Equal(t, models.CAMPAIGN_STATUS_SENT, campaign.Status)
		assert.Equal(t, uint(3), campaign.SentCount)
		require.NotNil(t, campaign.SentAt)
		assert.Equal(t, uint(3), campaigns.markedWith)
	})

	t.Run("already sent campaign fails with no mutation", func(t *testing.T) {
		t.Parallel()
		campaigns := &fakeCampaignStore{
			campaign: &models.NewsletterCampaign{ID: 2, Status: models.CAMPAIGN_STATUS_SENT},
		}
		subs := &fakeSubscriberStore{subscribers: confirmedSubscribers("a@x.com")}

		called := false
		d := NewDispatcher(campaigns, subs, func(string, string, string) error {
			called = true
			return nil
		})

		_, err := d.Send(2)
		assert.ErrorIs(t, err, models.ErrAlreadySent)
		assert.False(t, called)
		assert.Nil(t, campaigns.markedAt)
	})

	t.Run("no qualifying subscribers fails with no mutation", func(t *testing.T) {
		t.Parallel()
		campaigns := &fakeCampaignStore{
			campaign: &models.NewsletterCampaign{ID: 3, Status: models.CAMPAIGN_STATUS_SCHEDULED},
		}
		subs := &fakeSubscriberStore{}

		d := NewDispatcher(campaigns, subs, func(string, string, string) error {
			t.Fatal("mailer must not be called")
			return nil
		})

		_, err := d.Send(3)
		assert.ErrorIs(t, err, models.ErrNoSubscribers)
		assert.Nil(t, campaigns.markedAt)
	})

	t.Run("losing the send race surfaces already sent", func(t *testing.T) {
		t.Parallel()
		campaigns := &fakeCampaignStore{
			campaign: &models.NewsletterCampaign{ID: 4, Status: models.CAMPAIGN_STATUS_DRAFT},
			markErr:  models.ErrAlreadySent,
		}
		subs := &fakeSubscriberStore{subscribers: confirmedSubscribers("a@x.com")}

		called := false
		d := NewDispatcher(campaigns, subs, func(string, string, string) error {
			called = true
			return nil
		})

		_, err := d.Send(4)
		assert.ErrorIs(t, err, models.ErrAlreadySent)
		assert.False(t, called)
	})

	t.Run("single delivery failure does not fail the send", func(t *testing.T) {
		t.Parallel()
		campaigns := &fakeCampaignStore{
			campaign: &models.NewsletterCampaign{ID: 5, Status: models.CAMPAIGN_STATUS_DRAFT},
		}
		subs := &fakeSubscriberStore{subscribers: confirmedSubscribers("a@x.com", "b@x.com")}

		d := NewDispatcher(campaigns, subs, func(to, _, _ string) error {
			if to == "a@x.com" {
				return assert.AnError
			}
			return nil
		})

		campaign, err := d.Send(5)
		require.NoError(t, err)
		assert.Equal(t, uint(2), campaign.SentCount)
	})
}
