package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewsletterIsConfirmed(t *testing.T) {
	t.Parallel()

	n := Newsletter{Email: "reader@example.com", IsActive: true}
	assert.False(t, n.IsConfirmed())

	now := time.Now()
	n.ConfirmedAt = &now
	assert.True(t, n.IsConfirmed())
}

func TestCampaignIsSent(t *testing.T) {
	t.Parallel()

	c := NewsletterCampaign{Status: CAMPAIGN_STATUS_DRAFT}
	assert.False(t, c.IsSent())

	c.Status = CAMPAIGN_STATUS_SENT
	assert.True(t, c.IsSent())
}

func TestValidSharePlatform(t *testing.T) {
	t.Parallel()

	for _, p := range []string{"facebook", "twitter", "linkedin", "whatsapp", "email", "copy_link", "other"} {
		assert.True(t, ValidSharePlatform(p), p)
	}
	assert.False(t, ValidSharePlatform("myspace"))
	assert.False(t, ValidSharePlatform(""))
}
