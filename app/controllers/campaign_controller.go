package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/presswire/PressWire/app/models"
	"github.com/presswire/PressWire/app/repository"
	"github.com/presswire/PressWire/internal/pkg/mail"
	"github.com/presswire/PressWire/internal/pkg/newsletter"
)

type campaignRequest struct {
	Title       string     `json:"title"`
	Subject     string     `json:"subject"`
	Content     string     `json:"content"`
	ArticleIDs  []uint     `json:"article_ids"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// HandleListCampaigns lists newsletter campaigns, newest first
func HandleListCampaigns(c *fiber.Ctx) error {
	offset, limit := parsePagination(c, 20, 100)
	campaigns, err := repository.GetGlobalFactory().GetCampaignRepository().List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list campaigns")
	}
	return c.JSON(fiber.Map{"campaigns": campaigns, "count": len(campaigns)})
}

// HandleGetCampaign returns one campaign with its featured articles
func HandleGetCampaign(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid campaign id")
	}

	campaign, err := repository.GetGlobalFactory().GetCampaignRepository().GetByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "campaign not found")
	}
	return c.JSON(campaign)
}

// HandleCreateCampaign creates a campaign draft. A scheduled_at in the past
// is rejected; setting one moves the campaign to scheduled.
func HandleCreateCampaign(c *fiber.Ctx) error {
	var req campaignRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	campaign := &models.NewsletterCampaign{
		Title:   req.Title,
		Subject: req.Subject,
		Content: req.Content,
		Status:  models.CAMPAIGN_STATUS_DRAFT,
	}
	if req.ScheduledAt != nil {
		if req.ScheduledAt.Before(time.Now()) {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "scheduled_at must be in the future")
		}
		campaign.ScheduledAt = req.ScheduledAt
		campaign.Status = models.CAMPAIGN_STATUS_SCHEDULED
	}

	if err := campaign.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	factory := repository.GetGlobalFactory()
	if len(req.ArticleIDs) > 0 {
		articles, err := publishedArticlesByID(factory.GetArticleRepository(), req.ArticleIDs)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", err.Error())
		}
		campaign.Articles = articles
	}

	if err := factory.GetCampaignRepository().Create(campaign); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not create campaign")
	}
	return c.Status(fiber.StatusCreated).JSON(campaign)
}

// publishedArticlesByID resolves the featured article selection; only
// published articles qualify for a campaign.
func publishedArticlesByID(articleRepo repository.ArticleRepository, ids []uint) ([]models.Article, error) {
	articles := make([]models.Article, 0, len(ids))
	for _, id := range ids {
		article, err := articleRepo.GetByID(id)
		if err != nil || !article.IsPublished() {
			return nil, errors.New("article_ids must reference published articles")
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

// HandleUpdateCampaign updates a campaign that has not been sent yet
func HandleUpdateCampaign(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid campaign id")
	}

	campaignRepo := repository.GetGlobalFactory().GetCampaignRepository()
	campaign, err := campaignRepo.GetByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "campaign not found")
	}
	if campaign.IsSent() {
		return jsonError(c, fiber.StatusBadRequest, "already_sent", "sent campaigns cannot be edited")
	}

	var req campaignRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	if req.Title != "" {
		campaign.Title = req.Title
	}
	if req.Subject != "" {
		campaign.Subject = req.Subject
	}
	if req.Content != "" {
		campaign.Content = req.Content
	}
	if req.ScheduledAt != nil {
		if req.ScheduledAt.Before(time.Now()) {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "scheduled_at must be in the future")
		}
		campaign.ScheduledAt = req.ScheduledAt
		campaign.Status = models.CAMPAIGN_STATUS_SCHEDULED
	}

	if err := campaign.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}
	if err := campaignRepo.Update(campaign); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not update campaign")
	}
	return c.JSON(campaign)
}

// HandleDeleteCampaign soft deletes an unsent campaign
func HandleDeleteCampaign(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid campaign id")
	}

	campaignRepo := repository.GetGlobalFactory().GetCampaignRepository()
	campaign, err := campaignRepo.GetByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "campaign not found")
	}
	if campaign.IsSent() {
		return jsonError(c, fiber.StatusBadRequest, "already_sent", "sent campaigns cannot be deleted")
	}

	if err := campaignRepo.Delete(campaign.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not delete campaign")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSendCampaign sends a campaign to all active confirmed subscribers.
// A campaign is sent at most once, concurrent sends lose against the
// conditional status update.
func HandleSendCampaign(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid campaign id")
	}

	factory := repository.GetGlobalFactory()
	dispatcher := newsletter.NewDispatcher(
		factory.GetCampaignRepository(),
		factory.GetNewsletterRepository(),
		mail.SendMail,
	)

	campaign, err := dispatcher.Send(id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrAlreadySent):
			return jsonError(c, fiber.StatusBadRequest, "already_sent", err.Error())
		case errors.Is(err, models.ErrNoSubscribers):
			return jsonError(c, fiber.StatusBadRequest, "no_subscribers", err.Error())
		default:
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not send campaign")
		}
	}

	return c.JSON(fiber.Map{
		"message":    "campaign sent",
		"sent_count": campaign.SentCount,
		"sent_at":    campaign.SentAt,
	})
}

// HandlePreviewCampaign returns the campaign content plus the number of
// recipients a send would reach right now.
func HandlePreviewCampaign(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid campaign id")
	}

	factory := repository.GetGlobalFactory()
	campaign, err := factory.GetCampaignRepository().GetByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "campaign not found")
	}

	recipients, err := factory.GetNewsletterRepository().CountActiveConfirmed()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load preview")
	}
	return c.JSON(fiber.Map{"campaign": campaign, "recipient_count": recipients})
}
