package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/presswire/PressWire/app/models"
	"github.com/presswire/PressWire/app/repository"
	"github.com/presswire/PressWire/internal/pkg/env"
	"github.com/presswire/PressWire/internal/pkg/mail"
)

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleNewsletterSubscribe registers a subscriber and sends the
// confirmation mail. Subscribing twice is rejected.
func HandleNewsletterSubscribe(c *fiber.Ctx) error {
	var req subscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	subscriber := &models.Newsletter{Email: req.Email, Name: req.Name, IsActive: true}
	if err := subscriber.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	newsletterRepo := repository.GetGlobalFactory().GetNewsletterRepository()
	if err := newsletterRepo.Subscribe(subscriber); err != nil {
		if errors.Is(err, models.ErrDuplicateEmail) {
			return jsonError(c, fiber.StatusBadRequest, "duplicate_email", err.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not subscribe")
	}

	sendConfirmationMail(subscriber)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "subscribed, please confirm your email address",
		"email":   subscriber.Email,
	})
}

// sendConfirmationMail delivers the double-opt-in mail best effort
func sendConfirmationMail(subscriber *models.Newsletter) {
	publicURL := env.GetEnv("PUBLIC_URL", "http://localhost:3000")
	body := fmt.Sprintf(
		"Hello %s,\n\nplease confirm your newsletter subscription:\n%s/api/v1/newsletter/confirm/%s\n",
		subscriber.Name, publicURL, subscriber.ConfirmationToken,
	)
	if err := mail.SendMail(subscriber.Email, "Confirm your subscription", body); err != nil {
		log.Printf("failed to send confirmation mail to %s: %v", subscriber.Email, err)
	}
}

// HandleNewsletterConfirm confirms a subscription by token
func HandleNewsletterConfirm(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "token missing")
	}

	newsletterRepo := repository.GetGlobalFactory().GetNewsletterRepository()
	subscriber, err := newsletterRepo.GetByToken(token)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "unknown confirmation token")
	}

	if !subscriber.IsConfirmed() {
		now := time.Now()
		subscriber.ConfirmedAt = &now
		if err := newsletterRepo.Update(subscriber); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not confirm subscription")
		}
	}

	return c.JSON(fiber.Map{"message": "subscription confirmed", "email": subscriber.Email})
}

// HandleNewsletterUnsubscribe deactivates a subscription by token
func HandleNewsletterUnsubscribe(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "token missing")
	}

	newsletterRepo := repository.GetGlobalFactory().GetNewsletterRepository()
	subscriber, err := newsletterRepo.GetByToken(token)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "unknown token")
	}

	if subscriber.IsActive {
		now := time.Now()
		subscriber.IsActive = false
		subscriber.UnsubscribedAt = &now
		if err := newsletterRepo.Update(subscriber); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not unsubscribe")
		}
	}

	return c.JSON(fiber.Map{"message": "unsubscribed", "email": subscriber.Email})
}

// HandleNewsletterResubscribe reactivates a previously unsubscribed address
func HandleNewsletterResubscribe(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "token missing")
	}

	newsletterRepo := repository.GetGlobalFactory().GetNewsletterRepository()
	subscriber, err := newsletterRepo.GetByToken(token)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "unknown token")
	}

	if !subscriber.IsActive {
		subscriber.IsActive = true
		subscriber.UnsubscribedAt = nil
		if err := newsletterRepo.Update(subscriber); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not resubscribe")
		}
	}

	return c.JSON(fiber.Map{"message": "resubscribed", "email": subscriber.Email})
}

// HandleListSubscribers lists subscribers (staff only, enforced by router)
func HandleListSubscribers(c *fiber.Ctx) error {
	offset, limit := parsePagination(c, 50, 200)
	newsletterRepo := repository.GetGlobalFactory().GetNewsletterRepository()

	subscribers, err := newsletterRepo.List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list subscribers")
	}

	confirmed, err := newsletterRepo.CountActiveConfirmed()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list subscribers")
	}
	return c.JSON(fiber.Map{
		"subscribers":      subscribers,
		"count":            len(subscribers),
		"active_confirmed": confirmed,
	})
}
