package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/presswire/PressWire/app/models"
	"github.com/presswire/PressWire/app/repository"
)

type tagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HandleListTags returns all tags
func HandleListTags(c *fiber.Ctx) error {
	tags, err := repository.GetGlobalFactory().GetTagRepository().GetAll()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list tags")
	}
	return c.JSON(fiber.Map{"tags": tags, "count": len(tags)})
}

// HandleGetTag returns one tag by slug with its article count
func HandleGetTag(c *fiber.Ctx) error {
	tagRepo := repository.GetGlobalFactory().GetTagRepository()
	tag, err := tagRepo.GetBySlug(c.Params("slug"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "tag not found")
	}

	count, err := tagRepo.ArticleCount(tag.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load tag")
	}
	return c.JSON(fiber.Map{"tag": tag, "article_count": count})
}

// HandleTagArticles lists the published articles carrying a tag.
// An unknown tag slug yields an empty set, not a 404.
func HandleTagArticles(c *fiber.Ctx) error {
	factory := repository.GetGlobalFactory()
	tag, err := factory.GetTagRepository().GetBySlug(c.Params("slug"))
	if err != nil {
		return c.JSON(fiber.Map{"articles": []models.Article{}, "count": 0})
	}

	offset, limit := parsePagination(c, 20, 100)
	articles, err := factory.GetArticleRepository().ListByTag(tag.ID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list articles")
	}
	return c.JSON(fiber.Map{"tag": tag, "articles": articles, "count": len(articles)})
}

// HandleCreateTag creates a tag (staff only, enforced by router)
func HandleCreateTag(c *fiber.Ctx) error {
	var req tagRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	tag := &models.Tag{Name: req.Name, Description: req.Description}
	if err := tag.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}
	if err := repository.GetGlobalFactory().GetTagRepository().Create(tag); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not create tag")
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// HandleDeleteTag soft deletes a tag (staff only)
func HandleDeleteTag(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid tag id")
	}
	if err := repository.GetGlobalFactory().GetTagRepository().Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not delete tag")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
