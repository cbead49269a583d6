package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/presswire/PressWire/app/models"
	"github.com/presswire/PressWire/app/repository"
	"github.com/presswire/PressWire/internal/pkg/usercontext"
)

type authorRequest struct {
	Bio           string `json:"bio"`
	Website       string `json:"website"`
	TwitterHandle string `json:"twitter_handle"`
}

// HandleListAuthors lists author profiles
func HandleListAuthors(c *fiber.Ctx) error {
	offset, limit := parsePagination(c, 20, 100)
	authors, err := repository.GetGlobalFactory().GetAuthorRepository().List(offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list authors")
	}
	return c.JSON(fiber.Map{"authors": authors, "count": len(authors)})
}

// HandleGetAuthor returns one author profile with the article count
func HandleGetAuthor(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid author id")
	}

	authorRepo := repository.GetGlobalFactory().GetAuthorRepository()
	author, err := authorRepo.GetByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "author not found")
	}

	count, err := authorRepo.ArticleCount(author.UserID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load author")
	}
	return c.JSON(fiber.Map{"author": author, "article_count": count})
}

// HandleAuthorArticles lists the published articles of an author
func HandleAuthorArticles(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid author id")
	}

	factory := repository.GetGlobalFactory()
	author, err := factory.GetAuthorRepository().GetByID(id)
	if err != nil {
		// Unknown parent yields an empty set, not a 404
		return c.JSON(fiber.Map{"articles": []models.Article{}, "count": 0})
	}

	offset, limit := parsePagination(c, 20, 100)
	articles, err := factory.GetArticleRepository().ListByAuthor(author.UserID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list articles")
	}
	return c.JSON(fiber.Map{"author": author, "articles": articles, "count": len(articles)})
}

// HandleUpsertAuthorProfile creates or updates the caller's author profile
func HandleUpsertAuthorProfile(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	var req authorRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	authorRepo := repository.GetGlobalFactory().GetAuthorRepository()
	author, err := authorRepo.GetByUserID(user.UserID)
	if err != nil {
		author = &models.Author{
			UserID:        user.UserID,
			Bio:           req.Bio,
			Website:       req.Website,
			TwitterHandle: req.TwitterHandle,
		}
		if err := authorRepo.Create(author); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not create author profile")
		}
		return c.Status(fiber.StatusCreated).JSON(author)
	}

	author.Bio = req.Bio
	author.Website = req.Website
	author.TwitterHandle = req.TwitterHandle
	if err := authorRepo.Update(author); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not update author profile")
	}
	return c.JSON(author)
}

// HandleAuthorStats returns platform-wide author numbers including the most
// prolific author by published article count.
func HandleAuthorStats(c *fiber.Ctx) error {
	authorRepo := repository.GetGlobalFactory().GetAuthorRepository()

	total, err := authorRepo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load author stats")
	}
	verified, err := authorRepo.CountVerified()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load author stats")
	}
	staffWriters, err := authorRepo.CountStaffWriters()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load author stats")
	}

	resp := fiber.Map{
		"total_authors": total,
		"verified":      verified,
		"staff_writers": staffWriters,
	}
	if prolific, articleCount, err := authorRepo.MostProlific(); err == nil && prolific != nil {
		resp["most_prolific"] = fiber.Map{"author": prolific, "article_count": articleCount}
	}
	return c.JSON(resp)
}
