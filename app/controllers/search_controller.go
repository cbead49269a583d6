package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/presswire/PressWire/app/models"
	"github.com/presswire/PressWire/app/repository"
)

// Result caps per entity for the global search
const (
	searchArticleLimit  = 10
	searchCategoryLimit = 5
	searchTagLimit      = 5
	searchAuthorLimit   = 5
)

// HandleSearch runs the global search across articles, categories, tags
// and authors. The type parameter narrows the search to one entity.
func HandleSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", models.ErrEmptyQuery.Error())
	}

	searchType := c.Query("type", "all")
	switch searchType {
	case "all", "articles", "categories", "tags", "authors":
	default:
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown search type")
	}

	factory := repository.GetGlobalFactory()
	results := fiber.Map{}
	total := 0

	if searchType == "all" || searchType == "articles" {
		articles, err := factory.GetArticleRepository().Search(query, searchArticleLimit)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "search failed")
		}
		results["articles"] = articles
		total += len(articles)
	}

	if searchType == "all" || searchType == "categories" {
		categories, err := factory.GetCategoryRepository().Search(query, searchCategoryLimit)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "search failed")
		}
		results["categories"] = categories
		total += len(categories)
	}

	if searchType == "all" || searchType == "tags" {
		tags, err := factory.GetTagRepository().Search(query, searchTagLimit)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "search failed")
		}
		results["tags"] = tags
		total += len(tags)
	}

	if searchType == "all" || searchType == "authors" {
		authors, err := factory.GetAuthorRepository().Search(query, searchAuthorLimit)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "search failed")
		}
		results["authors"] = authors
		total += len(authors)
	}

	return c.JSON(fiber.Map{
		"query":         query,
		"type":          searchType,
		"results":       results,
		"total_results": total,
	})
}
