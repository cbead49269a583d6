package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/presswire/PressWire/app/models"
	"github.com/presswire/PressWire/app/repository"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	IsActive    *bool  `json:"is_active"`
	Order       uint   `json:"order"`
}

// HandleListCategories returns all active categories in display order
func HandleListCategories(c *fiber.Ctx) error {
	categoryRepo := repository.GetGlobalFactory().GetCategoryRepository()

	var (
		categories []models.Category
		err        error
	)
	if c.QueryBool("all", false) {
		categories, err = categoryRepo.GetAll()
	} else {
		categories, err = categoryRepo.GetActive()
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list categories")
	}
	return c.JSON(fiber.Map{"categories": categories, "count": len(categories)})
}

// HandleGetCategory returns one category by slug
func HandleGetCategory(c *fiber.Ctx) error {
	category, err := repository.GetGlobalFactory().GetCategoryRepository().GetBySlug(c.Params("slug"))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "category not found")
	}
	return c.JSON(category)
}

// HandleCategoryArticles lists the published articles of a category.
// An unknown category slug yields an empty set, not a 404.
func HandleCategoryArticles(c *fiber.Ctx) error {
	factory := repository.GetGlobalFactory()
	category, err := factory.GetCategoryRepository().GetBySlug(c.Params("slug"))
	if err != nil {
		return c.JSON(fiber.Map{"articles": []models.Article{}, "count": 0})
	}

	offset, limit := parsePagination(c, 20, 100)
	articles, err := factory.GetArticleRepository().ListByCategory(category.ID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list articles")
	}
	return c.JSON(fiber.Map{"category": category, "articles": articles, "count": len(articles)})
}

// HandleCreateCategory creates a category (staff only, enforced by router)
func HandleCreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		IsActive:    true,
		Order:       req.Order,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := category.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}
	if err := repository.GetGlobalFactory().GetCategoryRepository().Create(category); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory updates a category (staff only)
func HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid category id")
	}

	categoryRepo := repository.GetGlobalFactory().GetCategoryRepository()
	category, err := categoryRepo.GetByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "category not found")
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.Color != "" {
		category.Color = req.Color
	}
	if req.Icon != "" {
		category.Icon = req.Icon
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.Order > 0 {
		category.Order = req.Order
	}

	if err := category.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}
	if err := categoryRepo.Update(category); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not update category")
	}
	return c.JSON(category)
}

// HandleDeleteCategory soft deletes a category (staff only)
func HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid category id")
	}
	if err := repository.GetGlobalFactory().GetCategoryRepository().Delete(id); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not delete category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCategoryStats returns per-category numbers plus the most popular
// category by published article count.
func HandleCategoryStats(c *fiber.Ctx) error {
	categoryRepo := repository.GetGlobalFactory().GetCategoryRepository()

	total, err := categoryRepo.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load category stats")
	}
	active, err := categoryRepo.CountActive()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load category stats")
	}

	resp := fiber.Map{"total_categories": total, "active_categories": active}
	if popular, articleCount, err := categoryRepo.MostPopular(); err == nil && popular != nil {
		resp["most_popular"] = fiber.Map{"category": popular, "article_count": articleCount}
	}
	return c.JSON(resp)
}
