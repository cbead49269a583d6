package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/presswire/PressWire/app/models"
	"github.com/presswire/PressWire/app/repository"
	"github.com/presswire/PressWire/internal/pkg/usercontext"
)

type commentRequest struct {
	Content  string `json:"content"`
	ParentID *uint  `json:"parent_id"`
}

// HandleListComments returns the approved comments of an article with
// their replies, newest first.
func HandleListComments(c *fiber.Ctx) error {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid article id")
	}

	factory := repository.GetGlobalFactory()
	if _, err := factory.GetArticleRepository().GetByID(articleID); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "article not found")
	}

	offset, limit := parsePagination(c, 20, 100)
	comments, err := factory.GetInteractionRepository().ListApprovedComments(articleID, offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list comments")
	}

	count, err := factory.GetInteractionRepository().CountApprovedComments(articleID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list comments")
	}
	return c.JSON(fiber.Map{"comments": comments, "total": count})
}

// HandleCreateComment adds a comment to an article that allows them
func HandleCreateComment(c *fiber.Ctx) error {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid article id")
	}

	factory := repository.GetGlobalFactory()
	article, err := factory.GetArticleRepository().GetByID(articleID)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "article not found")
	}
	if !article.AllowComments {
		return jsonError(c, fiber.StatusForbidden, "comments_disabled", "comments are disabled for this article")
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if req.Content == "" {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", "comment content is required")
	}

	interactionRepo := factory.GetInteractionRepository()
	if req.ParentID != nil {
		parent, err := interactionRepo.GetCommentByID(*req.ParentID)
		if err != nil || parent.ArticleID != articleID {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid parent comment")
		}
	}

	comment := &models.Comment{
		ArticleID:  articleID,
		AuthorID:   usercontext.GetUserID(c),
		Content:    req.Content,
		ParentID:   req.ParentID,
		IsApproved: true,
	}
	if err := interactionRepo.CreateComment(comment); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not create comment")
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleDeleteComment removes a comment; only its author or staff may
func HandleDeleteComment(c *fiber.Ctx) error {
	commentID, err := parseUintParam(c, "comment_id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid comment id")
	}

	interactionRepo := repository.GetGlobalFactory().GetInteractionRepository()
	comment, err := interactionRepo.GetCommentByID(commentID)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "comment not found")
	}

	if !canModify(usercontext.GetUserContext(c), comment) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your comment")
	}

	if err := interactionRepo.DeleteComment(comment.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not delete comment")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleToggleLike likes or unlikes an article for the caller
func HandleToggleLike(c *fiber.Ctx) error {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid article id")
	}

	factory := repository.GetGlobalFactory()
	if _, err := factory.GetArticleRepository().GetByID(articleID); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "article not found")
	}

	interactionRepo := factory.GetInteractionRepository()
	liked, err := interactionRepo.ToggleLike(usercontext.GetUserID(c), articleID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not toggle like")
	}

	count, err := interactionRepo.CountLikes(articleID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not toggle like")
	}
	return c.JSON(fiber.Map{"liked": liked, "like_count": count})
}

// HandleToggleBookmark bookmarks or unbookmarks an article for the caller
func HandleToggleBookmark(c *fiber.Ctx) error {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid article id")
	}

	factory := repository.GetGlobalFactory()
	if _, err := factory.GetArticleRepository().GetByID(articleID); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "article not found")
	}

	var req struct {
		Notes string `json:"notes"`
	}
	// Body is optional for bookmarks
	_ = c.BodyParser(&req)

	bookmarked, err := factory.GetInteractionRepository().ToggleBookmark(usercontext.GetUserID(c), articleID, req.Notes)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not toggle bookmark")
	}
	return c.JSON(fiber.Map{"bookmarked": bookmarked})
}

// HandleListBookmarks lists the caller's bookmarks, newest first
func HandleListBookmarks(c *fiber.Ctx) error {
	offset, limit := parsePagination(c, 20, 100)
	bookmarks, err := repository.GetGlobalFactory().GetInteractionRepository().
		ListBookmarksByUser(usercontext.GetUserID(c), offset, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list bookmarks")
	}
	return c.JSON(fiber.Map{"bookmarks": bookmarks, "count": len(bookmarks)})
}

// HandleShareArticle records a share to an external platform. Works for
// anonymous readers too.
func HandleShareArticle(c *fiber.Ctx) error {
	articleID, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid article id")
	}

	factory := repository.GetGlobalFactory()
	if _, err := factory.GetArticleRepository().GetByID(articleID); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "article not found")
	}

	var req struct {
		Platform string `json:"platform"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if !models.ValidSharePlatform(req.Platform) {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown share platform")
	}

	share := &models.Share{
		ArticleID: articleID,
		Platform:  req.Platform,
		IPAddress: GetClientIP(c),
	}
	if user := usercontext.GetUserContext(c); user.IsLoggedIn {
		uid := user.UserID
		share.UserID = &uid
	}

	interactionRepo := factory.GetInteractionRepository()
	if err := interactionRepo.CreateShare(share); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not record share")
	}

	count, err := interactionRepo.CountShares(articleID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not record share")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"share_count": count})
}
