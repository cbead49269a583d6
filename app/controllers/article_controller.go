package controllers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/presswire/PressWire/app/models"
	"github.com/presswire/PressWire/app/repository"
	"github.com/presswire/PressWire/internal/pkg/session"
	"github.com/presswire/PressWire/internal/pkg/usercontext"
)

// Defaults for the ranking endpoints
const (
	defaultTrendingDays  = 7
	defaultTrendingLimit = 10
	defaultBreakingLimit = 5
	defaultFeaturedLimit = 5
	defaultLatestLimit   = 20
)

type articleCreateRequest struct {
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	CategoryID    uint     `json:"category_id"`
	TagIDs        []uint   `json:"tag_ids"`
	TagNames      []string `json:"tag_names"`
	Priority      string   `json:"priority"`
	MetaTitle     string   `json:"meta_title"`
	MetaDesc      string   `json:"meta_description"`
	MetaKeywords  string   `json:"meta_keywords"`
	IsFeatured    bool     `json:"is_featured"`
	IsBreaking    bool     `json:"is_breaking"`
	AllowComments *bool    `json:"allow_comments"`
	Location      string   `json:"location"`
}

// articleUpdateRequest carries only the fields an update may change.
// Pointers distinguish "not sent" from a zero value; slug, author and the
// derived fields are never writable from here.
type articleUpdateRequest struct {
	Title         *string `json:"title"`
	Subtitle      *string `json:"subtitle"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	CategoryID    *uint   `json:"category_id"`
	TagIDs        []uint  `json:"tag_ids"`
	Priority      *string `json:"priority"`
	MetaTitle     *string `json:"meta_title"`
	MetaDesc      *string `json:"meta_description"`
	MetaKeywords  *string `json:"meta_keywords"`
	IsFeatured    *bool   `json:"is_featured"`
	IsBreaking    *bool   `json:"is_breaking"`
	AllowComments *bool   `json:"allow_comments"`
	Location      *string `json:"location"`
}

// HandleListArticles lists published articles, optionally filtered by
// category, tag or author.
func HandleListArticles(c *fiber.Ctx) error {
	offset, limit := parsePagination(c, 20, 100)
	articleRepo := repository.GetGlobalFactory().GetArticleRepository()

	var (
		articles []models.Article
		err      error
	)
	switch {
	case c.QueryInt("category_id", 0) > 0:
		articles, err = articleRepo.ListByCategory(uint(c.QueryInt("category_id")), offset, limit)
	case c.QueryInt("tag_id", 0) > 0:
		articles, err = articleRepo.ListByTag(uint(c.QueryInt("tag_id")), offset, limit)
	case c.QueryInt("author_id", 0) > 0:
		articles, err = articleRepo.ListByAuthor(uint(c.QueryInt("author_id")), offset, limit)
	default:
		articles, err = articleRepo.ListPublished(offset, limit)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not list articles")
	}

	return c.JSON(fiber.Map{"articles": articles, "count": len(articles), "offset": offset, "limit": limit})
}

// HandleGetArticle returns one article by slug. Each GET counts as a view:
// the aggregate counter is always incremented, the per-session view row is
// deduplicated on (article, session).
func HandleGetArticle(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "slug missing")
	}

	articleRepo := repository.GetGlobalFactory().GetArticleRepository()
	article, err := articleRepo.GetBySlug(slug)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "article not found")
	}

	user := usercontext.GetUserContext(c)
	if !article.IsPublished() && !canModify(user, article) {
		// Unpublished articles are invisible to everyone but owner and staff
		return jsonError(c, fiber.StatusNotFound, "not_found", "article not found")
	}

	if article.IsPublished() {
		trackView(c, articleRepo, article, user)
	}

	return c.JSON(article)
}

// trackView records the view best effort; a failed write never fails the read
func trackView(c *fiber.Ctx, articleRepo repository.ArticleRepository, article *models.Article, user usercontext.UserContext) {
	view := &models.ArticleView{
		ArticleID:  article.ID,
		SessionKey: session.GetSessionID(c),
		IPAddress:  GetClientIP(c),
		UserAgent:  c.Get("User-Agent"),
		Referrer:   c.Get("Referer"),
	}
	if user.IsLoggedIn {
		uid := user.UserID
		view.UserID = &uid
	}

	if err := articleRepo.RecordView(article, view); err != nil {
		log.Printf("failed to record view for article %d: %v", article.ID, err)
		return
	}
	article.ViewsCount++
}

// resolveTags loads the tags matching the given IDs and finds or
// creates one tag per name, deduplicating the combined set.
func resolveTags(tagRepo repository.TagRepository, ids []uint, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) > 0 {
		loaded, err := tagRepo.GetByIDs(ids)
		if err != nil {
			return nil, err
		}
		tags = loaded
	}

	seen := make(map[uint]struct{}, len(tags))
	for _, t := range tags {
		seen[t.ID] = struct{}{}
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag := models.Tag{Name: name}
		if err := tagRepo.FindOrCreate(&tag); err != nil {
			return nil, err
		}
		if _, ok := seen[tag.ID]; ok {
			continue
		}
		seen[tag.ID] = struct{}{}
		tags = append(tags, tag)
	}
	return tags, nil
}

// HandleCreateArticle creates a draft article for the authenticated user
func HandleCreateArticle(c *fiber.Ctx) error {
	user := usercontext.GetUserContext(c)

	var req articleCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	article := &models.Article{
		Title:           req.Title,
		Subtitle:        req.Subtitle,
		Content:         req.Content,
		Excerpt:         req.Excerpt,
		AuthorID:        user.UserID,
		CategoryID:      req.CategoryID,
		Status:          models.ARTICLE_STATUS_DRAFT,
		Priority:        req.Priority,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDesc,
		MetaKeywords:    req.MetaKeywords,
		IsFeatured:      req.IsFeatured,
		IsBreaking:      req.IsBreaking,
		AllowComments:   true,
		Location:        req.Location,
	}
	if req.Priority == "" {
		article.Priority = models.PRIORITY_NORMAL
	}
	if req.AllowComments != nil {
		article.AllowComments = *req.AllowComments
	}

	if err := article.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	factory := repository.GetGlobalFactory()
	tags, err := resolveTags(factory.GetTagRepository(), req.TagIDs, req.TagNames)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid tags")
	}
	article.Tags = tags

	if err := factory.GetArticleRepository().Create(article); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not create article")
	}

	return c.Status(fiber.StatusCreated).JSON(article)
}

// HandleUpdateArticle applies a partial update to an article. Only the
// owner or staff may update; the slug is immutable, derived fields are
// recomputed on save.
func HandleUpdateArticle(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid article id")
	}

	factory := repository.GetGlobalFactory()
	articleRepo := factory.GetArticleRepository()
	article, err := articleRepo.GetByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "article not found")
	}

	user := usercontext.GetUserContext(c)
	if !canModify(user, article) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your article")
	}

	var req articleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	applyArticleUpdate(article, &req)

	if err := article.Validate(); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	if req.TagIDs != nil {
		tags, err := factory.GetTagRepository().GetByIDs(req.TagIDs)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid tag ids")
		}
		if err := articleRepo.ReplaceTags(article, tags); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not update tags")
		}
	}

	if err := articleRepo.Update(article); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not update article")
	}

	return c.JSON(article)
}

func applyArticleUpdate(article *models.Article, req *articleUpdateRequest) {
	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Subtitle != nil {
		article.Subtitle = *req.Subtitle
	}
	if req.Content != nil {
		article.Content = *req.Content
		// Changed content invalidates a derived excerpt and read time
		if req.Excerpt == nil && article.Excerpt != "" {
			article.Excerpt = ""
		}
	}
	if req.Excerpt != nil {
		article.Excerpt = *req.Excerpt
	}
	if req.CategoryID != nil {
		article.CategoryID = *req.CategoryID
	}
	if req.Priority != nil {
		article.Priority = *req.Priority
	}
	if req.MetaTitle != nil {
		article.MetaTitle = *req.MetaTitle
	}
	if req.MetaDesc != nil {
		article.MetaDescription = *req.MetaDesc
	}
	if req.MetaKeywords != nil {
		article.MetaKeywords = *req.MetaKeywords
	}
	if req.IsFeatured != nil {
		article.IsFeatured = *req.IsFeatured
	}
	if req.IsBreaking != nil {
		article.IsBreaking = *req.IsBreaking
	}
	if req.AllowComments != nil {
		article.AllowComments = *req.AllowComments
	}
	if req.Location != nil {
		article.Location = *req.Location
	}
}

// HandleDeleteArticle soft deletes an article (owner or staff)
func HandleDeleteArticle(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid article id")
	}

	articleRepo := repository.GetGlobalFactory().GetArticleRepository()
	article, err := articleRepo.GetByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "article not found")
	}

	if !canModify(usercontext.GetUserContext(c), article) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your article")
	}

	if err := articleRepo.Delete(article.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not delete article")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleChangeArticleStatus moves an article through the publishing
// lifecycle. The only rejected transition is published back to draft;
// the first entry into published stamps published_at permanently.
func HandleChangeArticleStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid article id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	switch req.Status {
	case models.ARTICLE_STATUS_DRAFT, models.ARTICLE_STATUS_REVIEW,
		models.ARTICLE_STATUS_PUBLISHED, models.ARTICLE_STATUS_ARCHIVED:
	default:
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "unknown status")
	}

	articleRepo := repository.GetGlobalFactory().GetArticleRepository()
	article, err := articleRepo.GetByID(id)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "article not found")
	}

	if !canModify(usercontext.GetUserContext(c), article) {
		return jsonError(c, fiber.StatusForbidden, "forbidden", "not your article")
	}

	if err := article.ApplyStatusChange(req.Status, time.Now()); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			return jsonError(c, fiber.StatusBadRequest, "invalid_transition", err.Error())
		}
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not change status")
	}

	if err := articleRepo.Update(article); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not change status")
	}
	return c.JSON(article)
}

// HandleIncrementViews bumps the view counter without a view row, for
// clients that render cached article bodies.
func HandleIncrementViews(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid article id")
	}

	articleRepo := repository.GetGlobalFactory().GetArticleRepository()
	if _, err := articleRepo.GetByID(id); err != nil {
		return jsonError(c, fiber.StatusNotFound, "not_found", "article not found")
	}

	count, err := articleRepo.IncrementViews(id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not increment views")
	}
	return c.JSON(fiber.Map{"views_count": count})
}

// HandleFeaturedArticles returns the featured selection
func HandleFeaturedArticles(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", defaultFeaturedLimit), defaultFeaturedLimit, 50)
	articles, err := repository.GetGlobalFactory().GetArticleRepository().Featured(limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load featured articles")
	}
	return c.JSON(fiber.Map{"articles": articles, "count": len(articles)})
}

// HandleTrendingArticles returns the most viewed articles published within
// the window, defaulting to the last 7 days.
func HandleTrendingArticles(c *fiber.Ctx) error {
	days := c.QueryInt("days", defaultTrendingDays)
	if days < 1 {
		days = defaultTrendingDays
	}
	limit := clampLimit(c.QueryInt("limit", defaultTrendingLimit), defaultTrendingLimit, 50)

	since := time.Now().AddDate(0, 0, -days)
	articles, err := repository.GetGlobalFactory().GetArticleRepository().Trending(since, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load trending articles")
	}
	return c.JSON(fiber.Map{"articles": articles, "count": len(articles), "days": days})
}

// HandleBreakingArticles returns the current breaking news
func HandleBreakingArticles(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", defaultBreakingLimit), defaultBreakingLimit, 20)
	articles, err := repository.GetGlobalFactory().GetArticleRepository().Breaking(limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load breaking articles")
	}
	return c.JSON(fiber.Map{"articles": articles, "count": len(articles)})
}

// HandleLatestArticles returns the newest published articles
func HandleLatestArticles(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", defaultLatestLimit), defaultLatestLimit, 100)
	articles, err := repository.GetGlobalFactory().GetArticleRepository().Latest(limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load latest articles")
	}
	return c.JSON(fiber.Map{"articles": articles, "count": len(articles)})
}

// HandleArticleStats returns platform-wide article numbers (staff only,
// enforced by the router).
func HandleArticleStats(c *fiber.Ctx) error {
	stats, err := repository.GetGlobalFactory().GetArticleRepository().Stats()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load article stats")
	}
	return c.JSON(stats)
}
