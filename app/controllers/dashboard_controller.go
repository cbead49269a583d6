package controllers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/presswire/PressWire/app/repository"
	"github.com/presswire/PressWire/internal/pkg/statistics"
)

// HandleDashboardOverview returns the headline numbers for the editorial
// dashboard (staff only, enforced by the router).
func HandleDashboardOverview(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	statistics.UpdateCacheIfNeeded(repos)

	overview, err := statistics.GetOverview(repos)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load dashboard")
	}
	return c.JSON(overview)
}

// HandleDashboardTrending returns the trending articles for the dashboard
// with a configurable window.
func HandleDashboardTrending(c *fiber.Ctx) error {
	days := c.QueryInt("days", defaultTrendingDays)
	if days < 1 {
		days = defaultTrendingDays
	}
	limit := clampLimit(c.QueryInt("limit", defaultTrendingLimit), defaultTrendingLimit, 50)

	factory := repository.GetGlobalFactory()
	since := time.Now().AddDate(0, 0, -days)
	articles, err := factory.GetArticleRepository().Trending(since, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load trending articles")
	}

	resp := fiber.Map{"articles": articles, "count": len(articles), "days": days}
	if popular, articleCount, err := factory.GetCategoryRepository().MostPopular(); err == nil && popular != nil {
		resp["top_category"] = fiber.Map{"category": popular, "article_count": articleCount}
	}
	return c.JSON(resp)
}

// articlePerformance pairs an article with its engagement numbers
type articlePerformance struct {
	ArticleID  uint   `json:"article_id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	ViewsCount uint   `json:"views_count"`
	Likes      int64  `json:"likes"`
	Comments   int64  `json:"comments"`
	Shares     int64  `json:"shares"`
	Engagement int64  `json:"engagement"`
}

// HandleDashboardPerformance returns the content performance view: top
// articles by views, the same set reordered by engagement (likes plus
// comments), and the recently popular articles.
func HandleDashboardPerformance(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", defaultTrendingLimit), defaultTrendingLimit, 50)

	factory := repository.GetGlobalFactory()
	topViewed, err := factory.GetArticleRepository().MostViewed(limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load performance")
	}

	interactionRepo := factory.GetInteractionRepository()
	performances := make([]articlePerformance, 0, len(topViewed))
	for _, article := range topViewed {
		likes, err := interactionRepo.CountLikes(article.ID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load performance")
		}
		comments, err := interactionRepo.CountApprovedComments(article.ID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load performance")
		}
		shares, err := interactionRepo.CountShares(article.ID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load performance")
		}
		performances = append(performances, articlePerformance{
			ArticleID:  article.ID,
			Title:      article.Title,
			Slug:       article.Slug,
			ViewsCount: article.ViewsCount,
			Likes:      likes,
			Comments:   comments,
			Shares:     shares,
			Engagement: likes + comments,
		})
	}

	byEngagement := make([]articlePerformance, len(performances))
	copy(byEngagement, performances)
	sort.SliceStable(byEngagement, func(i, j int) bool {
		return byEngagement[i].Engagement > byEngagement[j].Engagement
	})

	since := time.Now().AddDate(0, 0, -defaultTrendingDays)
	recent, err := factory.GetArticleRepository().Trending(since, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_error", "could not load performance")
	}

	return c.JSON(fiber.Map{
		"top_by_views":      performances,
		"top_by_engagement": byEngagement,
		"recent_popular":    recent,
	})
}
