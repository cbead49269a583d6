package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/presswire/PressWire/app/controllers"
	"github.com/presswire/PressWire/internal/pkg/middleware"
	"github.com/presswire/PressWire/internal/pkg/session"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// init session, then resolve it into the UserContext on every request
	session.NewSessionStore()
	app.Use(middleware.UserContextMiddleware)

	api := app.Group("/api", limiter.New(limiter.Config{Max: 120}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "PressWire API",
		})
	})

	v1 := api.Group("/v1")

	// Auth
	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/logout", controllers.HandleLogout)
	auth.Get("/me", middleware.RequireAuth, controllers.HandleMe)

	// Articles: rankings first so they are not swallowed by :slug
	articles := v1.Group("/articles")
	articles.Get("/featured", controllers.HandleFeaturedArticles)
	articles.Get("/trending", controllers.HandleTrendingArticles)
	articles.Get("/breaking", controllers.HandleBreakingArticles)
	articles.Get("/latest", controllers.HandleLatestArticles)
	articles.Get("/stats", middleware.RequireStaff, controllers.HandleArticleStats)
	articles.Get("/", controllers.HandleListArticles)
	articles.Post("/", middleware.RequireAuth, controllers.HandleCreateArticle)
	articles.Get("/:slug", controllers.HandleGetArticle)
	articles.Put("/:id", middleware.RequireAuth, controllers.HandleUpdateArticle)
	articles.Patch("/:id", middleware.RequireAuth, controllers.HandleUpdateArticle)
	articles.Delete("/:id", middleware.RequireAuth, controllers.HandleDeleteArticle)
	articles.Post("/:id/status", middleware.RequireAuth, controllers.HandleChangeArticleStatus)
	articles.Post("/:id/increment_views", controllers.HandleIncrementViews)

	// Reader interactions
	articles.Get("/:id/comments", controllers.HandleListComments)
	articles.Post("/:id/comments", middleware.RequireAuth, controllers.HandleCreateComment)
	articles.Post("/:id/like", middleware.RequireAuth, controllers.HandleToggleLike)
	articles.Post("/:id/bookmark", middleware.RequireAuth, controllers.HandleToggleBookmark)
	articles.Post("/:id/share", controllers.HandleShareArticle)
	v1.Delete("/comments/:comment_id", middleware.RequireAuth, controllers.HandleDeleteComment)
	v1.Get("/bookmarks", middleware.RequireAuth, controllers.HandleListBookmarks)

	// Categories
	categories := v1.Group("/categories")
	categories.Get("/stats", middleware.RequireStaff, controllers.HandleCategoryStats)
	categories.Get("/", controllers.HandleListCategories)
	categories.Post("/", middleware.RequireStaff, controllers.HandleCreateCategory)
	categories.Get("/:slug", controllers.HandleGetCategory)
	categories.Get("/:slug/articles", controllers.HandleCategoryArticles)
	categories.Put("/:id", middleware.RequireStaff, controllers.HandleUpdateCategory)
	categories.Delete("/:id", middleware.RequireStaff, controllers.HandleDeleteCategory)

	// Tags
	tags := v1.Group("/tags")
	tags.Get("/", controllers.HandleListTags)
	tags.Post("/", middleware.RequireStaff, controllers.HandleCreateTag)
	tags.Get("/:slug", controllers.HandleGetTag)
	tags.Get("/:slug/articles", controllers.HandleTagArticles)
	tags.Delete("/:id", middleware.RequireStaff, controllers.HandleDeleteTag)

	// Authors
	authors := v1.Group("/authors")
	authors.Get("/stats", middleware.RequireStaff, controllers.HandleAuthorStats)
	authors.Get("/", controllers.HandleListAuthors)
	authors.Put("/me", middleware.RequireAuth, controllers.HandleUpsertAuthorProfile)
	authors.Get("/:id", controllers.HandleGetAuthor)
	authors.Get("/:id/articles", controllers.HandleAuthorArticles)

	// Search
	v1.Get("/search", controllers.HandleSearch)

	// Newsletter
	news := v1.Group("/newsletter")
	news.Post("/subscribe", controllers.HandleNewsletterSubscribe)
	// GET for mail links, POST for API clients
	news.Get("/confirm/:token", controllers.HandleNewsletterConfirm)
	news.Post("/confirm/:token", controllers.HandleNewsletterConfirm)
	news.Get("/unsubscribe/:token", controllers.HandleNewsletterUnsubscribe)
	news.Post("/unsubscribe/:token", controllers.HandleNewsletterUnsubscribe)
	news.Get("/resubscribe/:token", controllers.HandleNewsletterResubscribe)
	news.Post("/resubscribe/:token", controllers.HandleNewsletterResubscribe)
	news.Get("/subscribers", middleware.RequireStaff, controllers.HandleListSubscribers)

	// Campaigns (staff only)
	campaigns := v1.Group("/campaigns", middleware.RequireStaff)
	campaigns.Get("/", controllers.HandleListCampaigns)
	campaigns.Post("/", controllers.HandleCreateCampaign)
	campaigns.Get("/:id", controllers.HandleGetCampaign)
	campaigns.Put("/:id", controllers.HandleUpdateCampaign)
	campaigns.Delete("/:id", controllers.HandleDeleteCampaign)
	campaigns.Post("/:id/send", controllers.HandleSendCampaign)
	campaigns.Get("/:id/preview", controllers.HandlePreviewCampaign)

	// Dashboard (staff only)
	dashboard := v1.Group("/dashboard", middleware.RequireStaff)
	dashboard.Get("/overview", controllers.HandleDashboardOverview)
	dashboard.Get("/trending", controllers.HandleDashboardTrending)
	dashboard.Get("/performance", controllers.HandleDashboardPerformance)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
