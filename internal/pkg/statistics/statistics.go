package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/presswire/PressWire/app/repository"
	"github.com/presswire/PressWire/internal/pkg/cache"
)

const (
	CacheKeyArticlesTotal     = "statistics:articles:total"
	CacheKeyArticlesPublished = "statistics:articles:published"
	CacheKeyViewsTotal        = "statistics:views:total"
	CacheKeySubscribersActive = "statistics:newsletter:active"
	CacheExpiration           = 30 * time.Minute
)

// OverviewData holds the headline dashboard numbers
type OverviewData struct {
	Articles struct {
		Total     int64 `json:"total"`
		Published int64 `json:"published"`
		ThisWeek  int64 `json:"this_week"`
		ThisMonth int64 `json:"this_month"`
	} `json:"articles"`
	Views struct {
		Total    int64 `json:"total"`
		ThisWeek int64 `json:"this_week"`
	} `json:"views"`
	Categories struct {
		Total       int64  `json:"total"`
		MostPopular string `json:"most_popular"`
	} `json:"categories"`
	Authors struct {
		Total int64 `json:"total"`
	} `json:"authors"`
	Newsletter struct {
		TotalSubscribers     int64 `json:"total_subscribers"`
		ConfirmedSubscribers int64 `json:"confirmed_subscribers"`
	} `json:"newsletter"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache checks whether the cached counters are due for a refresh
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached counters when the interval has passed
func UpdateCacheIfNeeded(repos *repository.Repositories) {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(repos); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateStatisticsCache recomputes the expensive counters and stores them in Redis
func UpdateStatisticsCache(repos *repository.Repositories) error {
	stats, err := repos.Article.Stats()
	if err != nil {
		return err
	}
	activeSubscribers, err := repos.Newsletter.CountActive()
	if err != nil {
		return err
	}

	if err := cache.Set(CacheKeyArticlesTotal, strconv.FormatInt(stats.TotalArticles, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyArticlesPublished, strconv.FormatInt(stats.PublishedArticles, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyViewsTotal, strconv.FormatInt(stats.TotalViews, 10), CacheExpiration); err != nil {
		return err
	}
	return cache.Set(CacheKeySubscribersActive, strconv.FormatInt(activeSubscribers, 10), CacheExpiration)
}

// cachedInt64 reads a cached counter, falling back to the loader on a miss
func cachedInt64(key string, load func() (int64, error)) int64 {
	if v, err := cache.GetInt(key); err == nil {
		return int64(v)
	}
	v, err := load()
	if err != nil {
		log.Printf("Error loading statistic %s: %v", key, err)
		return 0
	}
	if err := cache.Set(key, strconv.FormatInt(v, 10), CacheExpiration); err != nil {
		log.Printf("Error caching statistic %s: %v", key, err)
	}
	return v
}

// GetOverview assembles the dashboard overview. The platform-wide totals
// come from the Redis-backed counter cache, the windowed numbers are
// always read live.
func GetOverview(repos *repository.Repositories) (*OverviewData, error) {
	now := time.Now()
	lastWeek := now.AddDate(0, 0, -7)
	lastMonth := now.AddDate(0, 0, -30)

	data := &OverviewData{}

	data.Articles.Total = cachedInt64(CacheKeyArticlesTotal, repos.Article.Count)
	data.Articles.Published = cachedInt64(CacheKeyArticlesPublished, func() (int64, error) {
		return repos.Article.CountByStatus("published")
	})

	var err error
	if data.Articles.ThisWeek, err = repos.Article.CountCreatedSince(lastWeek); err != nil {
		return nil, err
	}
	if data.Articles.ThisMonth, err = repos.Article.CountCreatedSince(lastMonth); err != nil {
		return nil, err
	}

	data.Views.Total = cachedInt64(CacheKeyViewsTotal, func() (int64, error) {
		stats, err := repos.Article.Stats()
		if err != nil {
			return 0, err
		}
		return stats.TotalViews, nil
	})
	if data.Views.ThisWeek, err = repos.Article.CountViewsSince(lastWeek); err != nil {
		return nil, err
	}

	if data.Categories.Total, err = repos.Category.CountActive(); err != nil {
		return nil, err
	}
	if popular, _, err := repos.Category.MostPopular(); err == nil && popular != nil {
		data.Categories.MostPopular = popular.Name
	}

	if data.Authors.Total, err = repos.Author.Count(); err != nil {
		return nil, err
	}

	data.Newsletter.TotalSubscribers = cachedInt64(CacheKeySubscribersActive, repos.Newsletter.CountActive)
	if data.Newsletter.ConfirmedSubscribers, err = repos.Newsletter.CountActiveConfirmed(); err != nil {
		return nil, err
	}

	return data, nil
}
