package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFieldsExcerpt(t *testing.T) {
	t.Parallel()

	t.Run("short content is used verbatim", func(t *testing.T) {
		t.Parallel()
		a := Article{Title: "Short", Content: "A short story."}
		a.DeriveFields()
		assert.Equal(t, "A short story.", a.Excerpt)
	})

	t.Run("650 chars are cut to 497 plus ellipsis", func(t *testing.T) {
		t.Parallel()
		content := strings.Repeat("x", 650)
		a := Article{Title: "Long", Content: content}
		a.DeriveFields()
		require.Len(t, a.Excerpt, 500)
		assert.Equal(t, content[:497]+"...", a.Excerpt)
	})

	t.Run("exactly 500 chars stay verbatim", func(t *testing.T) {
		t.Parallel()
		content := strings.Repeat("y", 500)
		a := Article{Title: "Edge", Content: content}
		a.DeriveFields()
		assert.Equal(t, content, a.Excerpt)
	})

	t.Run("explicit excerpt is never overwritten", func(t *testing.T) {
		t.Parallel()
		a := Article{Title: "T", Content: strings.Repeat("z", 800), Excerpt: "my own summary"}
		a.DeriveFields()
		assert.Equal(t, "my own summary", a.Excerpt)
	})

	t.Run("empty content leaves excerpt empty", func(t *testing.T) {
		t.Parallel()
		a := Article{Title: "T"}
		a.DeriveFields()
		assert.Empty(t, a.Excerpt)
	})
}

func TestDeriveFieldsMetaDefaults(t *testing.T) {
	t.Parallel()

	longTitle := strings.Repeat("t", 80)
	a := Article{Title: longTitle, Content: strings.Repeat("c", 600)}
	a.DeriveFields()

	assert.Equal(t, longTitle[:60], a.MetaTitle)
	assert.Equal(t, []rune(a.Excerpt)[:160], []rune(a.MetaDescription))

	// Explicit values win
	b := Article{Title: "T", Content: "c", MetaTitle: "custom", MetaDescription: "desc"}
	b.DeriveFields()
	assert.Equal(t, "custom", b.MetaTitle)
	assert.Equal(t, "desc", b.MetaDescription)
}

func TestCalculateReadTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		words int
		want  uint
	}{
		{"one word rounds up to a minute", 1, 1},
		{"just under half a minute", 99, 1},
		{"100 words round to a minute", 100, 1},
		{"exactly 200 words", 200, 1},
		{"300 words round to two", 300, 2},
		{"500 words round half up to three", 500, 3},
		{"1000 words", 1000, 5},
		{"1099 words still five", 1099, 5},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			content := strings.TrimSpace(strings.Repeat("word ", tc.words))
			assert.Equal(t, tc.want, CalculateReadTime(content))
		})
	}
}

func TestDeriveFieldsReadTime(t *testing.T) {
	t.Parallel()

	t.Run("recomputed on every save with content", func(t *testing.T) {
		t.Parallel()
		a := Article{Title: "T", Content: strings.TrimSpace(strings.Repeat("w ", 400))}
		a.DeriveFields()
		assert.Equal(t, uint(2), a.ReadTime)
	})

	t.Run("empty content keeps the zero default", func(t *testing.T) {
		t.Parallel()
		a := Article{Title: "T"}
		a.DeriveFields()
		assert.Equal(t, uint(0), a.ReadTime)
	})
}

func TestValidateStatusTransition(t *testing.T) {
	t.Parallel()

	statuses := []string{
		ARTICLE_STATUS_DRAFT,
		ARTICLE_STATUS_REVIEW,
		ARTICLE_STATUS_PUBLISHED,
		ARTICLE_STATUS_ARCHIVED,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			from, to := from, to
			t.Run(from+" to "+to, func(t *testing.T) {
				t.Parallel()
				err := ValidateStatusTransition(from, to)
				if from == ARTICLE_STATUS_PUBLISHED && to == ARTICLE_STATUS_DRAFT {
					assert.ErrorIs(t, err, ErrInvalidTransition)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	}
}

func TestApplyStatusChange(t *testing.T) {
	t.Parallel()

	t.Run("first publish stamps published_at", func(t *testing.T) {
		t.Parallel()
		now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
		a := Article{Status: ARTICLE_STATUS_DRAFT}
		require.NoError(t, a.ApplyStatusChange(ARTICLE_STATUS_PUBLISHED, now))
		require.NotNil(t, a.PublishedAt)
		assert.Equal(t, now, *a.PublishedAt)
	})

	t.Run("republish does not alter published_at", func(t *testing.T) {
		t.Parallel()
		first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		a := Article{Status: ARTICLE_STATUS_ARCHIVED, PublishedAt: &first}
		require.NoError(t, a.ApplyStatusChange(ARTICLE_STATUS_PUBLISHED, time.Now()))
		assert.Equal(t, first, *a.PublishedAt)
	})

	t.Run("published to draft is rejected without mutation", func(t *testing.T) {
		t.Parallel()
		stamp := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		a := Article{Status: ARTICLE_STATUS_PUBLISHED, PublishedAt: &stamp}
		err := a.ApplyStatusChange(ARTICLE_STATUS_DRAFT, time.Now())
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, ARTICLE_STATUS_PUBLISHED, a.Status)
	})

	t.Run("archive keeps the publication stamp", func(t *testing.T) {
		t.Parallel()
		stamp := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		a := Article{Status: ARTICLE_STATUS_PUBLISHED, PublishedAt: &stamp}
		require.NoError(t, a.ApplyStatusChange(ARTICLE_STATUS_ARCHIVED, time.Now()))
		assert.Equal(t, ARTICLE_STATUS_ARCHIVED, a.Status)
		assert.Equal(t, stamp, *a.PublishedAt)
	})
}

func TestArticleOwnership(t *testing.T) {
	t.Parallel()

	var owners []Ownable = []Ownable{
		&Article{AuthorID: 7},
		&Comment{AuthorID: 7},
		&Bookmark{UserID: 7},
		&Author{UserID: 7},
	}
	for _, o := range owners {
		assert.Equal(t, uint(7), o.OwnerID())
	}
}

func TestIsPublished(t *testing.T) {
	t.Parallel()

	now := time.Now()
	assert.False(t, (&Article{Status: ARTICLE_STATUS_PUBLISHED}).IsPublished())
	assert.False(t, (&Article{Status: ARTICLE_STATUS_DRAFT, PublishedAt: &now}).IsPublished())
	assert.True(t, (&Article{Status: ARTICLE_STATUS_PUBLISHED, PublishedAt: &now}).IsPublished())
}
