package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/presswire/PressWire/app/models"
)

func strPtr(s string) *string { return &s }

// fakeTagRepo is an in-memory TagRepository for exercising tag
// resolution without a database.
type fakeTagRepo struct {
	tags   map[uint]models.Tag
	nextID uint
}

func newFakeTagRepo(existing ...string) *fakeTagRepo {
	r := &fakeTagRepo{tags: make(map[uint]models.Tag)}
	for _, name := range existing {
		r.Create(&models.Tag{Name: name})
	}
	return r
}

func (r *fakeTagRepo) Create(tag *models.Tag) error {
	r.nextID++
	tag.ID = r.nextID
	r.tags[tag.ID] = *tag
	return nil
}

func (r *fakeTagRepo) GetByID(id uint) (*models.Tag, error) {
	tag, ok := r.tags[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &tag, nil
}

func (r *fakeTagRepo) GetBySlug(slug string) (*models.Tag, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTagRepo) GetAll() ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(r.tags))
	for _, tag := range r.tags {
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *fakeTagRepo) GetByIDs(ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	for _, id := range ids {
		if tag, ok := r.tags[id]; ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (r *fakeTagRepo) FindOrCreate(tag *models.Tag) error {
	for _, existing := range r.tags {
		if existing.Name == tag.Name {
			*tag = existing
			return nil
		}
	}
	return r.Create(tag)
}

func (r *fakeTagRepo) Update(tag *models.Tag) error {
	r.tags[tag.ID] = *tag
	return nil
}

func (r *fakeTagRepo) Delete(id uint) error {
	delete(r.tags, id)
	return nil
}

func (r *fakeTagRepo) Count() (int64, error) {
	return int64(len(r.tags)), nil
}

func (r *fakeTagRepo) ArticleCount(tagID uint) (int64, error) {
	return 0, nil
}

func (r *fakeTagRepo) Search(query string, limit int) ([]models.Tag, error) {
	return nil, nil
}

func TestResolveTags(t *testing.T) {
	t.Run("loads existing tags by id", func(t *testing.T) {
		repo := newFakeTagRepo("Politics", "Economy")

		tags, err := resolveTags(repo, []uint{1, 2}, nil)

		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, "Politics", tags[0].Name)
		assert.Equal(t, "Economy", tags[1].Name)
	})

	t.Run("creates missing tags by name", func(t *testing.T) {
		repo := newFakeTagRepo()

		tags, err := resolveTags(repo, nil, []string{"Climate", "Sports"})

		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.NotZero(t, tags[0].ID)
		assert.NotZero(t, tags[1].ID)

		count, _ := repo.Count()
		assert.EqualValues(t, 2, count)
	})

	t.Run("reuses an existing tag instead of creating a duplicate", func(t *testing.T) {
		repo := newFakeTagRepo("Politics")

		tags, err := resolveTags(repo, nil, []string{"Politics"})

		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, uint(1), tags[0].ID)

		count, _ := repo.Count()
		assert.EqualValues(t, 1, count)
	})

	t.Run("dedupes a tag sent both as id and as name", func(t *testing.T) {
		repo := newFakeTagRepo("Politics")

		tags, err := resolveTags(repo, []uint{1}, []string{"Politics"})

		require.NoError(t, err)
		assert.Len(t, tags, 1)
	})

	t.Run("skips blank names", func(t *testing.T) {
		repo := newFakeTagRepo()

		tags, err := resolveTags(repo, nil, []string{"", "  ", "Tech"})

		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "Tech", tags[0].Name)
	})
}

func TestApplyArticleUpdate(t *testing.T) {
	t.Run("only sent fields change", func(t *testing.T) {
		article := &models.Article{
			Title:      "Old title",
			Content:    "Old content",
			Excerpt:    "Old excerpt",
			CategoryID: 3,
			Priority:   models.PRIORITY_NORMAL,
		}

		applyArticleUpdate(article, &articleUpdateRequest{Title: strPtr("New title")})

		assert.Equal(t, "New title", article.Title)
		assert.Equal(t, "Old content", article.Content)
		assert.Equal(t, uint(3), article.CategoryID)
		assert.Equal(t, models.PRIORITY_NORMAL, article.Priority)
	})

	t.Run("new content resets a derived excerpt", func(t *testing.T) {
		article := &models.Article{Content: "Old content", Excerpt: "derived from old"}

		applyArticleUpdate(article, &articleUpdateRequest{Content: strPtr("Fresh content")})

		assert.Equal(t, "Fresh content", article.Content)
		assert.Empty(t, article.Excerpt, "excerpt must be rederived from the new content")
	})

	t.Run("explicit excerpt survives a content change", func(t *testing.T) {
		article := &models.Article{Content: "Old content", Excerpt: "editorial excerpt"}

		applyArticleUpdate(article, &articleUpdateRequest{
			Content: strPtr("Fresh content"),
			Excerpt: strPtr("editorial excerpt"),
		})

		assert.Equal(t, "editorial excerpt", article.Excerpt)
	})

	t.Run("flags toggle through pointers", func(t *testing.T) {
		article := &models.Article{IsFeatured: true, AllowComments: true}

		f := false
		applyArticleUpdate(article, &articleUpdateRequest{IsFeatured: &f, AllowComments: &f})

		assert.False(t, article.IsFeatured)
		assert.False(t, article.AllowComments)
	})
}
