package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"theinsight/internal/mocks"
	"theinsight/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleRequest(title string) models.ArticleRequest {
	return models.ArticleRequest{
		Title:         title,
		Excerpt:       "excerpt",
		Content:       `<p>body</p><script>alert(1)</script>`,
		CategoryName:  "Tech Trends",
		Author:        "Jane Doe",
		FeaturedImage: "https://cdn.example.com/cover.jpg",
		Status:        models.StatusPublished,
	}
}

func newArticleFixture(t *testing.T) (*mocks.MockArticleRepository, ArticleService) {
	t.Helper()
	repo := mocks.NewMockArticleRepository()
	return repo, NewArticleService(repo)
}

func TestArticleCreate_DefaultsAndSanitizes(t *testing.T) {
	_, svc := newArticleFixture(t)
	req := articleRequest("  Title  ")
	req.Status = ""

	a, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Title", a.Title)
	assert.Equal(t, models.StatusDraft, a.Status)
	assert.True(t, a.AllowComments)
	assert.False(t, a.PublishDate.IsZero())
	assert.NotContains(t, a.Content, "<script>")
	assert.Nil(t, a.MainArticlePosition)
}

func TestArticleCreate_Validation(t *testing.T) {
	_, svc := newArticleFixture(t)
	req := articleRequest("")
	req.CategoryName = "Gossip"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 2)
}

func TestSetMain_Exclusive(t *testing.T) {
	repo, svc := newArticleFixture(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, articleRequest("A"))
	b, _ := svc.Create(ctx, articleRequest("B"))

	_, err := svc.SetMain(ctx, a.ID, models.PositionMain)
	require.NoError(t, err)
	setB, err := svc.SetMain(ctx, b.ID, models.PositionMain)
	require.NoError(t, err)

	assert.True(t, setB.IsMainArticle)
	require.NotNil(t, setB.MainArticlePosition)
	assert.Equal(t, models.PositionMain, *setB.MainArticlePosition)

	gotA, err := svc.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, gotA.IsMainArticle)
	assert.Nil(t, gotA.MainArticlePosition)
	assert.Equal(t, 1, repo.CountPosition(models.PositionMain))
}

func TestSetMain_SwitchPosition(t *testing.T) {
	_, svc := newArticleFixture(t)
	ctx := context.Background()

	a, _ := svc.Create(ctx, articleRequest("A"))
	b, _ := svc.Create(ctx, articleRequest("B"))

	_, err := svc.SetMain(ctx, a.ID, models.PositionMain)
	require.NoError(t, err)
	_, err = svc.SetMain(ctx, b.ID, models.PositionSecond)
	require.NoError(t, err)

	// A переходит на вторую позицию: B её теряет, главная остаётся свободной.
	moved, err := svc.SetMain(ctx, a.ID, models.PositionSecond)
	require.NoError(t, err)
	assert.False(t, moved.IsMainArticle)
	assert.True(t, moved.IsSecondMainArticle)

	main, err := svc.MainArticles(ctx)
	require.NoError(t, err)
	assert.Nil(t, main.MainArticle)
	require.NotNil(t, main.SecondMainArticle)
	assert.Equal(t, a.ID, main.SecondMainArticle.ID)
}

func TestSetMain_Errors(t *testing.T) {
	_, svc := newArticleFixture(t)
	ctx := context.Background()
	a, _ := svc.Create(ctx, articleRequest("A"))

	_, err := svc.SetMain(ctx, a.ID, "third")
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = svc.SetMain(ctx, 999, models.PositionMain)
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "Article not found")
}

func TestSetMain_ConcurrentKeepsSingleHolder(t *testing.T) {
	repo, svc := newArticleFixture(t)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 8; i++ {
		a, err := svc.Create(ctx, articleRequest("A"))
		require.NoError(t, err)
		ids = append(ids, a.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = svc.SetMain(ctx, id, models.PositionMain)
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, repo.CountPosition(models.PositionMain))
}

func TestRemoveMain(t *testing.T) {
	_, svc := newArticleFixture(t)
	ctx := context.Background()
	a, _ := svc.Create(ctx, articleRequest("A"))
	b, _ := svc.Create(ctx, articleRequest("B"))
	_, _ = svc.SetMain(ctx, a.ID, models.PositionMain)
	_, _ = svc.SetMain(ctx, b.ID, models.PositionSecond)

	removed, err := svc.RemoveMain(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed.IsMainArticle)
	assert.False(t, removed.IsSecondMainArticle)
	assert.Nil(t, removed.MainArticlePosition)

	gotB, _ := svc.GetByID(ctx, b.ID)
	assert.True(t, gotB.IsSecondMainArticle, "снятие затрагивает только целевую статью")

	_, err = svc.RemoveMain(ctx, 404)
	assert.True(t, IsNotFound(err))
}

func TestGetPublic_CountsViews(t *testing.T) {
	_, svc := newArticleFixture(t)
	ctx := context.Background()
	a, _ := svc.Create(ctx, articleRequest("A"))

	first, err := svc.GetPublic(ctx, a.ID)
	require.NoError(t, err)
	second, err := svc.GetPublic(ctx, a.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Views)
	assert.Equal(t, int64(2), second.Views)

	draftReq := articleRequest("Draft")
	draftReq.Status = models.StatusDraft
	draft, _ := svc.Create(ctx, draftReq)
	_, err = svc.GetPublic(ctx, draft.ID)
	assert.True(t, IsNotFound(err))
}

func TestUpdate_KeepsMainFlags(t *testing.T) {
	_, svc := newArticleFixture(t)
	ctx := context.Background()
	a, _ := svc.Create(ctx, articleRequest("A"))
	_, _ = svc.SetMain(ctx, a.ID, models.PositionMain)

	updated, err := svc.Update(ctx, a.ID, articleRequest("A2"))
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Title)
	assert.True(t, updated.IsMainArticle)

	_, err = svc.Update(ctx, 999, articleRequest("X"))
	assert.True(t, IsNotFound(err))
}

func TestLatestExcludingMain(t *testing.T) {
	_, svc := newArticleFixture(t)
	ctx := context.Background()
	var last *models.Article
	for i := 0; i < 5; i++ {
		last, _ = svc.Create(ctx, articleRequest("A"))
	}
	_, _ = svc.SetMain(ctx, last.ID, models.PositionMain)

	list, err := svc.LatestExcludingMain(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, a := range list {
		assert.NotEqual(t, last.ID, a.ID)
	}
}

func TestList_Pagination(t *testing.T) {
	_, svc := newArticleFixture(t)
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, articleRequest("A"))
		require.NoError(t, err)
	}

	res, err := svc.List(ctx, models.ArticleFilter{}, models.Page{Number: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, res.Items, 5)
	assert.Equal(t, models.Pagination{
		CurrentPage: 3, TotalPages: 3, TotalItems: 25, ItemsPerPage: 10, HasNextPage: false, HasPrevPage: true,
	}, res.Pagination)
}

func TestArticleUpdate_KeepsPublishDateWhenOmitted(t *testing.T) {
	_, svc := newArticleFixture(t)
	ctx := context.Background()
	published := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	req := articleRequest("Dated")
	req.PublishDate = &published
	a, err := svc.Create(ctx, req)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, a.ID, articleRequest("Dated, edited"))
	require.NoError(t, err)
	assert.Equal(t, "Dated, edited", updated.Title)
	assert.True(t, published.Equal(updated.PublishDate), "publishDate %v", updated.PublishDate)

	moved := published.AddDate(0, 1, 0)
	req = articleRequest("Dated, moved")
	req.PublishDate = &moved
	updated, err = svc.Update(ctx, a.ID, req)
	require.NoError(t, err)
	assert.True(t, moved.Equal(updated.PublishDate))
}
