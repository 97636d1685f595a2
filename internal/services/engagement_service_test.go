package services

import (
	"context"
	"testing"
	"time"

	"theinsight/internal/mocks"
	"theinsight/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedArticle(repo *mocks.MockArticleRepository, allowComments bool) *models.Article {
	return repo.Seed(&models.Article{
		Title:         "Seeded",
		Status:        models.StatusPublished,
		AllowComments: allowComments,
	})
}

func TestCommentCreate(t *testing.T) {
	articles := mocks.NewMockArticleRepository()
	comments := mocks.NewMockCommentRepository()
	svc := NewCommentService(comments, articles)
	ctx := context.Background()
	a := seedArticle(articles, true)

	c, err := svc.Create(ctx, a.ID, models.CommentRequest{Content: "  Great read  ", Email: "Reader@Mail.com"},
		ClientInfo{IP: "10.0.0.1", UserAgent: "test"})
	require.NoError(t, err)
	assert.Equal(t, "Great read", c.Content)
	assert.Equal(t, "Anonymous", c.Name)
	assert.True(t, c.IsApproved)

	require.Len(t, comments.Comments, 1)
	stored := comments.Comments[0]
	assert.Equal(t, "reader@mail.com", stored.Email)
	assert.Equal(t, "10.0.0.1", stored.IPAddress)
}

func TestCommentCreate_Rejections(t *testing.T) {
	articles := mocks.NewMockArticleRepository()
	comments := mocks.NewMockCommentRepository()
	svc := NewCommentService(comments, articles)
	ctx := context.Background()

	closed := seedArticle(articles, false)
	_, err := svc.Create(ctx, closed.ID, models.CommentRequest{Content: "hi"}, ClientInfo{})
	assert.ErrorIs(t, err, ErrCommentsDisabled)
	assert.Empty(t, comments.Comments, "комментарий не должен сохраниться")

	_, err = svc.Create(ctx, 999, models.CommentRequest{Content: "hi"}, ClientInfo{})
	assert.EqualError(t, err, "Article not found")

	open := seedArticle(articles, true)
	_, err = svc.Create(ctx, open.ID, models.CommentRequest{Content: "   "}, ClientInfo{})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Comment content is required", ve.Fields[0].Message)
	assert.Empty(t, comments.Comments)
}

func TestCommentCreate_ContentCheckedBeforeArticle(t *testing.T) {
	articles := mocks.NewMockArticleRepository()
	svc := NewCommentService(mocks.NewMockCommentRepository(), articles)
	ctx := context.Background()
	closed := seedArticle(articles, false)

	for _, id := range []int64{closed.ID, 999} {
		_, err := svc.Create(ctx, id, models.CommentRequest{Content: "  "}, ClientInfo{})
		assert.True(t, IsValidation(err), "article %d: %v", id, err)
	}
}

func TestCommentReads_UnknownArticle(t *testing.T) {
	svc := NewCommentService(mocks.NewMockCommentRepository(), mocks.NewMockArticleRepository())
	ctx := context.Background()

	_, err := svc.List(ctx, 9999, models.Page{Number: 1, Limit: 3})
	assert.EqualError(t, err, "Article not found")

	_, err = svc.All(ctx, 9999)
	assert.EqualError(t, err, "Article not found")

	_, err = svc.Count(ctx, 9999)
	assert.EqualError(t, err, "Article not found")
}

func TestCommentListAndDelete(t *testing.T) {
	articles := mocks.NewMockArticleRepository()
	comments := mocks.NewMockCommentRepository()
	svc := NewCommentService(comments, articles)
	ctx := context.Background()
	a := seedArticle(articles, true)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, a.ID, models.CommentRequest{Content: "c"}, ClientInfo{})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, a.ID, models.Page{Number: 1, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	n, err := svc.Count(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	require.NoError(t, svc.Delete(ctx, page.Items[0].ID))
	assert.EqualError(t, svc.Delete(ctx, page.Items[0].ID), "Comment not found")
}

func TestLikes_IncrementAndFloor(t *testing.T) {
	articles := mocks.NewMockArticleRepository()
	svc := NewLikeService(mocks.NewMockLikeRepository(), articles)
	ctx := context.Background()
	a := seedArticle(articles, true)

	n, changed, err := svc.Decrement(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, changed)

	n, err = svc.Increment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, changed, err = svc.Decrement(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, changed)

	n, changed, err = svc.Decrement(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, changed)

	_, err = svc.Increment(ctx, 999)
	assert.True(t, IsNotFound(err))

	_, err = svc.Count(ctx, 999)
	assert.EqualError(t, err, "Article not found")
}

func TestDashboardStats(t *testing.T) {
	repo := &mocks.MockDashboardRepository{TotalsOut: models.ContentTotals{
		Articles: 1500, Videos: 12, Podcasts: 3, TotalViews: 2_400_000,
		NewArticles: 40, NewVideos: 2, NewPodcasts: 0, RecentViews: 1200,
	}}
	svc := &dashboardService{repo: repo, now: func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }}

	cards, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 4)
	assert.Equal(t, models.StatCard{Title: "Total Articles", Value: "1.5K", Change: "+40", ChangeType: "increase", Icon: "BookOpen", Color: "blue"}, cards[0])
	assert.Equal(t, "2.4M", cards[3].Value)
	assert.Equal(t, "+1.2K", cards[3].Change)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), repo.Since)
}

func TestDashboardRecentArticles_MainFirstThenLatest(t *testing.T) {
	pos := models.PositionMain
	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	repo := &mocks.MockDashboardRepository{
		Mains: []*models.DashboardArticle{
			{ID: 1, Title: "Main", Status: "published", CreatedAt: day(1), IsMainArticle: true, MainArticlePosition: &pos},
		},
		Latest: []*models.DashboardArticle{
			{ID: 3, Title: "Newest", Status: "review", CreatedAt: day(3)},
			{ID: 2, Title: "Older", Status: "draft", CreatedAt: day(2)},
		},
	}
	svc := NewDashboardService(repo)

	out, err := svc.RecentArticles(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []int{2}, repo.LatestLimits)
	assert.Equal(t, int64(3), out[0].ID)
	assert.Equal(t, "Review", out[0].Status)
	assert.Equal(t, "Draft", out[1].Status)
	assert.True(t, out[2].IsMain)
	assert.Equal(t, "2024-06-01", out[2].Date)
}

func TestDashboardAnalytics(t *testing.T) {
	repo := &mocks.MockDashboardRepository{
		Category:  "Tech Trends",
		ReadTimes: []string{"5 min", "10 min read", "quick"},
		TotalsOut: models.ContentTotals{Published: 8, PublishedWithComments: 6, NewArticles: 4},
	}
	out, err := NewDashboardService(repo).Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.Analytics{
		MostPopularCategory: "Tech Trends",
		AvgReadTime:         "7.5 minutes",
		EngagementRate:      "75.0%",
		NewSubscribers:      "+4",
	}, out)

	empty, err := NewDashboardService(&mocks.MockDashboardRepository{}).Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "N/A", empty.MostPopularCategory)
	assert.Equal(t, "N/A", empty.AvgReadTime)
	assert.Equal(t, "0%", empty.EngagementRate)
}

func TestGlobalSearch_RequiresQuery(t *testing.T) {
	svc := NewSearchService(mocks.NewMockArticleRepository(), mocks.NewMockVideoRepository(),
		mocks.NewMockTVShowRepository(), mocks.NewMockPodcastRepository())

	_, err := svc.GlobalSearch(context.Background(), "   ")
	assert.True(t, IsValidation(err))
}

func TestGlobalSearch_OnlyPublished(t *testing.T) {
	articles := mocks.NewMockArticleRepository()
	articles.Seed(&models.Article{Title: "Quantum leap", Status: models.StatusPublished})
	articles.Seed(&models.Article{Title: "Quantum draft", Status: models.StatusDraft})
	svc := NewSearchService(articles, mocks.NewMockVideoRepository(),
		mocks.NewMockTVShowRepository(), mocks.NewMockPodcastRepository())

	res, err := svc.GlobalSearch(context.Background(), "quantum")
	require.NoError(t, err)
	require.Len(t, res.Articles, 1)
	assert.Equal(t, "Quantum leap", res.Articles[0].Title)
	assert.Empty(t, res.Videos)
}
