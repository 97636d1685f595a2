package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"theinsight/internal/config"
	"theinsight/internal/db"
	"theinsight/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тесты ходят в настоящий Postgres из DB_* переменных и запускаются только
// с INTEGRATION_DB=1. Таблицы очищаются перед каждым тестом.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("INTEGRATION_DB") != "1" {
		t.Skip("INTEGRATION_DB=1 не задан")
	}

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.NewPostgresConnection(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE articles, comments, likes, podcasts RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func newArticle(title string, published time.Time) *models.Article {
	return &models.Article{
		Title:         title,
		Excerpt:       "excerpt",
		Content:       "<p>body</p>",
		CategoryName:  "Tech Trends",
		Author:        "Jane Doe",
		PublishDate:   published,
		FeaturedImage: "https://cdn.example.com/a.jpg",
		Status:        models.StatusPublished,
		AllowComments: true,
	}
}

func TestArticleRepo_ListAndViews(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewArticleRepo(pool)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"Go 100% inside", "Rust notes", "Go_lang tips"} {
		_, err := repo.Create(ctx, newArticle(title, base.AddDate(0, 0, i)))
		require.NoError(t, err)
	}
	draft := newArticle("Go draft", base)
	draft.Status = models.StatusDraft
	_, err := repo.Create(ctx, draft)
	require.NoError(t, err)

	items, total, err := repo.List(ctx, models.ArticleFilter{OnlyPublic: true, Search: "go"}, models.Page{Number: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Go_lang tips", items[0].Title)

	_, total, err = repo.List(ctx, models.ArticleFilter{Search: "100%"}, models.Page{Number: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	a, err := repo.GetPublishedAndCountView(ctx, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.Views)

	_, err = repo.GetPublishedAndCountView(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArticleRepo_UpdateKeepsPublishDate(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewArticleRepo(pool)

	published := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a, err := repo.Create(ctx, newArticle("Dated", published))
	require.NoError(t, err)

	a.Title = "Dated, edited"
	a.PublishDate = time.Time{}
	updated, err := repo.Update(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "Dated, edited", updated.Title)
	assert.True(t, published.Equal(updated.PublishDate))
}

func TestArticleRepo_MainLock(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewArticleRepo(pool)

	a, err := repo.Create(ctx, newArticle("A", time.Now()))
	require.NoError(t, err)
	b, err := repo.Create(ctx, newArticle("B", time.Now()))
	require.NoError(t, err)

	set := func(id int64, position string) {
		t.Helper()
		require.NoError(t, repo.WithMainLock(ctx, func(tx MainArticleTx) error {
			if err := tx.ClearPosition(ctx, position, id); err != nil {
				return err
			}
			_, err := tx.SetPosition(ctx, id, position)
			return err
		}))
	}

	set(a.ID, models.PositionMain)
	set(b.ID, models.PositionSecond)
	mains, err := repo.MainArticles(ctx)
	require.NoError(t, err)
	require.NotNil(t, mains.MainArticle)
	require.NotNil(t, mains.SecondMainArticle)
	assert.Equal(t, a.ID, mains.MainArticle.ID)
	assert.Equal(t, b.ID, mains.SecondMainArticle.ID)

	set(b.ID, models.PositionMain)
	mains, err = repo.MainArticles(ctx)
	require.NoError(t, err)
	require.NotNil(t, mains.MainArticle)
	assert.Equal(t, b.ID, mains.MainArticle.ID)
	assert.Nil(t, mains.SecondMainArticle)

	var mainCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM articles WHERE is_main_article`).Scan(&mainCount))
	assert.Equal(t, 1, mainCount)
}

func TestLikeRepo_DecrementFloor(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewLikeRepo(pool)

	n, changed, err := repo.Decrement(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, changed)

	n, err = repo.Increment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, changed, err = repo.Decrement(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, changed)

	n, changed, err = repo.Decrement(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, changed)

	n, err = repo.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPodcastRepo_CountPlay(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	repo := NewPodcastRepo(pool)

	for plays, want := range map[string]string{
		"41":                         "42",
		"99999999999999999999999999": "1",
	} {
		p, err := repo.Create(ctx, &models.Podcast{
			Title:       "Episode",
			Description: "Desc",
			Duration:    "30:00",
			Image:       "https://cdn.example.com/p.jpg",
			Status:      models.StatusPublished,
			PublishDate: time.Now(),
			Plays:       plays,
			Downloads:   "0",
		})
		require.NoError(t, err)

		got, err := repo.GetPublishedAndCountPlay(ctx, p.ID)
		require.NoError(t, err, plays)
		assert.Equal(t, want, got.Plays, plays)
	}
}
