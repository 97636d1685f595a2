package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"theinsight/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dashboardArticleColumns = `id, title, status, views, publish_date, created_at, category_name,
	is_main_article, is_second_main_article, main_article_position`

type DashboardRepo interface {
	Totals(ctx context.Context, since time.Time) (*models.ContentTotals, error)
	MainArticles(ctx context.Context, limit int) ([]*models.DashboardArticle, error)
	LatestNonMain(ctx context.Context, limit int) ([]*models.DashboardArticle, error)
	// MostPopularCategory: рубрика опубликованных статей с наибольшими просмотрами; "" если статей нет.
	MostPopularCategory(ctx context.Context) (string, error)
	PublishedReadTimes(ctx context.Context) ([]string, error)
}

type dashboardRepo struct {
	db       *pgxpool.Pool
	articles Lister[models.DashboardArticle]
}

func NewDashboardRepo(db *pgxpool.Pool) DashboardRepo {
	return &dashboardRepo{db: db, articles: NewLister[models.DashboardArticle]("articles", dashboardArticleColumns)}
}

func (r *dashboardRepo) Totals(ctx context.Context, since time.Time) (*models.ContentTotals, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM articles),
			(SELECT COUNT(*) FROM videos),
			(SELECT COUNT(*) FROM podcasts),
			(SELECT COALESCE(SUM(views), 0) FROM articles),
			(SELECT COUNT(*) FROM articles WHERE created_at >= $1),
			(SELECT COUNT(*) FROM videos WHERE created_at >= $1),
			(SELECT COUNT(*) FROM podcasts WHERE created_at >= $1),
			(SELECT COALESCE(SUM(views), 0) FROM articles WHERE created_at >= $1),
			(SELECT COUNT(*) FROM articles WHERE status = 'published'),
			(SELECT COUNT(*) FROM articles WHERE status = 'published' AND allow_comments)`

	var t models.ContentTotals
	err := r.db.QueryRow(ctx, q, since).Scan(
		&t.Articles, &t.Videos, &t.Podcasts, &t.TotalViews,
		&t.NewArticles, &t.NewVideos, &t.NewPodcasts, &t.RecentViews,
		&t.Published, &t.PublishedWithComments,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}
	return &t, nil
}

func (r *dashboardRepo) MainArticles(ctx context.Context, limit int) ([]*models.DashboardArticle, error) {
	f := NewFilter().Raw("(is_main_article OR is_second_main_article)")
	return r.articles.All(ctx, r.db, f, "created_at DESC", limit)
}

func (r *dashboardRepo) LatestNonMain(ctx context.Context, limit int) ([]*models.DashboardArticle, error) {
	f := NewFilter().Raw("NOT is_main_article AND NOT is_second_main_article")
	return r.articles.All(ctx, r.db, f, "created_at DESC", limit)
}

func (r *dashboardRepo) MostPopularCategory(ctx context.Context) (string, error) {
	const q = `
		SELECT category_name
		FROM articles WHERE status = 'published'
		GROUP BY category_name
		ORDER BY SUM(views) DESC, category_name
		LIMIT 1`
	var category string
	err := r.db.QueryRow(ctx, q).Scan(&category)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return category, err
}

func (r *dashboardRepo) PublishedReadTimes(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT read_time FROM articles WHERE status = 'published' AND read_time <> ''`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
