package repository

import (
	"context"
	"fmt"

	"theinsight/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tvShowColumns = `id, title, description, duration, category, section, season_id, episode_number,
	thumbnail, youtube_url, tags, meta_description, featured, is_new, rating, status, upload_date,
	views, likes, comments_count, created_at, updated_at`

type TVShowRepo interface {
	Create(ctx context.Context, s *models.TVShow) (*models.TVShow, error)
	Update(ctx context.Context, s *models.TVShow) (*models.TVShow, error)
	GetByID(ctx context.Context, id int64) (*models.TVShow, error)
	GetPublished(ctx context.Context, id int64) (*models.TVShow, error)
	// SetViews записывает уже вычисленное строковое значение счётчика просмотров.
	SetViews(ctx context.Context, id int64, views string) error
	List(ctx context.Context, f models.TVShowFilter, p models.Page) ([]*models.TVShow, int, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.TVShowStats, error)
}

type tvShowRepo struct {
	db     *pgxpool.Pool
	lister Lister[models.TVShow]
}

func NewTVShowRepo(db *pgxpool.Pool) TVShowRepo {
	return &tvShowRepo{db: db, lister: NewLister[models.TVShow]("tv_shows", tvShowColumns)}
}

func (r *tvShowRepo) Create(ctx context.Context, s *models.TVShow) (*models.TVShow, error) {
	const q = `
		INSERT INTO tv_shows (title, description, duration, category, section, season_id, episode_number,
			thumbnail, youtube_url, tags, meta_description, featured, is_new, rating, status, upload_date, views)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING ` + tvShowColumns
	return r.lister.Row(ctx, r.db, q,
		s.Title, s.Description, s.Duration, s.Category, s.Section, s.SeasonID, s.EpisodeNumber,
		s.Thumbnail, s.YoutubeURL, s.Tags, s.MetaDescription, s.Featured, s.IsNew, s.Rating, s.Status,
		s.UploadDate, s.Views,
	)
}

func (r *tvShowRepo) Update(ctx context.Context, s *models.TVShow) (*models.TVShow, error) {
	const q = `
		UPDATE tv_shows
		SET title=$2, description=$3, duration=$4, category=$5, section=$6, season_id=$7, episode_number=$8,
		    thumbnail=$9, youtube_url=$10, tags=$11, meta_description=$12, featured=$13, is_new=$14,
		    rating=$15, status=$16, upload_date=$17, updated_at=NOW()
		WHERE id=$1
		RETURNING ` + tvShowColumns
	return r.lister.Row(ctx, r.db, q, s.ID,
		s.Title, s.Description, s.Duration, s.Category, s.Section, s.SeasonID, s.EpisodeNumber,
		s.Thumbnail, s.YoutubeURL, s.Tags, s.MetaDescription, s.Featured, s.IsNew, s.Rating, s.Status,
		s.UploadDate,
	)
}

func (r *tvShowRepo) GetByID(ctx context.Context, id int64) (*models.TVShow, error) {
	return r.lister.ByID(ctx, r.db, id)
}

func (r *tvShowRepo) GetPublished(ctx context.Context, id int64) (*models.TVShow, error) {
	return r.lister.One(ctx, r.db, NewFilter().Eq("id", id).Eq("status", models.StatusPublished), "id")
}

func (r *tvShowRepo) SetViews(ctx context.Context, id int64, views string) error {
	tag, err := r.db.Exec(ctx, `UPDATE tv_shows SET views = $2 WHERE id = $1`, id, views)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *tvShowRepo) List(ctx context.Context, f models.TVShowFilter, p models.Page) ([]*models.TVShow, int, error) {
	filter := NewFilter().
		EqUnlessAll("category", f.Category).
		Eq("featured", f.Featured).
		Eq("is_new", f.IsNew)
	order := "created_at DESC"
	if f.OnlyPublic {
		filter.Eq("status", models.StatusPublished)
		order = "upload_date DESC, created_at DESC"
	} else {
		filter.EqUnlessAll("status", f.Status)
	}
	filter.Search(f.Search, "title", "description", "tags")
	return r.lister.Page(ctx, r.db, filter, order, p)
}

func (r *tvShowRepo) Delete(ctx context.Context, id int64) error {
	return r.lister.Delete(ctx, r.db, id)
}

func (r *tvShowRepo) Stats(ctx context.Context) (*models.TVShowStats, error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'published'),
		       COUNT(*) FILTER (WHERE status = 'draft'),
		       COUNT(*) FILTER (WHERE featured),
		       COUNT(*) FILTER (WHERE is_new),
		       COALESCE(AVG(rating), 0)
		FROM tv_shows`

	var st models.TVShowStats
	if err := r.db.QueryRow(ctx, q).Scan(
		&st.Total, &st.Published, &st.Draft, &st.Featured, &st.New, &st.AvgRating,
	); err != nil {
		return nil, fmt.Errorf("tv show totals: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT category, COUNT(*) AS count
		FROM tv_shows GROUP BY category ORDER BY count DESC, category`)
	if err != nil {
		return nil, fmt.Errorf("tv show categories: %w", err)
	}
	st.CategoryBreakdown, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.CategoryCount])
	if err != nil {
		return nil, fmt.Errorf("tv show categories: %w", err)
	}
	return &st, nil
}
