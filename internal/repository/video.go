package repository

import (
	"context"

	"theinsight/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const videoColumns = `id, title, description, duration, category, section, thumbnail, youtube_url, tags,
	meta_description, is_new, rating, status, upload_date, views, created_at, updated_at`

type VideoRepo interface {
	Create(ctx context.Context, v *models.Video) (*models.Video, error)
	Update(ctx context.Context, v *models.Video) (*models.Video, error)
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	GetPublishedAndCountView(ctx context.Context, id int64) (*models.Video, error)
	List(ctx context.Context, f models.VideoFilter, p models.Page) ([]*models.Video, int, error)
	Latest(ctx context.Context, limit int) ([]*models.Video, error)
	Delete(ctx context.Context, id int64) error
}

type videoRepo struct {
	db     *pgxpool.Pool
	lister Lister[models.Video]
}

func NewVideoRepo(db *pgxpool.Pool) VideoRepo {
	return &videoRepo{db: db, lister: NewLister[models.Video]("videos", videoColumns)}
}

func (r *videoRepo) Create(ctx context.Context, v *models.Video) (*models.Video, error) {
	const q = `
		INSERT INTO videos (title, description, duration, category, section, thumbnail, youtube_url,
			tags, meta_description, is_new, rating, status, upload_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING ` + videoColumns
	return r.lister.Row(ctx, r.db, q,
		v.Title, v.Description, v.Duration, v.Category, v.Section, v.Thumbnail, v.YoutubeURL,
		v.Tags, v.MetaDescription, v.IsNew, v.Rating, v.Status, v.UploadDate,
	)
}

func (r *videoRepo) Update(ctx context.Context, v *models.Video) (*models.Video, error) {
	const q = `
		UPDATE videos
		SET title=$2, description=$3, duration=$4, category=$5, section=$6, thumbnail=$7, youtube_url=$8,
		    tags=$9, meta_description=$10, is_new=$11, rating=$12, status=$13, upload_date=COALESCE($14, upload_date), updated_at=NOW()
		WHERE id=$1
		RETURNING ` + videoColumns
	return r.lister.Row(ctx, r.db, q, v.ID,
		v.Title, v.Description, v.Duration, v.Category, v.Section, v.Thumbnail, v.YoutubeURL,
		v.Tags, v.MetaDescription, v.IsNew, v.Rating, v.Status, timeOrNil(v.UploadDate),
	)
}

func (r *videoRepo) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	return r.lister.ByID(ctx, r.db, id)
}

func (r *videoRepo) GetPublishedAndCountView(ctx context.Context, id int64) (*models.Video, error) {
	const q = `
		UPDATE videos SET views = views + 1
		WHERE id = $1 AND status = 'published'
		RETURNING ` + videoColumns
	return r.lister.Row(ctx, r.db, q, id)
}

func (r *videoRepo) List(ctx context.Context, f models.VideoFilter, p models.Page) ([]*models.Video, int, error) {
	filter := NewFilter().Eq("category", f.Category)
	order := "created_at DESC"
	if f.OnlyPublic {
		filter.Eq("status", models.StatusPublished)
		order = "upload_date DESC, created_at DESC"
	}
	filter.Search(f.Search, "title", "description", "tags")
	return r.lister.Page(ctx, r.db, filter, order, p)
}

func (r *videoRepo) Latest(ctx context.Context, limit int) ([]*models.Video, error) {
	filter := NewFilter().Eq("status", models.StatusPublished)
	return r.lister.All(ctx, r.db, filter, "upload_date DESC, created_at DESC", limit)
}

func (r *videoRepo) Delete(ctx context.Context, id int64) error {
	return r.lister.Delete(ctx, r.db, id)
}
