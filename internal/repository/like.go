package repository

import (
	"context"
	"errors"

	"theinsight/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LikeRepo interface {
	// Increment создаёт запись при первом лайке и возвращает новое значение.
	Increment(ctx context.Context, articleID int64) (int, error)
	// Decrement уменьшает счётчик не ниже нуля; без записи возвращает 0 и ничего не создаёт.
	Decrement(ctx context.Context, articleID int64) (count int, changed bool, err error)
	Count(ctx context.Context, articleID int64) (int, error)
	MostLiked(ctx context.Context, limit int) ([]*models.MostLikedArticle, error)
}

type likeRepo struct{ db *pgxpool.Pool }

func NewLikeRepo(db *pgxpool.Pool) LikeRepo { return &likeRepo{db: db} }

func (r *likeRepo) Increment(ctx context.Context, articleID int64) (int, error) {
	const q = `
		INSERT INTO likes (article_id, count) VALUES ($1, 1)
		ON CONFLICT (article_id) DO UPDATE
		SET count = likes.count + 1, updated_at = NOW()
		RETURNING count`
	var n int
	err := r.db.QueryRow(ctx, q, articleID).Scan(&n)
	return n, err
}

func (r *likeRepo) Decrement(ctx context.Context, articleID int64) (int, bool, error) {
	const q = `
		WITH prev AS (SELECT count FROM likes WHERE article_id = $1 FOR UPDATE)
		UPDATE likes l
		SET count = GREATEST(l.count - 1, 0), updated_at = NOW()
		FROM prev
		WHERE l.article_id = $1
		RETURNING l.count, prev.count > 0`
	var (
		n       int
		changed bool
	)
	err := r.db.QueryRow(ctx, q, articleID).Scan(&n, &changed)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	return n, changed, err
}

func (r *likeRepo) Count(ctx context.Context, articleID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count FROM likes WHERE article_id = $1`, articleID).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

func (r *likeRepo) MostLiked(ctx context.Context, limit int) ([]*models.MostLikedArticle, error) {
	const q = `
		SELECT l.article_id, l.count AS like_count, a.title, a.excerpt, a.featured_image,
		       a.category_name, a.author, a.publish_date
		FROM likes l
		JOIN articles a ON a.id = l.article_id AND a.status = 'published'
		WHERE l.count > 0
		ORDER BY l.count DESC, l.article_id
		LIMIT $1`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.MostLikedArticle])
}
