package repository

import (
	"context"

	"theinsight/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	commentColumns       = `id, article_id, name, email, content, is_approved, ip_address, user_agent, created_at, updated_at`
	publicCommentColumns = `id, article_id, name, content, is_approved, created_at, updated_at`
)

type CommentRepo interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID int64, p models.Page) ([]*models.PublicComment, int, error)
	AllByArticle(ctx context.Context, articleID int64) ([]*models.PublicComment, error)
	CountByArticle(ctx context.Context, articleID int64) (int, error)
	Recent(ctx context.Context, limit int) ([]*models.RecentComment, error)
	Delete(ctx context.Context, id int64) error
}

type commentRepo struct {
	db     *pgxpool.Pool
	full   Lister[models.Comment]
	public Lister[models.PublicComment]
}

func NewCommentRepo(db *pgxpool.Pool) CommentRepo {
	return &commentRepo{
		db:     db,
		full:   NewLister[models.Comment]("comments", commentColumns),
		public: NewLister[models.PublicComment]("comments", publicCommentColumns),
	}
}

func (r *commentRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	const q = `
		INSERT INTO comments (article_id, name, email, content, is_approved, ip_address, user_agent)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING ` + commentColumns
	return r.full.Row(ctx, r.db, q, c.ArticleID, c.Name, c.Email, c.Content, c.IsApproved, c.IPAddress, c.UserAgent)
}

func approvedFor(articleID int64) *Filter {
	return NewFilter().Eq("article_id", articleID).Raw("is_approved")
}

func (r *commentRepo) ListByArticle(ctx context.Context, articleID int64, p models.Page) ([]*models.PublicComment, int, error) {
	return r.public.Page(ctx, r.db, approvedFor(articleID), "created_at DESC", p)
}

func (r *commentRepo) AllByArticle(ctx context.Context, articleID int64) ([]*models.PublicComment, error) {
	return r.public.All(ctx, r.db, approvedFor(articleID), "created_at DESC", 0)
}

func (r *commentRepo) CountByArticle(ctx context.Context, articleID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE article_id = $1 AND is_approved`, articleID).Scan(&n)
	return n, err
}

func (r *commentRepo) Recent(ctx context.Context, limit int) ([]*models.RecentComment, error) {
	const q = `
		SELECT c.id, c.article_id, a.title AS article_title, c.name, c.email, c.content,
		       c.is_approved, c.created_at, c.updated_at
		FROM comments c
		LEFT JOIN articles a ON a.id = c.article_id
		ORDER BY c.created_at DESC
		LIMIT $1`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[models.RecentComment])
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	return r.full.Delete(ctx, r.db, id)
}
