package repository

import (
	"context"
	"errors"
	"time"

	"theinsight/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const articleColumns = `id, title, subtitle, excerpt, content, category_name, author, author_bio,
	publish_date, read_time, tags, featured_image, featured_image_alt, additional_images,
	meta_description, status, allow_comments, featured, trending, editors_pick,
	is_main_article, is_second_main_article, main_article_position, views, created_at, updated_at`

// mainArticleLockKey: ключ advisory-блокировки, сериализующей смену главных статей.
const mainArticleLockKey int64 = 0x6d61696e

type ArticleRepo interface {
	Create(ctx context.Context, a *models.Article) (*models.Article, error)
	Update(ctx context.Context, a *models.Article) (*models.Article, error)
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	// GetPublishedAndCountView атомарно увеличивает views опубликованной статьи.
	GetPublishedAndCountView(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context, f models.ArticleFilter, p models.Page) ([]*models.Article, int, error)
	Latest(ctx context.Context, f models.ArticleFilter, limit int) ([]*models.Article, error)
	MainArticles(ctx context.Context) (*models.MainArticles, error)
	RemoveMain(ctx context.Context, id int64) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	WithMainLock(ctx context.Context, fn func(tx MainArticleTx) error) error
}

// MainArticleTx: операции над главными статьями внутри заблокированной транзакции.
type MainArticleTx interface {
	Exists(ctx context.Context, id int64) (bool, error)
	ClearPosition(ctx context.Context, position string, exceptID int64) error
	SetPosition(ctx context.Context, id int64, position string) (*models.Article, error)
}

type articleRepo struct {
	db     *pgxpool.Pool
	lister Lister[models.Article]
}

func NewArticleRepo(db *pgxpool.Pool) ArticleRepo {
	return &articleRepo{db: db, lister: NewLister[models.Article]("articles", articleColumns)}
}

func (r *articleRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		INSERT INTO articles (title, subtitle, excerpt, content, category_name, author, author_bio,
			publish_date, read_time, tags, featured_image, featured_image_alt, additional_images,
			meta_description, status, allow_comments, featured, trending, editors_pick)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13::jsonb,$14,$15,$16,$17,$18,$19)
		RETURNING ` + articleColumns

	return r.lister.Row(ctx, r.db, q,
		a.Title, a.Subtitle, a.Excerpt, a.Content, a.CategoryName, a.Author, a.AuthorBio,
		a.PublishDate, a.ReadTime, a.Tags, a.FeaturedImage, a.FeaturedImageAlt, imagesOrEmpty(a.AdditionalImages),
		a.MetaDescription, a.Status, a.AllowComments, a.Featured, a.Trending, a.EditorsPick,
	)
}

// Update заменяет редактируемые поля; флаги главной статьи и views не трогает.
// Нулевой PublishDate оставляет дату публикации прежней.
func (r *articleRepo) Update(ctx context.Context, a *models.Article) (*models.Article, error) {
	const q = `
		UPDATE articles
		SET title=$2, subtitle=$3, excerpt=$4, content=$5, category_name=$6, author=$7, author_bio=$8,
		    publish_date=COALESCE($9, publish_date), read_time=$10, tags=$11, featured_image=$12, featured_image_alt=$13,
		    additional_images=$14::jsonb, meta_description=$15, status=$16, allow_comments=$17,
		    featured=$18, trending=$19, editors_pick=$20, updated_at=NOW()
		WHERE id=$1
		RETURNING ` + articleColumns

	return r.lister.Row(ctx, r.db, q, a.ID,
		a.Title, a.Subtitle, a.Excerpt, a.Content, a.CategoryName, a.Author, a.AuthorBio,
		timeOrNil(a.PublishDate), a.ReadTime, a.Tags, a.FeaturedImage, a.FeaturedImageAlt, imagesOrEmpty(a.AdditionalImages),
		a.MetaDescription, a.Status, a.AllowComments, a.Featured, a.Trending, a.EditorsPick,
	)
}

func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	return r.lister.ByID(ctx, r.db, id)
}

func (r *articleRepo) GetPublishedAndCountView(ctx context.Context, id int64) (*models.Article, error) {
	const q = `
		UPDATE articles SET views = views + 1
		WHERE id = $1 AND status = 'published'
		RETURNING ` + articleColumns
	return r.lister.Row(ctx, r.db, q, id)
}

func (r *articleRepo) List(ctx context.Context, f models.ArticleFilter, p models.Page) ([]*models.Article, int, error) {
	return r.lister.Page(ctx, r.db, articleFilter(f), articleOrder(f), p)
}

func (r *articleRepo) Latest(ctx context.Context, f models.ArticleFilter, limit int) ([]*models.Article, error) {
	return r.lister.All(ctx, r.db, articleFilter(f), articleOrder(f), limit)
}

func (r *articleRepo) MainArticles(ctx context.Context) (*models.MainArticles, error) {
	out := &models.MainArticles{}
	published := func() *Filter { return NewFilter().Eq("status", models.StatusPublished) }

	main, err := r.lister.One(ctx, r.db, published().Raw("is_main_article"), "updated_at DESC")
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	out.MainArticle = main

	second, err := r.lister.One(ctx, r.db, published().Raw("is_second_main_article"), "updated_at DESC")
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	out.SecondMainArticle = second
	return out, nil
}

func (r *articleRepo) RemoveMain(ctx context.Context, id int64) (*models.Article, error) {
	const q = `
		UPDATE articles
		SET is_main_article = FALSE, is_second_main_article = FALSE, main_article_position = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + articleColumns
	return r.lister.Row(ctx, r.db, q, id)
}

func (r *articleRepo) Delete(ctx context.Context, id int64) error {
	return r.lister.Delete(ctx, r.db, id)
}

func (r *articleRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return r.lister.Exists(ctx, r.db, id)
}

// WithMainLock выполняет fn в транзакции под pg_advisory_xact_lock:
// параллельные назначения главной статьи выполняются строго по очереди.
func (r *articleRepo) WithMainLock(ctx context.Context, fn func(tx MainArticleTx) error) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", mainArticleLockKey); err != nil {
			return err
		}
		return fn(&articleTx{tx: tx, lister: r.lister})
	})
}

type articleTx struct {
	tx     pgx.Tx
	lister Lister[models.Article]
}

func (t *articleTx) Exists(ctx context.Context, id int64) (bool, error) {
	return t.lister.Exists(ctx, t.tx, id)
}

func (t *articleTx) ClearPosition(ctx context.Context, position string, exceptID int64) error {
	flag := "is_main_article"
	if position == models.PositionSecond {
		flag = "is_second_main_article"
	}
	_, err := t.tx.Exec(ctx, `
		UPDATE articles
		SET `+flag+` = FALSE, main_article_position = NULL, updated_at = NOW()
		WHERE `+flag+` AND id <> $1`, exceptID)
	return err
}

func (t *articleTx) SetPosition(ctx context.Context, id int64, position string) (*models.Article, error) {
	const q = `
		UPDATE articles
		SET is_main_article = ($2 = 'main'),
		    is_second_main_article = ($2 = 'second'),
		    main_article_position = $2,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING ` + articleColumns
	return t.lister.Row(ctx, t.tx, q, id, position)
}

func articleFilter(f models.ArticleFilter) *Filter {
	filter := NewFilter()
	if f.OnlyPublic {
		filter.Eq("status", models.StatusPublished)
	} else {
		filter.Eq("status", f.Status)
	}
	filter.Eq("category_name", f.Category).
		Eq("featured", f.Featured).
		Eq("trending", f.Trending).
		Eq("editors_pick", f.EditorsPick)
	if f.NoEditorial {
		filter.Raw("NOT featured AND NOT trending AND NOT editors_pick")
	}
	if f.ExcludeMain {
		filter.Raw("NOT is_main_article AND NOT is_second_main_article")
	}
	return filter.Search(f.Search, "title", "excerpt", "author")
}

func articleOrder(f models.ArticleFilter) string {
	if f.OnlyPublic {
		return "publish_date DESC, created_at DESC"
	}
	return "created_at DESC"
}

// timeOrNil превращает нулевое время в NULL для COALESCE.
func timeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func imagesOrEmpty(images []models.ArticleImage) []models.ArticleImage {
	if images == nil {
		return []models.ArticleImage{}
	}
	return images
}
