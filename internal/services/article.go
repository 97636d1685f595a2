package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"theinsight/internal/logger"
	"theinsight/internal/models"
	"theinsight/internal/repository"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

type ArticleService interface {
	Create(ctx context.Context, req models.ArticleRequest) (*models.Article, error)
	Update(ctx context.Context, id int64, req models.ArticleRequest) (*models.Article, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	// GetPublic отдаёт опубликованную статью и засчитывает просмотр.
	GetPublic(ctx context.Context, id int64) (*models.Article, error)
	List(ctx context.Context, f models.ArticleFilter, p models.Page) (*models.PageResult[*models.Article], error)
	Latest(ctx context.Context, f models.ArticleFilter, limit int) ([]*models.Article, error)
	SetMain(ctx context.Context, id int64, position string) (*models.Article, error)
	RemoveMain(ctx context.Context, id int64) (*models.Article, error)
	MainArticles(ctx context.Context) (*models.MainArticles, error)
	LatestExcludingMain(ctx context.Context, limit int) ([]*models.Article, error)
}

type articleService struct {
	repo   repository.ArticleRepo
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewArticleService(repo repository.ArticleRepo) ArticleService {
	p := bluemonday.UGCPolicy()
	p.AllowElements("img", "figure", "figcaption")
	p.AllowAttrs("src", "alt").OnElements("img")
	p.AllowAttrs("class").Globally()
	return &articleService{repo: repo, policy: p, now: time.Now}
}

func (s *articleService) build(req models.ArticleRequest) (*models.Article, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Author = strings.TrimSpace(req.Author)
	if err := validate(req); err != nil {
		return nil, err
	}

	a := &models.Article{
		Title:            req.Title,
		Subtitle:         strings.TrimSpace(req.Subtitle),
		Excerpt:          strings.TrimSpace(req.Excerpt),
		Content:          s.policy.Sanitize(req.Content),
		CategoryName:     req.CategoryName,
		Author:           req.Author,
		AuthorBio:        req.AuthorBio,
		PublishDate:      s.now(),
		ReadTime:         strings.TrimSpace(req.ReadTime),
		Tags:             req.Tags,
		FeaturedImage:    req.FeaturedImage,
		FeaturedImageAlt: req.FeaturedImageAlt,
		AdditionalImages: req.AdditionalImages,
		MetaDescription:  req.MetaDescription,
		Status:           req.Status,
		AllowComments:    true,
		Featured:         req.Featured,
		Trending:         req.Trending,
		EditorsPick:      req.EditorsPick,
	}
	if req.PublishDate != nil {
		a.PublishDate = *req.PublishDate
	}
	if a.Status == "" {
		a.Status = models.StatusDraft
	}
	if req.AllowComments != nil {
		a.AllowComments = *req.AllowComments
	}
	return a, nil
}

func (s *articleService) Create(ctx context.Context, req models.ArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Создание статьи", zap.String("title", strings.TrimSpace(req.Title)), zap.String("category", req.CategoryName))

	a, err := s.build(req)
	if err != nil {
		log.Warn("Валидация статьи не пройдена", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		log.Error("Ошибка создания статьи (repo)", zap.Error(err))
		return nil, err
	}

	log.Info("Статья создана", zap.Int64("id", created.ID), zap.String("status", created.Status))
	return created, nil
}

func (s *articleService) Update(ctx context.Context, id int64, req models.ArticleRequest) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	log.Info("Обновление статьи", zap.Int64("id", id))

	a, err := s.build(req)
	if err != nil {
		log.Warn("Валидация статьи не пройдена", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	a.ID = id
	if req.PublishDate == nil {
		a.PublishDate = time.Time{}
	}

	updated, err := s.repo.Update(ctx, a)
	if err != nil {
		log.Warn("Ошибка обновления статьи (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, mapRepoErr(err, "Article")
	}
	return updated, nil
}

func (s *articleService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.WithCtx(ctx).Warn("Ошибка удаления статьи", zap.Int64("id", id), zap.Error(err))
		return mapRepoErr(err, "Article")
	}
	logger.WithCtx(ctx).Info("Статья удалена", zap.Int64("id", id))
	return nil
}

func (s *articleService) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "Article")
	}
	return a, nil
}

func (s *articleService) GetPublic(ctx context.Context, id int64) (*models.Article, error) {
	a, err := s.repo.GetPublishedAndCountView(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "Article")
	}
	return a, nil
}

func (s *articleService) List(ctx context.Context, f models.ArticleFilter, p models.Page) (*models.PageResult[*models.Article], error) {
	logger.WithCtx(ctx).Debug("Получение списка статей",
		zap.Int("page", p.Number), zap.Int("limit", p.Limit),
		zap.String("category", f.Category), zap.Bool("public", f.OnlyPublic))

	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения списка статей (repo)", zap.Error(err))
		return nil, err
	}
	return &models.PageResult[*models.Article]{Items: items, Pagination: models.NewPagination(p, total)}, nil
}

func (s *articleService) Latest(ctx context.Context, f models.ArticleFilter, limit int) ([]*models.Article, error) {
	return s.repo.Latest(ctx, f, limit)
}

// SetMain назначает статью главной или второй главной. Снятие флага с
// предыдущего владельца и установка на новую статью идут одной транзакцией.
func (s *articleService) SetMain(ctx context.Context, id int64, position string) (*models.Article, error) {
	log := logger.WithCtx(ctx)
	if position != models.PositionMain && position != models.PositionSecond {
		return nil, ErrInvalidPosition
	}

	var out *models.Article
	err := s.repo.WithMainLock(ctx, func(tx repository.MainArticleTx) error {
		ok, err := tx.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("Article")
		}
		if err := tx.ClearPosition(ctx, position, id); err != nil {
			return err
		}
		out, err = tx.SetPosition(ctx, id, position)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Error("Ошибка назначения главной статьи", zap.Int64("id", id), zap.String("position", position), zap.Error(err))
		}
		return nil, mapRepoErr(err, "Article")
	}

	log.Info("Главная статья назначена", zap.Int64("id", id), zap.String("position", position))
	return out, nil
}

func (s *articleService) RemoveMain(ctx context.Context, id int64) (*models.Article, error) {
	a, err := s.repo.RemoveMain(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "Article")
	}
	logger.WithCtx(ctx).Info("Статья снята с главной", zap.Int64("id", id))
	return a, nil
}

func (s *articleService) MainArticles(ctx context.Context) (*models.MainArticles, error) {
	return s.repo.MainArticles(ctx)
}

func (s *articleService) LatestExcludingMain(ctx context.Context, limit int) ([]*models.Article, error) {
	return s.repo.Latest(ctx, models.ArticleFilter{OnlyPublic: true, ExcludeMain: true}, limit)
}
