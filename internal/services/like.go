package services

import (
	"context"

	"theinsight/internal/logger"
	"theinsight/internal/models"
	"theinsight/internal/repository"

	"go.uber.org/zap"
)

type LikeService interface {
	Increment(ctx context.Context, articleID int64) (int, error)
	// Decrement возвращает новое значение и признак того, что лайк действительно снят.
	Decrement(ctx context.Context, articleID int64) (int, bool, error)
	Count(ctx context.Context, articleID int64) (int, error)
	MostLiked(ctx context.Context, limit int) ([]*models.MostLikedArticle, error)
}

type likeService struct {
	repo     repository.LikeRepo
	articles repository.ArticleRepo
}

func NewLikeService(repo repository.LikeRepo, articles repository.ArticleRepo) LikeService {
	return &likeService{repo: repo, articles: articles}
}

// ensureArticle возвращает NotFoundError, если статьи нет.
func ensureArticle(ctx context.Context, articles repository.ArticleRepo, articleID int64) error {
	ok, err := articles.Exists(ctx, articleID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("Article")
	}
	return nil
}

func (s *likeService) Increment(ctx context.Context, articleID int64) (int, error) {
	if err := ensureArticle(ctx, s.articles, articleID); err != nil {
		return 0, err
	}
	n, err := s.repo.Increment(ctx, articleID)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка увеличения лайков", zap.Int64("article_id", articleID), zap.Error(err))
		return 0, err
	}
	return n, nil
}

func (s *likeService) Decrement(ctx context.Context, articleID int64) (int, bool, error) {
	if err := ensureArticle(ctx, s.articles, articleID); err != nil {
		return 0, false, err
	}
	n, changed, err := s.repo.Decrement(ctx, articleID)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка уменьшения лайков", zap.Int64("article_id", articleID), zap.Error(err))
		return 0, false, err
	}
	return n, changed, nil
}

func (s *likeService) Count(ctx context.Context, articleID int64) (int, error) {
	if err := ensureArticle(ctx, s.articles, articleID); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, articleID)
}

func (s *likeService) MostLiked(ctx context.Context, limit int) ([]*models.MostLikedArticle, error) {
	return s.repo.MostLiked(ctx, limit)
}
