package services

import (
	"context"
	"strings"

	"theinsight/internal/logger"
	"theinsight/internal/models"
	"theinsight/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultCommentName  = "Anonymous"
	defaultCommentEmail = "anonymous@example.com"
)

// ClientInfo: данные о клиенте, сохраняемые вместе с комментарием.
type ClientInfo struct {
	IP        string
	UserAgent string
}

type CommentService interface {
	Create(ctx context.Context, articleID int64, req models.CommentRequest, client ClientInfo) (*models.PublicComment, error)
	List(ctx context.Context, articleID int64, p models.Page) (*models.PageResult[*models.PublicComment], error)
	All(ctx context.Context, articleID int64) ([]*models.PublicComment, error)
	Count(ctx context.Context, articleID int64) (int, error)
	Recent(ctx context.Context, limit int) ([]*models.RecentComment, error)
	Delete(ctx context.Context, id int64) error
}

type commentService struct {
	repo     repository.CommentRepo
	articles repository.ArticleRepo
}

func NewCommentService(repo repository.CommentRepo, articles repository.ArticleRepo) CommentService {
	return &commentService{repo: repo, articles: articles}
}

func (s *commentService) Create(ctx context.Context, articleID int64, req models.CommentRequest, client ClientInfo) (*models.PublicComment, error) {
	log := logger.WithCtx(ctx)

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return nil, invalid("content", "Comment content is required")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate(req); err != nil {
		return nil, err
	}

	article, err := s.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, mapRepoErr(err, "Article")
	}
	if !article.AllowComments {
		log.Info("Комментарии к статье закрыты", zap.Int64("article_id", articleID))
		return nil, ErrCommentsDisabled
	}
	if req.Name == "" {
		req.Name = defaultCommentName
	}
	if req.Email == "" {
		req.Email = defaultCommentEmail
	}

	created, err := s.repo.Create(ctx, &models.Comment{
		ArticleID:  articleID,
		Name:       req.Name,
		Email:      req.Email,
		Content:    req.Content,
		IsApproved: true,
		IPAddress:  client.IP,
		UserAgent:  client.UserAgent,
	})
	if err != nil {
		log.Error("Ошибка сохранения комментария (repo)", zap.Int64("article_id", articleID), zap.Error(err))
		return nil, err
	}

	log.Info("Комментарий добавлен", zap.Int64("id", created.ID), zap.Int64("article_id", articleID))
	pub := created.Public()
	return &pub, nil
}

func (s *commentService) List(ctx context.Context, articleID int64, p models.Page) (*models.PageResult[*models.PublicComment], error) {
	if err := ensureArticle(ctx, s.articles, articleID); err != nil {
		return nil, err
	}
	items, total, err := s.repo.ListByArticle(ctx, articleID, p)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения комментариев (repo)", zap.Error(err))
		return nil, err
	}
	return &models.PageResult[*models.PublicComment]{Items: items, Pagination: models.NewPagination(p, total)}, nil
}

func (s *commentService) All(ctx context.Context, articleID int64) ([]*models.PublicComment, error) {
	if err := ensureArticle(ctx, s.articles, articleID); err != nil {
		return nil, err
	}
	return s.repo.AllByArticle(ctx, articleID)
}

func (s *commentService) Count(ctx context.Context, articleID int64) (int, error) {
	if err := ensureArticle(ctx, s.articles, articleID); err != nil {
		return 0, err
	}
	return s.repo.CountByArticle(ctx, articleID)
}

func (s *commentService) Recent(ctx context.Context, limit int) ([]*models.RecentComment, error) {
	return s.repo.Recent(ctx, limit)
}

func (s *commentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "Comment")
	}
	logger.WithCtx(ctx).Info("Комментарий удалён", zap.Int64("id", id))
	return nil
}
