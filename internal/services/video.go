package services

import (
	"context"
	"strings"
	"time"

	"theinsight/internal/logger"
	"theinsight/internal/models"
	"theinsight/internal/repository"

	"go.uber.org/zap"
)

type VideoService interface {
	Create(ctx context.Context, req models.VideoRequest) (*models.Video, error)
	Update(ctx context.Context, id int64, req models.VideoRequest) (*models.Video, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	GetPublic(ctx context.Context, id int64) (*models.Video, error)
	List(ctx context.Context, f models.VideoFilter, p models.Page) (*models.PageResult[*models.Video], error)
	Latest(ctx context.Context, limit int) ([]*models.Video, error)
}

type videoService struct {
	repo repository.VideoRepo
	now  func() time.Time
}

func NewVideoService(repo repository.VideoRepo) VideoService {
	return &videoService{repo: repo, now: time.Now}
}

func (s *videoService) build(req models.VideoRequest) (*models.Video, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validate(req); err != nil {
		return nil, err
	}
	v := &models.Video{
		Title:           req.Title,
		Description:     strings.TrimSpace(req.Description),
		Duration:        req.Duration,
		Category:        req.Category,
		Section:         req.Section,
		Thumbnail:       req.Thumbnail,
		YoutubeURL:      req.YoutubeURL,
		Tags:            req.Tags,
		MetaDescription: req.MetaDescription,
		IsNew:           req.IsNew,
		Rating:          req.Rating,
		Status:          models.StatusPublished,
		UploadDate:      s.now(),
	}
	if v.Section == "" {
		v.Section = "Magazine"
	}
	if req.UploadDate != nil {
		v.UploadDate = *req.UploadDate
	}
	return v, nil
}

func (s *videoService) Create(ctx context.Context, req models.VideoRequest) (*models.Video, error) {
	log := logger.WithCtx(ctx)
	v, err := s.build(req)
	if err != nil {
		log.Warn("Валидация видео не пройдена", zap.Error(err))
		return nil, err
	}
	created, err := s.repo.Create(ctx, v)
	if err != nil {
		log.Error("Ошибка создания видео (repo)", zap.Error(err))
		return nil, err
	}
	log.Info("Видео создано", zap.Int64("id", created.ID))
	return created, nil
}

func (s *videoService) Update(ctx context.Context, id int64, req models.VideoRequest) (*models.Video, error) {
	v, err := s.build(req)
	if err != nil {
		return nil, err
	}
	v.ID = id
	if req.UploadDate == nil {
		v.UploadDate = time.Time{}
	}
	updated, err := s.repo.Update(ctx, v)
	if err != nil {
		logger.WithCtx(ctx).Warn("Ошибка обновления видео (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, mapRepoErr(err, "Video")
	}
	return updated, nil
}

func (s *videoService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "Video")
	}
	logger.WithCtx(ctx).Info("Видео удалено", zap.Int64("id", id))
	return nil
}

func (s *videoService) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	v, err := s.repo.GetByID(ctx, id)
	return v, mapRepoErr(err, "Video")
}

func (s *videoService) GetPublic(ctx context.Context, id int64) (*models.Video, error) {
	v, err := s.repo.GetPublishedAndCountView(ctx, id)
	return v, mapRepoErr(err, "Video")
}

func (s *videoService) List(ctx context.Context, f models.VideoFilter, p models.Page) (*models.PageResult[*models.Video], error) {
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения списка видео (repo)", zap.Error(err))
		return nil, err
	}
	return &models.PageResult[*models.Video]{Items: items, Pagination: models.NewPagination(p, total)}, nil
}

func (s *videoService) Latest(ctx context.Context, limit int) ([]*models.Video, error) {
	return s.repo.Latest(ctx, limit)
}
