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

type TVShowService interface {
	Create(ctx context.Context, in models.TVShowInput) (*models.TVShow, error)
	// Update применяет patch поверх текущих значений выпуска и сохраняет результат.
	Update(ctx context.Context, id int64, patch func(*models.TVShowInput) error) (*models.TVShow, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.TVShow, error)
	GetPublic(ctx context.Context, id int64) (*models.TVShow, error)
	List(ctx context.Context, f models.TVShowFilter, p models.Page) (*models.PageResult[*models.TVShow], error)
	Stats(ctx context.Context) (*models.TVShowStats, error)
}

type tvShowService struct {
	repo repository.TVShowRepo
	now  func() time.Time
}

func NewTVShowService(repo repository.TVShowRepo) TVShowService {
	return &tvShowService{repo: repo, now: time.Now}
}

func (s *tvShowService) apply(show *models.TVShow, in models.TVShowInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate(in); err != nil {
		return err
	}
	show.Title = in.Title
	show.Description = strings.TrimSpace(in.Description)
	show.Duration = in.Duration
	show.Category = in.Category
	show.Section = in.Section
	show.SeasonID = in.SeasonID
	show.EpisodeNumber = in.EpisodeNumber
	show.Thumbnail = in.Thumbnail
	show.YoutubeURL = in.YoutubeURL
	show.Tags = in.Tags
	show.MetaDescription = in.MetaDescription
	show.Featured = in.Featured
	show.IsNew = in.IsNew
	show.Rating = in.Rating
	show.Status = in.Status
	if show.Status == "" {
		show.Status = models.StatusDraft
	}
	if in.UploadDate != nil {
		show.UploadDate = *in.UploadDate
	} else if show.UploadDate.IsZero() {
		show.UploadDate = s.now()
	}
	return nil
}

func (s *tvShowService) Create(ctx context.Context, in models.TVShowInput) (*models.TVShow, error) {
	log := logger.WithCtx(ctx)
	show := &models.TVShow{Views: "0"}
	if err := s.apply(show, in); err != nil {
		log.Warn("Валидация выпуска не пройдена", zap.Error(err))
		return nil, err
	}
	created, err := s.repo.Create(ctx, show)
	if err != nil {
		log.Error("Ошибка создания выпуска (repo)", zap.Error(err))
		return nil, err
	}
	log.Info("Выпуск ТВ-шоу создан", zap.Int64("id", created.ID))
	return created, nil
}

func (s *tvShowService) Update(ctx context.Context, id int64, patch func(*models.TVShowInput) error) (*models.TVShow, error) {
	show, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "TV show episode")
	}
	in := models.TVShowInputFrom(show)
	if err := patch(&in); err != nil {
		return nil, err
	}
	if err := s.apply(show, in); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, show)
	if err != nil {
		logger.WithCtx(ctx).Warn("Ошибка обновления выпуска (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, mapRepoErr(err, "TV show episode")
	}
	return updated, nil
}

func (s *tvShowService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "TV show episode")
	}
	logger.WithCtx(ctx).Info("Выпуск ТВ-шоу удалён", zap.Int64("id", id))
	return nil
}

func (s *tvShowService) GetByID(ctx context.Context, id int64) (*models.TVShow, error) {
	show, err := s.repo.GetByID(ctx, id)
	return show, mapRepoErr(err, "TV show episode")
}

// GetPublic засчитывает просмотр чтением и записью строкового счётчика.
// Операция не атомарна: параллельные запросы могут потерять инкремент.
func (s *tvShowService) GetPublic(ctx context.Context, id int64) (*models.TVShow, error) {
	show, err := s.repo.GetPublished(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "TV show episode")
	}
	next := IncrementCounter(show.Views)
	if err := s.repo.SetViews(ctx, id, next); err != nil {
		return nil, mapRepoErr(err, "TV show episode")
	}
	show.Views = next
	return show, nil
}

func (s *tvShowService) List(ctx context.Context, f models.TVShowFilter, p models.Page) (*models.PageResult[*models.TVShow], error) {
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения списка выпусков (repo)", zap.Error(err))
		return nil, err
	}
	return &models.PageResult[*models.TVShow]{Items: items, Pagination: models.NewPagination(p, total)}, nil
}

func (s *tvShowService) Stats(ctx context.Context) (*models.TVShowStats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка статистики ТВ-шоу", zap.Error(err))
		return nil, err
	}
	st.AvgRating = round1(st.AvgRating)
	return st, nil
}
