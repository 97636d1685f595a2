package services

import (
	"context"
	"math"
	"strings"
	"time"

	"theinsight/internal/logger"
	"theinsight/internal/models"
	"theinsight/internal/repository"

	"go.uber.org/zap"
)

type PodcastService interface {
	Create(ctx context.Context, in models.PodcastInput) (*models.Podcast, error)
	Update(ctx context.Context, id int64, patch func(*models.PodcastInput) error) (*models.Podcast, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Podcast, error)
	// GetPublic отдаёт опубликованный выпуск и атомарно увеличивает plays.
	GetPublic(ctx context.Context, id int64) (*models.Podcast, error)
	List(ctx context.Context, f models.PodcastFilter, p models.Page) (*models.PageResult[*models.Podcast], error)
	Stats(ctx context.Context) (*models.PodcastStats, error)
}

type podcastService struct {
	repo repository.PodcastRepo
	now  func() time.Time
}

func NewPodcastService(repo repository.PodcastRepo) PodcastService {
	return &podcastService{repo: repo, now: time.Now}
}

func (s *podcastService) apply(p *models.Podcast, in models.PodcastInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate(in); err != nil {
		return err
	}
	p.Title = in.Title
	p.Description = strings.TrimSpace(in.Description)
	p.Duration = in.Duration
	p.GuestID = in.GuestID
	p.GuestName = strings.TrimSpace(in.GuestName)
	p.SeriesID = in.SeriesID
	p.EpisodeNumber = in.EpisodeNumber
	p.Image = in.Image
	p.AudioURL = in.AudioURL
	p.YoutubeURL = in.YoutubeURL
	p.SpotifyURL = in.SpotifyURL
	p.AppleURL = in.AppleURL
	p.GoogleURL = in.GoogleURL
	p.Transcript = in.Transcript
	p.Tags = in.Tags
	p.MetaDescription = in.MetaDescription
	p.Featured = in.Featured
	p.Status = in.Status
	if p.Status == "" {
		p.Status = models.StatusDraft
	}
	p.Downloads = in.Downloads
	if p.Downloads == "" {
		p.Downloads = "0"
	}
	p.Rating = in.Rating
	if in.PublishDate != nil {
		p.PublishDate = *in.PublishDate
	} else if p.PublishDate.IsZero() {
		p.PublishDate = s.now()
	}
	return nil
}

func (s *podcastService) Create(ctx context.Context, in models.PodcastInput) (*models.Podcast, error) {
	log := logger.WithCtx(ctx)
	p := &models.Podcast{Plays: "0"}
	if err := s.apply(p, in); err != nil {
		log.Warn("Валидация подкаста не пройдена", zap.Error(err))
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("Ошибка создания подкаста (repo)", zap.Error(err))
		return nil, err
	}
	log.Info("Подкаст создан", zap.Int64("id", created.ID))
	return created, nil
}

func (s *podcastService) Update(ctx context.Context, id int64, patch func(*models.PodcastInput) error) (*models.Podcast, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "Podcast episode")
	}
	in := models.PodcastInputFrom(p)
	if err := patch(&in); err != nil {
		return nil, err
	}
	if err := s.apply(p, in); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		logger.WithCtx(ctx).Warn("Ошибка обновления подкаста (repo)", zap.Int64("id", id), zap.Error(err))
		return nil, mapRepoErr(err, "Podcast episode")
	}
	return updated, nil
}

func (s *podcastService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err, "Podcast episode")
	}
	logger.WithCtx(ctx).Info("Подкаст удалён", zap.Int64("id", id))
	return nil
}

func (s *podcastService) GetByID(ctx context.Context, id int64) (*models.Podcast, error) {
	p, err := s.repo.GetByID(ctx, id)
	return p, mapRepoErr(err, "Podcast episode")
}

func (s *podcastService) GetPublic(ctx context.Context, id int64) (*models.Podcast, error) {
	p, err := s.repo.GetPublishedAndCountPlay(ctx, id)
	return p, mapRepoErr(err, "Podcast episode")
}

func (s *podcastService) List(ctx context.Context, f models.PodcastFilter, p models.Page) (*models.PageResult[*models.Podcast], error) {
	items, total, err := s.repo.List(ctx, f, p)
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка получения списка подкастов (repo)", zap.Error(err))
		return nil, err
	}
	return &models.PageResult[*models.Podcast]{Items: items, Pagination: models.NewPagination(p, total)}, nil
}

func (s *podcastService) Stats(ctx context.Context) (*models.PodcastStats, error) {
	log := logger.WithCtx(ctx)
	st, err := s.repo.Stats(ctx)
	if err != nil {
		log.Error("Ошибка статистики подкастов", zap.Error(err))
		return nil, err
	}
	plays, downloads, err := s.repo.Counters(ctx)
	if err != nil {
		log.Error("Ошибка чтения счётчиков подкастов", zap.Error(err))
		return nil, err
	}
	for _, v := range plays {
		st.TotalPlays += ParseCount(v)
	}
	for _, v := range downloads {
		st.TotalDownloads += ParseCount(v)
	}
	st.AvgRating = round1(st.AvgRating)
	return st, nil
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }
