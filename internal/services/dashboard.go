package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"theinsight/internal/logger"
	"theinsight/internal/models"
	"theinsight/internal/repository"

	"go.uber.org/zap"
)

const statsWindow = 30 * 24 * time.Hour

type DashboardService interface {
	Stats(ctx context.Context) ([]models.StatCard, error)
	RecentArticles(ctx context.Context, limit int) ([]models.RecentArticle, error)
	Analytics(ctx context.Context) (*models.Analytics, error)
}

type dashboardService struct {
	repo repository.DashboardRepo
	now  func() time.Time
}

func NewDashboardService(repo repository.DashboardRepo) DashboardService {
	return &dashboardService{repo: repo, now: time.Now}
}

func (s *dashboardService) Stats(ctx context.Context) ([]models.StatCard, error) {
	t, err := s.repo.Totals(ctx, s.now().Add(-statsWindow))
	if err != nil {
		logger.WithCtx(ctx).Error("Ошибка подсчёта статистики дашборда", zap.Error(err))
		return nil, err
	}

	card := func(title string, value, change int64, icon, color string) models.StatCard {
		return models.StatCard{
			Title:      title,
			Value:      FormatNumber(value),
			Change:     "+" + FormatNumber(change),
			ChangeType: "increase",
			Icon:       icon,
			Color:      color,
		}
	}
	return []models.StatCard{
		card("Total Articles", int64(t.Articles), int64(t.NewArticles), "BookOpen", "blue"),
		card("Video Content", int64(t.Videos), int64(t.NewVideos), "Tv", "red"),
		card("Podcast Episodes", int64(t.Podcasts), int64(t.NewPodcasts), "Mic", "green"),
		card("Total Views", t.TotalViews, t.RecentViews, "Eye", "purple"),
	}, nil
}

// RecentArticles отдаёт сначала главные статьи, затем свежие обычные.
func (s *dashboardService) RecentArticles(ctx context.Context, limit int) ([]models.RecentArticle, error) {
	mains, err := s.repo.MainArticles(ctx, limit)
	if err != nil {
		return nil, err
	}
	list := mains
	if rest := limit - len(mains); rest > 0 {
		latest, err := s.repo.LatestNonMain(ctx, rest)
		if err != nil {
			return nil, err
		}
		list = append(list, latest...)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })

	out := make([]models.RecentArticle, 0, len(list))
	for _, a := range list {
		date := a.CreatedAt
		if a.PublishDate != nil {
			date = *a.PublishDate
		}
		out = append(out, models.RecentArticle{
			ID:           a.ID,
			Title:        a.Title,
			Status:       statusLabel(a.Status),
			Views:        a.Views,
			Date:         date.Format("2006-01-02"),
			Category:     a.CategoryName,
			IsMain:       a.IsMainArticle || a.IsSecondMainArticle,
			MainPosition: a.MainArticlePosition,
		})
	}
	return out, nil
}

func statusLabel(status string) string {
	switch status {
	case models.StatusPublished:
		return "Published"
	case models.StatusReview:
		return "Review"
	case models.StatusDraft:
		return "Draft"
	default:
		if status == "" {
			return status
		}
		return strings.ToUpper(status[:1]) + status[1:]
	}
}

func (s *dashboardService) Analytics(ctx context.Context) (*models.Analytics, error) {
	log := logger.WithCtx(ctx)

	category, err := s.repo.MostPopularCategory(ctx)
	if err != nil {
		log.Error("Ошибка аналитики: рубрика", zap.Error(err))
		return nil, err
	}
	readTimes, err := s.repo.PublishedReadTimes(ctx)
	if err != nil {
		log.Error("Ошибка аналитики: время чтения", zap.Error(err))
		return nil, err
	}
	t, err := s.repo.Totals(ctx, s.now().Add(-statsWindow))
	if err != nil {
		log.Error("Ошибка аналитики: счётчики", zap.Error(err))
		return nil, err
	}

	out := &models.Analytics{
		MostPopularCategory: "N/A",
		AvgReadTime:         "N/A",
		EngagementRate:      "0%",
		NewSubscribers:      fmt.Sprintf("+%d", t.NewArticles),
	}
	if category != "" {
		out.MostPopularCategory = category
	}

	var sum float64
	var n int
	for _, rt := range readTimes {
		if v, ok := ParseReadTime(rt); ok {
			sum += v
			n++
		}
	}
	if n > 0 {
		out.AvgReadTime = fmt.Sprintf("%.1f minutes", sum/float64(n))
	}
	if t.Published > 0 {
		out.EngagementRate = fmt.Sprintf("%.1f%%", float64(t.PublishedWithComments)*100/float64(t.Published))
	}
	return out, nil
}
