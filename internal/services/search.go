package services

import (
	"context"
	"strings"

	"theinsight/internal/logger"
	"theinsight/internal/models"
	"theinsight/internal/repository"

	"go.uber.org/zap"
)

const searchLimitPerType = 5

// SearchService ищет по опубликованным материалам всех типов.
type SearchService struct {
	articles repository.ArticleRepo
	videos   repository.VideoRepo
	tvshows  repository.TVShowRepo
	podcasts repository.PodcastRepo
}

func NewSearchService(a repository.ArticleRepo, v repository.VideoRepo, t repository.TVShowRepo, p repository.PodcastRepo) *SearchService {
	return &SearchService{articles: a, videos: v, tvshows: t, podcasts: p}
}

func (s *SearchService) GlobalSearch(ctx context.Context, query string) (*models.SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalid("query", "Search query is required")
	}
	page := models.Page{Number: 1, Limit: searchLimitPerType}
	out := &models.SearchResults{Query: query}

	var err error
	if out.Articles, _, err = s.articles.List(ctx, models.ArticleFilter{OnlyPublic: true, Search: query}, page); err != nil {
		return nil, err
	}
	if out.Videos, _, err = s.videos.List(ctx, models.VideoFilter{OnlyPublic: true, Search: query}, page); err != nil {
		return nil, err
	}
	if out.TVShows, _, err = s.tvshows.List(ctx, models.TVShowFilter{OnlyPublic: true, Search: query}, page); err != nil {
		return nil, err
	}
	if out.Podcasts, _, err = s.podcasts.List(ctx, models.PodcastFilter{OnlyPublic: true, Search: query}, page); err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Debug("Глобальный поиск",
		zap.String("query", query),
		zap.Int("articles", len(out.Articles)),
		zap.Int("videos", len(out.Videos)),
		zap.Int("tvshows", len(out.TVShows)),
		zap.Int("podcasts", len(out.Podcasts)),
	)
	return out, nil
}
