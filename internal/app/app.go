package app

import (
	"context"
	"net/http"
	"time"

	"theinsight/internal/config"
	"theinsight/internal/db"
	"theinsight/internal/handlers"
	"theinsight/internal/limiter"
	"theinsight/internal/logger"
	"theinsight/internal/middleware"
	"theinsight/internal/repository"
	"theinsight/internal/routes"
	"theinsight/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// App: собранное приложение: роутер и функция освобождения ресурсов.
type App struct {
	Router  *mux.Router
	Handler http.Handler
	Close   func()
}

func InitApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg); err != nil {
			return nil, err
		}
	}

	conn, err := db.NewPostgresConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}
	closers := []func(){conn.Close}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	articleRepo := repository.NewArticleRepo(conn)
	videoRepo := repository.NewVideoRepo(conn)
	tvShowRepo := repository.NewTVShowRepo(conn)
	podcastRepo := repository.NewPodcastRepo(conn)
	commentRepo := repository.NewCommentRepo(conn)
	likeRepo := repository.NewLikeRepo(conn)
	dashboardRepo := repository.NewDashboardRepo(conn)

	// Сервисы
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL())
	articleSvc := services.NewArticleService(articleRepo)
	videoSvc := services.NewVideoService(videoRepo)
	tvShowSvc := services.NewTVShowService(tvShowRepo)
	podcastSvc := services.NewPodcastService(podcastRepo)
	commentSvc := services.NewCommentService(commentRepo, articleRepo)
	likeSvc := services.NewLikeService(likeRepo, articleRepo)
	dashboardSvc := services.NewDashboardService(dashboardRepo)
	searchSvc := services.NewSearchService(articleRepo, videoRepo, tvShowRepo, podcastRepo)

	// Лимитер публичных записей (комментарии, лайки)
	var writeLimit func(http.Handler) http.Handler
	if cfg.RedisAddr != "" {
		rdb, err := limiter.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Log.Warn("Redis недоступен, лимит запросов отключён", zap.Error(err))
		} else {
			closers = append(closers, func() { _ = rdb.Close() })
			writeLimit = middleware.RateLimit(limiter.New(rdb, cfg.RateLimitPerMin, time.Minute))
			logger.Log.Info("Лимит запросов включён", zap.Int("per_min", cfg.RateLimitPerMin))
		}
	}

	handlers.SetExposeErrors(!cfg.IsProd())

	router := mux.NewRouter()
	routes.InitRoutes(router, routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Articles:  handlers.NewArticleHandler(articleSvc),
		Videos:    handlers.NewVideoHandler(videoSvc),
		TVShows:   handlers.NewTVShowHandler(tvShowSvc),
		Podcasts:  handlers.NewPodcastHandler(podcastSvc),
		Comments:  handlers.NewCommentHandler(commentSvc),
		Likes:     handlers.NewLikeHandler(likeSvc),
		Dashboard: handlers.NewDashboardHandler(dashboardSvc),
		Search:    handlers.NewSearchHandler(searchSvc),
		Health:    handlers.NewHealthHandler(conn),
	}, routes.Options{JWTSecret: cfg.JWTSecret, WriteLimit: writeLimit})

	return &App{
		Router:  router,
		Handler: Wrap(router),
		Close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}

// Wrap навешивает общие middleware, которые должны срабатывать и для неизвестных маршрутов.
func Wrap(h http.Handler) http.Handler {
	return middleware.RequestID(middleware.Recoverer(middleware.Logging(h)))
}
