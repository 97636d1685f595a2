package routes

import (
	"net/http"

	"theinsight/internal/handlers"
	"theinsight/internal/middleware"
	"theinsight/internal/models"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Articles  *handlers.ArticleHandler
	Videos    *handlers.VideoHandler
	TVShows   *handlers.TVShowHandler
	Podcasts  *handlers.PodcastHandler
	Comments  *handlers.CommentHandler
	Likes     *handlers.LikeHandler
	Dashboard *handlers.DashboardHandler
	Search    *handlers.SearchHandler
	Health    *handlers.HealthHandler
}

type Options struct {
	JWTSecret string
	// WriteLimit оборачивает публичные POST комментариев и лайков; nil отключает лимит.
	WriteLimit func(http.Handler) http.Handler
}

func with(h http.HandlerFunc, mws ...func(http.Handler) http.Handler) http.Handler {
	var out http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

func InitRoutes(router *mux.Router, h Handlers, opts Options) {
	router.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	writeLimit := opts.WriteLimit
	if writeLimit == nil {
		writeLimit = func(next http.Handler) http.Handler { return next }
	}

	jwt := middleware.JWTAuth(opts.JWTSecret)
	adminOnly := middleware.OnlyRole(models.RoleAdmin)
	staff := middleware.AnyRole(models.RoleAdmin, models.RoleEditor)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)

	// --- Публичные маршруты ---
	public := api.PathPrefix("/public").Subrouter()
	public.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	public.HandleFunc("/search", h.Search.GlobalSearch).Methods(http.MethodGet)

	public.HandleFunc("/articles", h.Articles.PublicList).Methods(http.MethodGet)
	public.HandleFunc("/articles/editors-pick", h.Articles.PublicEditorsPick).Methods(http.MethodGet)
	public.HandleFunc("/articles/featured", h.Articles.PublicFeatured).Methods(http.MethodGet)
	public.HandleFunc("/articles/main", h.Articles.MainArticles).Methods(http.MethodGet)
	public.HandleFunc("/articles/regular", h.Articles.PublicRegular).Methods(http.MethodGet)
	public.HandleFunc("/articles/latest", h.Articles.LatestExcludingMain).Methods(http.MethodGet)
	public.HandleFunc("/articles/{id}", h.Articles.PublicGet).Methods(http.MethodGet)

	public.HandleFunc("/videos", h.Videos.PublicList).Methods(http.MethodGet)
	public.HandleFunc("/videos/latest", h.Videos.PublicLatest).Methods(http.MethodGet)
	public.HandleFunc("/videos/{id}", h.Videos.PublicGet).Methods(http.MethodGet)

	public.HandleFunc("/tvshows", h.TVShows.PublicList).Methods(http.MethodGet)
	public.HandleFunc("/tvshows/{id}", h.TVShows.PublicGet).Methods(http.MethodGet)

	public.HandleFunc("/podcasts", h.Podcasts.PublicList).Methods(http.MethodGet)
	public.HandleFunc("/podcasts/{id}", h.Podcasts.PublicGet).Methods(http.MethodGet)

	// --- Авторизация ---
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.Handle("/auth/me", with(h.Auth.Me, jwt)).Methods(http.MethodGet)

	// --- Комментарии и лайки ---
	api.Handle("/comments/recent/all", with(h.Comments.Recent, jwt, middleware.AdminFastLane, staff)).Methods(http.MethodGet)
	api.Handle("/comments/comment/{commentId}", with(h.Comments.Delete, jwt, middleware.AdminFastLane, adminOnly)).Methods(http.MethodDelete)
	api.Handle("/comments/{articleId}", with(h.Comments.Create, writeLimit)).Methods(http.MethodPost)
	api.HandleFunc("/comments/{articleId}", h.Comments.List).Methods(http.MethodGet)
	api.HandleFunc("/comments/{articleId}/count", h.Comments.Count).Methods(http.MethodGet)

	api.HandleFunc("/likes/most-liked/articles", h.Likes.MostLiked).Methods(http.MethodGet)
	api.Handle("/likes/{articleId}/increment", with(h.Likes.Increment, writeLimit)).Methods(http.MethodPost)
	api.Handle("/likes/{articleId}/decrement", with(h.Likes.Decrement, writeLimit)).Methods(http.MethodPost)
	api.HandleFunc("/likes/{articleId}", h.Likes.Count).Methods(http.MethodGet)

	// --- Защищённые JWT ---
	protected := api.PathPrefix("").Subrouter()
	protected.Use(jwt, middleware.AdminFastLane)

	articles := protected.PathPrefix("/articles").Subrouter()
	articles.Handle("", with(h.Articles.Create, staff)).Methods(http.MethodPost)
	articles.HandleFunc("", h.Articles.List).Methods(http.MethodGet)
	articles.HandleFunc("/trending", h.Articles.Trending).Methods(http.MethodGet)
	articles.HandleFunc("/featured", h.Articles.Featured).Methods(http.MethodGet)
	articles.HandleFunc("/editors-pick", h.Articles.EditorsPick).Methods(http.MethodGet)
	articles.HandleFunc("/main-articles", h.Articles.MainArticles).Methods(http.MethodGet)
	articles.HandleFunc("/latest-excluding-main", h.Articles.LatestExcludingMain).Methods(http.MethodGet)
	articles.Handle("/{id}/set-main", with(h.Articles.SetMain, adminOnly)).Methods(http.MethodPut)
	articles.Handle("/{id}/remove-main", with(h.Articles.RemoveMain, adminOnly)).Methods(http.MethodPut)
	articles.HandleFunc("/{id}", h.Articles.GetByID).Methods(http.MethodGet)
	articles.Handle("/{id}", with(h.Articles.Update, staff)).Methods(http.MethodPut)
	articles.Handle("/{id}", with(h.Articles.Delete, adminOnly)).Methods(http.MethodDelete)

	videos := protected.PathPrefix("/videos").Subrouter()
	videos.Handle("", with(h.Videos.Create, staff)).Methods(http.MethodPost)
	videos.HandleFunc("", h.Videos.List).Methods(http.MethodGet)
	videos.HandleFunc("/{id}", h.Videos.GetByID).Methods(http.MethodGet)
	videos.Handle("/{id}", with(h.Videos.Update, staff)).Methods(http.MethodPut)
	videos.Handle("/{id}", with(h.Videos.Delete, adminOnly)).Methods(http.MethodDelete)

	tvshows := protected.PathPrefix("/tvshows").Subrouter()
	tvshows.Handle("", with(h.TVShows.Create, staff)).Methods(http.MethodPost)
	tvshows.HandleFunc("", h.TVShows.List).Methods(http.MethodGet)
	tvshows.HandleFunc("/stats", h.TVShows.Stats).Methods(http.MethodGet)
	tvshows.HandleFunc("/{id}", h.TVShows.GetByID).Methods(http.MethodGet)
	tvshows.Handle("/{id}", with(h.TVShows.Update, staff)).Methods(http.MethodPut)
	tvshows.Handle("/{id}", with(h.TVShows.Delete, adminOnly)).Methods(http.MethodDelete)

	podcasts := protected.PathPrefix("/podcasts").Subrouter()
	podcasts.Handle("", with(h.Podcasts.Create, staff)).Methods(http.MethodPost)
	podcasts.HandleFunc("", h.Podcasts.List).Methods(http.MethodGet)
	podcasts.HandleFunc("/stats", h.Podcasts.Stats).Methods(http.MethodGet)
	podcasts.HandleFunc("/{id}", h.Podcasts.GetByID).Methods(http.MethodGet)
	podcasts.Handle("/{id}", with(h.Podcasts.Update, staff)).Methods(http.MethodPut)
	podcasts.Handle("/{id}", with(h.Podcasts.Delete, adminOnly)).Methods(http.MethodDelete)

	dashboard := protected.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(staff)
	dashboard.HandleFunc("/stats", h.Dashboard.Stats).Methods(http.MethodGet)
	dashboard.HandleFunc("/recent-articles", h.Dashboard.RecentArticles).Methods(http.MethodGet)
	dashboard.Handle("/analytics", with(h.Dashboard.Analytics, adminOnly)).Methods(http.MethodGet)
}
