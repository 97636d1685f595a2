package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"theinsight/internal/handlers"
	"theinsight/internal/mocks"
	"theinsight/internal/models"
	"theinsight/internal/services"
	"theinsight/internal/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "routes-test-secret"

type envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Errors     []map[string]any   `json:"errors"`
	Pagination *models.Pagination `json:"pagination"`
}

type testServer struct {
	t        *testing.T
	router   *mux.Router
	articles *mocks.MockArticleRepository
	comments *mocks.MockCommentRepository
}

func newTestServer(t *testing.T) *testServer {
	articleRepo := mocks.NewMockArticleRepository()
	commentRepo := mocks.NewMockCommentRepository()
	videoRepo := mocks.NewMockVideoRepository()
	tvRepo := mocks.NewMockTVShowRepository()
	podcastRepo := mocks.NewMockPodcastRepository()

	router := mux.NewRouter()
	InitRoutes(router, Handlers{
		Auth:      handlers.NewAuthHandler(services.NewAuthService(mocks.NewMockUserRepository(), secret, time.Hour)),
		Articles:  handlers.NewArticleHandler(services.NewArticleService(articleRepo)),
		Videos:    handlers.NewVideoHandler(services.NewVideoService(videoRepo)),
		TVShows:   handlers.NewTVShowHandler(services.NewTVShowService(tvRepo)),
		Podcasts:  handlers.NewPodcastHandler(services.NewPodcastService(podcastRepo)),
		Comments:  handlers.NewCommentHandler(services.NewCommentService(commentRepo, articleRepo)),
		Likes:     handlers.NewLikeHandler(services.NewLikeService(mocks.NewMockLikeRepository(), articleRepo)),
		Dashboard: handlers.NewDashboardHandler(services.NewDashboardService(&mocks.MockDashboardRepository{})),
		Search:    handlers.NewSearchHandler(services.NewSearchService(articleRepo, videoRepo, tvRepo, podcastRepo)),
		Health:    handlers.NewHealthHandler(nil),
	}, Options{JWTSecret: secret})

	return &testServer{t: t, router: router, articles: articleRepo, comments: commentRepo}
}

func (s *testServer) token(role string) string {
	tok, err := utils.GenerateToken(secret, 1, role, time.Hour)
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (s *testServer) createArticle(token, title string) int64 {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/articles", token, map[string]any{
		"title":         title,
		"excerpt":       "Short excerpt",
		"content":       "<p>Body</p><script>alert(1)</script>",
		"categoryName":  "Tech Trends",
		"author":        "Jane Doe",
		"featuredImage": "https://cdn.example.com/a.jpg",
		"status":        "published",
	})
	require.Equal(s.t, http.StatusCreated, code, env.Message)
	var a models.Article
	require.NoError(s.t, json.Unmarshal(env.Data, &a))
	assert.NotContains(s.t, a.Content, "<script>")
	return a.ID
}

func articlePath(id int64, suffix string) string {
	return "/api/articles/" + strconv.FormatInt(id, 10) + suffix
}

func TestMainArticleScenario(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(models.RoleAdmin)
	editor := s.token(models.RoleEditor)

	a := s.createArticle(editor, "First")
	b := s.createArticle(admin, "Second")

	code, env := s.do(http.MethodPut, articlePath(a, "/set-main"), admin, models.SetMainRequest{Position: "main"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Article set as main main article successfully", env.Message)

	code, _ = s.do(http.MethodPut, articlePath(b, "/set-main"), admin, models.SetMainRequest{Position: "second"})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/public/articles/main", "", nil)
	require.Equal(t, http.StatusOK, code)
	var mains models.MainArticles
	require.NoError(t, json.Unmarshal(env.Data, &mains))
	require.NotNil(t, mains.MainArticle)
	require.NotNil(t, mains.SecondMainArticle)
	assert.Equal(t, a, mains.MainArticle.ID)
	assert.Equal(t, b, mains.SecondMainArticle.ID)

	// перевод второй статьи на главную снимает её со второй позиции и вытесняет первую
	code, _ = s.do(http.MethodPut, articlePath(b, "/set-main"), admin, models.SetMainRequest{Position: "main"})
	require.Equal(t, http.StatusOK, code)
	_, env = s.do(http.MethodGet, "/api/articles/main-articles", editor, nil)
	mains = models.MainArticles{}
	require.NoError(t, json.Unmarshal(env.Data, &mains))
	require.NotNil(t, mains.MainArticle)
	assert.Equal(t, b, mains.MainArticle.ID)
	assert.Nil(t, mains.SecondMainArticle)
	assert.Equal(t, 1, s.articles.CountPosition(models.PositionMain))
	assert.Equal(t, 0, s.articles.CountPosition(models.PositionSecond))

	code, env = s.do(http.MethodPut, articlePath(a, "/set-main"), admin, map[string]string{"position": "third"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, `Position must be either "main" or "second"`, env.Message)

	code, _ = s.do(http.MethodPut, articlePath(a, "/set-main"), editor, models.SetMainRequest{Position: "main"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPut, articlePath(999, "/set-main"), admin, models.SetMainRequest{Position: "main"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodPut, articlePath(b, "/remove-main"), admin, nil)
	assert.Equal(t, http.StatusOK, code)
	_, env = s.do(http.MethodGet, "/api/public/articles/main", "", nil)
	assert.JSONEq(t, `{"mainArticle":null,"secondMainArticle":null}`, string(env.Data))
}

func TestPublicArticleCountsViews(t *testing.T) {
	s := newTestServer(t)
	id := s.createArticle(s.token(models.RoleAdmin), "Viewed")
	path := "/api/public/articles/" + strconv.FormatInt(id, 10)

	s.do(http.MethodGet, path, "", nil)
	code, env := s.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, code)
	var a models.Article
	require.NoError(t, json.Unmarshal(env.Data, &a))
	assert.Equal(t, int64(2), a.Views)

	code, env = s.do(http.MethodGet, "/api/public/articles/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid article ID", env.Message)
}

func TestArticleValidationErrors(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodPost, "/api/articles", s.token(models.RoleEditor), map[string]any{"title": ""})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation failed", env.Message)
	assert.NotEmpty(t, env.Errors)
}

func TestAuthGuards(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(http.MethodGet, "/api/articles", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodDelete, articlePath(1, ""), s.token(models.RoleEditor), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/api/dashboard/analytics", s.token(models.RoleEditor), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/api/dashboard/analytics", s.token(models.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestCommentsOnClosedArticle(t *testing.T) {
	s := newTestServer(t)
	closed := s.articles.Seed(&models.Article{Title: "Closed", Status: models.StatusPublished, AllowComments: false})

	code, env := s.do(http.MethodPost, "/api/comments/"+strconv.FormatInt(closed.ID, 10), "", models.CommentRequest{Content: "hello"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Comments are not allowed for this article", env.Message)
	assert.Empty(t, s.comments.Comments)

	open := s.articles.Seed(&models.Article{Title: "Open", Status: models.StatusPublished, AllowComments: true})
	path := "/api/comments/" + strconv.FormatInt(open.ID, 10)
	code, env = s.do(http.MethodPost, path, "", models.CommentRequest{Content: "hello", Email: "a@b.co"})
	require.Equal(t, http.StatusCreated, code)
	assert.NotContains(t, string(env.Data), "a@b.co")

	code, env = s.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 3, env.Pagination.ItemsPerPage)
	assert.Equal(t, 1, env.Pagination.TotalItems)

	code, _ = s.do(http.MethodGet, "/api/comments/recent/all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestLikesFloorAtZero(t *testing.T) {
	s := newTestServer(t)
	a := s.articles.Seed(&models.Article{Title: "Liked", Status: models.StatusPublished})
	base := "/api/likes/" + strconv.FormatInt(a.ID, 10)

	code, env := s.do(http.MethodPost, base+"/decrement", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "No likes to remove", env.Message)
	assert.JSONEq(t, `{"articleId":`+strconv.FormatInt(a.ID, 10)+`,"likeCount":0}`, string(env.Data))

	_, env = s.do(http.MethodPost, base+"/increment", "", nil)
	assert.Equal(t, "Article liked", env.Message)
	_, env = s.do(http.MethodPost, base+"/decrement", "", nil)
	assert.Equal(t, "Article unliked", env.Message)

	code, _ = s.do(http.MethodPost, "/api/likes/999/increment", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReadsOnUnknownArticle(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{
		"/api/comments/9999",
		"/api/comments/9999?all=true",
		"/api/comments/9999/count",
		"/api/likes/9999",
	} {
		code, env := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, "Article not found", env.Message, path)
	}
}

func TestEmptyCommentOnClosedArticle(t *testing.T) {
	s := newTestServer(t)
	closed := s.articles.Seed(&models.Article{Title: "Closed", Status: models.StatusPublished})

	code, env := s.do(http.MethodPost, "/api/comments/"+strconv.FormatInt(closed.ID, 10), "", models.CommentRequest{Content: " "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", env.Message)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)

	code, _ = s.do(http.MethodDelete, "/api/public/articles", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, code)

	code, _ = s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestTVShowPartialUpdate(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(models.RoleAdmin)

	code, env := s.do(http.MethodPost, "/api/tvshows", admin, map[string]any{
		"title": "Pilot", "description": "First", "duration": "42:00",
		"category": "Mind Battles", "section": "MindBattles", "thumbnail": "t.jpg",
		"youtube_url": "https://youtube.com/watch?v=x", "status": "published",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var show models.TVShow
	require.NoError(t, json.Unmarshal(env.Data, &show))

	code, env = s.do(http.MethodPut, "/api/tvshows/"+strconv.FormatInt(show.ID, 10), admin, map[string]any{"title": "Renamed"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var updated models.TVShow
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Mind Battles", updated.Category)

	_, env = s.do(http.MethodGet, "/api/public/tvshows/"+strconv.FormatInt(show.ID, 10), "", nil)
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "1", updated.Views)
}
