// Package mocks содержит in-memory реализации репозиториев для тестов сервисов и хендлеров.
package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"theinsight/internal/models"
	"theinsight/internal/repository"
)

var baseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// stamp даёт строго возрастающее время создания по id, чтобы порядок был детерминирован.
func stamp(id int64) time.Time { return baseTime.Add(time.Duration(id) * time.Minute) }

func paginate[T any](items []T, p models.Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func contains(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func boolMatch(want *bool, got bool) bool { return want == nil || *want == got }

func strMatch(want, got string) bool { return want == "" || want == "all" || want == got }

// ---------- articles ----------

type MockArticleRepository struct {
	mu       sync.Mutex
	lockMu   sync.Mutex
	Articles map[int64]*models.Article
	nextID   int64
	Err      error
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[int64]*models.Article)}
}

func cloneArticle(a *models.Article) *models.Article {
	c := *a
	if a.MainArticlePosition != nil {
		pos := *a.MainArticlePosition
		c.MainArticlePosition = &pos
	}
	c.AdditionalImages = append([]models.ArticleImage(nil), a.AdditionalImages...)
	return &c
}

// Seed кладёт статью напрямую, минуя сервис.
func (m *MockArticleRepository) Seed(a *models.Article) *models.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c := cloneArticle(a)
	c.ID = m.nextID
	c.CreatedAt = stamp(c.ID)
	c.UpdatedAt = c.CreatedAt
	m.Articles[c.ID] = c
	return cloneArticle(c)
}

func (m *MockArticleRepository) Create(_ context.Context, a *models.Article) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Seed(a), nil
}

func (m *MockArticleRepository) Update(_ context.Context, a *models.Article) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.Articles[a.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := cloneArticle(a)
	c.IsMainArticle, c.IsSecondMainArticle, c.MainArticlePosition = cur.IsMainArticle, cur.IsSecondMainArticle, cur.MainArticlePosition
	c.Views, c.CreatedAt = cur.Views, cur.CreatedAt
	if c.PublishDate.IsZero() {
		c.PublishDate = cur.PublishDate
	}
	m.Articles[a.ID] = c
	return cloneArticle(c), nil
}

func (m *MockArticleRepository) GetByID(_ context.Context, id int64) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneArticle(a), nil
}

func (m *MockArticleRepository) GetPublishedAndCountView(_ context.Context, id int64) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok || a.Status != models.StatusPublished {
		return nil, repository.ErrNotFound
	}
	a.Views++
	return cloneArticle(a), nil
}

func matchArticle(a *models.Article, f models.ArticleFilter) bool {
	if f.OnlyPublic && a.Status != models.StatusPublished {
		return false
	}
	if !f.OnlyPublic && !strMatch(f.Status, a.Status) {
		return false
	}
	if f.NoEditorial && (a.Featured || a.Trending || a.EditorsPick) {
		return false
	}
	if f.ExcludeMain && (a.IsMainArticle || a.IsSecondMainArticle) {
		return false
	}
	return strMatch(f.Category, a.CategoryName) &&
		boolMatch(f.Featured, a.Featured) &&
		boolMatch(f.Trending, a.Trending) &&
		boolMatch(f.EditorsPick, a.EditorsPick) &&
		contains(f.Search, a.Title, a.Excerpt, a.Author)
}

func (m *MockArticleRepository) filtered(f models.ArticleFilter) []*models.Article {
	var out []*models.Article
	for _, a := range m.Articles {
		if matchArticle(a, f) {
			out = append(out, cloneArticle(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *MockArticleRepository) List(_ context.Context, f models.ArticleFilter, p models.Page) ([]*models.Article, int, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.filtered(f)
	return paginate(all, p), len(all), nil
}

func (m *MockArticleRepository) Latest(_ context.Context, f models.ArticleFilter, limit int) ([]*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.filtered(f)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockArticleRepository) MainArticles(_ context.Context) (*models.MainArticles, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := &models.MainArticles{}
	for _, a := range m.Articles {
		if a.Status != models.StatusPublished {
			continue
		}
		if a.IsMainArticle {
			out.MainArticle = cloneArticle(a)
		}
		if a.IsSecondMainArticle {
			out.SecondMainArticle = cloneArticle(a)
		}
	}
	return out, nil
}

func (m *MockArticleRepository) RemoveMain(_ context.Context, id int64) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.Articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a.IsMainArticle, a.IsSecondMainArticle, a.MainArticlePosition = false, false, nil
	return cloneArticle(a), nil
}

func (m *MockArticleRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Articles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Articles, id)
	return nil
}

func (m *MockArticleRepository) Exists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Articles[id]
	return ok, nil
}

// WithMainLock сериализует вызовы и откатывает изменения, если fn вернула ошибку.
func (m *MockArticleRepository) WithMainLock(ctx context.Context, fn func(tx repository.MainArticleTx) error) error {
	m.lockMu.Lock()
	defer m.lockMu.Unlock()

	m.mu.Lock()
	snapshot := make(map[int64]*models.Article, len(m.Articles))
	for id, a := range m.Articles {
		snapshot[id] = cloneArticle(a)
	}
	m.mu.Unlock()

	if err := fn(mockArticleTx{m}); err != nil {
		m.mu.Lock()
		m.Articles = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

// CountPosition считает статьи с флагом позиции.
func (m *MockArticleRepository) CountPosition(position string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, a := range m.Articles {
		if (position == models.PositionMain && a.IsMainArticle) || (position == models.PositionSecond && a.IsSecondMainArticle) {
			n++
		}
	}
	return n
}

type mockArticleTx struct{ m *MockArticleRepository }

func (t mockArticleTx) Exists(ctx context.Context, id int64) (bool, error) {
	return t.m.Exists(ctx, id)
}

func (t mockArticleTx) ClearPosition(_ context.Context, position string, exceptID int64) error {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for id, a := range t.m.Articles {
		if id == exceptID {
			continue
		}
		if position == models.PositionMain && a.IsMainArticle {
			a.IsMainArticle, a.MainArticlePosition = false, nil
		}
		if position == models.PositionSecond && a.IsSecondMainArticle {
			a.IsSecondMainArticle, a.MainArticlePosition = false, nil
		}
	}
	return nil
}

func (t mockArticleTx) SetPosition(_ context.Context, id int64, position string) (*models.Article, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	a, ok := t.m.Articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	pos := position
	a.IsMainArticle = position == models.PositionMain
	a.IsSecondMainArticle = position == models.PositionSecond
	a.MainArticlePosition = &pos
	return cloneArticle(a), nil
}

// ---------- likes ----------

type MockLikeRepository struct {
	mu     sync.Mutex
	Counts map[int64]int
}

func NewMockLikeRepository() *MockLikeRepository {
	return &MockLikeRepository{Counts: make(map[int64]int)}
}

func (m *MockLikeRepository) Increment(_ context.Context, articleID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counts[articleID]++
	return m.Counts[articleID], nil
}

func (m *MockLikeRepository) Decrement(_ context.Context, articleID int64) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.Counts[articleID]
	if !ok {
		return 0, false, nil
	}
	if n == 0 {
		return 0, false, nil
	}
	m.Counts[articleID] = n - 1
	return n - 1, true, nil
}

func (m *MockLikeRepository) Count(_ context.Context, articleID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counts[articleID], nil
}

func (m *MockLikeRepository) MostLiked(_ context.Context, limit int) ([]*models.MostLikedArticle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.MostLikedArticle
	for id, n := range m.Counts {
		if n > 0 {
			out = append(out, &models.MostLikedArticle{ArticleID: id, LikeCount: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LikeCount != out[j].LikeCount {
			return out[i].LikeCount > out[j].LikeCount
		}
		return out[i].ArticleID < out[j].ArticleID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---------- comments ----------

type MockCommentRepository struct {
	mu       sync.Mutex
	Comments []*models.Comment
	nextID   int64
}

func NewMockCommentRepository() *MockCommentRepository { return &MockCommentRepository{} }

func (m *MockCommentRepository) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *c
	cp.ID = m.nextID
	cp.CreatedAt = stamp(cp.ID)
	cp.UpdatedAt = cp.CreatedAt
	m.Comments = append(m.Comments, &cp)
	out := cp
	return &out, nil
}

func (m *MockCommentRepository) forArticle(articleID int64) []*models.PublicComment {
	var out []*models.PublicComment
	for i := len(m.Comments) - 1; i >= 0; i-- {
		c := m.Comments[i]
		if c.ArticleID == articleID && c.IsApproved {
			pub := c.Public()
			out = append(out, &pub)
		}
	}
	return out
}

func (m *MockCommentRepository) ListByArticle(_ context.Context, articleID int64, p models.Page) ([]*models.PublicComment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.forArticle(articleID)
	return paginate(all, p), len(all), nil
}

func (m *MockCommentRepository) AllByArticle(_ context.Context, articleID int64) ([]*models.PublicComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.forArticle(articleID), nil
}

func (m *MockCommentRepository) CountByArticle(_ context.Context, articleID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.forArticle(articleID)), nil
}

func (m *MockCommentRepository) Recent(_ context.Context, limit int) ([]*models.RecentComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.RecentComment
	for i := len(m.Comments) - 1; i >= 0 && len(out) < limit; i-- {
		c := m.Comments[i]
		out = append(out, &models.RecentComment{
			ID: c.ID, ArticleID: c.ArticleID, Name: c.Name, Email: c.Email, Content: c.Content,
			IsApproved: c.IsApproved, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
		})
	}
	return out, nil
}

func (m *MockCommentRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.Comments {
		if c.ID == id {
			m.Comments = append(m.Comments[:i], m.Comments[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// ---------- users ----------

type MockUserRepository struct {
	mu     sync.Mutex
	Users  map[string]*models.User
	nextID int64
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = stamp(user.ID)
	cp := *user
	m.Users[user.Email] = &cp
	return nil
}

func (m *MockUserRepository) UpsertUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	if cur, ok := m.Users[user.Email]; ok {
		cur.Name, cur.PasswordHash, cur.Role, cur.IsActive = user.Name, user.PasswordHash, user.Role, true
		user.ID, user.IsActive = cur.ID, true
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()
	user.IsActive = true
	return m.CreateUser(ctx, user)
}

func (m *MockUserRepository) IsEmailTaken(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Users[email]
	return ok, nil
}

func (m *MockUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.Users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.Users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}
