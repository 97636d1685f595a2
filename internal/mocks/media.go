package mocks

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"theinsight/internal/models"
	"theinsight/internal/repository"
)

// ---------- videos ----------

type MockVideoRepository struct {
	mu     sync.Mutex
	Videos map[int64]*models.Video
	nextID int64
}

func NewMockVideoRepository() *MockVideoRepository {
	return &MockVideoRepository{Videos: make(map[int64]*models.Video)}
}

func (m *MockVideoRepository) Create(_ context.Context, v *models.Video) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c := *v
	c.ID = m.nextID
	c.CreatedAt = stamp(c.ID)
	m.Videos[c.ID] = &c
	out := c
	return &out, nil
}

func (m *MockVideoRepository) Update(_ context.Context, v *models.Video) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.Videos[v.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *v
	c.Views, c.CreatedAt = cur.Views, cur.CreatedAt
	if c.UploadDate.IsZero() {
		c.UploadDate = cur.UploadDate
	}
	m.Videos[v.ID] = &c
	out := c
	return &out, nil
}

func (m *MockVideoRepository) GetByID(_ context.Context, id int64) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *v
	return &out, nil
}

func (m *MockVideoRepository) GetPublishedAndCountView(_ context.Context, id int64) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Videos[id]
	if !ok || v.Status != models.StatusPublished {
		return nil, repository.ErrNotFound
	}
	v.Views++
	out := *v
	return &out, nil
}

func (m *MockVideoRepository) sorted(match func(*models.Video) bool) []*models.Video {
	var out []*models.Video
	for _, v := range m.Videos {
		if match(v) {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *MockVideoRepository) List(_ context.Context, f models.VideoFilter, p models.Page) ([]*models.Video, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sorted(func(v *models.Video) bool {
		return (!f.OnlyPublic || v.Status == models.StatusPublished) &&
			strMatch(f.Category, v.Category) &&
			contains(f.Search, v.Title, v.Description, v.Tags)
	})
	return paginate(all, p), len(all), nil
}

func (m *MockVideoRepository) Latest(_ context.Context, limit int) ([]*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sorted(func(v *models.Video) bool { return v.Status == models.StatusPublished })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockVideoRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Videos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Videos, id)
	return nil
}

// ---------- tv shows ----------

type MockTVShowRepository struct {
	mu     sync.Mutex
	Shows  map[int64]*models.TVShow
	nextID int64
	// AfterGetPublished вызывается после чтения выпуска и до записи счётчика.
	AfterGetPublished func()
}

func NewMockTVShowRepository() *MockTVShowRepository {
	return &MockTVShowRepository{Shows: make(map[int64]*models.TVShow)}
}

func (m *MockTVShowRepository) Create(_ context.Context, s *models.TVShow) (*models.TVShow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c := *s
	c.ID = m.nextID
	c.CreatedAt = stamp(c.ID)
	m.Shows[c.ID] = &c
	out := c
	return &out, nil
}

func (m *MockTVShowRepository) Update(_ context.Context, s *models.TVShow) (*models.TVShow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.Shows[s.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *s
	c.Views, c.CreatedAt = cur.Views, cur.CreatedAt
	m.Shows[s.ID] = &c
	out := c
	return &out, nil
}

func (m *MockTVShowRepository) GetByID(_ context.Context, id int64) (*models.TVShow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Shows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *s
	return &out, nil
}

func (m *MockTVShowRepository) GetPublished(_ context.Context, id int64) (*models.TVShow, error) {
	m.mu.Lock()
	s, ok := m.Shows[id]
	var out models.TVShow
	if ok {
		out = *s
	}
	hook := m.AfterGetPublished
	m.mu.Unlock()

	if !ok || out.Status != models.StatusPublished {
		return nil, repository.ErrNotFound
	}
	if hook != nil {
		hook()
	}
	return &out, nil
}

func (m *MockTVShowRepository) SetViews(_ context.Context, id int64, views string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.Shows[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.Views = views
	return nil
}

func (m *MockTVShowRepository) List(_ context.Context, f models.TVShowFilter, p models.Page) ([]*models.TVShow, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*models.TVShow
	for _, s := range m.Shows {
		ok := strMatch(f.Category, s.Category) && boolMatch(f.Featured, s.Featured) && boolMatch(f.IsNew, s.IsNew) &&
			contains(f.Search, s.Title, s.Description, s.Tags)
		if f.OnlyPublic {
			ok = ok && s.Status == models.StatusPublished
		} else {
			ok = ok && strMatch(f.Status, s.Status)
		}
		if ok {
			c := *s
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, p), len(all), nil
}

func (m *MockTVShowRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Shows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Shows, id)
	return nil
}

func (m *MockTVShowRepository) Stats(_ context.Context) (*models.TVShowStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := &models.TVShowStats{}
	byCategory := map[string]int{}
	var ratingSum float64
	for _, s := range m.Shows {
		st.Total++
		switch s.Status {
		case models.StatusPublished:
			st.Published++
		case models.StatusDraft:
			st.Draft++
		}
		if s.Featured {
			st.Featured++
		}
		if s.IsNew {
			st.New++
		}
		ratingSum += s.Rating
		byCategory[s.Category]++
	}
	if st.Total > 0 {
		st.AvgRating = ratingSum / float64(st.Total)
	}
	for c, n := range byCategory {
		st.CategoryBreakdown = append(st.CategoryBreakdown, models.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(st.CategoryBreakdown, func(i, j int) bool {
		a, b := st.CategoryBreakdown[i], st.CategoryBreakdown[j]
		return a.Count > b.Count || (a.Count == b.Count && a.Category < b.Category)
	})
	return st, nil
}

// ---------- podcasts ----------

type MockPodcastRepository struct {
	mu       sync.Mutex
	Podcasts map[int64]*models.Podcast
	nextID   int64
	StatsOut models.PodcastStats
}

func NewMockPodcastRepository() *MockPodcastRepository {
	return &MockPodcastRepository{Podcasts: make(map[int64]*models.Podcast)}
}

func (m *MockPodcastRepository) Create(_ context.Context, p *models.Podcast) (*models.Podcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c := *p
	c.ID = m.nextID
	c.CreatedAt = stamp(c.ID)
	m.Podcasts[c.ID] = &c
	out := c
	return &out, nil
}

func (m *MockPodcastRepository) Update(_ context.Context, p *models.Podcast) (*models.Podcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.Podcasts[p.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *p
	c.Plays, c.CreatedAt = cur.Plays, cur.CreatedAt
	m.Podcasts[p.ID] = &c
	out := c
	return &out, nil
}

func (m *MockPodcastRepository) GetByID(_ context.Context, id int64) (*models.Podcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Podcasts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (m *MockPodcastRepository) GetPublishedAndCountPlay(_ context.Context, id int64) (*models.Podcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Podcasts[id]
	if !ok || p.Status != models.StatusPublished {
		return nil, repository.ErrNotFound
	}
	p.Plays = incrementDecimal(p.Plays)
	out := *p
	return &out, nil
}

func (m *MockPodcastRepository) List(_ context.Context, f models.PodcastFilter, p models.Page) ([]*models.Podcast, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*models.Podcast
	for _, pc := range m.Podcasts {
		ok := boolMatch(f.Featured, pc.Featured) &&
			strMatch(f.GuestID, deref(pc.GuestID)) &&
			strMatch(f.SeriesID, deref(pc.SeriesID)) &&
			contains(f.Search, pc.Title, pc.Description, pc.GuestName)
		if f.OnlyPublic {
			ok = ok && pc.Status == models.StatusPublished
		} else {
			ok = ok && strMatch(f.Status, pc.Status)
		}
		if ok {
			c := *pc
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, p), len(all), nil
}

func (m *MockPodcastRepository) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Podcasts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.Podcasts, id)
	return nil
}

func (m *MockPodcastRepository) Stats(_ context.Context) (*models.PodcastStats, error) {
	st := m.StatsOut
	return &st, nil
}

func (m *MockPodcastRepository) Counters(_ context.Context) ([]string, []string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var plays, downloads []string
	for _, p := range m.Podcasts {
		plays = append(plays, p.Plays)
		downloads = append(downloads, p.Downloads)
	}
	return plays, downloads, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// incrementDecimal повторяет SQL-выражение инкремента строкового счётчика.
func incrementDecimal(v string) string {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || strings.ContainsAny(v, "+-") {
		n = 0
	}
	return strconv.FormatInt(n+1, 10)
}

// ---------- dashboard ----------

// MockDashboardRepository отдаёт заранее заданные значения.
type MockDashboardRepository struct {
	TotalsOut    models.ContentTotals
	Mains        []*models.DashboardArticle
	Latest       []*models.DashboardArticle
	Category     string
	ReadTimes    []string
	Since        time.Time
	LatestLimits []int
}

func (m *MockDashboardRepository) Totals(_ context.Context, since time.Time) (*models.ContentTotals, error) {
	m.Since = since
	t := m.TotalsOut
	return &t, nil
}

func (m *MockDashboardRepository) MainArticles(_ context.Context, limit int) ([]*models.DashboardArticle, error) {
	if len(m.Mains) > limit {
		return m.Mains[:limit], nil
	}
	return append([]*models.DashboardArticle(nil), m.Mains...), nil
}

func (m *MockDashboardRepository) LatestNonMain(_ context.Context, limit int) ([]*models.DashboardArticle, error) {
	m.LatestLimits = append(m.LatestLimits, limit)
	if len(m.Latest) > limit {
		return m.Latest[:limit], nil
	}
	return m.Latest, nil
}

func (m *MockDashboardRepository) MostPopularCategory(_ context.Context) (string, error) {
	return m.Category, nil
}

func (m *MockDashboardRepository) PublishedReadTimes(_ context.Context) ([]string, error) {
	return m.ReadTimes, nil
}
