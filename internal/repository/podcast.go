package repository

import (
	"context"
	"fmt"

	"theinsight/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const podcastColumns = `id, title, description, duration, guest_id, guest_name, series_id, episode_number,
	image, audio_url, youtube_url, spotify_url, apple_url, google_url, transcript, tags, meta_description,
	featured, status, publish_date, plays, downloads, rating, likes, comments_count, created_at, updated_at`

type PodcastRepo interface {
	Create(ctx context.Context, p *models.Podcast) (*models.Podcast, error)
	Update(ctx context.Context, p *models.Podcast) (*models.Podcast, error)
	GetByID(ctx context.Context, id int64) (*models.Podcast, error)
	// GetPublishedAndCountPlay увеличивает строковый счётчик plays одним UPDATE.
	GetPublishedAndCountPlay(ctx context.Context, id int64) (*models.Podcast, error)
	List(ctx context.Context, f models.PodcastFilter, p models.Page) ([]*models.Podcast, int, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*models.PodcastStats, error)
	// Counters возвращает сырые значения plays и downloads всех выпусков.
	Counters(ctx context.Context) (plays, downloads []string, err error)
}

type podcastRepo struct {
	db     *pgxpool.Pool
	lister Lister[models.Podcast]
}

func NewPodcastRepo(db *pgxpool.Pool) PodcastRepo {
	return &podcastRepo{db: db, lister: NewLister[models.Podcast]("podcasts", podcastColumns)}
}

func (r *podcastRepo) Create(ctx context.Context, p *models.Podcast) (*models.Podcast, error) {
	const q = `
		INSERT INTO podcasts (title, description, duration, guest_id, guest_name, series_id, episode_number,
			image, audio_url, youtube_url, spotify_url, apple_url, google_url, transcript, tags,
			meta_description, featured, status, publish_date, plays, downloads, rating)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		RETURNING ` + podcastColumns
	return r.lister.Row(ctx, r.db, q,
		p.Title, p.Description, p.Duration, p.GuestID, p.GuestName, p.SeriesID, p.EpisodeNumber,
		p.Image, p.AudioURL, p.YoutubeURL, p.SpotifyURL, p.AppleURL, p.GoogleURL, p.Transcript, p.Tags,
		p.MetaDescription, p.Featured, p.Status, p.PublishDate, p.Plays, p.Downloads, p.Rating,
	)
}

func (r *podcastRepo) Update(ctx context.Context, p *models.Podcast) (*models.Podcast, error) {
	const q = `
		UPDATE podcasts
		SET title=$2, description=$3, duration=$4, guest_id=$5, guest_name=$6, series_id=$7,
		    episode_number=$8, image=$9, audio_url=$10, youtube_url=$11, spotify_url=$12, apple_url=$13,
		    google_url=$14, transcript=$15, tags=$16, meta_description=$17, featured=$18, status=$19,
		    publish_date=$20, downloads=$21, rating=$22, updated_at=NOW()
		WHERE id=$1
		RETURNING ` + podcastColumns
	return r.lister.Row(ctx, r.db, q, p.ID,
		p.Title, p.Description, p.Duration, p.GuestID, p.GuestName, p.SeriesID,
		p.EpisodeNumber, p.Image, p.AudioURL, p.YoutubeURL, p.SpotifyURL, p.AppleURL,
		p.GoogleURL, p.Transcript, p.Tags, p.MetaDescription, p.Featured, p.Status,
		p.PublishDate, p.Downloads, p.Rating,
	)
}

func (r *podcastRepo) GetByID(ctx context.Context, id int64) (*models.Podcast, error) {
	return r.lister.ByID(ctx, r.db, id)
}

func (r *podcastRepo) GetPublishedAndCountPlay(ctx context.Context, id int64) (*models.Podcast, error) {
	const q = `
		UPDATE podcasts
		SET plays = ((CASE WHEN plays ~ '^[0-9]{1,18}$' THEN plays::bigint ELSE 0 END) + 1)::text
		WHERE id = $1 AND status = 'published'
		RETURNING ` + podcastColumns
	return r.lister.Row(ctx, r.db, q, id)
}

func (r *podcastRepo) List(ctx context.Context, f models.PodcastFilter, p models.Page) ([]*models.Podcast, int, error) {
	filter := NewFilter().
		Eq("featured", f.Featured).
		EqUnlessAll("guest_id", f.GuestID).
		EqUnlessAll("series_id", f.SeriesID)
	order := "created_at DESC"
	if f.OnlyPublic {
		filter.Eq("status", models.StatusPublished)
		order = "publish_date DESC, created_at DESC"
	} else {
		filter.EqUnlessAll("status", f.Status)
	}
	filter.Search(f.Search, "title", "description", "guest_name")
	return r.lister.Page(ctx, r.db, filter, order, p)
}

func (r *podcastRepo) Delete(ctx context.Context, id int64) error {
	return r.lister.Delete(ctx, r.db, id)
}

func (r *podcastRepo) Stats(ctx context.Context) (*models.PodcastStats, error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'published'),
		       COUNT(*) FILTER (WHERE status = 'draft'),
		       COUNT(*) FILTER (WHERE featured),
		       COALESCE(AVG(rating), 0)
		FROM podcasts`

	var st models.PodcastStats
	if err := r.db.QueryRow(ctx, q).Scan(&st.Total, &st.Published, &st.Draft, &st.Featured, &st.AvgRating); err != nil {
		return nil, fmt.Errorf("podcast totals: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT guest_name, COUNT(*) AS count
		FROM podcasts WHERE guest_name <> ''
		GROUP BY guest_name ORDER BY count DESC, guest_name LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("podcast guests: %w", err)
	}
	if st.TopGuests, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.GuestCount]); err != nil {
		return nil, fmt.Errorf("podcast guests: %w", err)
	}

	rows, err = r.db.Query(ctx, `
		SELECT series_id, COUNT(*) AS count
		FROM podcasts GROUP BY series_id ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("podcast series: %w", err)
	}
	if st.SeriesBreakdown, err = pgx.CollectRows(rows, pgx.RowToStructByName[models.SeriesCount]); err != nil {
		return nil, fmt.Errorf("podcast series: %w", err)
	}
	return &st, nil
}

func (r *podcastRepo) Counters(ctx context.Context) (plays, downloads []string, err error) {
	rows, err := r.db.Query(ctx, `SELECT plays, downloads FROM podcasts`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p, d string
		if err := rows.Scan(&p, &d); err != nil {
			return nil, nil, err
		}
		plays = append(plays, p)
		downloads = append(downloads, d)
	}
	return plays, downloads, rows.Err()
}
