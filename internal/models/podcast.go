package models

import "time"

// Podcast: выпуск подкаста; plays и downloads хранятся строками.
type Podcast struct {
	ID              int64     `db:"id"               json:"id"`
	Title           string    `db:"title"            json:"title"`
	Description     string    `db:"description"      json:"description"`
	Duration        string    `db:"duration"         json:"duration"`
	GuestID         *string   `db:"guest_id"         json:"guest_id"`
	GuestName       string    `db:"guest_name"       json:"guest_name"`
	SeriesID        *string   `db:"series_id"        json:"series_id"`
	EpisodeNumber   *int      `db:"episode_number"   json:"episode_number"`
	Image           string    `db:"image"            json:"image"`
	AudioURL        string    `db:"audio_url"        json:"audio_url"`
	YoutubeURL      string    `db:"youtube_url"      json:"youtube_url"`
	SpotifyURL      string    `db:"spotify_url"      json:"spotify_url"`
	AppleURL        string    `db:"apple_url"        json:"apple_url"`
	GoogleURL       string    `db:"google_url"       json:"google_url"`
	Transcript      string    `db:"transcript"       json:"transcript"`
	Tags            string    `db:"tags"             json:"tags"`
	MetaDescription string    `db:"meta_description" json:"meta_description"`
	Featured        bool      `db:"featured"         json:"featured"`
	Status          string    `db:"status"           json:"status"`
	PublishDate     time.Time `db:"publish_date"     json:"publish_date"`
	Plays           string    `db:"plays"            json:"plays"`
	Downloads       string    `db:"downloads"        json:"downloads"`
	Rating          float64   `db:"rating"           json:"rating"`
	Likes           int       `db:"likes"            json:"likes"`
	CommentsCount   int       `db:"comments_count"   json:"comments_count"`
	CreatedAt       time.Time `db:"created_at"       json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at"       json:"updatedAt"`
}

type PodcastInput struct {
	Title           string     `json:"title"            validate:"required,max=200"`
	Description     string     `json:"description"      validate:"required,max=2000"`
	Duration        string     `json:"duration"         validate:"required,podcast_duration"`
	GuestID         *string    `json:"guest_id"`
	GuestName       string     `json:"guest_name"       validate:"max=100"`
	SeriesID        *string    `json:"series_id"`
	EpisodeNumber   *int       `json:"episode_number"   validate:"omitempty,gte=1"`
	Image           string     `json:"image"            validate:"required"`
	AudioURL        string     `json:"audio_url"        validate:"omitempty,http_url"`
	YoutubeURL      string     `json:"youtube_url"      validate:"omitempty,youtube_url"`
	SpotifyURL      string     `json:"spotify_url"      validate:"omitempty,url"`
	AppleURL        string     `json:"apple_url"        validate:"omitempty,url"`
	GoogleURL       string     `json:"google_url"       validate:"omitempty,url"`
	Transcript      string     `json:"transcript"       validate:"max=50000"`
	Tags            string     `json:"tags"             validate:"max=500"`
	MetaDescription string     `json:"meta_description" validate:"max=160"`
	Featured        bool       `json:"featured"`
	Status          string     `json:"status"           validate:"omitempty,oneof=draft published scheduled"`
	PublishDate     *time.Time `json:"publish_date"`
	Downloads       string     `json:"downloads"`
	Rating          float64    `json:"rating"           validate:"gte=0,lte=5"`
}

func PodcastInputFrom(p *Podcast) PodcastInput {
	published := p.PublishDate
	return PodcastInput{
		Title:           p.Title,
		Description:     p.Description,
		Duration:        p.Duration,
		GuestID:         p.GuestID,
		GuestName:       p.GuestName,
		SeriesID:        p.SeriesID,
		EpisodeNumber:   p.EpisodeNumber,
		Image:           p.Image,
		AudioURL:        p.AudioURL,
		YoutubeURL:      p.YoutubeURL,
		SpotifyURL:      p.SpotifyURL,
		AppleURL:        p.AppleURL,
		GoogleURL:       p.GoogleURL,
		Transcript:      p.Transcript,
		Tags:            p.Tags,
		MetaDescription: p.MetaDescription,
		Featured:        p.Featured,
		Status:          p.Status,
		PublishDate:     &published,
		Downloads:       p.Downloads,
		Rating:          p.Rating,
	}
}

type PodcastFilter struct {
	Status     string
	Featured   *bool
	GuestID    string
	SeriesID   string
	Search     string
	OnlyPublic bool
}

type GuestCount struct {
	GuestName string `db:"guest_name" json:"_id"`
	Count     int    `db:"count"      json:"count"`
}

type SeriesCount struct {
	SeriesID *string `db:"series_id" json:"_id"`
	Count    int     `db:"count"     json:"count"`
}

type PodcastStats struct {
	Total           int           `json:"total"`
	Published       int           `json:"published"`
	Draft           int           `json:"draft"`
	Featured        int           `json:"featured"`
	AvgRating       float64       `json:"avgRating"`
	TotalPlays      int64         `json:"totalPlays"`
	TotalDownloads  int64         `json:"totalDownloads"`
	TopGuests       []GuestCount  `json:"topGuests"`
	SeriesBreakdown []SeriesCount `json:"seriesBreakdown"`
}
