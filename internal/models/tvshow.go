package models

import "time"

var (
	TVShowCategories = []string{"Full Episodes", "Mind Battles", "Pitch Perfect", "Insight Stories", "Behind Insight"}
	TVShowSections   = []string{"FullEpisodes", "MindBattles", "PitchPerfect", "InsightStories", "BehindInsight"}
)

// TVShow: выпуск ТВ-шоу. Views хранится строкой.
type TVShow struct {
	ID              int64     `db:"id"               json:"id"`
	Title           string    `db:"title"            json:"title"`
	Description     string    `db:"description"      json:"description"`
	Duration        string    `db:"duration"         json:"duration"`
	Category        string    `db:"category"         json:"category"`
	Section         string    `db:"section"          json:"section"`
	SeasonID        *string   `db:"season_id"        json:"season_id"`
	EpisodeNumber   *int      `db:"episode_number"   json:"episode_number"`
	Thumbnail       string    `db:"thumbnail"        json:"thumbnail"`
	YoutubeURL      string    `db:"youtube_url"      json:"youtube_url"`
	Tags            string    `db:"tags"             json:"tags"`
	MetaDescription string    `db:"meta_description" json:"meta_description"`
	Featured        bool      `db:"featured"         json:"featured"`
	IsNew           bool      `db:"is_new"           json:"is_new"`
	Rating          float64   `db:"rating"           json:"rating"`
	Status          string    `db:"status"           json:"status"`
	UploadDate      time.Time `db:"upload_date"      json:"upload_date"`
	Views           string    `db:"views"            json:"views"`
	Likes           int       `db:"likes"            json:"likes"`
	CommentsCount   int       `db:"comments_count"   json:"comments_count"`
	CreatedAt       time.Time `db:"created_at"       json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at"       json:"updatedAt"`
}

// TVShowInput: редактируемые поля выпуска. При обновлении тело запроса
// накладывается поверх текущих значений, поэтому отсутствующие поля не меняются.
type TVShowInput struct {
	Title           string     `json:"title"            validate:"required,max=200"`
	Description     string     `json:"description"      validate:"required,max=2000"`
	Duration        string     `json:"duration"         validate:"required"`
	Category        string     `json:"category"         validate:"required,tvshow_category"`
	Section         string     `json:"section"          validate:"required,tvshow_section"`
	SeasonID        *string    `json:"season_id"`
	EpisodeNumber   *int       `json:"episode_number"   validate:"omitempty,gte=1"`
	Thumbnail       string     `json:"thumbnail"        validate:"required"`
	YoutubeURL      string     `json:"youtube_url"      validate:"required,url"`
	Tags            string     `json:"tags"             validate:"max=500"`
	MetaDescription string     `json:"meta_description" validate:"max=160"`
	Featured        bool       `json:"featured"`
	IsNew           bool       `json:"is_new"`
	Rating          float64    `json:"rating"           validate:"gte=0,lte=5"`
	Status          string     `json:"status"           validate:"omitempty,oneof=draft published scheduled"`
	UploadDate      *time.Time `json:"upload_date"`
}

func TVShowInputFrom(s *TVShow) TVShowInput {
	upload := s.UploadDate
	return TVShowInput{
		Title:           s.Title,
		Description:     s.Description,
		Duration:        s.Duration,
		Category:        s.Category,
		Section:         s.Section,
		SeasonID:        s.SeasonID,
		EpisodeNumber:   s.EpisodeNumber,
		Thumbnail:       s.Thumbnail,
		YoutubeURL:      s.YoutubeURL,
		Tags:            s.Tags,
		MetaDescription: s.MetaDescription,
		Featured:        s.Featured,
		IsNew:           s.IsNew,
		Rating:          s.Rating,
		Status:          s.Status,
		UploadDate:      &upload,
	}
}

type TVShowFilter struct {
	Category   string
	Status     string
	Featured   *bool
	IsNew      *bool
	Search     string
	OnlyPublic bool
}

type CategoryCount struct {
	Category string `db:"category" json:"_id"`
	Count    int    `db:"count"    json:"count"`
}

type TVShowStats struct {
	Total             int             `json:"total"`
	Published         int             `json:"published"`
	Draft             int             `json:"draft"`
	Featured          int             `json:"featured"`
	New               int             `json:"new"`
	AvgRating         float64         `json:"avgRating"`
	CategoryBreakdown []CategoryCount `json:"categoryBreakdown"`
}
