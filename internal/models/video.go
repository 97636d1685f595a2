package models

import "time"

type Video struct {
	ID              int64     `db:"id"               json:"id"`
	Title           string    `db:"title"            json:"title"`
	Description     string    `db:"description"      json:"description"`
	Duration        string    `db:"duration"         json:"duration"`
	Category        string    `db:"category"         json:"category"`
	Section         string    `db:"section"          json:"section"`
	Thumbnail       string    `db:"thumbnail"        json:"thumbnail"`
	YoutubeURL      string    `db:"youtube_url"      json:"youtube_url"`
	Tags            string    `db:"tags"             json:"tags"`
	MetaDescription string    `db:"meta_description" json:"meta_description"`
	IsNew           bool      `db:"is_new"           json:"is_new"`
	Rating          float64   `db:"rating"           json:"rating"`
	Status          string    `db:"status"           json:"status"`
	UploadDate      time.Time `db:"upload_date"      json:"upload_date"`
	Views           int64     `db:"views"            json:"views"`
	CreatedAt       time.Time `db:"created_at"       json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at"       json:"updatedAt"`
}

// swagger:model VideoRequest
type VideoRequest struct {
	Title           string     `json:"title"            validate:"required"`
	Description     string     `json:"description"      validate:"required"`
	Duration        string     `json:"duration"`
	Category        string     `json:"category"         validate:"required,article_category"`
	Section         string     `json:"section"`
	Thumbnail       string     `json:"thumbnail"        validate:"omitempty,url"`
	YoutubeURL      string     `json:"youtube_url"      validate:"omitempty,url"`
	Tags            string     `json:"tags"`
	MetaDescription string     `json:"meta_description" validate:"max=160"`
	IsNew           bool       `json:"is_new"`
	Rating          float64    `json:"rating"           validate:"gte=0,lte=5"`
	Status          string     `json:"status"           validate:"omitempty,oneof=published"`
	UploadDate      *time.Time `json:"upload_date"`
}

type VideoFilter struct {
	Category   string
	Search     string
	OnlyPublic bool
}
