package models

import (
	"encoding/json"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusReview    = "review"
	StatusPublished = "published"
	StatusScheduled = "scheduled"

	PositionMain   = "main"
	PositionSecond = "second"
)

// ArticleCategories: допустимые рубрики журнала (также используются видео).
var ArticleCategories = []string{
	"Research World",
	"Spirit of Africa",
	"Tech Trends",
	"Need to Know",
	"Echoes of Home",
	"Career Campus",
	"Mind and Body Quest",
	"E! Corner",
}

type ArticleImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"     validate:"required,url"`
	Alt     string `json:"alt"`
	Caption string `json:"caption"`
}

type Article struct {
	ID                  int64          `db:"id"                     json:"id"`
	Title               string         `db:"title"                  json:"title"`
	Subtitle            string         `db:"subtitle"               json:"subtitle"`
	Excerpt             string         `db:"excerpt"                json:"excerpt"`
	Content             string         `db:"content"                json:"content"`
	CategoryName        string         `db:"category_name"          json:"categoryName"`
	Author              string         `db:"author"                 json:"author"`
	AuthorBio           string         `db:"author_bio"             json:"authorBio"`
	PublishDate         time.Time      `db:"publish_date"           json:"publishDate"`
	ReadTime            string         `db:"read_time"              json:"readTime"`
	Tags                string         `db:"tags"                   json:"tags"`
	FeaturedImage       string         `db:"featured_image"         json:"featuredImage"`
	FeaturedImageAlt    string         `db:"featured_image_alt"     json:"featuredImageAlt"`
	AdditionalImages    []ArticleImage `db:"additional_images"      json:"additionalImages"`
	MetaDescription     string         `db:"meta_description"       json:"metaDescription"`
	Status              string         `db:"status"                 json:"status"`
	AllowComments       bool           `db:"allow_comments"         json:"allowComments"`
	Featured            bool           `db:"featured"               json:"featured"`
	Trending            bool           `db:"trending"               json:"trending"`
	EditorsPick         bool           `db:"editors_pick"           json:"editors_pick"`
	IsMainArticle       bool           `db:"is_main_article"        json:"isMainArticle"`
	IsSecondMainArticle bool           `db:"is_second_main_article" json:"isSecondMainArticle"`
	MainArticlePosition *string        `db:"main_article_position"  json:"mainArticlePosition"`
	Views               int64          `db:"views"                  json:"views"`
	CreatedAt           time.Time      `db:"created_at"             json:"createdAt"`
	UpdatedAt           time.Time      `db:"updated_at"             json:"updatedAt"`
}

// MainArticles: пара главных статей для витрины; любая может отсутствовать.
type MainArticles struct {
	MainArticle       *Article `json:"mainArticle"`
	SecondMainArticle *Article `json:"secondMainArticle"`
}

// swagger:model ArticleRequest
type ArticleRequest struct {
	Title            string         `json:"title"            validate:"required,max=200" example:"Inside the lab"`
	Subtitle         string         `json:"subtitle"`
	Excerpt          string         `json:"excerpt"          validate:"required,max=500"`
	Content          string         `json:"content"          validate:"required"`
	CategoryName     string         `json:"categoryName"     validate:"required,article_category" example:"Tech Trends"`
	Author           string         `json:"author"           validate:"required,max=100"`
	AuthorBio        string         `json:"authorBio"`
	PublishDate      *time.Time     `json:"publishDate"`
	ReadTime         string         `json:"readTime"         example:"5 min"`
	Tags             string         `json:"tags"`
	FeaturedImage    string         `json:"featuredImage"    validate:"required,url"`
	FeaturedImageAlt string         `json:"featuredImageAlt"`
	AdditionalImages []ArticleImage `json:"additionalImages" validate:"dive"`
	MetaDescription  string         `json:"metaDescription"  validate:"max=160"`
	Status           string         `json:"status"           validate:"omitempty,oneof=draft review published"`
	AllowComments    *bool          `json:"allowComments"`
	Featured         bool           `json:"featured"`
	Trending         bool           `json:"trending"`
	EditorsPick      bool           `json:"editors_pick"`
}

// UnmarshalJSON принимает и snake_case-варианты полей, которые шлёт старая админка.
func (r *ArticleRequest) UnmarshalJSON(b []byte) error {
	type plain ArticleRequest
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	var alt struct {
		CategoryName     *string        `json:"category_name"`
		AuthorBio        *string        `json:"author_bio"`
		PublishDate      *time.Time     `json:"publish_date"`
		ReadTime         *string        `json:"read_time"`
		FeaturedImage    *string        `json:"featured_image"`
		FeaturedImageAlt *string        `json:"featured_image_alt"`
		AdditionalImages []ArticleImage `json:"additional_images"`
		MetaDescription  *string        `json:"meta_description"`
		AllowComments    *bool          `json:"allow_comments"`
		EditorsPick      *bool          `json:"editorsPick"`
	}
	if err := json.Unmarshal(b, &alt); err != nil {
		return err
	}

	fill := func(dst *string, src *string) {
		if *dst == "" && src != nil {
			*dst = *src
		}
	}
	fill(&p.CategoryName, alt.CategoryName)
	fill(&p.AuthorBio, alt.AuthorBio)
	fill(&p.ReadTime, alt.ReadTime)
	fill(&p.FeaturedImage, alt.FeaturedImage)
	fill(&p.FeaturedImageAlt, alt.FeaturedImageAlt)
	fill(&p.MetaDescription, alt.MetaDescription)
	if p.PublishDate == nil {
		p.PublishDate = alt.PublishDate
	}
	if p.AdditionalImages == nil {
		p.AdditionalImages = alt.AdditionalImages
	}
	if p.AllowComments == nil {
		p.AllowComments = alt.AllowComments
	}
	if alt.EditorsPick != nil && !p.EditorsPick {
		p.EditorsPick = *alt.EditorsPick
	}

	*r = ArticleRequest(p)
	return nil
}

// SetMainRequest: тело запроса PUT /articles/{id}/set-main.
type SetMainRequest struct {
	Position string `json:"position" example:"main"`
}

// ArticleFilter: фильтры списков статей; nil означает «не фильтровать».
type ArticleFilter struct {
	Status      string
	Category    string
	Featured    *bool
	Trending    *bool
	EditorsPick *bool
	Search      string
	NoEditorial bool // только статьи без featured/trending/editors_pick
	ExcludeMain bool
	OnlyPublic  bool // только опубликованные, сортировка по дате публикации
}
