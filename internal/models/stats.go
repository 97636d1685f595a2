package models

import "time"

// StatCard: карточка на главной дашборда.
type StatCard struct {
	Title      string `json:"title"`
	Value      string `json:"value"`
	Change     string `json:"change"`
	ChangeType string `json:"changeType"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
}

// ContentTotals: сырые счётчики для карточек дашборда.
type ContentTotals struct {
	Articles              int
	Videos                int
	Podcasts              int
	TotalViews            int64
	NewArticles           int
	NewVideos             int
	NewPodcasts           int
	RecentViews           int64
	Published             int
	PublishedWithComments int
}

type DashboardArticle struct {
	ID                  int64      `db:"id"                    json:"id"`
	Title               string     `db:"title"                 json:"title"`
	Status              string     `db:"status"                json:"status"`
	Views               int64      `db:"views"                 json:"views"`
	PublishDate         *time.Time `db:"publish_date"          json:"-"`
	CreatedAt           time.Time  `db:"created_at"            json:"-"`
	CategoryName        string     `db:"category_name"         json:"category"`
	IsMainArticle       bool       `db:"is_main_article"       json:"-"`
	IsSecondMainArticle bool       `db:"is_second_main_article" json:"-"`
	MainArticlePosition *string    `db:"main_article_position" json:"mainPosition"`
}

type RecentArticle struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Status       string  `json:"status"`
	Views        int64   `json:"views"`
	Date         string  `json:"date"`
	Category     string  `json:"category"`
	IsMain       bool    `json:"isMain"`
	MainPosition *string `json:"mainPosition"`
}

type Analytics struct {
	MostPopularCategory string `json:"mostPopularCategory"`
	AvgReadTime         string `json:"avgReadTime"`
	EngagementRate      string `json:"engagementRate"`
	NewSubscribers      string `json:"newSubscribers"`
}

// SearchResults: ответ глобального поиска по опубликованному контенту.
type SearchResults struct {
	Query    string     `json:"query"`
	Articles []*Article `json:"articles"`
	Videos   []*Video   `json:"videos"`
	TVShows  []*TVShow  `json:"tvshows"`
	Podcasts []*Podcast `json:"podcasts"`
}
