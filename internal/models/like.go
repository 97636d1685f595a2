package models

import "time"

type Like struct {
	ID        int64     `db:"id"         json:"id"`
	ArticleID int64     `db:"article_id" json:"articleId"`
	Count     int       `db:"count"      json:"count"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type LikeCount struct {
	ArticleID int64 `json:"articleId"`
	LikeCount int   `json:"likeCount"`
}

type MostLikedArticle struct {
	ArticleID     int64     `db:"article_id"     json:"articleId"`
	LikeCount     int       `db:"like_count"     json:"likeCount"`
	Title         string    `db:"title"          json:"title"`
	Excerpt       string    `db:"excerpt"        json:"excerpt"`
	FeaturedImage string    `db:"featured_image" json:"featuredImage"`
	CategoryName  string    `db:"category_name"  json:"categoryName"`
	Author        string    `db:"author"         json:"author"`
	PublishDate   time.Time `db:"publish_date"   json:"publishDate"`
}
