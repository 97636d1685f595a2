package models

import "time"

type Comment struct {
	ID         int64     `db:"id"          json:"id"`
	ArticleID  int64     `db:"article_id"  json:"articleId"`
	Name       string    `db:"name"        json:"name"`
	Email      string    `db:"email"       json:"email"`
	Content    string    `db:"content"     json:"content"`
	IsApproved bool      `db:"is_approved" json:"isApproved"`
	IPAddress  string    `db:"ip_address"  json:"ipAddress"`
	UserAgent  string    `db:"user_agent"  json:"userAgent"`
	CreatedAt  time.Time `db:"created_at"  json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at"  json:"updatedAt"`
}

// PublicComment: комментарий без персональных данных (email, ip, user agent).
type PublicComment struct {
	ID         int64     `db:"id"          json:"id"`
	ArticleID  int64     `db:"article_id"  json:"articleId"`
	Name       string    `db:"name"        json:"name"`
	Content    string    `db:"content"     json:"content"`
	IsApproved bool      `db:"is_approved" json:"isApproved"`
	CreatedAt  time.Time `db:"created_at"  json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at"  json:"updatedAt"`
}

func (c *Comment) Public() PublicComment {
	return PublicComment{
		ID:         c.ID,
		ArticleID:  c.ArticleID,
		Name:       c.Name,
		Content:    c.Content,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// RecentComment: строка админской ленты: email виден, ip и user agent нет.
type RecentComment struct {
	ID           int64     `db:"id"            json:"id"`
	ArticleID    int64     `db:"article_id"    json:"articleId"`
	ArticleTitle *string   `db:"article_title" json:"articleTitle"`
	Name         string    `db:"name"          json:"name"`
	Email        string    `db:"email"         json:"email"`
	Content      string    `db:"content"       json:"content"`
	IsApproved   bool      `db:"is_approved"   json:"isApproved"`
	CreatedAt    time.Time `db:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at"    json:"updatedAt"`
}

// swagger:model CommentRequest
type CommentRequest struct {
	Name    string `json:"name"    validate:"max=100"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Content string `json:"content" validate:"max=1000"`
}
