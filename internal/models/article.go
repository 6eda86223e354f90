package models

import (
	"time"
)

// DefaultArticleImageURL is stored when an article is created without an image
const DefaultArticleImageURL = "https://images.pexels.com/photos/97050/pexels-photo-97050.jpeg?w=700&h=700"

// Article represents an article in the system
type Article struct {
	ID           int       `json:"article_id" db:"article_id"`
	Title        string    `json:"title" db:"title"`
	Topic        string    `json:"topic" db:"topic"`
	Author       string    `json:"author" db:"author"`
	Body         string    `json:"body" db:"body"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	Votes        int       `json:"votes" db:"votes"`
	ImageURL     string    `json:"article_img_url" db:"article_img_url"`
	CommentCount int       `json:"comment_count" db:"-"` // derived at read time, never stored
}

// ArticlePage is one page of a filtered article listing
type ArticlePage struct {
	Articles   []*Article `json:"articles"`
	TotalCount int        `json:"total_count"`
}

// NewArticle is the request body for creating an article
type NewArticle struct {
	Author   string `json:"author" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Topic    string `json:"topic" binding:"required"`
	ImageURL string `json:"article_img_url"`
}

// VoteUpdate is the request body for PATCH on articles and comments
type VoteUpdate struct {
	IncVotes *int `json:"inc_votes"`
}
