package models

import "time"

// Article - статья, на которую пользователи ставят реакции.
type Article struct {
	ID        int64     `db:"id" json:"id"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (a *Article) ReactableType() string { return ReactableArticle }
func (a *Article) ReactableID() int64    { return a.ID }

// Comment - комментарий к статье.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	ArticleID int64     `db:"article_id" json:"article_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (c *Comment) ReactableType() string { return ReactableComment }
func (c *Comment) ReactableID() int64    { return c.ID }
