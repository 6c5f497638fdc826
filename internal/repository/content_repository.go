package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
	"github.com/ignatzorin/reactions-backend/internal/repository/common"
)

// ArticleRepository отвечает за таблицу articles.
type ArticleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) error {
	now := time.Now().UTC().Truncate(time.Microsecond)
	article.CreatedAt, article.UpdatedAt = now, now

	query := r.db.Rebind(`
		INSERT INTO articles (author_id, title, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)
	if err := r.db.GetContext(ctx, &article.ID, query,
		article.AuthorID, article.Title, article.Body, now, now,
	); err != nil {
		return fmt.Errorf("article repository: create: %w", err)
	}
	return nil
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	return common.GetByID[models.Article](ctx, r.db, "articles", id, apperror.ErrEntityNotFound)
}

// CommentRepository отвечает за таблицу comments.
type CommentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	now := time.Now().UTC().Truncate(time.Microsecond)
	comment.CreatedAt, comment.UpdatedAt = now, now

	query := r.db.Rebind(`
		INSERT INTO comments (article_id, user_id, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)
	if err := r.db.GetContext(ctx, &comment.ID, query,
		comment.ArticleID, comment.UserID, comment.Body, now, now,
	); err != nil {
		return fmt.Errorf("comment repository: create: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	return common.GetByID[models.Comment](ctx, r.db, "comments", id, apperror.ErrEntityNotFound)
}
