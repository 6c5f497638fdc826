package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
	"github.com/ignatzorin/reactions-backend/internal/testutil"
)

func TestArticleAndCommentRepositories(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewDB(t)
	users := NewUserRepository(conn)
	articles := NewArticleRepository(conn)
	comments := NewCommentRepository(conn)

	author := &models.User{Username: "author", DisplayName: "Author"}
	require.NoError(t, users.Create(ctx, author))

	article := &models.Article{AuthorID: author.ID, Title: "Hello"}
	require.NoError(t, articles.Create(ctx, article))
	assert.NotZero(t, article.ID)

	comment := &models.Comment{ArticleID: article.ID, UserID: author.ID, Body: "first"}
	require.NoError(t, comments.Create(ctx, comment))

	gotArticle, err := articles.GetByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", gotArticle.Title)
	assert.Equal(t, models.Ref{Type: models.ReactableArticle, ID: article.ID}, models.RefOf(gotArticle))

	gotComment, err := comments.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", gotComment.Body)

	_, err = articles.GetByID(ctx, 999)
	assert.ErrorIs(t, err, apperror.ErrEntityNotFound)
	_, err = comments.GetByID(ctx, 999)
	assert.ErrorIs(t, err, apperror.ErrEntityNotFound)
}

func TestUserRepository_GetByIDsKeepsOrder(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewDB(t)
	users := NewUserRepository(conn)
	ids := testutil.SeedUsers(t, conn, 3)

	got, err := users.GetByIDs(ctx, []int64{ids[2], 999, ids[0]})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ids[2], got[0].ID)
	assert.Equal(t, "user1", got[1].Username)

	_, err = users.GetByID(ctx, 999)
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)
}
