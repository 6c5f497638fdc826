package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
	"github.com/ignatzorin/reactions-backend/internal/repository"
	"github.com/ignatzorin/reactions-backend/internal/testutil"
)

type fakeUsers struct {
	users map[int64]models.User
	calls int
}

func (f *fakeUsers) GetByIDs(_ context.Context, ids []int64) ([]models.User, error) {
	f.calls++
	out := []models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestResolve_UnknownType(t *testing.T) {
	reg := New(&fakeUsers{})

	_, err := reg.Resolve(context.Background(), models.Ref{Type: "post", ID: 1})
	assert.ErrorIs(t, err, apperror.ErrUnknownReactable)
}

func TestResolve_MapsNotFound(t *testing.T) {
	reg := New(&fakeUsers{})
	reg.Register("post", func(context.Context, int64) (models.Reactable, error) {
		return nil, apperror.ErrEntityNotFound
	})

	_, err := reg.Resolve(context.Background(), models.Ref{Type: "post", ID: 1})
	assert.ErrorIs(t, err, apperror.ErrEntityNotFound)
}

func TestResolve_WrapsStorageErrors(t *testing.T) {
	boom := errors.New("connection refused")
	reg := New(&fakeUsers{})
	reg.Register("post", func(context.Context, int64) (models.Reactable, error) {
		return nil, boom
	})

	_, err := reg.Resolve(context.Background(), models.Ref{Type: "post", ID: 1})
	assert.ErrorIs(t, err, boom)
	assert.False(t, apperror.IsNotFound(err))
}

func TestResolve_Adapt(t *testing.T) {
	reg := New(&fakeUsers{})
	reg.Register(models.ReactableArticle, Adapt(func(_ context.Context, id int64) (*models.Article, error) {
		return &models.Article{ID: id, Title: "t"}, nil
	}))

	entity, err := reg.Resolve(context.Background(), models.Ref{Type: models.ReactableArticle, ID: 5})
	require.NoError(t, err)
	assert.Equal(t, models.Ref{Type: models.ReactableArticle, ID: 5}, models.RefOf(entity))
	assert.True(t, reg.Known(models.ReactableArticle))
	assert.False(t, reg.Known(models.ReactableComment))
}

func TestTypesSorted(t *testing.T) {
	reg := New(&fakeUsers{})
	noop := func(context.Context, int64) (models.Reactable, error) { return nil, nil }
	reg.Register("post", noop)
	reg.Register("article", noop)
	reg.Register("comment", noop)

	assert.Equal(t, []string{"article", "comment", "post"}, reg.Types())
}

func TestUsersByIDs(t *testing.T) {
	users := &fakeUsers{users: map[int64]models.User{
		1: {ID: 1, Username: "a"},
		2: {ID: 2, Username: "b"},
	}}
	reg := New(users)

	got, err := reg.UsersByIDs(context.Background(), []int64{2, 3, 1})
	require.NoError(t, err)
	assert.Equal(t, []models.User{{ID: 2, Username: "b"}, {ID: 1, Username: "a"}}, got)

	got, err = reg.UsersByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, users.calls)
}

func TestRegistry_WithRepositories(t *testing.T) {
	ctx := context.Background()
	conn := testutil.NewDB(t)
	userIDs := testutil.SeedUsers(t, conn, 1)
	articleID := testutil.SeedArticle(t, conn, userIDs[0], "hello")
	commentID := testutil.SeedComment(t, conn, articleID, userIDs[0], "hi")

	reg := New(repository.NewUserRepository(conn))
	reg.Register(models.ReactableArticle, Adapt(repository.NewArticleRepository(conn).GetByID))
	reg.Register(models.ReactableComment, Adapt(repository.NewCommentRepository(conn).GetByID))

	article, err := reg.Resolve(ctx, models.Ref{Type: models.ReactableArticle, ID: articleID})
	require.NoError(t, err)
	assert.Equal(t, "hello", article.(*models.Article).Title)

	comment, err := reg.Resolve(ctx, models.Ref{Type: models.ReactableComment, ID: commentID})
	require.NoError(t, err)
	assert.Equal(t, commentID, comment.ReactableID())

	_, err = reg.Resolve(ctx, models.Ref{Type: models.ReactableComment, ID: 404})
	assert.ErrorIs(t, err, apperror.ErrEntityNotFound)
}
