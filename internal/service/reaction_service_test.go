package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
)

type mockReactionStore struct {
	mock.Mock
}

func (m *mockReactionStore) Create(ctx context.Context, ref models.Ref, userID int64, reactionType string) (*models.Reaction, bool, error) {
	args := m.Called(ctx, ref, userID, reactionType)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*models.Reaction), args.Bool(1), args.Error(2)
}

func (m *mockReactionStore) Toggle(ctx context.Context, ref models.Ref, userID int64, reactionType string) (*models.Reaction, error) {
	args := m.Called(ctx, ref, userID, reactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *mockReactionStore) DeleteByUser(ctx context.Context, ref models.Ref, userID int64) (int64, error) {
	args := m.Called(ctx, ref, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReactionStore) FirstByUser(ctx context.Context, ref models.Ref, userID int64) (*models.Reaction, error) {
	args := m.Called(ctx, ref, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *mockReactionStore) ExistsByUser(ctx context.Context, ref models.Ref, userID int64) (bool, error) {
	args := m.Called(ctx, ref, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockReactionStore) ListByReactable(ctx context.Context, ref models.Ref) ([]models.Reaction, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).([]models.Reaction), args.Error(1)
}

func (m *mockReactionStore) ListReactorIDs(ctx context.Context, ref models.Ref) ([]int64, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockReactionStore) CountByType(ctx context.Context, ref models.Ref, reactionType string) (int64, error) {
	args := m.Called(ctx, ref, reactionType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReactionStore) Summary(ctx context.Context, ref models.Ref) (map[string]int64, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(map[string]int64), args.Error(1)
}

type mockUserResolver struct {
	mock.Mock
}

func (m *mockUserResolver) UsersByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.User), args.Error(1)
}

var testArticle = &models.Article{ID: 42}
var testRef = models.Ref{Type: models.ReactableArticle, ID: 42}

func TestReactionService_RequiresUser(t *testing.T) {
	store := new(mockReactionStore)
	svc := NewReactionService(store, new(mockUserResolver))
	ctx := context.Background()

	_, _, err := svc.React(ctx, testArticle, "like", 0)
	assert.ErrorIs(t, err, apperror.ErrUnresolvedUser)

	_, err = svc.ToggleReaction(ctx, testArticle, "like", 0)
	assert.ErrorIs(t, err, apperror.ErrUnresolvedUser)

	assert.ErrorIs(t, svc.RemoveReaction(ctx, testArticle, 0), apperror.ErrUnresolvedUser)

	_, err = svc.IsReactedBy(ctx, testArticle, 0)
	assert.ErrorIs(t, err, apperror.ErrUnresolvedUser)

	_, err = svc.ReactedBy(ctx, testArticle, -1)
	assert.ErrorIs(t, err, apperror.ErrUnresolvedUser)

	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReactionService_RejectsTypeWiderThanColumn(t *testing.T) {
	store := new(mockReactionStore)
	svc := NewReactionService(store, new(mockUserResolver))
	ctx := context.Background()
	wide := strings.Repeat("a", 256)

	_, _, err := svc.React(ctx, testArticle, wide, 1)
	assert.ErrorIs(t, err, apperror.ErrInvalidReactionType)

	_, err = svc.ToggleReaction(ctx, testArticle, wide, 1)
	assert.ErrorIs(t, err, apperror.ErrInvalidReactionType)

	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReactionService_AcceptsAnyTypeLabel(t *testing.T) {
	store := new(mockReactionStore)
	svc := NewReactionService(store, new(mockUserResolver))
	ctx := context.Background()

	for _, typ := range []string{"", "  ", "Thumbs Up"} {
		want := &models.Reaction{ID: 1, UserID: 7, ReactableType: "article", ReactableID: 42, Type: typ}
		store.On("Create", mock.Anything, testRef, int64(7), typ).Return(want, true, nil).Once()
		store.On("Toggle", mock.Anything, testRef, int64(7), typ).Return(want, nil).Once()
		store.On("CountByType", mock.Anything, testRef, typ).Return(int64(0), nil).Once()

		got, _, err := svc.React(ctx, testArticle, typ, 7)
		require.NoError(t, err, "%q", typ)
		assert.Equal(t, typ, got.Type)

		got, err = svc.ToggleReaction(ctx, testArticle, typ, 7)
		require.NoError(t, err, "%q", typ)
		assert.Equal(t, typ, got.Type)

		n, err := svc.ReactionCountByType(ctx, testArticle, typ)
		require.NoError(t, err, "%q", typ)
		assert.Zero(t, n)
	}
	store.AssertExpectations(t)
}

func TestReactionService_React(t *testing.T) {
	store := new(mockReactionStore)
	svc := NewReactionService(store, new(mockUserResolver))
	want := &models.Reaction{ID: 1, UserID: 7, ReactableType: "article", ReactableID: 42, Type: "like"}

	store.On("Create", mock.Anything, testRef, int64(7), "like").Return(want, true, nil).Once()
	store.On("Create", mock.Anything, testRef, int64(7), "like").Return(want, false, nil).Once()

	got, created, err := svc.React(context.Background(), testArticle, "like", 7)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, want, got)

	got, created, err = svc.React(context.Background(), testArticle, "like", 7)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, want, got)
	store.AssertExpectations(t)
}

func TestReactionService_ToggleOffReturnsNil(t *testing.T) {
	store := new(mockReactionStore)
	svc := NewReactionService(store, new(mockUserResolver))

	store.On("Toggle", mock.Anything, testRef, int64(7), "like").Return(nil, nil)

	got, err := svc.ToggleReaction(context.Background(), testArticle, "like", 7)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReactionService_StorageErrorsPassThrough(t *testing.T) {
	store := new(mockReactionStore)
	svc := NewReactionService(store, new(mockUserResolver))
	boom := errors.New("connection reset")

	store.On("DeleteByUser", mock.Anything, testRef, int64(7)).Return(int64(0), boom)
	store.On("Summary", mock.Anything, testRef).Return(map[string]int64(nil), boom)

	assert.ErrorIs(t, svc.RemoveReaction(context.Background(), testArticle, 7), boom)

	_, err := svc.ReactionSummary(context.Background(), testArticle)
	assert.ErrorIs(t, err, boom)
}

func TestReactionService_ReactingUsersResolvesInOrder(t *testing.T) {
	store := new(mockReactionStore)
	users := new(mockUserResolver)
	svc := NewReactionService(store, users)

	ids := []int64{3, 1, 2}
	want := []models.User{{ID: 3}, {ID: 1}, {ID: 2}}
	store.On("ListReactorIDs", mock.Anything, testRef).Return(ids, nil)
	users.On("UsersByIDs", mock.Anything, ids).Return(want, nil)

	got, err := svc.ReactingUsers(context.Background(), testArticle)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	users.AssertExpectations(t)
}

func TestReactions_ForwardsToService(t *testing.T) {
	store := new(mockReactionStore)
	svc := NewReactionService(store, new(mockUserResolver))
	comment := &models.Comment{ID: 5}
	ref := models.Ref{Type: models.ReactableComment, ID: 5}

	store.On("ExistsByUser", mock.Anything, ref, int64(9)).Return(true, nil)
	store.On("CountByType", mock.Anything, ref, "clap").Return(int64(3), nil)

	reactions := svc.For(comment)
	assert.Equal(t, comment, reactions.Entity())

	ok, err := reactions.IsReactedBy(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := reactions.CountByType(context.Background(), "clap")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	store.AssertExpectations(t)
}
