package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/reactions-backend/internal/http/middleware"
	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
)

func newContext(userID int64, role string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if userID != 0 {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Set(middleware.ContextRoleKey, role)
	}
	return c
}

func ptr(v int64) *int64 { return &v }

func TestResolveUser(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		role     string
		explicit *int64
		want     int64
		wantErr  error
	}{
		{"current user", 5, models.RoleUser, nil, 5, nil},
		{"anonymous", 0, "", nil, 0, apperror.ErrUnresolvedUser},
		{"explicit self", 5, models.RoleUser, ptr(5), 5, nil},
		{"explicit other", 5, models.RoleUser, ptr(6), 0, apperror.ErrForbidden},
		{"service acts for other", 5, models.RoleService, ptr(6), 6, nil},
		{"anonymous explicit", 0, "", ptr(6), 0, apperror.ErrUnresolvedUser},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveUser(newContext(tc.current, tc.role), tc.explicit)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseIDParam(t *testing.T) {
	c := newContext(0, "")
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	id, err := ParseIDParam(c, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	c.Params = gin.Params{{Key: "id", Value: "-1"}}
	_, err = ParseIDParam(c, "id")
	assert.Error(t, err)
}

func TestOptionalInt64Query(t *testing.T) {
	withQuery := func(target string) *gin.Context {
		c := newContext(0, "")
		c.Request = httptest.NewRequest(http.MethodGet, target, nil)
		return c
	}

	v, err := OptionalInt64Query(withQuery("/?user_id=9"), "user_id")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(9), *v)

	v, err = OptionalInt64Query(withQuery("/"), "user_id")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = OptionalInt64Query(withQuery("/?user_id=x"), "user_id")
	assert.Error(t, err)
}
