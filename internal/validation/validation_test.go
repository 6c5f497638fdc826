package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/reactions-backend/internal/pkg/apperror"
)

func TestReactionType(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"like", true},
		{"🎉", true},
		{"thumbs up", true},
		{"", true},
		{"   ", true},
		{strings.Repeat("a", 255), true},
		{strings.Repeat("я", 255), true},
		{strings.Repeat("a", 256), false},
		{strings.Repeat("я", 256), false},
	}
	for _, tc := range cases {
		err := ReactionType(tc.value)
		if tc.ok {
			assert.NoError(t, err, "%q", tc.value)
		} else {
			assert.ErrorIs(t, err, apperror.ErrInvalidReactionType, "%q", tc.value)
		}
	}
}

type sample struct {
	Type   string `json:"type" validate:"reaction_type"`
	UserID int64  `json:"user_id" validate:"gte=0"`
	Note   string `json:"note" validate:"max=3"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{Type: "like"}))
	require.NoError(t, Struct(sample{Type: " "}))

	err := Struct(sample{Type: strings.Repeat("a", 256)})
	assert.ErrorIs(t, err, apperror.ErrInvalidReactionType)

	err = Struct(sample{Type: "like", UserID: -1})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "user_id")

	err = Struct(sample{Type: "like", Note: "toolong"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "note")
}
