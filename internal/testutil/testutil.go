// Package testutil поднимает SQLite базу в памяти с боевыми миграциями для тестов.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/reactions-backend/internal/db"
	"github.com/ignatzorin/reactions-backend/migrations"
)

// NewDB возвращает чистую базу с применёнными миграциями. База закрывается по завершении теста.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	conn, err := db.NewSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	fsys, err := migrations.For("sqlite3")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations(ctx, conn, fsys))

	return conn
}

// SeedUsers создаёт n пользователей user1..userN и возвращает их ID по порядку.
func SeedUsers(t testing.TB, conn *sqlx.DB, n int) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for i := 1; i <= n; i++ {
		var id int64
		err := conn.Get(&id,
			conn.Rebind(`INSERT INTO users (username, display_name) VALUES (?, ?) RETURNING id`),
			fmt.Sprintf("user%d", i), fmt.Sprintf("User %d", i))
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

// SeedArticle создаёт статью автора authorID и возвращает её ID.
func SeedArticle(t testing.TB, conn *sqlx.DB, authorID int64, title string) int64 {
	t.Helper()

	var id int64
	err := conn.Get(&id,
		conn.Rebind(`INSERT INTO articles (author_id, title) VALUES (?, ?) RETURNING id`),
		authorID, title)
	require.NoError(t, err)
	return id
}

// SeedComment создаёт комментарий к статье и возвращает его ID.
func SeedComment(t testing.TB, conn *sqlx.DB, articleID, userID int64, body string) int64 {
	t.Helper()

	var id int64
	err := conn.Get(&id,
		conn.Rebind(`INSERT INTO comments (article_id, user_id, body) VALUES (?, ?, ?) RETURNING id`),
		articleID, userID, body)
	require.NoError(t, err)
	return id
}
