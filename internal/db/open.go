package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Open подключается к базе выбранного драйвера ("postgres" или "sqlite3").
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "postgres":
		return NewPostgres(ctx, dsn)
	case "sqlite3":
		return NewSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("db: неподдерживаемый драйвер %q", driver)
	}
}
