package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Queryer - общий интерфейс *sqlx.DB и *sqlx.Tx.
// Запросы пишутся с плейсхолдером "?" и переводятся в синтаксис драйвера через Rebind.
type Queryer interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
	Rebind(query string) string
}

// GetByID - универсальная функция для получения сущности по ID
func GetByID[T any](ctx context.Context, q Queryer, table string, id int64, notFoundErr error) (*T, error) {
	var entity T
	query := q.Rebind(fmt.Sprintf("SELECT * FROM %s WHERE id = ?", table))

	if err := sqlx.GetContext(ctx, q, &entity, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundErr
		}
		return nil, fmt.Errorf("get by id from %s: %w", table, err)
	}

	return &entity, nil
}

// GetByIDs загружает сущности по списку ID одним запросом (без N+1).
// Порядок результата не гарантирован; отсутствующие ID пропускаются.
func GetByIDs[T any](ctx context.Context, q Queryer, table string, ids []int64) ([]T, error) {
	entities := []T{}
	if len(ids) == 0 {
		return entities, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf("SELECT * FROM %s WHERE id IN (?)", table), ids)
	if err != nil {
		return nil, fmt.Errorf("build get by ids for %s: %w", table, err)
	}

	if err := sqlx.SelectContext(ctx, q, &entities, q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("get by ids from %s: %w", table, err)
	}

	return entities, nil
}

// WithTransaction выполняет функцию внутри транзакции с правильной обработкой ошибок
func WithTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			// При панике откатываем транзакцию
			_ = tx.Rollback()
			panic(p)
		}
	}()

	err = fn(tx)
	if err != nil {
		// При ошибке откатываем транзакцию
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx error: %w, rollback error: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
