package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	upSuffix   = ".up.sql"
	downSuffix = ".down.sql"
)

// RunMigrations выполняет *.up.sql файлы из fsys в лексическом порядке.
// Выполненные миграции записываются в schema_migrations и повторно не применяются.
func RunMigrations(ctx context.Context, conn *sqlx.DB, fsys fs.FS) error {
	// Создаём таблицу для отслеживания выполненных миграций
	if err := initMigrationsTable(ctx, conn); err != nil {
		return fmt.Errorf("migrations: не удалось инициализировать таблицу миграций: %w", err)
	}

	// fs.ReadDir возвращает записи, отсортированные по имени
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("migrations: не удалось прочитать каталог миграций: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), upSuffix) {
			continue
		}

		migrationName := strings.TrimSuffix(entry.Name(), upSuffix)

		// Проверяем, была ли миграция уже выполнена
		alreadyApplied, err := isMigrationApplied(ctx, conn, migrationName)
		if err != nil {
			return fmt.Errorf("migrations: не удалось проверить статус миграции %s: %w", migrationName, err)
		}
		if alreadyApplied {
			continue
		}

		if err := applyMigration(ctx, conn, fsys, migrationName); err != nil {
			return err
		}
	}

	return nil
}

// RollbackMigration откатывает последнюю выполненную миграцию парным *.down.sql файлом.
// Возвращает имя откатанной миграции или пустую строку, если откатывать нечего.
func RollbackMigration(ctx context.Context, conn *sqlx.DB, fsys fs.FS) (string, error) {
	if err := initMigrationsTable(ctx, conn); err != nil {
		return "", fmt.Errorf("migrations: не удалось инициализировать таблицу миграций: %w", err)
	}

	var migrationName string
	err := conn.GetContext(ctx, &migrationName,
		`SELECT name FROM schema_migrations ORDER BY name DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("migrations: не удалось найти последнюю миграцию: %w", err)
	}

	sqlBytes, err := fs.ReadFile(fsys, migrationName+downSuffix)
	if err != nil {
		return "", fmt.Errorf("migrations: не удалось прочитать откат %s: %w", migrationName, err)
	}

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("migrations: не удалось начать транзакцию для отката %s: %w", migrationName, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
		return "", fmt.Errorf("migrations: не удалось выполнить откат %s: %w", migrationName, err)
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM schema_migrations WHERE name = ?`), migrationName); err != nil {
		return "", fmt.Errorf("migrations: не удалось снять отметку миграции %s: %w", migrationName, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("migrations: не удалось зафиксировать откат %s: %w", migrationName, err)
	}

	return migrationName, nil
}

// AppliedMigrations возвращает имена выполненных миграций по порядку.
func AppliedMigrations(ctx context.Context, conn *sqlx.DB) ([]string, error) {
	if err := initMigrationsTable(ctx, conn); err != nil {
		return nil, fmt.Errorf("migrations: не удалось инициализировать таблицу миграций: %w", err)
	}

	names := []string{}
	if err := conn.SelectContext(ctx, &names, `SELECT name FROM schema_migrations ORDER BY name`); err != nil {
		return nil, fmt.Errorf("migrations: не удалось получить список миграций: %w", err)
	}
	return names, nil
}

// initMigrationsTable создаёт таблицу для отслеживания выполненных миграций.
// DDL совместим и с PostgreSQL, и с SQLite.
func initMigrationsTable(ctx context.Context, conn *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := conn.ExecContext(ctx, query)
	return err
}

// isMigrationApplied проверяет, была ли миграция уже выполнена.
func isMigrationApplied(ctx context.Context, conn *sqlx.DB, migrationName string) (bool, error) {
	var count int
	query := conn.Rebind(`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`)
	if err := conn.GetContext(ctx, &count, query, migrationName); err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyMigration читает и выполняет конкретный SQL файл.
func applyMigration(ctx context.Context, conn *sqlx.DB, fsys fs.FS, migrationName string) error {
	sqlBytes, err := fs.ReadFile(fsys, migrationName+upSuffix)
	if err != nil {
		return fmt.Errorf("migrations: не удалось прочитать миграцию %s: %w", migrationName, err)
	}

	// Выполняем миграцию в транзакции
	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrations: не удалось начать транзакцию для миграции %s: %w", migrationName, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("migrations: не удалось выполнить миграцию %s: %w", migrationName, err)
	}

	// Отмечаем миграцию как выполненную
	_, err = tx.ExecContext(ctx, tx.Rebind(`INSERT INTO schema_migrations (name) VALUES (?)`), migrationName)
	if err != nil {
		return fmt.Errorf("migrations: не удалось отметить миграцию %s как выполненную: %w", migrationName, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrations: не удалось зафиксировать транзакцию для миграции %s: %w", migrationName, err)
	}

	return nil
}
