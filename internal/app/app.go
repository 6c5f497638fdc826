// Package app собирает зависимости приложения: базу, репозитории, реестр объектов и сервисы.
// Используется и HTTP сервером, и reactctl.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/reactions-backend/internal/config"
	"github.com/ignatzorin/reactions-backend/internal/db"
	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/registry"
	"github.com/ignatzorin/reactions-backend/internal/repository"
	"github.com/ignatzorin/reactions-backend/internal/service"
	"github.com/ignatzorin/reactions-backend/migrations"
)

type App struct {
	DB        *sqlx.DB
	Registry  *registry.Registry
	Reactions *service.ReactionService
	Tokens    *service.TokenManager
}

// Open подключается к базе из конфигурации и собирает сервисы. Миграции не применяются.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return New(conn, cfg), nil
}

// New собирает сервисы поверх готового подключения.
func New(conn *sqlx.DB, cfg *config.Config) *App {
	// Репозитории.
	userRepo := repository.NewUserRepository(conn)
	articleRepo := repository.NewArticleRepository(conn)
	commentRepo := repository.NewCommentRepository(conn)
	reactionRepo := repository.NewReactionRepository(conn)

	// Реестр объектов, на которые можно реагировать.
	reg := registry.New(userRepo)
	reg.Register(models.ReactableArticle, registry.Adapt(articleRepo.GetByID))
	reg.Register(models.ReactableComment, registry.Adapt(commentRepo.GetByID))

	return &App{
		DB:        conn,
		Registry:  reg,
		Reactions: service.NewReactionService(reactionRepo, reg),
		Tokens:    service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL),
	}
}

// Migrate применяет миграции для драйвера текущего подключения.
func (a *App) Migrate(ctx context.Context) error {
	fsys, err := migrations.For(a.DB.DriverName())
	if err != nil {
		return err
	}
	if err := db.RunMigrations(ctx, a.DB, fsys); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	return nil
}

// Rollback откатывает последнюю миграцию и возвращает её имя.
func (a *App) Rollback(ctx context.Context) (string, error) {
	fsys, err := migrations.For(a.DB.DriverName())
	if err != nil {
		return "", err
	}
	return db.RollbackMigration(ctx, a.DB, fsys)
}

func (a *App) Close() error {
	return a.DB.Close()
}
