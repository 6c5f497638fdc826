package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignatzorin/reactions-backend/internal/app"
	"github.com/ignatzorin/reactions-backend/internal/config"
	"github.com/ignatzorin/reactions-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/reactions-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/reactions-backend/internal/http/router"
	"github.com/ignatzorin/reactions-backend/internal/logger"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Configure(cfg.Env, cfg.LogLevel)

	// Подключение к базе и миграции.
	application, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(application)

	if err := application.Migrate(ctx); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// HTTP хэндлеры.
	healthHandler := httpHandlers.NewHealthHandler(application.DB)
	reactionHandler := httpHandlers.NewReactionHandler(application.Reactions, application.Registry)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, healthHandler, reactionHandler, application.Tokens, application.Registry.Known)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	stopped := goroutine.SafeGoWithContext(ctx, "http-shutdown", func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	logger.Log.WithField("driver", cfg.DBDriver).Infof("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
	<-stopped
}

// safeClose закрывает соединение с базой.
func safeClose(a *app.App) {
	if err := a.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
