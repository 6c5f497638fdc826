// Package cli реализует команды reactctl.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/reactions-backend/internal/app"
	"github.com/ignatzorin/reactions-backend/internal/config"
	"github.com/ignatzorin/reactions-backend/internal/logger"
)

// RootOptions - глобальные флаги всех команд.
type RootOptions struct {
	Verbose bool

	// loadConfig подменяется в тестах.
	loadConfig func() (*config.Config, error)
}

// NewRootCommand создаёт корневую команду reactctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{loadConfig: config.Load})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reactctl",
		Short: "reactctl - утилита для хранилища реакций",
		Long:  "Служебные команды хранилища реакций: миграции, сводки и выпуск токенов для локальной отладки.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.Verbose {
				level = "debug"
			}
			logger.Init(level)
			logger.SetTextFormatter()
			logger.SetOutput(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "подробный вывод")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSummaryCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))

	return cmd
}

// openApp загружает конфигурацию и подключается к базе.
func (o *RootOptions) openApp(ctx context.Context) (*app.App, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}
