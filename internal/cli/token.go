package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/reactions-backend/internal/models"
	"github.com/ignatzorin/reactions-backend/internal/service"
)

// NewTokenCommand выпускает access токен для локальной отладки API.
func NewTokenCommand(rootOpts *RootOptions) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:          "token <user-id>",
		Short:        "Выпустить access токен",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("user-id должен быть целым числом: %q", args[0])
			}

			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}

			tokens := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)
			token, _, err := tokens.Issue(userID, role)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", models.RoleUser, "роль в токене (user|service)")

	return cmd
}
