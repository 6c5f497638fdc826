package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/reactions-backend/internal/dto"
	"github.com/ignatzorin/reactions-backend/internal/models"
)

// NewSummaryCommand печатает сводку реакций объекта в JSON.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:          "summary <reactable-type> <id>",
		Short:        "Показать количество реакций по типам",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("id должен быть положительным целым числом: %q", args[1])
			}

			a, _, err := rootOpts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			entity, err := a.Registry.Resolve(cmd.Context(), models.Ref{Type: args[0], ID: id})
			if err != nil {
				return err
			}

			summary, err := a.Reactions.ReactionSummary(cmd.Context(), entity)
			if err != nil {
				return err
			}

			var total int64
			for _, n := range summary {
				total += n
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.SummaryResponse{Summary: summary, Total: total})
		},
	}
}
