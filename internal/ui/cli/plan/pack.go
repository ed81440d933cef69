package plan

import (
	"fmt"

	"github.com/aretesun/hey-there/internal/shared"
	"github.com/aretesun/hey-there/internal/ui/render"
	"github.com/spf13/cobra"
)

var packCmd = &cobra.Command{
	Use:   "pack [trip_id]",
	Short: "Suggest a packing list for an archived plan",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id string
		if len(args) > 0 {
			id = args[0]
		}

		p, repo, err := shared.InitializePlanner(cmd.Context())
		if err != nil {
			return err
		}
		defer repo.Close()

		current, err := loadTrip(cmd.Context(), p, id)
		if err != nil {
			return fmt.Errorf("failed to load trip: %w", err)
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "%s 여행 준비물을 정리하는 중...\n", current.City)
		list, err := p.PackingList(cmd.Context())
		if err != nil {
			return err
		}
		render.PackingList(cmd.OutOrStdout(), list, render.Plain())
		return nil
	},
}

func init() {
	PlanCmd.AddCommand(packCmd)
}
