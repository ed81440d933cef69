package plan

import (
	"fmt"
	"io"
	"time"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/shared"
	"github.com/aretesun/hey-there/internal/ui/render"
	"github.com/spf13/cobra"
)

var showTurns bool

var viewCmd = &cobra.Command{
	Use:   "view [trip_id]",
	Short: "Show an archived plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := shared.OpenRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		trip, err := repo.GetTripByPartialID(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to find trip: %w", err)
		}
		p, err := trip.Plan()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Trip %s (created %s)\n\n", trip.ShortID(), trip.CreatedAt.Format(time.RFC822))
		render.Plan(out, p, true, render.Plain())

		if showTurns {
			printTurns(out, trip.Conversation(), limitFlag)
		}
		return nil
	},
}

func printTurns(w io.Writer, turns []domain.Turn, limit int) {
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	if len(turns) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, t := range turns {
		roleStr := "You"
		if t.Role == domain.RoleModel {
			roleStr = "Planner"
		}
		fmt.Fprintf(w, "%s: %s\n", roleStr, t.Text)
	}
}

func init() {
	viewCmd.Flags().BoolVarP(&showTurns, "conversation", "t", false, "Also print the edit conversation")
	viewCmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Limit the number of conversation turns to show (0 for all)")
	PlanCmd.AddCommand(viewCmd)
}
