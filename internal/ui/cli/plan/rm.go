package plan

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/aretesun/hey-there/internal/shared"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "rm [trip_id]",
	Short: "Delete an archived trip and its conversation",
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

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "About to delete trip %s:\n", trip.ShortID())
		fmt.Fprintf(out, "Created: %s\n", trip.CreatedAt.Format(time.RFC822))
		fmt.Fprintf(out, "City: %s (%s ~ %s)\n", trip.City, trip.StartDate, trip.EndDate)
		fmt.Fprintf(out, "Turns: %d\n", len(trip.Turns))

		if !forceFlag {
			if !stdinIsTerminal() {
				return fmt.Errorf("refusing to delete without confirmation, use --force")
			}
			fmt.Fprint(out, "\nAre you sure you want to delete this trip? [y/N] ")
			response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			response = strings.ToLower(strings.TrimSpace(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}
		}

		if err := repo.DeleteTrip(cmd.Context(), trip.ID); err != nil {
			return fmt.Errorf("failed to delete trip: %w", err)
		}

		fmt.Fprintln(out, "Trip deleted successfully")
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Delete without confirmation")
	PlanCmd.AddCommand(deleteCmd)
}
