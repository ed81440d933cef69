package plan

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/aretesun/hey-there/internal/shared"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "ls",
	Short: "List archived trips",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := shared.OpenRepository()
		if err != nil {
			return err
		}
		defer repo.Close()

		trips, err := repo.ListTrips(cmd.Context(), limitFlag)
		if err != nil {
			return fmt.Errorf("failed to list trips: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCreated\tCity\tDates")

		for _, trip := range trips {
			city := trip.City
			if len(city) > 30 {
				city = city[:27] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s ~ %s\n",
				trip.ShortID(),
				trip.CreatedAt.Format(time.RFC822),
				city,
				trip.StartDate,
				trip.EndDate,
			)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().IntVarP(&limitFlag, "limit", "n", 0, "Limit the number of trips to show (0 for all)")
	PlanCmd.AddCommand(listCmd)
}
