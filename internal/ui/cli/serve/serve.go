package serve

import (
	"github.com/aretesun/hey-there/internal/appState"
	"github.com/aretesun/hey-there/internal/server"
	"github.com/aretesun/hey-there/internal/shared"
	"github.com/spf13/cobra"
)

var addrFlag string

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner over HTTP",
	Long: `Starts an HTTP server with the following endpoints:

  POST /api/plans             generate a plan, progress streamed as Server-Sent Events
  GET  /api/plans/{id}        fetch an archived plan and its conversation
  POST /api/plans/{id}/edits  apply an instruction to an archived plan
  GET  /metrics               Prometheus metrics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appState.Get()

		newPlanner, repo, err := shared.PlannerFactory(cmd.Context())
		if err != nil {
			return err
		}
		defer repo.Close()

		srv := server.New(server.PlannerFactory(newPlanner), repo,
			server.WithLogger(app.Logger),
			server.WithMetricsHandler(app.Metrics.Handler()),
		)
		return srv.ListenAndServe(cmd.Context(), app.Config.Server.Addr)
	},
}

func init() {
	ServeCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (defaults to server.addr from the config)")
}
