package plan

import (
	"fmt"
	"io"
	"os"

	"github.com/aretesun/hey-there/internal/appState"
	"github.com/aretesun/hey-there/internal/events"
	"github.com/aretesun/hey-there/internal/plan"
	"github.com/aretesun/hey-there/internal/session"
	"github.com/aretesun/hey-there/internal/ui/render"
	"github.com/spf13/cobra"
)

var chunkSize int

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Rebuild a plan from a recorded model response",
	Long: `Feeds a recorded tagged response through the same reconstruction used for
live generation, without contacting a model. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = io.NopCloser(cmd.InOrStdin())
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open recording: %w", err)
			}
			r = f
		}
		src := session.NewReaderSource(r, chunkSize)
		defer src.Close()

		app := appState.Get()
		errOut := cmd.ErrOrStderr()
		s := session.New(func(snap plan.Snapshot) {
			fmt.Fprintf(errOut, "\r%s", progress(snap.Plan, snap.Confirmed))
		},
			session.WithTimeout(app.Config.Session.Timeout),
			session.WithDebounce(app.Config.Session.Debounce),
			session.WithLogger(app.Logger),
			session.WithMetrics(app.Metrics),
			session.WithDraftOptions(plan.WithDefaultConfirmation(app.Config.Planner.DefaultConfirmation)),
			session.WithObserver(func(e events.Event) {
				if ev, ok := e.(events.DecodeErrorEvent); ok {
					fmt.Fprintf(errOut, "\n%s 항목을 건너뜁니다: %v\n", ev.Tag, ev.Error)
				}
			}),
		)

		runErr := s.Run(cmd.Context(), src)
		fmt.Fprintln(errOut)
		snap := s.Draft()
		if snap.Plan == nil {
			if runErr != nil {
				return runErr
			}
			return fmt.Errorf("recording contains no plan")
		}

		render.Plan(cmd.OutOrStdout(), snap.Plan, runErr == nil, render.Plain())
		return runErr
	},
}

func init() {
	replayCmd.Flags().IntVar(&chunkSize, "chunk-size", 64, "Bytes fed to the parser per read")
	replayCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Give up when the recording is not consumed after this long")
	PlanCmd.AddCommand(replayCmd)
}
