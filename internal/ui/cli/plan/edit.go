package plan

import (
	"fmt"
	"strings"

	"github.com/aretesun/hey-there/internal/appState"
	"github.com/aretesun/hey-there/internal/shared"
	"github.com/aretesun/hey-there/internal/ui/render"
	"github.com/aretesun/hey-there/internal/ui/tui"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [trip_id] [instruction...]",
	Short: "Change an archived plan",
	Long: `Applies a free-form instruction to an archived plan. Without an instruction
the interactive viewer opens so several edits can be made in a row. An empty
trip id selects the most recent trip.`,
	Example: `  hey-there plan edit 3f2a9c1e "둘째 날 오후를 쇼핑으로 바꿔줘"
  hey-there plan edit 3f2a9c1e`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var id string
		if len(args) > 0 {
			id = args[0]
		}
		instruction := strings.TrimSpace(strings.Join(argsAfter(args, 1), " "))

		p, repo, err := shared.InitializePlanner(cmd.Context())
		if err != nil {
			return err
		}
		defer repo.Close()

		current, err := loadTrip(cmd.Context(), p, id)
		if err != nil {
			return fmt.Errorf("failed to load trip: %w", err)
		}

		if instruction == "" {
			if !stdinIsTerminal() {
				return fmt.Errorf("an instruction is required when not running interactively")
			}
			return tui.StartTUI(cmd.Context(), p, &appState.Get().Config.KeyMap, tui.Options{Current: current})
		}

		edited, reply, err := p.Edit(cmd.Context(), instruction)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		render.Plan(out, edited, true, render.Plain())
		fmt.Fprintln(cmd.ErrOrStderr(), reply)
		return nil
	},
}

func argsAfter(args []string, n int) []string {
	if len(args) <= n {
		return nil
	}
	return args[n:]
}

func init() {
	PlanCmd.AddCommand(editCmd)
}
