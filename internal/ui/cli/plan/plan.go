package plan

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aretesun/hey-there/internal/appState"
	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/events"
	"github.com/aretesun/hey-there/internal/planner"
	"github.com/aretesun/hey-there/internal/shared"
	"github.com/aretesun/hey-there/internal/ui/render"
	"github.com/aretesun/hey-there/internal/ui/tui"
	"github.com/spf13/cobra"
)

var (
	limitFlag int
	forceFlag bool

	cityFlag    string
	startFlag   string
	endFlag     string
	stylesFlag  []string
	budgetFlag  string
	tuiFlag     bool
	timeoutFlag time.Duration
)

var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create, edit and manage travel plans",
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new travel plan",
	Example: `  hey-there plan new --city Rome --start 2025-05-01 --end 2025-05-03 --style culture,food
  hey-there plan new --city 도쿄 --start 2025-10-01 --end 2025-10-04 --budget luxury --tui`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := domain.TripRequest{
			City:      strings.TrimSpace(cityFlag),
			StartDate: startFlag,
			EndDate:   endFlag,
			Budget:    domain.Budget(budgetFlag),
		}
		for _, s := range stylesFlag {
			req.Styles = append(req.Styles, domain.TravelStyle(strings.TrimSpace(s)))
		}
		if err := req.Validate(); err != nil {
			return err
		}

		p, repo, err := shared.InitializePlanner(cmd.Context())
		if err != nil {
			return err
		}
		defer repo.Close()

		if tuiFlag {
			return tui.StartTUI(cmd.Context(), p, &appState.Get().Config.KeyMap, tui.Options{Request: &req})
		}

		stream, err := p.Start(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printStream(cmd.OutOrStdout(), cmd.ErrOrStderr(), stream)
	},
}

func init() {
	newCmd.Flags().StringVarP(&cityFlag, "city", "c", "", "Destination city")
	newCmd.Flags().StringVarP(&startFlag, "start", "s", "", "First day of the trip (YYYY-MM-DD)")
	newCmd.Flags().StringVarP(&endFlag, "end", "e", "", "Last day of the trip (YYYY-MM-DD)")
	newCmd.Flags().StringSliceVar(&stylesFlag, "style", nil, "Travel styles: adventure, relaxation, culture, food, shopping, nature")
	newCmd.Flags().StringVarP(&budgetFlag, "budget", "b", "", "Budget tier: budget, standard, luxury")
	newCmd.Flags().BoolVar(&tuiFlag, "tui", false, "Open the interactive plan viewer")
	newCmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "Give up when the plan is not complete after this long")
	_ = newCmd.MarkFlagRequired("city")
	_ = newCmd.MarkFlagRequired("start")
	_ = newCmd.MarkFlagRequired("end")

	PlanCmd.AddCommand(newCmd)
}

// printStream reports progress on errOut while the plan streams in and
// writes the finished plan to out. When generation fails the last partial
// plan is still written before the error is returned.
func printStream(out, errOut io.Writer, stream *planner.PlanStream) error {
	var (
		final  *events.CompleteEvent
		latest *domain.Plan
		runErr error
	)
	for e := range stream.Events {
		switch ev := e.(type) {
		case events.SnapshotEvent:
			latest = ev.Snapshot.Plan
			fmt.Fprintf(errOut, "\r%s", progress(ev.Snapshot.Plan, ev.Snapshot.Confirmed))
		case events.DecodeErrorEvent:
			fmt.Fprintf(errOut, "\n%s 항목을 건너뜁니다: %v\n", ev.Tag, ev.Error)
		case events.ErrorEvent:
			runErr = ev.Error
		case events.CompleteEvent:
			final = &ev
		}
	}
	<-stream.Done
	fmt.Fprintln(errOut)

	if runErr != nil {
		if latest != nil {
			render.Plan(out, latest, false, render.Plain())
		}
		return runErr
	}
	if final == nil {
		return fmt.Errorf("generation ended without a plan")
	}

	render.Plan(out, final.Plan.Plan, true, render.Plain())
	fmt.Fprintln(out)
	render.SearchLinks(out, final.Plan.Plan.City, render.Plain())
	if final.TripID != "" {
		fmt.Fprintf(errOut, "\n저장됨: %s (hey-there plan edit %s)\n", final.TripID[:8], final.TripID[:8])
	}
	return nil
}

func progress(p *domain.Plan, confirmed bool) string {
	if p == nil {
		return "수신 중..."
	}
	general := "…"
	if p.City != "" {
		general = "✓"
	}
	days := fmt.Sprintf("%d", len(p.Itinerary))
	if want := domain.TripDays(p.StartDate, p.EndDate); want > 0 {
		days = fmt.Sprintf("%d/%d", len(p.Itinerary), want)
	}
	done := ""
	if confirmed {
		done = " 완료"
	}
	return fmt.Sprintf("기본 정보 %s  일정 %s일%s", general, days, done)
}

// loadTrip resolves a trip id prefix, or the most recent trip when id is
// empty, and makes it current in p.
func loadTrip(ctx context.Context, p *planner.Planner, id string) (*domain.Plan, error) {
	if id != "" {
		return p.Load(ctx, id)
	}
	repo, err := shared.OpenRepository()
	if err != nil {
		return nil, err
	}
	defer repo.Close()
	trip, err := repo.GetMostRecentTrip(ctx)
	if err != nil {
		return nil, err
	}
	return p.Load(ctx, trip.ID.String())
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
