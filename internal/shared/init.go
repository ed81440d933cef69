package shared

import (
	"context"
	"fmt"

	"github.com/aretesun/hey-there/internal/appState"
	"github.com/aretesun/hey-there/internal/llm"
	"github.com/aretesun/hey-there/internal/planner"
	"github.com/aretesun/hey-there/internal/repository"
	"github.com/aretesun/hey-there/internal/repository/sqlite"
)

// InitializePlanner wires the model client, the trip archive and metrics
// from the global app state. The returned repository must be closed by the
// caller.
func InitializePlanner(ctx context.Context) (*planner.Planner, repository.TripRepository, error) {
	newPlanner, repo, err := PlannerFactory(ctx)
	if err != nil {
		return nil, nil, err
	}
	return newPlanner(), repo, nil
}

// PlannerFactory is like InitializePlanner but returns a constructor, for
// callers that need one planner per request. All planners share the model
// client and the repository.
func PlannerFactory(ctx context.Context) (func() *planner.Planner, repository.TripRepository, error) {
	app := appState.Get()

	client, err := llm.NewClient(ctx, app.Config, llm.WithLogger(app.Logger))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create model client: %w", err)
	}

	repo, err := sqlite.Initialize(app.Config.DBPath)
	if err != nil {
		return nil, nil, err
	}

	newPlanner := func() *planner.Planner {
		return planner.New(client, app.Config,
			planner.WithLogger(app.Logger),
			planner.WithRepository(repo),
			planner.WithMetrics(app.Metrics),
		)
	}
	return newPlanner, repo, nil
}

// OpenRepository opens the trip archive configured in the global app state.
func OpenRepository() (repository.TripRepository, error) {
	return sqlite.Initialize(appState.Get().Config.DBPath)
}
