package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) repository.TripRepository {
	t.Helper()
	repo, err := Initialize(filepath.Join(t.TempDir(), "trips.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func romePlan() *domain.Plan {
	return &domain.Plan{
		City:      "Rome",
		Country:   "Italy",
		StartDate: "2025-05-01",
		EndDate:   "2025-05-02",
		Itinerary: []domain.DailyPlan{
			{Day: 1, Title: "Ancient Rome", Activities: []domain.Activity{{Time: "09:00", Description: "Colosseum", Icon: "museum"}}},
		},
	}
}

func TestCreateAndGetTrip(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	trip, err := domain.NewTrip(romePlan())
	require.NoError(t, err)
	require.NoError(t, repo.CreateTrip(ctx, trip))
	require.NotEqual(t, uuid.Nil, trip.ID)

	got, err := repo.GetTripByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rome", got.City)

	p, err := got.Plan()
	require.NoError(t, err)
	assert.Equal(t, romePlan(), p)

	byPrefix, err := repo.GetTripByPartialID(ctx, trip.ShortID())
	require.NoError(t, err)
	assert.Equal(t, trip.ID, byPrefix.ID)
}

func TestAppendTurnsKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	trip, err := domain.NewTrip(romePlan())
	require.NoError(t, err)
	require.NoError(t, repo.CreateTrip(ctx, trip))

	require.NoError(t, repo.AppendTurns(ctx, trip.ID, domain.Turn{Role: domain.RoleModel, Text: "ready"}))
	require.NoError(t, repo.AppendTurns(ctx, trip.ID,
		domain.Turn{Role: domain.RoleUser, Text: "add gelato"},
		domain.Turn{Role: domain.RoleModel, Text: "added"},
	))

	got, err := repo.GetTripByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Turn{
		{Role: domain.RoleModel, Text: "ready"},
		{Role: domain.RoleUser, Text: "add gelato"},
		{Role: domain.RoleModel, Text: "added"},
	}, got.Conversation())
}

func TestSavePlan(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	trip, err := domain.NewTrip(romePlan())
	require.NoError(t, err)
	require.NoError(t, repo.CreateTrip(ctx, trip))

	updated := romePlan()
	updated.City = "Florence"
	require.NoError(t, repo.SavePlan(ctx, trip.ID, updated))

	got, err := repo.GetTripByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Florence", got.City)

	err = repo.SavePlan(ctx, uuid.New(), updated)
	assert.True(t, domain.IsNoPlanError(err))
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	for i := 0; i < 3; i++ {
		trip, err := domain.NewTrip(romePlan())
		require.NoError(t, err)
		require.NoError(t, repo.CreateTrip(ctx, trip))
	}

	all, err := repo.ListTrips(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	limited, err := repo.ListTrips(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	recent, err := repo.GetMostRecentTrip(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, recent.ID)

	require.NoError(t, repo.DeleteTrip(ctx, all[0].ID))
	_, err = repo.GetTripByID(ctx, all[0].ID)
	assert.True(t, domain.IsNoPlanError(err))

	err = repo.DeleteTrip(ctx, all[0].ID)
	assert.True(t, domain.IsNoPlanError(err))
}

func TestMissingTrips(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	_, err := repo.GetMostRecentTrip(ctx)
	assert.True(t, domain.IsNoPlanError(err))

	_, err = repo.GetTripByPartialID(ctx, "deadbeef")
	assert.True(t, domain.IsNoPlanError(err))
}
