package repository

import (
	"context"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/google/uuid"
)

// TripRepository archives generated plans and the conversation that edited
// them.
type TripRepository interface {
	CreateTrip(ctx context.Context, trip *domain.Trip) error
	GetTripByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	GetTripByPartialID(ctx context.Context, partialID string) (*domain.Trip, error)
	GetMostRecentTrip(ctx context.Context) (*domain.Trip, error)
	ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error)
	DeleteTrip(ctx context.Context, id uuid.UUID) error

	// SavePlan replaces the stored plan document of a trip
	SavePlan(ctx context.Context, id uuid.UUID, plan *domain.Plan) error
	// AppendTurns stores turns after any existing ones
	AppendTurns(ctx context.Context, id uuid.UUID, turns ...domain.Turn) error

	Close() error
}
