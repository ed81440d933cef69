package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type tripRepo struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) repository.TripRepository {
	return &tripRepo{db: db}
}

func (r *tripRepo) CreateTrip(ctx context.Context, trip *domain.Trip) error {
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		return errors.Wrap(err, "failed to create trip")
	}
	return nil
}

func withTurns(db *gorm.DB) *gorm.DB {
	return db.Preload("Turns", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq ASC")
	})
}

func (r *tripRepo) GetTripByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	var trip domain.Trip
	if err := withTurns(r.db.WithContext(ctx)).First(&trip, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NoPlanError{ID: id.String()}
		}
		return nil, errors.Wrap(err, "failed to get trip")
	}
	return &trip, nil
}

func (r *tripRepo) GetTripByPartialID(ctx context.Context, partialID string) (*domain.Trip, error) {
	partialID = strings.ToLower(strings.TrimSpace(partialID))
	if partialID == "" {
		return nil, domain.NoPlanError{}
	}

	var trips []domain.Trip
	if err := withTurns(r.db.WithContext(ctx)).
		Where("LOWER(CAST(id AS TEXT)) LIKE ?", partialID+"%").
		Limit(2).
		Find(&trips).Error; err != nil {
		return nil, errors.Wrap(err, "failed to look up trip")
	}

	switch len(trips) {
	case 0:
		return nil, domain.NoPlanError{ID: partialID}
	case 1:
		return &trips[0], nil
	default:
		return nil, fmt.Errorf("trip id %q is ambiguous", partialID)
	}
}

func (r *tripRepo) GetMostRecentTrip(ctx context.Context) (*domain.Trip, error) {
	var trip domain.Trip
	if err := withTurns(r.db.WithContext(ctx)).Order("created_at DESC").First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NoPlanError{}
		}
		return nil, errors.Wrap(err, "failed to get most recent trip")
	}
	return &trip, nil
}

func (r *tripRepo) ListTrips(ctx context.Context, limit int) ([]*domain.Trip, error) {
	var trips []*domain.Trip
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&trips).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list trips")
	}
	return trips, nil
}

func (r *tripRepo) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", id).Delete(&domain.TripTurn{}).Error; err != nil {
			return errors.Wrap(err, "failed to delete trip turns")
		}
		res := tx.Delete(&domain.Trip{}, "id = ?", id)
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to delete trip")
		}
		if res.RowsAffected == 0 {
			return domain.NoPlanError{ID: id.String()}
		}
		return nil
	})
}

func (r *tripRepo) SavePlan(ctx context.Context, id uuid.UUID, plan *domain.Plan) error {
	trip := domain.Trip{ID: id}
	if err := trip.SetPlan(plan); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&domain.Trip{}).Where("id = ?", id).Updates(map[string]interface{}{
		"plan_json":  trip.PlanJSON,
		"city":       trip.City,
		"start_date": trip.StartDate,
		"end_date":   trip.EndDate,
	})
	if res.Error != nil {
		return errors.Wrap(res.Error, "failed to save plan")
	}
	if res.RowsAffected == 0 {
		return domain.NoPlanError{ID: id.String()}
	}
	return nil
}

func (r *tripRepo) AppendTurns(ctx context.Context, id uuid.UUID, turns ...domain.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&domain.TripTurn{}).
			Where("trip_id = ?", id).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&last).Error; err != nil {
			return errors.Wrap(err, "failed to read turn sequence")
		}

		rows := make([]domain.TripTurn, len(turns))
		for i, t := range turns {
			rows[i] = domain.TripTurn{TripID: id, Seq: last + i + 1, Role: t.Role, Text: t.Text}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return errors.Wrap(err, "failed to append turns")
		}
		return nil
	})
}

func (r *tripRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get database handle")
	}
	return sqlDB.Close()
}
