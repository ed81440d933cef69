package sqlite

import (
	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/repository"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the SQLite trip archive at dbPath and migrates it
func Initialize(dbPath string) (repository.TripRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	if err := db.AutoMigrate(&domain.Trip{}, &domain.TripTurn{}); err != nil {
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return NewTripRepository(db), nil
}
