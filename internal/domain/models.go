package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one conversational message. Plan documents are never stored as turns.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Trip is an archived plan together with the conversation that shaped it.
type Trip struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	City      string
	StartDate string
	EndDate   string
	PlanJSON  string `gorm:"type:text"`
	Turns     []TripTurn
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (t *Trip) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TripTurn is a persisted conversation turn. Seq keeps insertion order stable
// when several turns share a timestamp.
type TripTurn struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TripID    uuid.UUID `gorm:"type:uuid;index"`
	Seq       int
	Role      Role `gorm:"type:text"`
	Text      string
	CreatedAt time.Time
}

func (t *TripTurn) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// PackingItem is a single thing to bring.
type PackingItem struct {
	Item string `json:"item" validate:"required" jsonschema:"required,description=The name of the item to pack"`
	Note string `json:"note,omitempty" jsonschema:"description=Optional note such as quantity or type"`
}

type PackingCategory struct {
	Category string        `json:"category" validate:"required" jsonschema:"required"`
	Items    []PackingItem `json:"items" validate:"required,dive" jsonschema:"required"`
}

type PackingList struct {
	Categories []PackingCategory `json:"packing_list" validate:"required,dive" jsonschema:"required"`
}
