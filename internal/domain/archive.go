package domain

import (
	"encoding/json"
	"fmt"
)

// NewTrip prepares an archive record for a freshly generated plan.
func NewTrip(p *Plan) (*Trip, error) {
	t := &Trip{}
	if err := t.SetPlan(p); err != nil {
		return nil, err
	}
	return t, nil
}

// SetPlan stores p as the trip's document and refreshes the summary columns.
func (t *Trip) SetPlan(p *Plan) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	t.PlanJSON = string(data)
	t.City = p.City
	t.StartDate = p.StartDate
	t.EndDate = p.EndDate
	return nil
}

// Plan decodes the stored plan document.
func (t *Trip) Plan() (*Plan, error) {
	if t.PlanJSON == "" {
		return nil, NoPlanError{ID: t.ID.String()}
	}
	var p Plan
	if err := json.Unmarshal([]byte(t.PlanJSON), &p); err != nil {
		return nil, fmt.Errorf("failed to decode stored plan: %w", err)
	}
	return &p, nil
}

// Conversation returns the stored turns in order.
func (t *Trip) Conversation() []Turn {
	out := make([]Turn, 0, len(t.Turns))
	for _, tt := range t.Turns {
		out = append(out, Turn{Role: tt.Role, Text: tt.Text})
	}
	return out
}

// ShortID is the prefix shown in listings and accepted by lookups.
func (t *Trip) ShortID() string {
	return t.ID.String()[:8]
}
