package server

import (
	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/events"
)

type snapshotData struct {
	Seq       uint64       `json:"seq"`
	Confirmed bool         `json:"confirmed"`
	Plan      *domain.Plan `json:"plan"`
}

type doneData struct {
	TripID string       `json:"tripId,omitempty"`
	Plan   *domain.Plan `json:"plan"`
}

type decodeErrorData struct {
	Tag   string `json:"tag"`
	Error string `json:"error"`
}

type stateData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type errorData struct {
	Message string `json:"message"`
	NoPlan  bool   `json:"noPlan,omitempty"`
}

// sseEvent maps a planner event to its SSE name and payload.
func sseEvent(e events.Event) (string, any) {
	switch ev := e.(type) {
	case events.SnapshotEvent:
		return ev.Type().String(), snapshotData{Seq: ev.Snapshot.Seq, Confirmed: ev.Snapshot.Confirmed, Plan: ev.Snapshot.Plan}
	case events.CompleteEvent:
		return ev.Type().String(), doneData{TripID: ev.TripID, Plan: ev.Plan.Plan}
	case events.DecodeErrorEvent:
		return ev.Type().String(), decodeErrorData{Tag: ev.Tag, Error: ev.Error.Error()}
	case events.StateChangeEvent:
		return ev.Type().String(), stateData{From: ev.From, To: ev.To}
	case events.ErrorEvent:
		return ev.Type().String(), errorData{Message: ev.Error.Error(), NoPlan: domain.IsNoPlanError(ev.Error)}
	default:
		return e.Type().String(), struct{}{}
	}
}
