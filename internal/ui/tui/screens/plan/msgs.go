package plan

import (
	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/events"
)

// StreamEventMsg wraps one event of a running generation.
type StreamEventMsg struct {
	Event events.Event
}

// StreamClosedMsg is sent after the last event of a generation.
type StreamClosedMsg struct{}

type editResultMsg struct {
	plan  *domain.Plan
	reply string
	err   error
}

type packingResultMsg struct {
	list *domain.PackingList
	err  error
}
