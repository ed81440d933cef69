package events

import "github.com/aretesun/hey-there/internal/plan"

// EventType defines the type of streaming event
type EventType int

const (
	EventTypeSnapshot EventType = iota
	EventTypeDecodeError
	EventTypeStateChange
	EventTypeError
	EventTypeComplete
)

func (t EventType) String() string {
	switch t {
	case EventTypeSnapshot:
		return "snapshot"
	case EventTypeDecodeError:
		return "decode_error"
	case EventTypeStateChange:
		return "state"
	case EventTypeError:
		return "error"
	case EventTypeComplete:
		return "done"
	default:
		return "unknown"
	}
}

// Event is the interface for all streaming events
type Event interface {
	Type() EventType
}

// SnapshotEvent carries a published view of the plan being built
type SnapshotEvent struct {
	Snapshot plan.Snapshot
}

func (e SnapshotEvent) Type() EventType {
	return EventTypeSnapshot
}

// DecodeErrorEvent reports a payload that was dropped
type DecodeErrorEvent struct {
	Tag   string
	Error error
}

func (e DecodeErrorEvent) Type() EventType {
	return EventTypeDecodeError
}

type StateChangeEvent struct {
	From string
	To   string
}

func (e StateChangeEvent) Type() EventType {
	return EventTypeStateChange
}

// ErrorEvent represents an error during processing
type ErrorEvent struct {
	Error error
}

func (e ErrorEvent) Type() EventType {
	return EventTypeError
}

// CompleteEvent is sent once the stream finished and the final plan is known
type CompleteEvent struct {
	TripID string
	Plan   plan.Snapshot
}

func (e CompleteEvent) Type() EventType {
	return EventTypeComplete
}
