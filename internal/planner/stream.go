package planner

import (
	"context"
	"errors"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/events"
	"github.com/aretesun/hey-there/internal/plan"
	"github.com/aretesun/hey-there/internal/session"
	"github.com/google/uuid"
)

// PlanStream delivers the events of one generation. Events must be read
// until it is closed; Done is closed after the plan has been adopted.
type PlanStream struct {
	Events <-chan events.Event
	Done   <-chan struct{}
	// Cancel aborts the generation.
	Cancel func()
}

// Start validates req and begins streaming a new plan. A generation that is
// still running is cancelled first. The stream carries throttled snapshots,
// state changes, dropped payloads and finally a CompleteEvent or an
// ErrorEvent.
func (p *Planner) Start(ctx context.Context, req domain.TripRequest) (*PlanStream, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	src, err := p.generator.GeneratePlan(runCtx, req)
	if err != nil {
		cancel()
		return nil, err
	}

	eventsChan := make(chan events.Event)
	done := make(chan struct{})

	send := func(e events.Event) {
		select {
		case eventsChan <- e:
		case <-runCtx.Done():
		}
	}

	opts := []session.Option{
		session.WithTimeout(p.cfg.Session.Timeout),
		session.WithDebounce(p.cfg.Session.Debounce),
		session.WithLogger(p.logger.With("city", req.City)),
		session.WithDraftOptions(plan.WithDefaultConfirmation(p.cfg.Planner.DefaultConfirmation)),
		session.WithObserver(func(e events.Event) { send(e) }),
	}
	if p.metrics != nil {
		opts = append(opts, session.WithMetrics(p.metrics))
	}
	s := session.New(func(snap plan.Snapshot) {
		send(events.SnapshotEvent{Snapshot: snap})
	}, opts...)

	current := &run{session: s, cancel: cancel}

	p.mu.Lock()
	previous := p.running
	p.running = current
	p.epoch++
	epoch := p.epoch
	p.mu.Unlock()

	if previous != nil {
		p.logger.Info("cancelling previous generation", "session", previous.session.ID())
		previous.cancel()
	}

	go func() {
		defer close(done)
		defer close(eventsChan)
		defer cancel()
		defer src.Close()

		if p.metrics != nil {
			p.metrics.SessionStarted()
			defer p.metrics.SessionStopped()
		}

		runErr := s.Run(runCtx, src)
		snap := s.Draft()

		p.mu.Lock()
		if p.running == current {
			p.running = nil
		}
		superseded := p.epoch != epoch
		p.mu.Unlock()

		if runErr != nil {
			send(events.ErrorEvent{Error: runErr})
			return
		}
		if snap.Plan == nil || superseded {
			if !superseded {
				send(events.ErrorEvent{Error: domain.NoPlanError{}})
			}
			return
		}

		tripID := p.adopt(runCtx, epoch, snap)
		send(events.CompleteEvent{TripID: tripIDString(tripID), Plan: snap})
	}()

	return &PlanStream{Events: eventsChan, Done: done, Cancel: cancel}, nil
}

// adopt makes a freshly generated plan current, seeds the conversation with
// its confirmation and archives it.
func (p *Planner) adopt(ctx context.Context, epoch uint64, snap plan.Snapshot) uuid.UUID {
	generated := snap.Plan.Clone()

	p.mu.Lock()
	if p.epoch != epoch {
		p.mu.Unlock()
		return uuid.Nil
	}
	p.current = generated
	p.tripID = uuid.Nil
	p.window.Reset()
	if snap.Confirmed {
		p.window.AppendModel(generated.ConfirmationMessage)
	}
	turns := p.window.Turns()
	p.mu.Unlock()

	if p.repo == nil {
		return uuid.Nil
	}
	trip, err := domain.NewTrip(generated)
	if err == nil {
		err = p.repo.CreateTrip(ctx, trip)
	}
	if err == nil {
		err = p.repo.AppendTurns(ctx, trip.ID, turns...)
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			p.logger.Warn("failed to archive plan", "error", err)
		}
		return uuid.Nil
	}

	p.mu.Lock()
	if p.epoch == epoch {
		p.tripID = trip.ID
	}
	p.mu.Unlock()
	p.logger.Info("plan archived", "trip", trip.ShortID(), "days", len(generated.Itinerary))
	return trip.ID
}

func tripIDString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
