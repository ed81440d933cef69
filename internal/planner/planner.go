package planner

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretesun/hey-there/internal/config"
	"github.com/aretesun/hey-there/internal/conversation"
	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/repository"
	"github.com/aretesun/hey-there/internal/session"
	"github.com/google/uuid"
)

// ErrEmptyInstruction is returned by Edit for a blank instruction.
var ErrEmptyInstruction = errors.New("edit instruction is empty")

// Generator produces plans. llm.Client is the production implementation.
type Generator interface {
	GeneratePlan(ctx context.Context, req domain.TripRequest) (session.StreamSource, error)
	EditPlan(ctx context.Context, history []domain.Turn, instruction string) (*domain.Plan, error)
	GeneratePackingList(ctx context.Context, p *domain.Plan) (*domain.PackingList, error)
}

// Metrics extends the per-session hooks with planner level counters.
type Metrics interface {
	session.Metrics
	SessionStarted()
	SessionStopped()
	EditFinished(ok bool)
}

type run struct {
	session *session.Session
	cancel  context.CancelFunc
}

// Planner holds the current plan and its conversation, and runs generation
// and edits against them. It is safe for concurrent use.
type Planner struct {
	generator Generator
	repo      repository.TripRepository
	metrics   Metrics
	cfg       config.ConfigSchema
	logger    *slog.Logger

	mu      sync.Mutex
	window  *conversation.Window
	current *domain.Plan
	tripID  uuid.UUID
	running *run
	// epoch changes whenever the plan is replaced so a superseded stream
	// never overwrites newer state.
	epoch uint64
}

type Option func(*Planner)

func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = l
	}
}

// WithRepository archives completed plans and their conversations.
func WithRepository(r repository.TripRepository) Option {
	return func(p *Planner) {
		p.repo = r
	}
}

func WithMetrics(m Metrics) Option {
	return func(p *Planner) {
		p.metrics = m
	}
}

func New(gen Generator, cfg *config.ConfigSchema, opts ...Option) *Planner {
	p := &Planner{
		generator: gen,
		cfg:       *cfg,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.window = conversation.NewWindow(p.cfg.Conversation.MaxPairs)
	return p
}

// Current returns a copy of the current plan, or nil before the first
// successful generation.
func (p *Planner) Current() *domain.Plan {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current.Clone()
}

// TripID returns the archive id of the current plan, uuid.Nil when the plan
// was not archived.
func (p *Planner) TripID() uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tripID
}

// Turns returns the remembered conversation, oldest first.
func (p *Planner) Turns() []domain.Turn {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.window.Turns()
}

// Reset cancels any running generation and forgets the plan and the
// conversation.
func (p *Planner) Reset() {
	p.mu.Lock()
	running := p.running
	p.running = nil
	p.current = nil
	p.tripID = uuid.Nil
	p.window.Reset()
	p.epoch++
	p.mu.Unlock()

	if running != nil {
		running.cancel()
	}
	p.logger.Info("planner reset")
}

// Load makes an archived trip current, restoring its conversation.
func (p *Planner) Load(ctx context.Context, idPrefix string) (*domain.Plan, error) {
	if p.repo == nil {
		return nil, domain.NoPlanError{ID: idPrefix}
	}
	trip, err := p.repo.GetTripByPartialID(ctx, idPrefix)
	if err != nil {
		return nil, err
	}
	loaded, err := trip.Plan()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	running := p.running
	p.running = nil
	p.current = loaded
	p.tripID = trip.ID
	p.window = conversation.Restore(p.cfg.Conversation.MaxPairs, trip.Conversation())
	p.epoch++
	p.mu.Unlock()

	if running != nil {
		running.cancel()
	}
	p.logger.Info("trip loaded", "trip", trip.ShortID(), "city", trip.City)
	return loaded.Clone(), nil
}

// Edit applies a free-form instruction to the current plan. The exchange is
// remembered even when the edit fails so the next request has context.
func (p *Planner) Edit(ctx context.Context, instruction string) (*domain.Plan, string, error) {
	if instruction == "" {
		return nil, "", ErrEmptyInstruction
	}

	p.mu.Lock()
	current := p.current
	window := p.window
	tripID := p.tripID
	epoch := p.epoch
	p.mu.Unlock()

	if current == nil {
		return nil, "", domain.NoPlanError{}
	}

	history, err := window.BuildContext(current)
	if err != nil {
		return nil, "", err
	}

	edited, err := p.generator.EditPlan(ctx, history, instruction)
	if err != nil {
		reply := "Error: " + err.Error()
		window.Record(instruction, reply)
		p.editFinished(false)
		p.archiveTurns(ctx, tripID,
			domain.Turn{Role: domain.RoleUser, Text: instruction},
			domain.Turn{Role: domain.RoleModel, Text: reply},
		)
		p.logger.Warn("plan edit failed", "error", err)
		return nil, "", err
	}

	sort.SliceStable(edited.Itinerary, func(i, j int) bool {
		return edited.Itinerary[i].Day < edited.Itinerary[j].Day
	})
	confirmation := edited.ConfirmationMessage
	if confirmation == "" {
		confirmation = p.cfg.Planner.EditFallback
	}
	window.Record(instruction, confirmation)

	p.mu.Lock()
	if p.epoch == epoch {
		p.current = edited
	}
	p.mu.Unlock()

	p.editFinished(true)
	if tripID != uuid.Nil {
		if err := p.repo.SavePlan(ctx, tripID, edited); err != nil {
			p.logger.Warn("failed to archive edited plan", "trip", tripID, "error", err)
		}
	}
	p.archiveTurns(ctx, tripID,
		domain.Turn{Role: domain.RoleUser, Text: instruction},
		domain.Turn{Role: domain.RoleModel, Text: confirmation},
	)
	p.logger.Info("plan edited", "days", len(edited.Itinerary))
	return edited.Clone(), confirmation, nil
}

// PackingList generates a packing list for the current plan.
func (p *Planner) PackingList(ctx context.Context) (*domain.PackingList, error) {
	current := p.Current()
	if current == nil {
		return nil, domain.NoPlanError{}
	}
	return p.generator.GeneratePackingList(ctx, current)
}

func (p *Planner) editFinished(ok bool) {
	if p.metrics != nil {
		p.metrics.EditFinished(ok)
	}
}

func (p *Planner) archiveTurns(ctx context.Context, tripID uuid.UUID, turns ...domain.Turn) {
	if p.repo == nil || tripID == uuid.Nil {
		return
	}
	if err := p.repo.AppendTurns(ctx, tripID, turns...); err != nil {
		p.logger.Warn("failed to archive conversation", "trip", tripID, "error", err)
	}
}
