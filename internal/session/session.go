package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/aretesun/hey-there/internal/events"
	"github.com/aretesun/hey-there/internal/plan"
	"github.com/aretesun/hey-there/internal/publish"
	"github.com/aretesun/hey-there/internal/stream"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const DefaultTimeout = 30 * time.Second

var (
	ErrTimeout     = errors.New("stream did not finish in time")
	ErrCancelled   = errors.New("stream cancelled")
	ErrSessionUsed = errors.New("session already started")
)

// SourceError wraps a failure reported by the chunk source.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("stream source failed: %v", e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

type State int

const (
	StateIdle State = iota
	StateStreaming
	StateCompleted
	StateTimedOut
	StateFailed
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateTimedOut:
		return "timed_out"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s >= StateCompleted
}

// Observer receives out-of-band events: state changes and dropped payloads.
type Observer func(events.Event)

// Session assembles one plan from one chunk source. A session runs once.
type Session struct {
	id        string
	consumer  publish.Consumer
	timeout   time.Duration
	debounce  time.Duration
	logger    *slog.Logger
	observer  Observer
	metrics   Metrics
	draftOpts []plan.Option

	mu     sync.Mutex
	state  State
	cancel context.CancelCauseFunc
	draft  plan.Snapshot
}

type Option func(*Session)

func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		s.debounce = d
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observer = o
	}
}

func WithMetrics(m Metrics) Option {
	return func(s *Session) {
		if m != nil {
			s.metrics = m
		}
	}
}

func WithDraftOptions(opts ...plan.Option) Option {
	return func(s *Session) {
		s.draftOpts = append(s.draftOpts, opts...)
	}
}

func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// New creates an idle session that hands throttled snapshots to consumer.
func New(consumer publish.Consumer, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		consumer: consumer,
		timeout:  DefaultTimeout,
		debounce: publish.DefaultDelay,
		logger:   slog.Default(),
		metrics:  noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.consumer == nil {
		s.consumer = func(plan.Snapshot) {}
	}
	s.logger = s.logger.With("session", s.id)
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Draft returns the most recently merged snapshot, published or not.
func (s *Session) Draft() plan.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Cancel stops a running session. Cancelling an idle session prevents it
// from ever running.
func (s *Session) Cancel() {
	s.mu.Lock()
	switch {
	case s.state == StateIdle:
		ev := s.transitionLocked(StateCancelled)
		s.mu.Unlock()
		s.emit(ev)
		return
	case s.cancel != nil:
		cancel := s.cancel
		s.mu.Unlock()
		cancel(ErrCancelled)
		return
	}
	s.mu.Unlock()
}

// Run consumes src until it ends, fails, times out or is cancelled. The
// timeout clock starts when Run is called. On success the latest snapshot
// is flushed to the consumer before Run returns; on any other outcome no
// snapshot is delivered after Run returns.
func (s *Session) Run(ctx context.Context, src ChunkSource) error {
	s.mu.Lock()
	if s.state != StateIdle {
		state := s.state
		s.mu.Unlock()
		if state == StateCancelled {
			return ErrCancelled
		}
		return ErrSessionUsed
	}
	runCtx, cancel := context.WithCancelCause(ctx)
	s.cancel = cancel
	ev := s.transitionLocked(StateStreaming)
	s.mu.Unlock()
	s.emit(ev)
	defer cancel(nil)

	started := time.Now()
	pub := publish.New(s.deliver,
		publish.WithDelay(s.debounce),
		publish.WithLogger(s.logger),
	)
	draft := plan.NewDraft(s.draftOpts...)
	buf := stream.NewBuffer()

	g, gctx := errgroup.WithContext(runCtx)
	consumed := make(chan struct{})

	g.Go(func() error {
		defer close(consumed)
		return s.consume(gctx, src, buf, draft, pub)
	})
	g.Go(func() error {
		timer := time.NewTimer(s.timeout)
		defer timer.Stop()
		select {
		case <-timer.C:
			pub.Stop()
			return ErrTimeout
		case <-consumed:
			return nil
		case <-gctx.Done():
			return nil
		}
	})

	err := g.Wait()

	var (
		final  State
		result error
	)
	switch {
	case errors.Is(err, ErrTimeout):
		final, result = StateTimedOut, ErrTimeout
	case runCtx.Err() != nil:
		final, result = StateCancelled, ErrCancelled
	case err == nil:
		pub.Flush()
		final = StateCompleted
	default:
		var srcErr *SourceError
		if !errors.As(err, &srcErr) {
			err = &SourceError{Err: err}
		}
		final, result = StateFailed, err
	}
	pub.Stop()

	s.mu.Lock()
	ev = s.transitionLocked(final)
	s.mu.Unlock()
	s.emit(ev)

	s.metrics.SessionFinished(final.String(), time.Since(started))
	if result != nil {
		s.logger.Warn("stream session ended", "state", final, "error", result, "buffered", buf.Len())
	} else {
		s.logger.Info("stream session completed", "days", draft.Days(), "confirmed", draft.Confirmed())
	}
	return result
}

func (s *Session) consume(ctx context.Context, src ChunkSource, buf *stream.Buffer, draft *plan.Draft, pub *publish.Publisher) error {
	for {
		chunk, err := src.Recv(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &SourceError{Err: err}
		}

		s.metrics.ChunkReceived(len(chunk))
		buf.Append(chunk)
		res := buf.Drain()

		for _, de := range res.Errors {
			s.logger.Warn("dropping malformed payload", "tag", de.Tag, "error", de.Err)
			s.metrics.DecodeFailed(string(de.Tag))
			s.emit(events.DecodeErrorEvent{Tag: string(de.Tag), Error: de})
		}
		if len(res.Records) == 0 {
			continue
		}
		for _, rec := range res.Records {
			s.metrics.RecordDecoded(string(rec.Tag()))
		}

		plan.Fold(draft, res.Records)
		snap := draft.Snapshot()

		s.mu.Lock()
		s.draft = snap
		s.mu.Unlock()

		pub.Offer(snap)
	}
}

func (s *Session) deliver(snap plan.Snapshot) {
	s.metrics.SnapshotPublished()
	s.consumer(snap)
}

// transitionLocked moves to the given state and returns the event to emit
// once s.mu is released. Terminal states never change.
func (s *Session) transitionLocked(to State) events.Event {
	from := s.state
	if from == to || from.Terminal() {
		return nil
	}
	s.state = to
	s.logger.Debug("session state change", "from", from, "to", to)
	return events.StateChangeEvent{From: from.String(), To: to.String()}
}

func (s *Session) emit(e events.Event) {
	if e != nil && s.observer != nil {
		s.observer(e)
	}
}
