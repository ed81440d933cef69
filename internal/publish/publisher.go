package publish

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretesun/hey-there/internal/plan"
)

const DefaultDelay = 300 * time.Millisecond

// Consumer receives published snapshots. Calls never overlap.
type Consumer func(plan.Snapshot)

// Publisher coalesces bursts of snapshots into one delivery per quiet period.
// Only the latest offered snapshot is ever delivered.
type Publisher struct {
	consumer Consumer
	delay    time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *plan.Snapshot
	latest  *plan.Snapshot
	gen     uint64
	stopped bool

	// held for the duration of a consumer call
	deliverMu sync.Mutex
}

type Option func(*Publisher)

func WithDelay(d time.Duration) Option {
	return func(p *Publisher) {
		if d > 0 {
			p.delay = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = l
	}
}

func New(consumer Consumer, opts ...Option) *Publisher {
	p := &Publisher{
		consumer: consumer,
		delay:    DefaultDelay,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Offer replaces the pending snapshot and restarts the quiet period.
func (p *Publisher) Offer(s plan.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}

	p.pending = &s
	p.latest = &s
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
	}
	gen := p.gen
	p.timer = time.AfterFunc(p.delay, func() { p.fire(gen) })
}

func (p *Publisher) fire(gen uint64) {
	p.mu.Lock()
	if p.stopped || gen != p.gen || p.pending == nil {
		p.mu.Unlock()
		return
	}
	s := *p.pending
	p.pending = nil
	p.timer = nil
	p.mu.Unlock()

	p.deliver(s, gen)
}

// Flush cancels the quiet period and delivers the latest offered snapshot
// right away. It is a no-op if nothing was ever offered.
func (p *Publisher) Flush() {
	p.mu.Lock()
	if p.stopped || p.latest == nil {
		p.mu.Unlock()
		return
	}
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
	gen := p.gen
	s := *p.latest
	p.pending = nil
	p.mu.Unlock()

	p.deliver(s, gen)
}

// Stop cancels any pending delivery and disables the publisher. When Stop
// returns no consumer call is running and none will start. Stop must not be
// called from inside the consumer.
func (p *Publisher) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.gen++
	p.pending = nil
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()

	p.deliverMu.Lock()
	p.deliverMu.Unlock()
}

// Pending reports whether a delivery is scheduled.
func (p *Publisher) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

func (p *Publisher) deliver(s plan.Snapshot, gen uint64) {
	p.deliverMu.Lock()
	defer p.deliverMu.Unlock()

	p.mu.Lock()
	current := !p.stopped && gen == p.gen
	p.mu.Unlock()
	if !current {
		return
	}

	p.logger.Debug("publishing snapshot", "seq", s.Seq, "confirmed", s.Confirmed)
	p.consumer(s)
}
