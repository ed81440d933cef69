package publish

import (
	"sync"
	"testing"
	"time"

	"github.com/aretesun/hey-there/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	seqs []uint64
}

func (r *recorder) consume(s plan.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seqs = append(r.seqs, s.Seq)
}

func (r *recorder) got() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint64(nil), r.seqs...)
}

func TestBurstPublishesOnce(t *testing.T) {
	rec := &recorder{}
	p := New(rec.consume, WithDelay(30*time.Millisecond))

	for i := uint64(1); i <= 10; i++ {
		p.Offer(plan.Snapshot{Seq: i})
	}
	assert.True(t, p.Pending())

	require.Eventually(t, func() bool { return len(rec.got()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []uint64{10}, rec.got())
	assert.False(t, p.Pending())
}

func TestFlushPublishesLatestImmediately(t *testing.T) {
	rec := &recorder{}
	p := New(rec.consume, WithDelay(time.Hour))

	p.Offer(plan.Snapshot{Seq: 1})
	p.Offer(plan.Snapshot{Seq: 2})
	p.Flush()

	assert.Equal(t, []uint64{2}, rec.got())
	assert.False(t, p.Pending())
}

func TestFlushAfterTimerPublishesOnceMore(t *testing.T) {
	rec := &recorder{}
	p := New(rec.consume, WithDelay(10*time.Millisecond))

	p.Offer(plan.Snapshot{Seq: 1})
	require.Eventually(t, func() bool { return len(rec.got()) == 1 }, time.Second, 5*time.Millisecond)

	p.Flush()
	assert.Equal(t, []uint64{1, 1}, rec.got())
}

func TestFlushWithoutOfferIsNoop(t *testing.T) {
	rec := &recorder{}
	p := New(rec.consume)
	p.Flush()
	assert.Empty(t, rec.got())
}

func TestStopCancelsPending(t *testing.T) {
	rec := &recorder{}
	p := New(rec.consume, WithDelay(10*time.Millisecond))

	p.Offer(plan.Snapshot{Seq: 1})
	p.Stop()
	p.Offer(plan.Snapshot{Seq: 2})
	p.Flush()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, rec.got())
}

func TestConsumerCallsDoNotOverlap(t *testing.T) {
	var (
		mu       sync.Mutex
		inFlight int
		maxSeen  int
		calls    int
	)
	consumer := func(plan.Snapshot) {
		mu.Lock()
		inFlight++
		calls++
		if inFlight > maxSeen {
			maxSeen = inFlight
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
	}
	p := New(consumer, WithDelay(time.Millisecond))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		p.Offer(plan.Snapshot{Seq: uint64(i)})
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Flush()
		}()
		time.Sleep(2 * time.Millisecond)
	}
	wg.Wait()
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, maxSeen)
	assert.Positive(t, calls)
}
