package session

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretesun/hey-there/internal/events"
	"github.com/aretesun/hey-there/internal/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const romeStream = `<general_info>{"city":"Rome","country":"Italy"}</general_info>` +
	`<daily_plan>{"day":2,"title":"Vatican","activities":[]}</daily_plan>` +
	`<daily_plan>{"day":1,"title":"Colosseum","activities":[]}</daily_plan>` +
	`<confirmation>{"confirmationMessage":"Enjoy Rome"}</confirmation>`

type collector struct {
	mu    sync.Mutex
	snaps []plan.Snapshot
}

func (c *collector) consume(s plan.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snaps = append(c.snaps, s)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snaps)
}

func (c *collector) last() plan.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snaps[len(c.snaps)-1]
}

// stallingSource hands out its chunks and then blocks until ctx is done.
type stallingSource struct {
	chunks []string
}

func (s *stallingSource) Recv(ctx context.Context) (string, error) {
	if len(s.chunks) > 0 {
		c := s.chunks[0]
		s.chunks = s.chunks[1:]
		return c, nil
	}
	<-ctx.Done()
	return "", ctx.Err()
}

type failingSource struct {
	err error
}

func (s failingSource) Recv(context.Context) (string, error) {
	return "", s.err
}

func chunked(s string, size int) []string {
	var out []string
	for len(s) > size {
		out = append(out, s[:size])
		s = s[size:]
	}
	return append(out, s)
}

func TestRunCompletesAndFlushes(t *testing.T) {
	col := &collector{}
	s := New(col.consume, WithDebounce(time.Hour))

	err := s.Run(context.Background(), NewSliceSource(chunked(romeStream, 7)...))
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, s.State())

	require.Equal(t, 1, col.count(), "only the final flush should reach the consumer")
	final := col.last()
	assert.True(t, final.Confirmed)
	assert.Equal(t, "Rome", final.Plan.City)
	require.Len(t, final.Plan.Itinerary, 2)
	assert.Equal(t, 1, final.Plan.Itinerary[0].Day)
	assert.Equal(t, "Enjoy Rome", final.Plan.ConfirmationMessage)
	assert.Equal(t, final.Seq, s.Draft().Seq)
}

func TestRunTimesOut(t *testing.T) {
	col := &collector{}
	s := New(col.consume, WithTimeout(50*time.Millisecond), WithDebounce(10*time.Millisecond))

	src := &stallingSource{chunks: []string{`<general_info>{"city":"Rome"}</general_info>`}}
	start := time.Now()
	err := s.Run(context.Background(), src)

	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, StateTimedOut, s.State())
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "Rome", s.Draft().Plan.City)

	seen := col.count()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, seen, col.count(), "no snapshots after timeout")
}

func TestRunSilentSourceTimesOutWithoutSnapshots(t *testing.T) {
	col := &collector{}
	s := New(col.consume, WithTimeout(20*time.Millisecond))

	err := s.Run(context.Background(), &stallingSource{})
	require.ErrorIs(t, err, ErrTimeout)
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, col.count())
}

func TestCancelStopsRun(t *testing.T) {
	col := &collector{}
	s := New(col.consume, WithTimeout(time.Minute), WithDebounce(time.Hour))

	done := make(chan error, 1)
	go func() {
		done <- s.Run(context.Background(), &stallingSource{chunks: []string{`<daily_plan>{"day":1,"title":"a","activities":[]}</daily_plan>`}})
	}()

	require.Eventually(t, func() bool { return s.Draft().Seq == 1 }, time.Second, 5*time.Millisecond)
	s.Cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, ErrCancelled)
	case <-time.After(time.Second):
		t.Fatal("run did not return after cancel")
	}
	assert.Equal(t, StateCancelled, s.State())
	assert.Zero(t, col.count())
}

func TestParentContextCancellation(t *testing.T) {
	s := New(nil, WithTimeout(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())

	time.AfterFunc(20*time.Millisecond, cancel)
	err := s.Run(ctx, &stallingSource{})

	require.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, StateCancelled, s.State())
}

func TestSourceErrorFails(t *testing.T) {
	boom := errors.New("connection reset")
	s := New(nil)

	err := s.Run(context.Background(), failingSource{err: boom})

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StateFailed, s.State())
}

func TestSessionRunsOnce(t *testing.T) {
	s := New(nil)
	require.NoError(t, s.Run(context.Background(), NewSliceSource()))
	assert.ErrorIs(t, s.Run(context.Background(), NewSliceSource()), ErrSessionUsed)
	assert.Equal(t, StateCompleted, s.State())
}

func TestCancelBeforeRun(t *testing.T) {
	s := New(nil)
	s.Cancel()
	assert.Equal(t, StateCancelled, s.State())
	assert.ErrorIs(t, s.Run(context.Background(), NewSliceSource()), ErrCancelled)
}

func TestObserverSeesDecodeErrorsAndStates(t *testing.T) {
	var (
		mu  sync.Mutex
		evs []events.Event
	)
	obs := func(e events.Event) {
		mu.Lock()
		defer mu.Unlock()
		evs = append(evs, e)
	}
	col := &collector{}
	s := New(col.consume, WithObserver(obs))

	input := `<daily_plan>{"day":1,"title":</daily_plan><daily_plan>{"day":2,"title":"b","activities":[]}</daily_plan>`
	require.NoError(t, s.Run(context.Background(), NewSliceSource(input)))

	mu.Lock()
	defer mu.Unlock()
	var states []string
	decodeErrors := 0
	for _, e := range evs {
		switch ev := e.(type) {
		case events.StateChangeEvent:
			states = append(states, ev.To)
		case events.DecodeErrorEvent:
			decodeErrors++
			assert.Equal(t, "daily_plan", ev.Tag)
		}
	}
	assert.Equal(t, []string{"streaming", "completed"}, states)
	assert.Equal(t, 1, decodeErrors)
	require.Equal(t, 1, col.count())
	assert.Equal(t, 2, col.last().Plan.Itinerary[0].Day)
}

func TestReaderSource(t *testing.T) {
	col := &collector{}
	s := New(col.consume)
	require.NoError(t, s.Run(context.Background(), NewReaderSource(strings.NewReader(romeStream), 5)))
	assert.Len(t, col.last().Plan.Itinerary, 2)
}

func TestReaderSourceStalledTimesOut(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	src := NewReaderSource(pr, 8)
	defer src.Close()

	col := &collector{}
	s := New(col.consume, WithTimeout(50*time.Millisecond))

	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(context.Background(), src) }()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrTimeout)
	case <-time.After(time.Second):
		t.Fatalf("Run still blocked after timeout; state=%s", s.State())
	}
	assert.Equal(t, StateTimedOut, s.State())
	assert.Zero(t, col.count())
}

func TestReaderSourceRecvHonorsContext(t *testing.T) {
	pr, pw := io.Pipe()
	src := NewReaderSource(pr, 8)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := src.Recv(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, src.Close())
	_, err = pw.Write([]byte("<general_info>"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestRunConfirmationBeforeLastDay(t *testing.T) {
	const outOfOrder = `<general_info>{"city":"Rome","country":"Italy"}</general_info>` +
		`<daily_plan>{"day":2,"title":"Vatican","activities":[]}</daily_plan>` +
		`<confirmation>{"confirmationMessage":"Enjoy Rome"}</confirmation>` +
		`<daily_plan>{"day":1,"title":"Colosseum","activities":[]}</daily_plan>`

	col := &collector{}
	s := New(col.consume, WithDebounce(time.Hour))
	require.NoError(t, s.Run(context.Background(), NewSliceSource(chunked(outOfOrder, 17)...)))

	require.Equal(t, 1, col.count())
	final := col.last()
	assert.True(t, final.Confirmed)
	require.NotNil(t, final.Plan)
	assert.Equal(t, "Enjoy Rome", final.Plan.ConfirmationMessage)
	require.Len(t, final.Plan.Itinerary, 2)
	assert.Equal(t, 1, final.Plan.Itinerary[0].Day)
	assert.Equal(t, "Colosseum", final.Plan.Itinerary[0].Title)
	assert.Equal(t, 2, final.Plan.Itinerary[1].Day)
	assert.Equal(t, StateCompleted, s.State())
}
