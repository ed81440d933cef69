package session

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
	"time"
)

// ChunkSource yields the raw model output piece by piece. Recv returns
// io.EOF once the stream is exhausted and must return promptly when ctx is
// done.
type ChunkSource interface {
	Recv(ctx context.Context) (string, error)
}

// StreamSource is a ChunkSource that holds a resource, such as an open
// provider request, released by Close.
type StreamSource interface {
	ChunkSource
	io.Closer
}

// SliceSource replays fixed chunks, optionally pausing between them.
type SliceSource struct {
	chunks []string
	delay  time.Duration
	next   int
}

func NewSliceSource(chunks ...string) *SliceSource {
	return &SliceSource{chunks: chunks}
}

// WithDelay makes every Recv wait d before returning.
func (s *SliceSource) WithDelay(d time.Duration) *SliceSource {
	s.delay = d
	return s
}

func (s *SliceSource) Recv(ctx context.Context) (string, error) {
	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.next >= len(s.chunks) {
		return "", io.EOF
	}
	c := s.chunks[s.next]
	s.next++
	return c, nil
}

func (s *SliceSource) Close() error { return nil }

// ReaderSource reads a recorded response in fixed size pieces. Reads run on
// a background goroutine so Recv returns as soon as ctx is done, even while
// the underlying Read is blocked. Close releases a blocked Read when the
// reader is also an io.Closer.
type ReaderSource struct {
	r      *bufio.Reader
	closer io.Closer
	size   int

	startOnce sync.Once
	closeOnce sync.Once
	results   chan readResult
	stop      chan struct{}
	closeErr  error
}

type readResult struct {
	chunk string
	err   error
}

// NewReaderSource wraps r. When r is also an io.Closer, Close closes it.
func NewReaderSource(r io.Reader, size int) *ReaderSource {
	if size <= 0 {
		size = 64
	}
	s := &ReaderSource{
		r:       bufio.NewReader(r),
		size:    size,
		results: make(chan readResult),
		stop:    make(chan struct{}),
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

func (s *ReaderSource) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		if s.closer != nil {
			s.closeErr = s.closer.Close()
		}
	})
	return s.closeErr
}

func (s *ReaderSource) Recv(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.startOnce.Do(func() { go s.readLoop() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-s.results:
		if !ok {
			return "", io.EOF
		}
		return res.chunk, res.err
	}
}

// readLoop feeds results until the reader fails or the source is closed.
func (s *ReaderSource) readLoop() {
	defer close(s.results)
	for {
		buf := make([]byte, s.size)
		n, err := io.ReadFull(s.r, buf)

		var res readResult
		switch {
		case n > 0:
			res.chunk = string(buf[:n])
		case errors.Is(err, io.ErrUnexpectedEOF):
			res.err = io.EOF
		default:
			res.err = err
		}

		select {
		case s.results <- res:
		case <-s.stop:
			return
		}
		if res.err != nil {
			return
		}
	}
}
