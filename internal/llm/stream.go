package llm

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/session"
	"github.com/tmc/langchaingo/llms"
)

// ChanSource turns the provider's push-style streaming callback into a
// pull-style chunk source. Close must be called once the consumer is done
// so the underlying request is released.
type ChanSource struct {
	chunks chan string
	done   chan struct{}
	cancel context.CancelFunc

	mu  sync.Mutex
	err error
}

// Recv returns the next chunk, io.EOF when the response is complete, or the
// provider error.
func (s *ChanSource) Recv(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case c := <-s.chunks:
		return c, nil
	case <-s.done:
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
}

// Close aborts the request if it is still running.
func (s *ChanSource) Close() error {
	s.cancel()
	return nil
}

func (s *ChanSource) finish(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.done)
}

// GeneratePlan starts a streamed plan generation for req.
func (c *Client) GeneratePlan(ctx context.Context, req domain.TripRequest) (session.StreamSource, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	src := &ChanSource{
		chunks: make(chan string),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	prompt := BuildPlanPrompt(req, c.planner.Language)
	msgs := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}

	go func() {
		defer cancel()

		streamed := false
		callback := func(ctx context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			streamed = true
			select {
			case src.chunks <- string(chunk):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		c.logger.Debug("starting plan stream", "city", req.City, "days", req.Days())
		resp, err := c.llm.GenerateContent(streamCtx, msgs, c.callOptions(llms.WithStreamingFunc(callback))...)
		if err != nil {
			src.finish(fmt.Errorf("streaming plan failed: %w", err))
			return
		}

		// Some providers fall back to a single non-streamed answer.
		if !streamed {
			if content, cerr := firstChoice(resp); cerr == nil && content != "" {
				select {
				case src.chunks <- content:
				case <-streamCtx.Done():
					src.finish(streamCtx.Err())
					return
				}
			}
		}
		src.finish(nil)
	}()

	return src, nil
}
