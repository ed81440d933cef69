package conversation

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aretesun/hey-there/internal/domain"
)

// DefaultMaxPairs is how many user/model exchanges are remembered.
const DefaultMaxPairs = 3

// Window keeps the most recent conversation turns for follow-up edits. The
// current plan is never stored here; it is injected fresh by BuildContext.
type Window struct {
	mu       sync.Mutex
	maxPairs int
	turns    []domain.Turn
}

func NewWindow(maxPairs int) *Window {
	if maxPairs <= 0 {
		maxPairs = DefaultMaxPairs
	}
	return &Window{maxPairs: maxPairs}
}

// Restore replaces the stored turns, keeping only the most recent ones.
func Restore(maxPairs int, turns []domain.Turn) *Window {
	w := NewWindow(maxPairs)
	w.turns = append(w.turns, turns...)
	w.trim()
	return w
}

// BuildContext returns the history to send with an edit request: a model
// turn holding the plan as JSON followed by the stored turns.
func (w *Window) BuildContext(p *domain.Plan) ([]domain.Turn, error) {
	if p == nil {
		return nil, domain.NoPlanError{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]domain.Turn, 0, len(w.turns)+1)
	out = append(out, domain.Turn{Role: domain.RoleModel, Text: string(data)})
	return append(out, w.turns...), nil
}

// Record appends one exchange and evicts the oldest turns past the limit.
func (w *Window) Record(user, model string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.turns = append(w.turns,
		domain.Turn{Role: domain.RoleUser, Text: user},
		domain.Turn{Role: domain.RoleModel, Text: model},
	)
	w.trim()
}

// AppendModel appends a lone model turn, such as the greeting sent when a
// plan is first generated.
func (w *Window) AppendModel(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.turns = append(w.turns, domain.Turn{Role: domain.RoleModel, Text: text})
	w.trim()
}

func (w *Window) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.turns = nil
}

// Turns returns a copy of the stored turns, oldest first.
func (w *Window) Turns() []domain.Turn {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.Turn(nil), w.turns...)
}

func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.turns)
}

func (w *Window) MaxPairs() int {
	return w.maxPairs
}

func (w *Window) trim() {
	limit := 2 * w.maxPairs
	if len(w.turns) > limit {
		w.turns = append([]domain.Turn(nil), w.turns[len(w.turns)-limit:]...)
	}
}
