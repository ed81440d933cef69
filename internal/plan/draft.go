package plan

import (
	"sort"
	"time"

	"github.com/aretesun/hey-there/internal/domain"
)

const DefaultConfirmation = "여행 계획이 생성되었습니다. 변경하고 싶은 점이 있다면 말씀해주세요!"

// Draft is the plan under construction during one generation run. It is not
// safe for concurrent use; readers get copies through Plan or Snapshot.
type Draft struct {
	general             domain.Plan
	days                map[int]domain.DailyPlan
	confirmation        string
	confirmed           bool
	defaultConfirmation string
	seq                 uint64
	now                 func() time.Time
}

type Option func(*Draft)

// WithDefaultConfirmation sets the message used when the model confirms
// without text.
func WithDefaultConfirmation(msg string) Option {
	return func(d *Draft) {
		if msg != "" {
			d.defaultConfirmation = msg
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Draft) {
		d.now = now
	}
}

func NewDraft(opts ...Option) *Draft {
	d := &Draft{
		days:                make(map[int]domain.DailyPlan),
		defaultConfirmation: DefaultConfirmation,
		now:                 time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Itinerary returns copies of the known days in ascending day order.
func (d *Draft) Itinerary() []domain.DailyPlan {
	keys := make([]int, 0, len(d.days))
	for k := range d.days {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]domain.DailyPlan, 0, len(keys))
	for _, k := range keys {
		out = append(out, d.days[k].Clone())
	}
	return out
}

// Plan returns a deep copy of the current document.
func (d *Draft) Plan() *domain.Plan {
	p := d.general.Clone()
	p.Itinerary = d.Itinerary()
	p.ConfirmationMessage = d.confirmation
	return p
}

// Confirmed reports whether the confirmation payload has been folded in.
func (d *Draft) Confirmed() bool {
	return d.confirmed
}

func (d *Draft) Confirmation() string {
	return d.confirmation
}

// Days returns the number of distinct days received so far.
func (d *Draft) Days() int {
	return len(d.days)
}

// Snapshot is an immutable published view of a draft.
type Snapshot struct {
	Seq       uint64
	At        time.Time
	Plan      *domain.Plan
	Confirmed bool
}

// Snapshot copies the draft and stamps it with the next sequence number.
func (d *Draft) Snapshot() Snapshot {
	d.seq++
	return Snapshot{
		Seq:       d.seq,
		At:        d.now(),
		Plan:      d.Plan(),
		Confirmed: d.confirmed,
	}
}
