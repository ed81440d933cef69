package plan

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/events"
	"github.com/aretesun/hey-there/internal/plan"
	"github.com/aretesun/hey-there/internal/planner"
	"github.com/aretesun/hey-there/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeStream(evs ...events.Event) *planner.PlanStream {
	ch := make(chan events.Event, len(evs))
	for _, e := range evs {
		ch <- e
	}
	close(ch)
	done := make(chan struct{})
	close(done)
	return &planner.PlanStream{Events: ch, Done: done, Cancel: func() {}}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		plan      *domain.Plan
		confirmed bool
		want      string
	}{
		{"nothing yet", nil, false, "수신 중..."},
		{"days only", &domain.Plan{Itinerary: []domain.DailyPlan{{Day: 1}}}, false, "기본 정보 …  일정 1일"},
		{
			"general and days",
			&domain.Plan{City: "Rome", StartDate: "2025-05-01", EndDate: "2025-05-03", Itinerary: []domain.DailyPlan{{Day: 1}}},
			false,
			"기본 정보 ✓  일정 1/3일",
		},
		{
			"confirmed",
			&domain.Plan{City: "Rome", StartDate: "2025-05-01", EndDate: "2025-05-01", Itinerary: []domain.DailyPlan{{Day: 1}}},
			true,
			"기본 정보 ✓  일정 1/1일 완료",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, progress(tt.plan, tt.confirmed))
		})
	}
}

func TestPrintStreamWritesFinalPlan(t *testing.T) {
	final := &domain.Plan{
		City:      "Rome",
		Country:   "Italy",
		StartDate: "2025-05-01",
		EndDate:   "2025-05-01",
		Itinerary: []domain.DailyPlan{
			{Day: 1, Title: "Ancient Rome", Activities: []domain.Activity{{Time: "09:00", Description: "Colosseum", Icon: "museum"}}},
		},
		ConfirmationMessage: "Enjoy Rome!",
	}
	stream := fakeStream(
		events.SnapshotEvent{Snapshot: plan.Snapshot{Seq: 1, Plan: &domain.Plan{City: "Rome"}}},
		events.DecodeErrorEvent{Tag: "daily_plan", Error: errors.New("unexpected EOF")},
		events.CompleteEvent{TripID: "3f2a9c1e-0000-0000-0000-000000000000", Plan: plan.Snapshot{Seq: 2, Plan: final, Confirmed: true}},
	)

	var out, errOut bytes.Buffer
	require.NoError(t, printStream(&out, &errOut, stream))

	assert.Contains(t, out.String(), "Colosseum")
	assert.Contains(t, out.String(), "Enjoy Rome!")
	assert.Contains(t, errOut.String(), "daily_plan 항목을 건너뜁니다")
	assert.Contains(t, errOut.String(), "저장됨: 3f2a9c1e")
}

func TestPrintStreamReturnsError(t *testing.T) {
	stream := fakeStream(events.ErrorEvent{Error: domain.NoPlanError{}})

	var out, errOut bytes.Buffer
	err := printStream(&out, &errOut, stream)
	require.Error(t, err)
	assert.True(t, domain.IsNoPlanError(err))
	assert.Empty(t, out.String())
}

func TestArgsAfter(t *testing.T) {
	assert.Nil(t, argsAfter([]string{"abc"}, 1))
	assert.Equal(t, []string{"more", "food"}, argsAfter([]string{"abc", "more", "food"}, 1))
}

func TestPrintStreamShowsPartialPlanOnError(t *testing.T) {
	partial := &domain.Plan{
		City:      "Rome",
		StartDate: "2025-05-01",
		EndDate:   "2025-05-02",
		Itinerary: []domain.DailyPlan{
			{Day: 1, Title: "Ancient Rome", Activities: []domain.Activity{{Time: "09:00", Description: "Colosseum", Icon: "museum"}}},
		},
	}
	stream := fakeStream(
		events.SnapshotEvent{Snapshot: plan.Snapshot{Seq: 1, Plan: &domain.Plan{City: "Rome"}}},
		events.SnapshotEvent{Snapshot: plan.Snapshot{Seq: 2, Plan: partial}},
		events.ErrorEvent{Error: session.ErrTimeout},
	)

	var out, errOut bytes.Buffer
	err := printStream(&out, &errOut, stream)
	require.ErrorIs(t, err, session.ErrTimeout)

	assert.Contains(t, out.String(), "Colosseum")
	assert.Contains(t, out.String(), "1/2일 일정 수신 중...")
}
