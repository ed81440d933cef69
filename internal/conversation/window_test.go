package conversation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowStaysBounded(t *testing.T) {
	w := NewWindow(3)
	p := &domain.Plan{City: "Rome"}

	for i := 1; i <= 10; i++ {
		w.Record(fmt.Sprintf("edit %d", i), fmt.Sprintf("done %d", i))

		ctx, err := w.BuildContext(p)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(ctx), 2*3+1)
		assert.LessOrEqual(t, w.Len(), 6)
	}

	turns := w.Turns()
	require.Len(t, turns, 6)
	assert.Equal(t, domain.Turn{Role: domain.RoleUser, Text: "edit 8"}, turns[0])
	assert.Equal(t, domain.Turn{Role: domain.RoleModel, Text: "done 10"}, turns[5])
}

func TestBuildContextStartsWithPlan(t *testing.T) {
	w := NewWindow(DefaultMaxPairs)
	w.AppendModel("Your plan is ready")
	w.Record("add a museum", "Added the Vatican Museums")

	p := &domain.Plan{City: "Rome", Itinerary: []domain.DailyPlan{{Day: 1, Title: "A", Activities: []domain.Activity{}}}}
	ctx, err := w.BuildContext(p)
	require.NoError(t, err)
	require.Len(t, ctx, 4)

	assert.Equal(t, domain.RoleModel, ctx[0].Role)
	var decoded domain.Plan
	require.NoError(t, json.Unmarshal([]byte(ctx[0].Text), &decoded))
	assert.Equal(t, *p, decoded)

	assert.Equal(t, "Your plan is ready", ctx[1].Text)
	assert.Equal(t, domain.RoleUser, ctx[2].Role)
}

func TestBuildContextWithoutPlan(t *testing.T) {
	_, err := NewWindow(3).BuildContext(nil)
	assert.True(t, domain.IsNoPlanError(err))
}

func TestAppendModelCountsTowardLimit(t *testing.T) {
	w := NewWindow(1)
	w.AppendModel("greeting")
	w.Record("q", "a")
	assert.Equal(t, []domain.Turn{
		{Role: domain.RoleUser, Text: "q"},
		{Role: domain.RoleModel, Text: "a"},
	}, w.Turns())
}

func TestResetAndRestore(t *testing.T) {
	w := Restore(2, []domain.Turn{
		{Role: domain.RoleUser, Text: "1"}, {Role: domain.RoleModel, Text: "2"},
		{Role: domain.RoleUser, Text: "3"}, {Role: domain.RoleModel, Text: "4"},
		{Role: domain.RoleUser, Text: "5"}, {Role: domain.RoleModel, Text: "6"},
	})
	assert.Equal(t, 4, w.Len())
	assert.Equal(t, "3", w.Turns()[0].Text)

	w.Reset()
	assert.Zero(t, w.Len())
}
