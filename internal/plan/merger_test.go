package plan

import (
	"testing"
	"time"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func day(n int, title string) stream.DailyPlan {
	return stream.DailyPlan{Plan: domain.DailyPlan{Day: n, Title: title, Activities: []domain.Activity{}}}
}

func TestFoldRomeExample(t *testing.T) {
	b := stream.NewBuffer()
	d := NewDraft()

	b.Append(`<general_info>{"city":"Rome"}</general_info><daily_pl`)
	Fold(d, b.Drain().Records)
	b.Append(`an>{"day":1,"title":"A","activities":[]}</daily_plan>`)
	Fold(d, b.Drain().Records)

	p := d.Plan()
	assert.Equal(t, "Rome", p.City)
	assert.Equal(t, []domain.DailyPlan{{Day: 1, Title: "A", Activities: []domain.Activity{}}}, p.Itinerary)
}

func TestFoldDuplicateDayOverwrites(t *testing.T) {
	d := NewDraft()
	Fold(d, []stream.Record{day(1, "one"), day(3, "first three"), day(2, "two"), day(3, "second three")})

	it := d.Itinerary()
	require.Len(t, it, 3)
	assert.Equal(t, "second three", it[2].Title)
	assert.Equal(t, 3, d.Days())
}

func TestFoldOutOfOrderDaysAreSorted(t *testing.T) {
	d := NewDraft()
	Fold(d, []stream.Record{day(2, "b"), day(1, "a")})

	it := d.Itinerary()
	require.Len(t, it, 2)
	assert.Equal(t, 1, it[0].Day)
	assert.Equal(t, 2, it[1].Day)
}

func TestFoldGeneralInfoOnlyOverwritesPresentFields(t *testing.T) {
	d := NewDraft()
	Fold(d, []stream.Record{
		stream.GeneralInfo{City: ptr("Rome"), Country: ptr("Italy"), Weather: &domain.Weather{AverageTemp: "20C"}},
		stream.GeneralInfo{Country: ptr("Italia"), CityLatitude: ptr(41.9)},
	})

	p := d.Plan()
	assert.Equal(t, "Rome", p.City)
	assert.Equal(t, "Italia", p.Country)
	assert.Equal(t, "20C", p.Weather.AverageTemp)
	assert.Equal(t, 41.9, p.CityLatitude)
}

func TestFoldConfirmation(t *testing.T) {
	d := NewDraft(WithDefaultConfirmation("default text"))
	assert.False(t, d.Confirmed())

	d.Apply(stream.Confirmation{})
	assert.True(t, d.Confirmed())
	assert.Equal(t, "default text", d.Confirmation())

	d.Apply(stream.Confirmation{Message: "Ready!"})
	assert.Equal(t, "Ready!", d.Plan().ConfirmationMessage)
}

func TestSnapshotIsIsolatedFromDraft(t *testing.T) {
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	d := NewDraft(WithClock(func() time.Time { return at }))
	d.Apply(day(1, "a"))

	s1 := d.Snapshot()
	s1.Plan.Itinerary[0].Title = "mutated"
	d.Apply(day(2, "b"))
	s2 := d.Snapshot()

	assert.Equal(t, uint64(1), s1.Seq)
	assert.Equal(t, uint64(2), s2.Seq)
	assert.Equal(t, at, s2.At)
	assert.Len(t, s1.Plan.Itinerary, 1)
	assert.Equal(t, "a", s2.Plan.Itinerary[0].Title)
}
