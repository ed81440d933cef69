package render

import (
	"bytes"
	"testing"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPlanPartial(t *testing.T) {
	p := &domain.Plan{
		City:      "Rome",
		Country:   "Italy",
		StartDate: "2025-05-01",
		EndDate:   "2025-05-03",
		Itinerary: []domain.DailyPlan{{Day: 1, Title: "Ancient Rome", Activities: []domain.Activity{
			{Time: "09:00", Description: "Colosseum", Icon: "🏛️", KlookURL: "https://klook.example/colosseum"},
		}}},
	}

	var buf bytes.Buffer
	Plan(&buf, p, false, Plain())
	out := buf.String()

	assert.Contains(t, out, "Rome, Italy")
	assert.Contains(t, out, "Day 1 · Ancient Rome")
	assert.Contains(t, out, "Colosseum")
	assert.Contains(t, out, "https://klook.example/colosseum")
	assert.Contains(t, out, "1/3")

	buf.Reset()
	Plan(&buf, p, true, Plain())
	assert.NotContains(t, buf.String(), "1/3")
}

func TestPlanNil(t *testing.T) {
	var buf bytes.Buffer
	Plan(&buf, nil, false, Plain())
	assert.NotEmpty(t, buf.String())
}

func TestPackingList(t *testing.T) {
	list := &domain.PackingList{Categories: []domain.PackingCategory{
		{Category: "Essentials", Items: []domain.PackingItem{{Item: "Passport"}, {Item: "Adapter", Note: "type L"}}},
	}}

	var buf bytes.Buffer
	PackingList(&buf, list, Plain())
	assert.Equal(t, "Essentials\n  [ ] Passport\n  [ ] Adapter (type L)\n", buf.String())
}

func TestSearchLinks(t *testing.T) {
	var buf bytes.Buffer
	SearchLinks(&buf, "", Plain())
	assert.Empty(t, buf.String())

	SearchLinks(&buf, "Rome", Plain())
	assert.Contains(t, buf.String(), "search.naver.com")
}
