// Package render formats plans and packing lists as text. The CLI prints
// them unstyled; the viewer passes lipgloss backed Styles.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretesun/hey-there/internal/domain"
)

// Style decorates a fragment of text.
type Style func(string) string

type Styles struct {
	Title    Style
	Section  Style
	Day      Style
	Time     Style
	Muted    Style
	Pending  Style
	Confirm  Style
	Category Style
}

func identity(s string) string { return s }

// Plain returns styles that leave text unchanged.
func Plain() Styles {
	return Styles{
		Title:    identity,
		Section:  identity,
		Day:      identity,
		Time:     func(s string) string { return fmt.Sprintf("%-6s", s) },
		Muted:    identity,
		Pending:  identity,
		Confirm:  identity,
		Category: identity,
	}
}

// Plan writes p. Sections the model has not sent yet are shown as pending
// unless the plan is complete.
func Plan(w io.Writer, p *domain.Plan, complete bool, s Styles) {
	if p == nil {
		fmt.Fprintln(w, s.Pending("계획을 기다리는 중..."))
		return
	}

	header := p.City
	if p.Country != "" {
		header += ", " + p.Country
	}
	if header == "" {
		header = "..."
	}
	fmt.Fprintln(w, s.Title(header))
	if p.StartDate != "" || p.EndDate != "" {
		fmt.Fprintln(w, s.Muted(fmt.Sprintf("%s ~ %s", p.StartDate, p.EndDate)))
	}

	if p.Weather.Description != "" || p.Weather.AverageTemp != "" {
		fmt.Fprintln(w, s.Section("날씨"))
		fmt.Fprintf(w, "  %s, %s\n", p.Weather.AverageTemp, p.Weather.Description)
	}
	if p.ExchangeRate.Rate != "" {
		fmt.Fprintln(w, s.Section("환율"))
		fmt.Fprintf(w, "  %s\n", p.ExchangeRate.Rate)
	}
	if len(p.CulturalTips) > 0 {
		fmt.Fprintln(w, s.Section("문화 팁"))
		for _, tip := range p.CulturalTips {
			fmt.Fprintf(w, "  - %s\n", tip)
		}
	}
	if p.TransportationInfo.Description != "" {
		fmt.Fprintln(w, s.Section("교통"))
		fmt.Fprintf(w, "  %s\n", p.TransportationInfo.Description)
		for _, o := range p.TransportationInfo.Options {
			fmt.Fprintf(w, "  - %s\n", o)
		}
	}
	if p.PriceInfo.Level != "" {
		fmt.Fprintln(w, s.Section("물가"))
		fmt.Fprintf(w, "  %s: %s\n", p.PriceInfo.Level, p.PriceInfo.Description)
		for _, e := range p.PriceInfo.Examples {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}

	for _, day := range p.Itinerary {
		fmt.Fprintln(w, s.Day(fmt.Sprintf("Day %d · %s", day.Day, day.Title)))
		for _, a := range day.Activities {
			fmt.Fprintf(w, "  %s %s %s\n", s.Time(a.Time), a.Icon, a.Description)
			if links := bookingLinks(a); links != "" {
				fmt.Fprintf(w, "         %s\n", s.Muted(links))
			}
		}
	}

	if wanted := domain.TripDays(p.StartDate, p.EndDate); !complete && wanted > len(p.Itinerary) {
		fmt.Fprintln(w, s.Pending(fmt.Sprintf("\n%d/%d일 일정 수신 중...", len(p.Itinerary), wanted)))
	}
	if p.ConfirmationMessage != "" {
		fmt.Fprintln(w, s.Confirm(p.ConfirmationMessage))
	}
}

func bookingLinks(a domain.Activity) string {
	var links []string
	for _, l := range []string{a.KlookURL, a.BookingURL, a.TripAdvisorURL} {
		if l != "" {
			links = append(links, l)
		}
	}
	return strings.Join(links, " ")
}

// PackingList writes list grouped by category.
func PackingList(w io.Writer, list *domain.PackingList, s Styles) {
	for _, c := range list.Categories {
		fmt.Fprintln(w, s.Category(c.Category))
		for _, item := range c.Items {
			if item.Note != "" {
				fmt.Fprintf(w, "  [ ] %s %s\n", item.Item, s.Muted("("+item.Note+")"))
				continue
			}
			fmt.Fprintf(w, "  [ ] %s\n", item.Item)
		}
	}
}

// SearchLinks writes the follow-up search links for city.
func SearchLinks(w io.Writer, city string, s Styles) {
	if city == "" {
		return
	}
	fmt.Fprintln(w, s.Section("더 찾아보기"))
	for _, c := range domain.SearchCategories(city) {
		fmt.Fprintf(w, "  %s %s\n", c.Emoji, c.Label)
		for _, q := range c.Queries {
			fmt.Fprintf(w, "    %s %s\n", q, s.Muted(domain.BlogSearchURL(q)))
		}
	}
}
