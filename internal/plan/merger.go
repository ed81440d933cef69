package plan

import (
	"github.com/aretesun/hey-there/internal/domain"
	"github.com/aretesun/hey-there/internal/stream"
)

// Fold merges records into the draft in order.
func Fold(d *Draft, records []stream.Record) {
	for _, rec := range records {
		d.Apply(rec)
	}
}

// Apply merges a single record. General info only overwrites the fields it
// carries, a daily plan replaces any earlier plan for the same day.
func (d *Draft) Apply(rec stream.Record) {
	switch r := rec.(type) {
	case stream.GeneralInfo:
		d.applyGeneral(r)
	case stream.DailyPlan:
		d.days[r.Plan.Day] = r.Plan.Clone()
	case stream.Confirmation:
		d.confirmation = r.Message
		if d.confirmation == "" {
			d.confirmation = d.defaultConfirmation
		}
		d.confirmed = true
	}
}

func (d *Draft) applyGeneral(gi stream.GeneralInfo) {
	g := &d.general
	setString(&g.City, gi.City)
	setString(&g.Country, gi.Country)
	setString(&g.StartDate, gi.StartDate)
	setString(&g.EndDate, gi.EndDate)
	if gi.Weather != nil {
		g.Weather = *gi.Weather
	}
	if gi.ExchangeRate != nil {
		g.ExchangeRate = *gi.ExchangeRate
	}
	if gi.CulturalTips != nil {
		g.CulturalTips = append([]string(nil), gi.CulturalTips...)
	}
	if gi.TransportationInfo != nil {
		g.TransportationInfo = domain.TransportationInfo{
			Description: gi.TransportationInfo.Description,
			Options:     append([]string(nil), gi.TransportationInfo.Options...),
		}
	}
	if gi.PriceInfo != nil {
		g.PriceInfo = domain.PriceInfo{
			Level:       gi.PriceInfo.Level,
			Description: gi.PriceInfo.Description,
			Examples:    append([]string(nil), gi.PriceInfo.Examples...),
		}
	}
	if gi.CityLatitude != nil {
		g.CityLatitude = *gi.CityLatitude
	}
	if gi.CityLongitude != nil {
		g.CityLongitude = *gi.CityLongitude
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
