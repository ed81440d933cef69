package domain

// Weather is the expected climate at the destination for the travel dates.
type Weather struct {
	AverageTemp string `json:"averageTemp" jsonschema:"required,description=Average temperature in Celsius"`
	Description string `json:"description" jsonschema:"required,description=Brief weather description"`
}

type ExchangeRate struct {
	From string `json:"from" jsonschema:"required,description=Currency converting from"`
	To   string `json:"to" jsonschema:"required,description=Local currency"`
	Rate string `json:"rate" jsonschema:"required,description=The exchange rate as a complete string such as 1000 KRW = 0.72 USD"`
}

type TransportationInfo struct {
	Description string   `json:"description" jsonschema:"required"`
	Options     []string `json:"options" jsonschema:"required,description=Examples of transportation costs"`
}

type PriceInfo struct {
	Level       string   `json:"level" jsonschema:"required,description=General price level such as Affordable or Expensive"`
	Description string   `json:"description" jsonschema:"required"`
	Examples    []string `json:"examples" jsonschema:"required,description=Examples of common costs"`
}

// Activity is a single timed entry of a day's itinerary. Coordinates and
// booking links are only present for concrete places.
type Activity struct {
	Time           string   `json:"time" jsonschema:"required"`
	Description    string   `json:"description" validate:"required" jsonschema:"required"`
	Icon           string   `json:"icon" jsonschema:"required,description=An emoji or a keyword like restaurant or museum or hotel"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	KlookURL       string   `json:"klookUrl,omitempty"`
	BookingURL     string   `json:"bookingUrl,omitempty"`
	TripAdvisorURL string   `json:"tripAdvisorUrl,omitempty"`
}

// DailyPlan is the itinerary of one trip day. Day is 1-based and unique
// within a plan.
type DailyPlan struct {
	Day        int        `json:"day" validate:"required,min=1" jsonschema:"required,minimum=1"`
	Title      string     `json:"title" validate:"required" jsonschema:"required"`
	Activities []Activity `json:"activities" validate:"required,dive" jsonschema:"required"`
}

// Plan is the complete travel document. Itinerary is always sorted by day.
type Plan struct {
	City                string             `json:"city" validate:"required" jsonschema:"required"`
	Country             string             `json:"country" jsonschema:"required"`
	StartDate           string             `json:"startDate" jsonschema:"required"`
	EndDate             string             `json:"endDate" jsonschema:"required"`
	Weather             Weather            `json:"weather" jsonschema:"required"`
	ExchangeRate        ExchangeRate       `json:"exchangeRate" jsonschema:"required"`
	CulturalTips        []string           `json:"culturalTips" jsonschema:"required"`
	TransportationInfo  TransportationInfo `json:"transportationInfo" jsonschema:"required"`
	PriceInfo           PriceInfo          `json:"priceInfo" jsonschema:"required"`
	Itinerary           []DailyPlan        `json:"itinerary" validate:"dive" jsonschema:"required"`
	CityLatitude        float64            `json:"cityLatitude" jsonschema:"required"`
	CityLongitude       float64            `json:"cityLongitude" jsonschema:"required"`
	ConfirmationMessage string             `json:"confirmationMessage,omitempty"`
}

// Activities returns every activity of the itinerary in day order.
func (p *Plan) Activities() []Activity {
	var all []Activity
	for _, d := range p.Itinerary {
		all = append(all, d.Activities...)
	}
	return all
}

// Clone returns a deep copy of the plan.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	c := *p
	c.CulturalTips = cloneStrings(p.CulturalTips)
	c.TransportationInfo.Options = cloneStrings(p.TransportationInfo.Options)
	c.PriceInfo.Examples = cloneStrings(p.PriceInfo.Examples)
	if p.Itinerary != nil {
		c.Itinerary = make([]DailyPlan, len(p.Itinerary))
		for i, d := range p.Itinerary {
			c.Itinerary[i] = d.Clone()
		}
	}
	return &c
}

// Clone returns a deep copy of the day.
func (d DailyPlan) Clone() DailyPlan {
	c := d
	if d.Activities != nil {
		c.Activities = make([]Activity, len(d.Activities))
		for i, a := range d.Activities {
			c.Activities[i] = a
			if a.Latitude != nil {
				lat := *a.Latitude
				c.Activities[i].Latitude = &lat
			}
			if a.Longitude != nil {
				lng := *a.Longitude
				c.Activities[i].Longitude = &lng
			}
		}
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
