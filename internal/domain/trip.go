package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MaxTripDays bounds a trip to start date plus fourteen days.
const MaxTripDays = 15

const DateLayout = "2006-01-02"

type TravelStyle string

const (
	StyleAdventure  TravelStyle = "adventure"
	StyleRelaxation TravelStyle = "relaxation"
	StyleCulture    TravelStyle = "culture"
	StyleFood       TravelStyle = "food"
	StyleShopping   TravelStyle = "shopping"
	StyleNature     TravelStyle = "nature"
)

type Budget string

const (
	BudgetThrifty  Budget = "budget"
	BudgetStandard Budget = "standard"
	BudgetLuxury   Budget = "luxury"
)

// TripRequest is what the user asks a plan for.
type TripRequest struct {
	City      string        `json:"city" validate:"required"`
	StartDate string        `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string        `json:"endDate" validate:"required,datetime=2006-01-02"`
	Styles    []TravelStyle `json:"styles,omitempty" validate:"dive,oneof=adventure relaxation culture food shopping nature"`
	Budget    Budget        `json:"budget,omitempty" validate:"omitempty,oneof=budget standard luxury"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(tripDatesValidation, TripRequest{})
	return v
}

func tripDatesValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(TripRequest)
	start, err1 := time.Parse(DateLayout, req.StartDate)
	end, err2 := time.Parse(DateLayout, req.EndDate)
	if err1 != nil || err2 != nil {
		// reported by the field level datetime rule
		return
	}
	if end.Before(start) {
		sl.ReportError(req.EndDate, "EndDate", "endDate", "gtefield", "StartDate")
		return
	}
	if end.After(start.AddDate(0, 0, MaxTripDays-1)) {
		sl.ReportError(req.EndDate, "EndDate", "endDate", "maxtrip", fmt.Sprint(MaxTripDays))
	}
}

// Validate checks the request before any generation is started.
func (r TripRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid trip request: %w", err)
	}
	return nil
}

// Days is the inclusive number of trip days. Unparseable dates yield 0.
func (r TripRequest) Days() int {
	return TripDays(r.StartDate, r.EndDate)
}

// TripDays counts the days between two dates, both ends included.
func TripDays(startDate, endDate string) int {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// StylesText joins the selected styles for display and prompting.
func (r TripRequest) StylesText() string {
	parts := make([]string, len(r.Styles))
	for i, s := range r.Styles {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// ValidateStruct runs the shared validator over any domain value.
func ValidateStruct(v any) error {
	return validate.Struct(v)
}
