package stream

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretesun/hey-there/internal/domain"
)

// Record is a decoded payload. The concrete types are GeneralInfo,
// DailyPlan and Confirmation.
type Record interface {
	Tag() Tag
}

// GeneralInfo carries the destination-wide fields of a plan. Nil fields were
// absent from the payload and must not overwrite anything.
type GeneralInfo struct {
	City               *string                    `json:"city"`
	Country            *string                    `json:"country"`
	StartDate          *string                    `json:"startDate"`
	EndDate            *string                    `json:"endDate"`
	Weather            *domain.Weather            `json:"weather"`
	ExchangeRate       *domain.ExchangeRate       `json:"exchangeRate"`
	CulturalTips       []string                   `json:"culturalTips"`
	TransportationInfo *domain.TransportationInfo `json:"transportationInfo"`
	PriceInfo          *domain.PriceInfo          `json:"priceInfo"`
	CityLatitude       *float64                   `json:"cityLatitude"`
	CityLongitude      *float64                   `json:"cityLongitude"`
}

func (GeneralInfo) Tag() Tag { return TagGeneralInfo }

type DailyPlan struct {
	Plan domain.DailyPlan
}

func (DailyPlan) Tag() Tag { return TagDailyPlan }

type Confirmation struct {
	Message string `json:"confirmationMessage"`
}

func (Confirmation) Tag() Tag { return TagConfirmation }

// DecodeError reports a delimited payload that could not be turned into a
// record. The payload is dropped; the stream carries on.
type DecodeError struct {
	Tag Tag
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s payload: %v", e.Tag, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses the text found between a tag pair.
func Decode(tag Tag, inner string) (Record, error) {
	data := []byte(strings.TrimSpace(inner))

	var rec Record
	switch tag {
	case TagGeneralInfo:
		var gi GeneralInfo
		if err := json.Unmarshal(data, &gi); err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		rec = gi
	case TagDailyPlan:
		var dp domain.DailyPlan
		if err := json.Unmarshal(data, &dp); err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		if err := domain.ValidateStruct(dp); err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		rec = DailyPlan{Plan: dp}
	case TagConfirmation:
		var c Confirmation
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, &DecodeError{Tag: tag, Err: err}
		}
		rec = c
	default:
		return nil, &DecodeError{Tag: tag, Err: fmt.Errorf("unknown tag %q", tag)}
	}
	return rec, nil
}
