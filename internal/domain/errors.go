package domain

import "errors"

// NoPlanError is returned when an operation needs a plan and none exists,
// either because nothing was generated yet or the archive has no match.
type NoPlanError struct {
	ID string
}

func (e NoPlanError) Error() string {
	if e.ID != "" {
		return "no trip found matching " + e.ID
	}
	return "no travel plan available"
}

func IsNoPlanError(err error) bool {
	var target NoPlanError
	return errors.As(err, &target)
}
