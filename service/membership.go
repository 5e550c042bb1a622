package service

import (
	"fmt"
	"slices"
	"strings"

	"github.com/padraicbc/rogainizer/apperr"
)

const noneConfigured = "(none configured)"

// MembershipError reports a team selection outside the event's configured set.
// It is a validation error: errors.Is(err, apperr.ErrValidation) holds.
type MembershipError struct {
	Field   string // "course" or "category"
	Value   string
	Allowed []string
}

func (e *MembershipError) Error() string {
	allowed := strings.Join(e.Allowed, ", ")
	if allowed == "" {
		allowed = noneConfigured
	}
	plural := "courses"
	if e.Field == "category" {
		plural = "categories"
	}
	return fmt.Sprintf("%s must be one of the event %s: %s", e.Field, plural, allowed)
}

func (e *MembershipError) Is(target error) bool { return target == apperr.ErrValidation }

// ValidateMembership checks course against courses, then category against
// categories. The first failure is returned.
func ValidateMembership(courses, categories []string, course, category string) error {
	if !slices.Contains(courses, course) {
		return &MembershipError{Field: "course", Value: course, Allowed: courses}
	}
	if !slices.Contains(categories, category) {
		return &MembershipError{Field: "category", Value: category, Allowed: categories}
	}
	return nil
}
