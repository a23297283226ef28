package entities

import (
	"fmt"
	"strings"
)

// InteractionSeverity is the closed set of drug-drug interaction severities.
// Unrecognized values are rejected when the catalog is loaded, so matching
// and evaluation never see anything outside these three.
type InteractionSeverity string

const (
	SeverityMild     InteractionSeverity = "mild"
	SeverityModerate InteractionSeverity = "moderate"
	SeveritySevere   InteractionSeverity = "severe"
)

// ParseInteractionSeverity parses a raw severity string from catalog data.
func ParseInteractionSeverity(s string) (InteractionSeverity, error) {
	switch InteractionSeverity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityMild:
		return SeverityMild, nil
	case SeverityModerate:
		return SeverityModerate, nil
	case SeveritySevere:
		return SeveritySevere, nil
	}
	return "", fmt.Errorf("unknown interaction severity: %q", s)
}

// Rank orders severities for risk precedence, higher is worse.
func (s InteractionSeverity) Rank() int {
	switch s {
	case SeveritySevere:
		return 3
	case SeverityModerate:
		return 2
	case SeverityMild:
		return 1
	}
	return 0
}

// FoodRestriction is the closed set of food interaction restrictions.
type FoodRestriction string

const (
	RestrictionLimit   FoodRestriction = "limit"
	RestrictionCaution FoodRestriction = "caution"
	RestrictionAvoid   FoodRestriction = "avoid"
)

// ParseFoodRestriction parses a raw restriction string from catalog data.
func ParseFoodRestriction(s string) (FoodRestriction, error) {
	switch FoodRestriction(strings.ToLower(strings.TrimSpace(s))) {
	case RestrictionLimit:
		return RestrictionLimit, nil
	case RestrictionCaution:
		return RestrictionCaution, nil
	case RestrictionAvoid:
		return RestrictionAvoid, nil
	}
	return "", fmt.Errorf("unknown food restriction: %q", s)
}

// Rank orders restrictions from least to most restrictive.
func (r FoodRestriction) Rank() int {
	switch r {
	case RestrictionAvoid:
		return 3
	case RestrictionCaution:
		return 2
	case RestrictionLimit:
		return 1
	}
	return 0
}
