// Package validation provides data validation functionality for the
// medcheck API.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/medscan/medcheck-api/catalog/entities"
	"github.com/medscan/medcheck-api/interfaces"
	"github.com/medscan/medcheck-api/logging"
)

// Pre-compiled regex patterns, compiled once at package initialization
var (
	// Input validation: alphanumeric + safe punctuation used in drug names
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+']+$`)

	// Catalog keys are short alphanumeric identifiers
	drugIDRegex = regexp.MustCompile(`^[a-zA-Z0-9\-_]{1,64}$`)

	// Dangerous substrings checked before the allow-list regex;
	// strings.Contains is much faster than regex for these
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "onload=", "onerror=",
		"eval(", "expression(", "union select", "drop table", "--", "/*",
		"../", "..\\", "$(", "${", "`",
	}
)

// Compile-time check to ensure DataValidatorImpl implements DataValidator
var _ interfaces.DataValidator = (*DataValidatorImpl)(nil)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() *DataValidatorImpl {
	return &DataValidatorImpl{}
}

// ValidateDrug checks if a drug record is internally consistent
func (v *DataValidatorImpl) ValidateDrug(d *entities.Drug) error {
	if d == nil {
		return fmt.Errorf("drug is nil")
	}

	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("empty name for drug %q", d.ID)
	}

	if len(d.Name) > 200 {
		return fmt.Errorf("name too long for drug %q: %d characters", d.ID, len(d.Name))
	}

	for _, brand := range d.BrandNames {
		if strings.TrimSpace(brand) == "" {
			return fmt.Errorf("empty brand name for drug %q", d.Name)
		}
	}

	if d.IsCombination && len(d.ActiveIngredients) < 2 {
		// Not rejected: the ingredient-based matching heuristic simply
		// never fires for such a record, leaving brand/name matching
		logging.Warn("Combination drug with fewer than 2 active ingredients",
			"id", d.ID, "name", d.Name, "ingredients", len(d.ActiveIngredients))
	}

	for _, inter := range d.DrugInteractions {
		if inter.Severity.Rank() == 0 {
			return fmt.Errorf("invalid interaction severity %q for drug %q", inter.Severity, d.Name)
		}
	}

	for _, inter := range d.FoodInteractions {
		if inter.Restriction.Rank() == 0 {
			return fmt.Errorf("invalid food restriction %q for drug %q", inter.Restriction, d.Name)
		}
	}

	return nil
}

// ValidateCatalog performs whole-catalog validation: duplicate catalog
// keys, and combination ingredient names that have no identically spelled
// standalone record. The latter is reported only, since a missing
// standalone drug just means suppression never needs to fire for it.
func (v *DataValidatorImpl) ValidateCatalog(drugs []entities.Drug) error {
	seenIDs := make(map[string]bool, len(drugs))
	singlesByName := make(map[string]bool, len(drugs))

	for i := range drugs {
		if err := v.ValidateDrug(&drugs[i]); err != nil {
			return fmt.Errorf("catalog validation failed: %w", err)
		}

		if drugs[i].ID != "" {
			if seenIDs[drugs[i].ID] {
				return fmt.Errorf("duplicate catalog key: %q", drugs[i].ID)
			}
			seenIDs[drugs[i].ID] = true
		}

		if !drugs[i].IsCombination {
			singlesByName[strings.ToLower(drugs[i].Name)] = true
		}
	}

	// Cross-combination suppression depends on ingredient names being
	// spelled identically to the standalone display names
	for i := range drugs {
		if !drugs[i].IsCombination {
			continue
		}
		for _, ing := range drugs[i].ActiveIngredients {
			if ing.Name != "" && !singlesByName[strings.ToLower(ing.Name)] {
				logging.Debug("Combination ingredient has no standalone catalog record",
					"combination", drugs[i].Name, "ingredient", ing.Name)
			}
		}
	}

	return nil
}

// ValidateInput validates user-supplied search strings
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if input == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(input) > 100 {
		return fmt.Errorf("input too long: %d characters (max 100)", len(input))
	}

	lower := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			logging.Warn("Dangerous pattern in user input", "pattern", pattern)
			return fmt.Errorf("input contains invalid characters")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters")
	}

	return nil
}

// ValidateDrugID validates a catalog key from the request path
func (v *DataValidatorImpl) ValidateDrugID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if !drugIDRegex.MatchString(input) {
		return "", fmt.Errorf("invalid drug id")
	}
	return input, nil
}
