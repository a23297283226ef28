// Package warnings cross-references a drug's hazard metadata against a
// user's allergies, chronic conditions, and other drugs in use, producing
// a ranked safety verdict.
package warnings

import (
	"strings"

	"github.com/medscan/medcheck-api/catalog/entities"
	"github.com/medscan/medcheck-api/logging"
)

// Evaluate computes which of drug's hazards apply to the given profile and
// assigns a risk tier. It is pure and total: no input can make it fail,
// and a drug with no hazard data yields an empty result at RiskLow.
//
// Precondition: otherDrugs must not contain drug itself; the caller owns
// self-exclusion (EvaluateBatch does this for a whole scan). A peer that
// shares drug's non-empty catalog ID is skipped and logged so a regressing
// caller shows up in logs instead of inflating its own interactions.
func Evaluate(drug entities.Drug, allergies []string, conditions []string, otherDrugs []entities.Drug) Result {
	matchedAllergies := make([]string, 0)
	for _, w := range drug.AllergyWarnings {
		if containsFold(allergies, w) {
			matchedAllergies = append(matchedAllergies, w)
		}
	}

	matchedConditions := make([]string, 0)
	for _, w := range drug.ConditionWarnings {
		if containsFold(conditions, w) {
			matchedConditions = append(matchedConditions, w)
		}
	}

	matchedInteractions := make([]entities.DrugInteraction, 0)
	for _, inter := range drug.DrugInteractions {
		if interactionApplies(drug, inter, otherDrugs) {
			matchedInteractions = append(matchedInteractions, inter)
		}
	}

	result := Result{
		Drug:                    drug,
		MatchedAllergies:        matchedAllergies,
		MatchedConditions:       matchedConditions,
		MatchedDrugInteractions: matchedInteractions,
		// Food hazards are informational, not profile-gated
		FoodInteractions: drug.FoodInteractions,
	}
	result.RiskLevel = riskLevel(&result)
	result.HasWarnings = len(matchedAllergies) > 0 || len(matchedConditions) > 0 || len(matchedInteractions) > 0

	return result
}

// EvaluateBatch evaluates every drug of a confirmed scan against the same
// profile, passing each one the remaining drugs as its peer set. This is
// the supported way to satisfy Evaluate's self-exclusion precondition.
func EvaluateBatch(drugs []entities.Drug, allergies []string, conditions []string) []Result {
	results := make([]Result, 0, len(drugs))
	for i := range drugs {
		others := make([]entities.Drug, 0, len(drugs)-1)
		others = append(others, drugs[:i]...)
		others = append(others, drugs[i+1:]...)
		results = append(results, Evaluate(drugs[i], allergies, conditions, others))
	}
	return results
}

// interactionApplies reports whether any other drug in use matches the
// interaction's drug name, by display name or any brand name.
func interactionApplies(subject entities.Drug, inter entities.DrugInteraction, otherDrugs []entities.Drug) bool {
	for i := range otherDrugs {
		other := &otherDrugs[i]
		if subject.ID != "" && other.ID == subject.ID {
			logging.Warn("Evaluator received the subject drug in its own peer set, skipping",
				"drug_id", subject.ID, "drug_name", subject.Name)
			continue
		}
		if strings.EqualFold(other.Name, inter.DrugName) {
			return true
		}
		for _, brand := range other.BrandNames {
			if strings.EqualFold(brand, inter.DrugName) {
				return true
			}
		}
	}
	return false
}

// riskLevel applies the tier precedence. First match wins; allergy and
// severe-interaction signals are never masked by a lower tier, and adding
// matched hazards can never lower the tier.
func riskLevel(r *Result) RiskLevel {
	if len(r.MatchedAllergies) > 0 {
		return RiskHigh
	}
	for _, inter := range r.MatchedDrugInteractions {
		if inter.Severity == entities.SeveritySevere {
			return RiskHigh
		}
	}
	if len(r.MatchedConditions) > 0 {
		return RiskMedium
	}
	if len(r.MatchedDrugInteractions) > 0 {
		return RiskMedium
	}
	return RiskLow
}

// containsFold reports whether values contains s case-insensitively, by
// exact string equality rather than substring containment.
func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
