package warnings

import "github.com/medscan/medcheck-api/catalog/entities"

// RiskLevel is the ordered risk tier assigned to an evaluation result.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Rank orders risk tiers, higher is worse.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	}
	return 0
}

// Result is the outcome of evaluating one drug against a user profile and
// the other drugs in use. It is constructed fresh per evaluation, never
// mutated afterwards, and carries no identity. Downstream consumers are
// expected to branch on RiskLevel and HasWarnings only.
type Result struct {
	Drug                    entities.Drug              `json:"drug"`
	MatchedAllergies        []string                   `json:"matchedAllergies"`
	MatchedConditions       []string                   `json:"matchedConditions"`
	MatchedDrugInteractions []entities.DrugInteraction `json:"matchedDrugInteractions"`
	FoodInteractions        []entities.FoodInteraction `json:"foodInteractions"`
	RiskLevel               RiskLevel                  `json:"riskLevel"`
	HasWarnings             bool                       `json:"hasWarnings"`
}
