package entities

type DrugInteraction struct {
	DrugName    string              `json:"drugName"`
	Severity    InteractionSeverity `json:"severity"`
	Description string              `json:"description,omitempty"`
}

type FoodInteraction struct {
	FoodName    string          `json:"foodName"`
	Restriction FoodRestriction `json:"restriction"`
	Description string          `json:"description,omitempty"`
}
