package entities

// Drug represents one catalog entry, single-ingredient or combination.
// Records are loaded read-only into the catalog container and are never
// mutated during a matching or evaluation pass.
type Drug struct {
	ID                string             `json:"id,omitempty"` // catalog key, empty for transient records
	Name              string             `json:"name"`
	BrandNames        []string           `json:"brandNames,omitempty"`
	Category          string             `json:"category,omitempty"`
	IsCombination     bool               `json:"isCombination"`
	ActiveIngredients []ActiveIngredient `json:"activeIngredients,omitempty"`
	AllergyWarnings   []string           `json:"allergyWarnings,omitempty"`
	ConditionWarnings []string           `json:"conditionWarnings,omitempty"`
	DrugInteractions  []DrugInteraction  `json:"drugInteractions,omitempty"`
	FoodInteractions  []FoodInteraction  `json:"foodInteractions,omitempty"`
}

// ActiveIngredient is one co-formulated substance of a drug. Ingredient
// names double as the suppression key during matching, so they must be
// spelled the same way the standalone drug is named in the catalog.
type ActiveIngredient struct {
	Name     string `json:"name"`
	Strength string `json:"strength,omitempty"`
}
