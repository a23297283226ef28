package validation

import (
	"strings"
	"testing"

	"github.com/medscan/medcheck-api/catalog/entities"
	"github.com/medscan/medcheck-api/logging"
)

func TestValidateDrug(t *testing.T) {
	logging.InitLogger("")

	v := NewDataValidator()

	tests := []struct {
		name    string
		drug    *entities.Drug
		wantErr bool
	}{
		{
			name:    "nil drug",
			drug:    nil,
			wantErr: true,
		},
		{
			name:    "valid single",
			drug:    &entities.Drug{ID: "d1", Name: "Paracetamol"},
			wantErr: false,
		},
		{
			name:    "empty name",
			drug:    &entities.Drug{ID: "d1", Name: "   "},
			wantErr: true,
		},
		{
			name:    "name too long",
			drug:    &entities.Drug{ID: "d1", Name: strings.Repeat("x", 201)},
			wantErr: true,
		},
		{
			name:    "empty brand name",
			drug:    &entities.Drug{ID: "d1", Name: "Paracetamol", BrandNames: []string{" "}},
			wantErr: true,
		},
		{
			name: "invalid severity",
			drug: &entities.Drug{
				ID:   "d1",
				Name: "Aspirin",
				DrugInteractions: []entities.DrugInteraction{
					{DrugName: "Warfarin", Severity: "extreme"},
				},
			},
			wantErr: true,
		},
		{
			name: "invalid restriction",
			drug: &entities.Drug{
				ID:   "d1",
				Name: "Aspirin",
				FoodInteractions: []entities.FoodInteraction{
					{FoodName: "Alcohol", Restriction: "never"},
				},
			},
			wantErr: true,
		},
		{
			name: "combination with one ingredient is accepted",
			drug: &entities.Drug{
				ID:            "d1",
				Name:          "Odd Combo",
				IsCombination: true,
				ActiveIngredients: []entities.ActiveIngredient{
					{Name: "Something"},
				},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDrug(tt.drug)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDrug() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCatalogDuplicateKeys(t *testing.T) {
	logging.InitLogger("")

	v := NewDataValidator()

	drugs := []entities.Drug{
		{ID: "d1", Name: "Paracetamol"},
		{ID: "d1", Name: "Aspirin"},
	}

	if err := v.ValidateCatalog(drugs); err == nil {
		t.Error("expected duplicate key error")
	}
}

func TestValidateCatalogOK(t *testing.T) {
	logging.InitLogger("")

	v := NewDataValidator()

	drugs := []entities.Drug{
		{ID: "d1", Name: "Paracetamol"},
		{
			ID:            "d2",
			Name:          "Ibuprofen + Paracetamol",
			IsCombination: true,
			ActiveIngredients: []entities.ActiveIngredient{
				{Name: "Ibuprofen"}, // no standalone record, reported only
				{Name: "Paracetamol"},
			},
		},
	}

	if err := v.ValidateCatalog(drugs); err != nil {
		t.Errorf("ValidateCatalog failed: %v", err)
	}
}

func TestValidateInput(t *testing.T) {
	logging.InitLogger("")

	v := NewDataValidator()

	valid := []string{"paracetamol", "co-amoxiclav", "ibuprofen 400", "d.t.p", "a+b"}
	for _, input := range valid {
		if err := v.ValidateInput(input); err != nil {
			t.Errorf("ValidateInput(%q) unexpected error: %v", input, err)
		}
	}

	invalid := []string{
		"",
		strings.Repeat("a", 101),
		"<script>alert(1)</script>",
		"'; drop table drugs --",
		"../etc/passwd",
		"name$(id)",
	}
	for _, input := range invalid {
		if err := v.ValidateInput(input); err == nil {
			t.Errorf("ValidateInput(%q) expected error", input)
		}
	}
}

func TestValidateDrugID(t *testing.T) {
	logging.InitLogger("")

	v := NewDataValidator()

	if _, err := v.ValidateDrugID("d1"); err != nil {
		t.Errorf("ValidateDrugID(d1) unexpected error: %v", err)
	}
	if got, err := v.ValidateDrugID("  d1  "); err != nil || got != "d1" {
		t.Errorf("ValidateDrugID should trim, got %q err %v", got, err)
	}

	invalid := []string{"", "a b", "x/y", strings.Repeat("a", 65)}
	for _, input := range invalid {
		if _, err := v.ValidateDrugID(input); err == nil {
			t.Errorf("ValidateDrugID(%q) expected error", input)
		}
	}
}
