package matching

import (
	"reflect"
	"testing"

	"github.com/medscan/medcheck-api/catalog/entities"
)

func testCatalog() []entities.Drug {
	return []entities.Drug{
		{
			ID:   "d1",
			Name: "Paracetamol",
		},
		{
			ID:   "d2",
			Name: "Ibuprofen",
			BrandNames: []string{
				"Brufen",
			},
		},
		{
			ID:            "d3",
			Name:          "Ibuprofen + Paracetamol",
			BrandNames:    []string{"Combiflam"},
			IsCombination: true,
			ActiveIngredients: []entities.ActiveIngredient{
				{Name: "Ibuprofen", Strength: "400mg"},
				{Name: "Paracetamol", Strength: "325mg"},
			},
		},
		{
			ID:   "d4",
			Name: "Cetirizine",
			BrandNames: []string{
				"Zyrtec",
			},
		},
	}
}

func names(drugs []entities.Drug) []string {
	out := make([]string, 0, len(drugs))
	for _, d := range drugs {
		out = append(out, d.Name)
	}
	return out
}

func TestMatchEmptyInputs(t *testing.T) {
	catalog := testCatalog()

	if got := Match("", catalog); len(got) != 0 {
		t.Errorf("Match with empty text returned %v, want empty", names(got))
	}

	if got := Match("   \n\t ", catalog); len(got) != 0 {
		t.Errorf("Match with blank text returned %v, want empty", names(got))
	}

	if got := Match("paracetamol", nil); len(got) != 0 {
		t.Errorf("Match with empty catalog returned %v, want empty", names(got))
	}
}

func TestMatchIdempotence(t *testing.T) {
	catalog := testCatalog()
	text := "Combiflam 400mg tablet and cetirizine at night"

	first := Match(text, catalog)
	second := Match(text, catalog)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Match is not idempotent: %v vs %v", names(first), names(second))
	}
}

func TestCombinationPriority(t *testing.T) {
	catalog := testCatalog()

	// Both ingredients present in the text: only the combination may match
	got := Match("take ibuprofen and paracetamol after meals", catalog)

	if len(got) != 1 {
		t.Fatalf("expected exactly 1 match, got %v", names(got))
	}
	if got[0].ID != "d3" {
		t.Errorf("expected the combination d3, got %s", got[0].ID)
	}
}

func TestSuppressionIndependence(t *testing.T) {
	catalog := testCatalog()

	// Cetirizine is unrelated to the combination and must not be suppressed
	got := Match("ibuprofen paracetamol cetirizine", catalog)

	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", names(got))
	}
	if got[0].ID != "d3" {
		t.Errorf("combination should come first, got %s", got[0].ID)
	}
	if got[1].ID != "d4" {
		t.Errorf("expected cetirizine second, got %s", got[1].ID)
	}
}

func TestShortTokenRejection(t *testing.T) {
	catalog := testCatalog()

	if got := Match("ok no 5 go", catalog); len(got) != 0 {
		t.Errorf("short tokens matched drugs: %v", names(got))
	}
}

func TestScenarioCombinationByBrand(t *testing.T) {
	catalog := testCatalog()

	got := Match("Combiflam 400mg tablet", catalog)

	if len(got) != 1 {
		t.Fatalf("expected [Combiflam combination], got %v", names(got))
	}
	if got[0].ID != "d3" {
		t.Errorf("expected d3, got %s", got[0].ID)
	}
}

func TestDigitStrippedToken(t *testing.T) {
	catalog := testCatalog()

	// Strength glued to the name: "ibuprofen400" must still match
	got := Match("ibuprofen400 twice daily", catalog)

	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %v", names(got))
	}
	if got[0].ID != "d2" {
		t.Errorf("expected ibuprofen d2, got %s", got[0].ID)
	}
}

func TestHyphenSegmentToken(t *testing.T) {
	catalog := testCatalog()

	got := Match("rx: cetirizine-hydrochloride", catalog)

	if len(got) != 1 || got[0].ID != "d4" {
		t.Errorf("expected cetirizine via hyphen segment, got %v", names(got))
	}
}

func TestBrandPrefixRequiresFourChars(t *testing.T) {
	catalog := testCatalog()

	// "com" is only 3 characters, too short to prefix-match a
	// combination brand
	if got := Match("com tablet", catalog); len(got) != 0 {
		t.Errorf("3-char token prefix matched a combination: %v", names(got))
	}

	// "comb" is long enough
	got := Match("comb tablet", catalog)
	if len(got) != 1 || got[0].ID != "d3" {
		t.Errorf("4-char token prefix should match the combination, got %v", names(got))
	}
}

func TestBrandNameWithSpacesStripped(t *testing.T) {
	catalog := []entities.Drug{
		{
			ID:            "c1",
			Name:          "Amoxicillin + Clavulanate",
			BrandNames:    []string{"Co Amoxiclav"},
			IsCombination: true,
			ActiveIngredients: []entities.ActiveIngredient{
				{Name: "Amoxicillin"},
				{Name: "Clavulanate"},
			},
		},
	}

	got := Match("coamoxiclav 625 tablet", catalog)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("space-stripped brand should match, got %v", names(got))
	}
}

func TestDisplayNameSegments(t *testing.T) {
	// Combination without brand names, found by the display-name segments
	catalog := []entities.Drug{
		{
			ID:            "c1",
			Name:          "Artemether + Lumefantrine",
			IsCombination: true,
		},
	}

	got := Match("artemether with lumefantrine course", catalog)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("display-name segments should match, got %v", names(got))
	}

	// Only one segment present: the heuristic must not fire
	if got := Match("artemether only", catalog); len(got) != 0 {
		t.Errorf("single segment matched a combination: %v", names(got))
	}
}

func TestMalformedCombinationDegrades(t *testing.T) {
	// A combination with fewer than 2 ingredients never triggers the
	// ingredient heuristic but still matches by brand
	catalog := []entities.Drug{
		{
			ID:            "c1",
			Name:          "Somedrug",
			BrandNames:    []string{"Somebrand"},
			IsCombination: true,
			ActiveIngredients: []entities.ActiveIngredient{
				{Name: "Onlyingredient"},
			},
		},
	}

	if got := Match("onlyingredient here", catalog); len(got) != 0 {
		t.Errorf("single ingredient fired the combination heuristic: %v", names(got))
	}

	got := Match("somebrand tablet", catalog)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("brand match should still work, got %v", names(got))
	}
}

func TestDuplicateNameGuard(t *testing.T) {
	// Two catalog rows describing the same substance under slightly
	// different display names: only the first is reported
	catalog := []entities.Drug{
		{ID: "d1", Name: "Paracetamol"},
		{ID: "d2", Name: "Paracetamol 500"},
	}

	got := Match("paracetamol 500 tablet", catalog)
	if len(got) != 1 {
		t.Fatalf("duplicate-name guard failed, got %v", names(got))
	}
	if got[0].ID != "d1" {
		t.Errorf("expected first catalog row, got %s", got[0].ID)
	}
}

func TestSuppressionIgnoresStrength(t *testing.T) {
	// The suppression key is the ingredient name only, declared strength
	// does not matter
	catalog := []entities.Drug{
		{
			ID:            "c1",
			Name:          "Ibuprofen + Paracetamol",
			BrandNames:    []string{"Combiflam"},
			IsCombination: true,
			ActiveIngredients: []entities.ActiveIngredient{
				{Name: "Ibuprofen", Strength: "200mg"},
				{Name: "Paracetamol", Strength: "500mg"},
			},
		},
		{ID: "d1", Name: "Paracetamol"},
	}

	got := Match("combiflam and paracetamol 650", catalog)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Errorf("suppression by name failed, got %v", names(got))
	}
}

func TestExpandTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
		skip []string
	}{
		{
			name: "punctuation split",
			text: "aspirin, warfarin.daily",
			want: []string{"aspirin", "warfarin", "daily"},
		},
		{
			name: "short tokens dropped",
			text: "ok no 5 paracetamol",
			want: []string{"paracetamol"},
			skip: []string{"ok", "no", "5"},
		},
		{
			name: "digits stripped variant",
			text: "ibuprofen400",
			want: []string{"ibuprofen400", "ibuprofen"},
		},
		{
			name: "hyphen segments",
			text: "co-amoxiclav",
			want: []string{"co-amoxiclav", "amoxiclav"},
			skip: []string{"co"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := expandTokens(tt.text)
			for _, w := range tt.want {
				if !tokens[w] {
					t.Errorf("expected token %q in %v", w, tokens)
				}
			}
			for _, s := range tt.skip {
				if tokens[s] {
					t.Errorf("token %q should have been dropped", s)
				}
			}
		})
	}
}

func BenchmarkMatch(b *testing.B) {
	catalog := testCatalog()
	text := "Combiflam 400mg tablet, cetirizine 10mg at night, ibuprofen400 as needed"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Match(text, catalog)
	}
}
