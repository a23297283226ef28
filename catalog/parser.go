package catalog

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/medscan/medcheck-api/catalog/entities"
	"github.com/medscan/medcheck-api/interfaces"
	"github.com/medscan/medcheck-api/logging"
)

const (
	drugsFile        = "drugs.json"
	interactionsFile = "interactions.json"
)

// Compile-time check to ensure CatalogParserImpl implements CatalogParser
var _ interfaces.CatalogParser = (*CatalogParserImpl)(nil)

// CatalogParserImpl loads the catalog from the configured directory,
// optionally downloading the source files from a remote base URL first.
type CatalogParserImpl struct {
	dir     string
	baseURL string
}

// NewCatalogParser creates a parser over dir. When baseURL is non-empty
// the source files are (re)downloaded from it on every ParseCatalog call.
func NewCatalogParser(dir, baseURL string) *CatalogParserImpl {
	return &CatalogParserImpl{dir: dir, baseURL: baseURL}
}

// rawDrug is the wire shape of one drug record. Severity and restriction
// fields arrive as free text in the interactions file and are converted to
// the closed enums here, at the loading boundary.
type rawDrug struct {
	ID                string                      `json:"id"`
	Name              string                      `json:"name"`
	BrandNames        []string                    `json:"brandNames"`
	Category          string                      `json:"category"`
	IsCombination     bool                        `json:"isCombination"`
	ActiveIngredients []entities.ActiveIngredient `json:"activeIngredients"`
	AllergyWarnings   []string                    `json:"allergyWarnings"`
	ConditionWarnings []string                    `json:"conditionWarnings"`
}

type rawDrugInteraction struct {
	DrugName    string `json:"drugName"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

type rawFoodInteraction struct {
	FoodName    string `json:"foodName"`
	Restriction string `json:"restriction"`
	Description string `json:"description"`
}

// rawInteractionEntry groups the interaction lists of one drug, keyed by
// the drug's display name.
type rawInteractionEntry struct {
	DrugName         string               `json:"drugName"`
	DrugInteractions []rawDrugInteraction `json:"drugInteractions"`
	FoodInteractions []rawFoodInteraction `json:"foodInteractions"`
}

// ParseCatalog loads, decodes, and validates the full drug catalog.
// Records failing enum or integrity validation are skipped with a logged
// error rather than failing the whole load.
func (p *CatalogParserImpl) ParseCatalog() ([]entities.Drug, error) {
	if p.baseURL != "" {
		if err := p.downloadAll(); err != nil {
			return nil, fmt.Errorf("catalog download failed: %w", err)
		}
	}

	// Parse both sections concurrently
	var wg sync.WaitGroup
	wg.Add(2)

	drugsChan := make(chan []rawDrug, 1)
	interactionsChan := make(chan []rawInteractionEntry, 1)
	errChan := make(chan error, 2)

	go func() {
		defer wg.Done()
		drugs, err := parseDrugsFile(filepath.Join(p.dir, drugsFile))
		if err != nil {
			errChan <- err
			return
		}
		drugsChan <- drugs
	}()

	go func() {
		defer wg.Done()
		interactions, err := parseInteractionsFile(filepath.Join(p.dir, interactionsFile))
		if err != nil {
			errChan <- err
			return
		}
		interactionsChan <- interactions
	}()

	wg.Wait()
	close(drugsChan)
	close(interactionsChan)
	close(errChan)

	if err := <-errChan; err != nil {
		return nil, err
	}

	rawDrugs := <-drugsChan
	rawInteractions := <-interactionsChan

	return assemble(rawDrugs, rawInteractions), nil
}

func parseDrugsFile(path string) ([]rawDrug, error) {
	content, err := readCatalogFile(path)
	if err != nil {
		return nil, err
	}

	var drugs []rawDrug
	if err := json.Unmarshal(content, &drugs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return drugs, nil
}

func parseInteractionsFile(path string) ([]rawInteractionEntry, error) {
	content, err := readCatalogFile(path)
	if err != nil {
		return nil, err
	}

	var entries []rawInteractionEntry
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return entries, nil
}

// assemble merges the interaction entries into the drug records by display
// name and converts the free-text severity fields to closed enums. Invalid
// records and interaction rows are dropped with a logged error.
func assemble(rawDrugs []rawDrug, rawInteractions []rawInteractionEntry) []entities.Drug {
	interactionsByName := make(map[string]rawInteractionEntry, len(rawInteractions))
	for _, entry := range rawInteractions {
		interactionsByName[strings.ToLower(entry.DrugName)] = entry
	}

	drugs := make([]entities.Drug, 0, len(rawDrugs))
	seenIDs := make(map[string]bool, len(rawDrugs))

	for i := range rawDrugs {
		raw := &rawDrugs[i]

		if strings.TrimSpace(raw.Name) == "" {
			logging.Error("Skipping drug record with empty name", "id", raw.ID)
			continue
		}
		if raw.ID != "" && seenIDs[raw.ID] {
			logging.Error("Skipping drug record with duplicate catalog key", "id", raw.ID, "name", raw.Name)
			continue
		}

		drug := entities.Drug{
			ID:                raw.ID,
			Name:              raw.Name,
			BrandNames:        raw.BrandNames,
			Category:          raw.Category,
			IsCombination:     raw.IsCombination,
			ActiveIngredients: raw.ActiveIngredients,
			AllergyWarnings:   raw.AllergyWarnings,
			ConditionWarnings: raw.ConditionWarnings,
		}

		if entry, ok := interactionsByName[strings.ToLower(raw.Name)]; ok {
			drug.DrugInteractions = convertDrugInteractions(raw.Name, entry.DrugInteractions)
			drug.FoodInteractions = convertFoodInteractions(raw.Name, entry.FoodInteractions)
		}

		if raw.ID != "" {
			seenIDs[raw.ID] = true
		}
		drugs = append(drugs, drug)
	}

	return drugs
}

func convertDrugInteractions(drugName string, raw []rawDrugInteraction) []entities.DrugInteraction {
	interactions := make([]entities.DrugInteraction, 0, len(raw))
	for _, r := range raw {
		severity, err := entities.ParseInteractionSeverity(r.Severity)
		if err != nil {
			logging.Error("Skipping drug interaction with invalid severity",
				"drug", drugName, "other", r.DrugName, "error", err)
			continue
		}
		if strings.TrimSpace(r.DrugName) == "" {
			logging.Error("Skipping drug interaction with empty drug name", "drug", drugName)
			continue
		}
		interactions = append(interactions, entities.DrugInteraction{
			DrugName:    r.DrugName,
			Severity:    severity,
			Description: r.Description,
		})
	}
	return interactions
}

func convertFoodInteractions(drugName string, raw []rawFoodInteraction) []entities.FoodInteraction {
	interactions := make([]entities.FoodInteraction, 0, len(raw))
	for _, r := range raw {
		restriction, err := entities.ParseFoodRestriction(r.Restriction)
		if err != nil {
			logging.Error("Skipping food interaction with invalid restriction",
				"drug", drugName, "food", r.FoodName, "error", err)
			continue
		}
		if strings.TrimSpace(r.FoodName) == "" {
			logging.Error("Skipping food interaction with empty food name", "drug", drugName)
			continue
		}
		interactions = append(interactions, entities.FoodInteraction{
			FoodName:    r.FoodName,
			Restriction: restriction,
			Description: r.Description,
		})
	}
	return interactions
}
