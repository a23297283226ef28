// Package matching resolves raw scanned text into catalog drug records.
//
// Matching runs in two passes over one immutable catalog snapshot:
// combination products first, then single-ingredient drugs. Every
// ingredient of a matched combination is suppressed from the singles pass
// so a combination is never also reported as its constituents. The matcher
// is a pure function and never fails; unmatched or empty input yields an
// empty list.
package matching

import (
	"strings"
	"unicode"

	"github.com/medscan/medcheck-api/catalog/entities"
)

// Tokens shorter than this never participate in matching. Common short
// words and units ("mg", "ok", "5") would otherwise produce false hits.
const minTokenLen = 3

// Prefix checks against brand and generic names need one extra character
// of evidence.
const minPrefixLen = 4

// separators is the punctuation split set applied on top of whitespace.
const separators = ",.;:!?()"

// Match resolves rawText into an ordered, de-duplicated list of catalog
// drugs. Combination products come first in catalog order, then singles in
// catalog order. The call is deterministic and total: identical inputs
// produce identical output and nothing it is given can make it fail.
func Match(rawText string, catalog []entities.Drug) []entities.Drug {
	results := make([]entities.Drug, 0)
	if strings.TrimSpace(rawText) == "" || len(catalog) == 0 {
		return results
	}

	fullText := strings.ToLower(rawText)
	tokens := expandTokens(fullText)

	// Ingredient names accounted for by a matched combination. Keyed on
	// name only: a combination suppresses the standalone drug of the same
	// name regardless of declared strength.
	suppressed := make(map[string]bool)

	seen := make(map[string]bool)    // catalog IDs already accepted
	accepted := make([]string, 0, 4) // normalized display names already accepted

	// Pass 1: combinations. A combination's ingredient names are
	// substrings of the singles catalog, so matching singles first would
	// misreport a combination as unrelated single drugs.
	for i := range catalog {
		d := &catalog[i]
		if !d.IsCombination {
			continue
		}
		if !combinationFound(d, fullText, tokens) {
			continue
		}
		if d.ID != "" {
			if seen[d.ID] {
				continue
			}
			seen[d.ID] = true
		}
		results = append(results, *d)
		accepted = append(accepted, normalizeName(d.Name))
		for _, ing := range d.ActiveIngredients {
			if ing.Name != "" {
				suppressed[strings.ToLower(ing.Name)] = true
			}
		}
	}

	// Pass 2: single-ingredient drugs.
	for i := range catalog {
		d := &catalog[i]
		if d.IsCombination {
			continue
		}
		if suppressed[strings.ToLower(d.Name)] {
			continue
		}
		if !singleFound(d, fullText, tokens) {
			continue
		}
		if d.ID != "" && seen[d.ID] {
			continue
		}
		norm := normalizeName(d.Name)
		if conflictsWithAccepted(norm, accepted) {
			continue
		}
		if d.ID != "" {
			seen[d.ID] = true
		}
		results = append(results, *d)
		accepted = append(accepted, norm)
	}

	return results
}

// expandTokens lower-cases and splits the text, drops short tokens, and
// synthesizes digit-stripped and hyphen-segment variants. The variants are
// used only for whole-token equality/prefix checks; substring containment
// always runs against the full lower-cased text.
func expandTokens(fullText string) map[string]bool {
	fields := strings.FieldsFunc(fullText, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
	})

	tokens := make(map[string]bool, len(fields)*2)
	for _, tok := range fields {
		if len([]rune(tok)) < minTokenLen {
			continue
		}
		tokens[tok] = true

		// Strength suffixes glued to names: "ibuprofen400" -> "ibuprofen"
		stripped := strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return -1
			}
			return r
		}, tok)
		if stripped != tok && len([]rune(stripped)) >= minTokenLen {
			tokens[stripped] = true
		}

		if strings.Contains(tok, "-") {
			for _, seg := range strings.Split(tok, "-") {
				if len([]rune(seg)) >= minTokenLen {
					tokens[seg] = true
				}
			}
		}
	}
	return tokens
}

// combinationFound reports whether a combination record is present in the
// scanned text: by brand name containment (as written or with hyphens and
// spaces stripped), by a long-enough token prefixing a brand name, or by
// at least two of its ingredients or display-name segments appearing in
// the text.
func combinationFound(d *entities.Drug, fullText string, tokens map[string]bool) bool {
	for _, brand := range d.BrandNames {
		b := strings.ToLower(brand)
		if b == "" {
			continue
		}
		bStripped := stripSeparators(b)
		if strings.Contains(fullText, b) || strings.Contains(fullText, bStripped) {
			return true
		}
		for tok := range tokens {
			if len([]rune(tok)) < minPrefixLen {
				continue
			}
			if strings.HasPrefix(b, tok) || strings.HasPrefix(bStripped, tok) {
				return true
			}
		}
	}

	found := 0
	for _, ing := range d.ActiveIngredients {
		name := strings.ToLower(ing.Name)
		if name != "" && strings.Contains(fullText, name) {
			found++
			if found >= 2 {
				return true
			}
		}
	}

	found = 0
	for _, seg := range strings.Split(strings.ToLower(d.Name), "+") {
		seg = strings.TrimSpace(seg)
		if seg != "" && strings.Contains(fullText, seg) {
			found++
			if found >= 2 {
				return true
			}
		}
	}

	return false
}

// singleFound reports whether a single-ingredient record is present in the
// scanned text by generic name or brand name.
func singleFound(d *entities.Drug, fullText string, tokens map[string]bool) bool {
	generic := strings.ToLower(d.Name)
	if generic != "" && strings.Contains(fullText, generic) {
		return true
	}
	for tok := range tokens {
		if tok == generic {
			return true
		}
		if len([]rune(tok)) >= minPrefixLen && strings.HasPrefix(generic, tok) {
			return true
		}
	}

	for _, brand := range d.BrandNames {
		b := strings.ToLower(brand)
		if b == "" {
			continue
		}
		if strings.Contains(fullText, b) {
			return true
		}
		for tok := range tokens {
			if tok == b || strings.HasPrefix(b, tok) || strings.HasPrefix(tok, b) {
				return true
			}
		}
	}

	return false
}

// stripSeparators removes hyphens and spaces from a lower-cased brand name
// so "co-amoxiclav" and "co amoxiclav" both match "coamoxiclav" in the text.
func stripSeparators(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "")
}

// normalizeName strips spaces and plus signs from a lower-cased display
// name so near-identical catalog rows compare equal.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "")
	return strings.ReplaceAll(name, "+", "")
}

// conflictsWithAccepted guards against two catalog rows describing the
// same substance under slightly different display names.
func conflictsWithAccepted(norm string, accepted []string) bool {
	for _, a := range accepted {
		if norm == a || strings.Contains(norm, a) || strings.Contains(a, norm) {
			return true
		}
	}
	return false
}
