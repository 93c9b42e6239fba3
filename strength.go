package passcheck

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Tier is one named strength level. A password reaches a tier when its
// length and diversity both meet the tier's floors.
type Tier struct {
	ID           int    `json:"id" mapstructure:"id"`
	Label        string `json:"value" mapstructure:"label"`
	MinLength    int    `json:"minLength" mapstructure:"min_length"`
	MinDiversity int    `json:"minDiversity" mapstructure:"min_diversity"`
}

// DefaultTiers returns the built-in four level table.
func DefaultTiers() []Tier {
	return []Tier{
		{ID: 0, Label: "Too weak", MinLength: 0, MinDiversity: 0},
		{ID: 1, Label: "Weak", MinLength: 8, MinDiversity: 2},
		{ID: 2, Label: "Medium", MinLength: 10, MinDiversity: 4},
		{ID: 3, Label: "Strong", MinLength: 12, MinDiversity: 4},
	}
}

// ErrInvalidTiers is returned by ValidateTiers.
var ErrInvalidTiers = errors.New("invalid strength tiers")

// ValidateTiers checks that tiers are numbered 0..N-1 in order and that
// tier 0 accepts every password.
func ValidateTiers(tiers []Tier) error {
	if len(tiers) == 0 {
		return fmt.Errorf("%w: at least one tier is required", ErrInvalidTiers)
	}
	for i, t := range tiers {
		if t.ID != i {
			return fmt.Errorf("%w: tier at position %d has id %d", ErrInvalidTiers, i, t.ID)
		}
		if t.MinLength < 0 {
			return fmt.Errorf("%w: tier %d has negative minimum length", ErrInvalidTiers, t.ID)
		}
		if t.MinDiversity < 0 || t.MinDiversity > 4 {
			return fmt.Errorf("%w: tier %d minimum diversity %d outside 0-4", ErrInvalidTiers, t.ID, t.MinDiversity)
		}
	}
	if tiers[0].MinLength != 0 || tiers[0].MinDiversity != 0 {
		return fmt.Errorf("%w: tier 0 must have zero minimum length and diversity", ErrInvalidTiers)
	}
	return nil
}

// HardRequirements are gates that force the lowest tier when unmet.
// A zero minimum count is treated as not configured.
type HardRequirements struct {
	RequireUppercase  bool `json:"requireUppercase,omitempty" mapstructure:"require_uppercase"`
	RequireNumber     bool `json:"requireNumber,omitempty" mapstructure:"require_number"`
	RequireSymbol     bool `json:"requireSymbol,omitempty" mapstructure:"require_symbol"`
	MinUppercaseCount int  `json:"minUppercaseCount,omitempty" mapstructure:"min_uppercase_count"`
	MinNumberCount    int  `json:"minNumberCount,omitempty" mapstructure:"min_number_count"`
	MinSymbolCount    int  `json:"minSymbolCount,omitempty" mapstructure:"min_symbol_count"`
}

// StrengthResult is the outcome of one strength evaluation.
// Counts is nil when a boolean gate failed.
type StrengthResult struct {
	ID       int               `json:"id"`
	Value    string            `json:"value"`
	Contains CharacterPresence `json:"contains"`
	Length   int               `json:"length"`
	Counts   *CharacterCounts  `json:"counts,omitempty"`
}

// Policy bundles requirements and a tier table for repeated evaluation.
type Policy struct {
	Requirements *HardRequirements
	Tiers        []Tier
}

// Check evaluates password under the policy.
func (p Policy) Check(password string) StrengthResult {
	return CheckStrength(password, p.Requirements, p.Tiers)
}

// CheckStrength resolves the strength tier of password. req may be nil and
// an empty tiers slice selects DefaultTiers.
//
// The first qualifying tier is found in table order and the result then
// walks forward while the next tier also qualifies. When several tiers share
// identical thresholds the walk passes through all of them, so the highest
// id of the run is returned, not the lowest.
func CheckStrength(password string, req *HardRequirements, tiers []Tier) StrengthResult {
	if len(tiers) == 0 {
		tiers = DefaultTiers()
	}

	presence, counts := Classify(password)
	length := utf8.RuneCountInString(password)
	diversity := presence.Diversity()

	lowest := StrengthResult{
		ID:       tiers[0].ID,
		Value:    tiers[0].Label,
		Contains: presence,
		Length:   length,
	}

	if req != nil {
		// --- Gates ---
		if (req.RequireUppercase && !presence.Uppercase) ||
			(req.RequireNumber && !presence.Number) ||
			(req.RequireSymbol && !presence.Symbol) {
			return lowest
		}

		// --- Minimum counts ---
		if (req.MinUppercaseCount > 0 && counts.Uppercase < req.MinUppercaseCount) ||
			(req.MinNumberCount > 0 && counts.Number < req.MinNumberCount) ||
			(req.MinSymbolCount > 0 && counts.Symbol < req.MinSymbolCount) {
			lowest.Counts = &counts
			return lowest
		}
	}

	idx := resolveTier(tiers, length, diversity)
	return StrengthResult{
		ID:       tiers[idx].ID,
		Value:    tiers[idx].Label,
		Contains: presence,
		Length:   length,
		Counts:   &counts,
	}
}

// resolveTier finds the first qualifying tier and then walks forward while
// the next tier also qualifies. Falls back to index 0.
func resolveTier(tiers []Tier, length, diversity int) int {
	qualifies := func(t Tier) bool {
		return length >= t.MinLength && diversity >= t.MinDiversity
	}

	idx := -1
	for i, t := range tiers {
		if qualifies(t) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0
	}

	for idx+1 < len(tiers) && qualifies(tiers[idx+1]) {
		idx++
	}
	return idx
}
