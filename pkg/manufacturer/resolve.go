package manufacturer

import (
	"fmt"

	"github.com/coolbeans/mpnclass/pkg/category"
	"github.com/coolbeans/mpnclass/pkg/mpn"
)

// Tier is the confidence of a candidate. Lower values are stronger.
type Tier int

const (
	TierNone Tier = iota
	// TierHigh comes from a curated special case.
	TierHigh
	// TierMedium comes from a manufacturer's priority pattern.
	TierMedium
	// TierLow comes from a rule-set fallback scan or a weak indicator.
	TierLow
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "none"
	}
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Candidate is one manufacturer proposed for an MPN.
type Candidate struct {
	ID     ID     `json:"manufacturer"`
	Tier   Tier   `json:"tier"`
	Reason string `json:"reason"`
}

func (c Candidate) String() string {
	return fmt.Sprintf("%s (%s: %s)", c.ID, c.Tier, c.Reason)
}

// Classify returns the single best manufacturer for part, or Unknown. The
// first rule that fires wins, in the order special cases, priority
// patterns, rule-set fallback, weak indicators.
func (d *Directory) Classify(part string) ID {
	p := mpn.Normalize(part)
	if p == "" {
		return Unknown
	}

	if hits := d.specialCases(p); len(hits) > 0 {
		return hits[0].id
	}
	for _, s := range d.slots {
		if s.priority != nil && s.priority.MatchString(p) {
			return s.entry.ID
		}
	}
	for _, s := range d.slots {
		if _, ok := d.fallback(s, p); ok {
			return s.entry.ID
		}
	}
	tokens := mpn.Tokens(p)
	for _, s := range d.slots {
		if _, ok := s.indicated(tokens); ok {
			return s.entry.ID
		}
	}
	return Unknown
}

// ClassifyAll returns every plausible manufacturer, High tier first, then
// Medium, then Low. A manufacturer appears once, at its best tier. The
// result is [Unknown] when nothing matched.
func (d *Directory) ClassifyAll(part string) []ID {
	candidates := d.Candidates(part)
	if len(candidates) == 0 {
		return []ID{Unknown}
	}
	ids := make([]ID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}
	return ids
}

// Candidates is ClassifyAll with the tier and the rule behind each entry.
// It returns nil when nothing matched.
func (d *Directory) Candidates(part string) []Candidate {
	p := mpn.Normalize(part)
	if p == "" {
		return nil
	}

	var out []Candidate
	seen := make(map[ID]bool)
	add := func(id ID, tier Tier, reason string) {
		if seen[id] {
			return
		}
		seen[id] = true
		out = append(out, Candidate{ID: id, Tier: tier, Reason: reason})
	}

	for _, h := range d.specialCases(p) {
		add(h.id, TierHigh, h.reason)
	}
	for _, s := range d.slots {
		if s.priority != nil && s.priority.MatchString(p) {
			add(s.entry.ID, TierMedium, "priority pattern")
		}
	}
	for _, s := range d.slots {
		if seen[s.entry.ID] {
			continue
		}
		if cat, ok := d.fallback(s, p); ok {
			add(s.entry.ID, TierLow, "matches "+string(cat))
		}
	}
	tokens := mpn.Tokens(p)
	for _, s := range d.slots {
		if tok, ok := s.indicated(tokens); ok {
			add(s.entry.ID, TierLow, fmt.Sprintf("indicator %q", tok))
		}
	}
	return out
}

// fallback asks the manufacturer's rule set whether p matches any of its
// claimed categories, returning the first that does.
func (d *Directory) fallback(s *slot, p string) (category.Category, bool) {
	d.ensure(s)
	for _, cat := range d.claimed(s) {
		if d.matches(s, p, cat) {
			return cat, true
		}
	}
	return "", false
}

// indicated reports the first token after the leading one that is one of
// the manufacturer's indicators.
func (s *slot) indicated(tokens []string) (string, bool) {
	if len(s.indicators) == 0 || len(tokens) < 2 {
		return "", false
	}
	for _, tok := range tokens[1:] {
		if s.indicators[tok] {
			return tok, true
		}
	}
	return "", false
}
