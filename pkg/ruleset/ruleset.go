// Package ruleset defines the contract every manufacturer's rules satisfy and
// provides the declarative, YAML-driven implementation together with the
// handful of manufacturers whose part numbers need structural decoding.
package ruleset

import (
	"github.com/coolbeans/mpnclass/pkg/category"
	"github.com/coolbeans/mpnclass/pkg/pattern"
)

// RuleSet encapsulates everything manufacturer-specific. Implementations are
// immutable once InitializePatterns has run and must be safe for concurrent
// use afterwards.
type RuleSet interface {
	// InitializePatterns populates reg. Calling it twice leaves reg with the
	// same pattern set.
	InitializePatterns(reg *pattern.Registry)

	// SupportedCategories is the fixed set of categories the manufacturer can
	// ever produce.
	SupportedCategories() []category.Category

	// Matches reports whether mpn could be a part of category cat from this
	// manufacturer.
	Matches(mpn string, cat category.Category, reg *pattern.Registry) bool

	// ExtractPackageCode returns a normalized package code, or "".
	ExtractPackageCode(mpn string) string

	// ExtractSeries returns the family identifier, or "".
	ExtractSeries(mpn string) string

	// IsOfficialReplacement reports whether candidate is an accepted
	// substitute for original. The relation is not symmetric in general.
	IsOfficialReplacement(original, candidate string) bool
}

// Extractor is the slicing half of a RuleSet.
type Extractor interface {
	ExtractPackageCode(mpn string) string
	ExtractSeries(mpn string) string
}

// Nop is the rule set of the Unknown manufacturer. It supports nothing and
// extracts nothing.
type Nop struct{}

// InitializePatterns registers nothing.
func (Nop) InitializePatterns(*pattern.Registry) {}

// SupportedCategories returns nil.
func (Nop) SupportedCategories() []category.Category { return nil }

// Matches always returns false.
func (Nop) Matches(string, category.Category, *pattern.Registry) bool { return false }

// ExtractPackageCode always returns "".
func (Nop) ExtractPackageCode(string) string { return "" }

// ExtractSeries always returns "".
func (Nop) ExtractSeries(string) string { return "" }

// IsOfficialReplacement always returns false.
func (Nop) IsOfficialReplacement(string, string) bool { return false }
