package ruleset

import (
	"github.com/coolbeans/mpnclass/pkg/category"
	"github.com/coolbeans/mpnclass/pkg/mpn"
	"github.com/coolbeans/mpnclass/pkg/pattern"
)

// Declarative implements RuleSet entirely from a compiled rule file.
// Manufacturer types embed it and override what a regex cannot express.
type Declarative struct {
	rules *pattern.RuleFile
}

// NewDeclarative wraps a compiled rule file.
func NewDeclarative(rules *pattern.RuleFile) *Declarative {
	return &Declarative{rules: rules}
}

// Rules returns the underlying rule file.
func (d *Declarative) Rules() *pattern.RuleFile {
	return d.rules
}

// ID returns the rule file id.
func (d *Declarative) ID() string {
	return d.rules.ID
}

// InitializePatterns registers every category pattern of the rule file.
func (d *Declarative) InitializePatterns(reg *pattern.Registry) {
	d.rules.Register(reg)
}

// SupportedCategories returns the categories in rule file order.
func (d *Declarative) SupportedCategories() []category.Category {
	return d.rules.SupportedCategories()
}

// Matches consults only the patterns this rule set registered in reg.
func (d *Declarative) Matches(s string, cat category.Category, reg *pattern.Registry) bool {
	if reg == nil {
		return false
	}
	return reg.MatchesForCurrentHandler(mpn.Normalize(s), cat)
}

// ExtractPackageCode returns the code of the first package rule matching s.
func (d *Declarative) ExtractPackageCode(s string) string {
	return d.rules.PackageCode(mpn.Normalize(s))
}

// ExtractSeries returns the first series rule capture for s.
func (d *Declarative) ExtractSeries(s string) string {
	return d.rules.SeriesOf(mpn.Normalize(s))
}

// IsOfficialReplacement applies Replaceable with the rule file's own extraction.
func (d *Declarative) IsOfficialReplacement(original, candidate string) bool {
	return Replaceable(d, d.rules, original, candidate)
}

// Replaceable applies the shared replacement rules using x for extraction:
//
//   - same non-empty series and same non-empty package code (symmetric);
//   - both parts in one compatibility group with compatible packages;
//   - an upgrade path from original to candidate (one-way);
//   - parts identical except for a ranked grade where the candidate's grade
//     is not lower (one-way).
//
// Package codes are compatible when equal or when either is unknown.
func Replaceable(x Extractor, rules *pattern.RuleFile, original, candidate string) bool {
	a, b := mpn.Normalize(original), mpn.Normalize(candidate)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}

	seriesA, seriesB := x.ExtractSeries(a), x.ExtractSeries(b)
	pkgA, pkgB := x.ExtractPackageCode(a), x.ExtractPackageCode(b)

	if seriesA != "" && seriesA == seriesB && pkgA != "" && pkgA == pkgB {
		return true
	}

	if rules == nil {
		return false
	}

	packagesOK := pkgA == pkgB || pkgA == "" || pkgB == ""

	if groupA, ok := rules.CompatibleGroup(a); ok && packagesOK {
		if groupB, ok := rules.CompatibleGroup(b); ok && groupA == groupB {
			return true
		}
	}

	if packagesOK && rules.Upgrades(a, b) {
		return true
	}

	return rules.GradeUpgrade(a, b)
}
