package ruleset

import (
	"regexp"

	"github.com/coolbeans/mpnclass/pkg/category"
	"github.com/coolbeans/mpnclass/pkg/mpn"
	"github.com/coolbeans/mpnclass/pkg/pattern"
)

// Spectral sensors: AS7<3 digits>[variant letter][-<4 letter ordering code>].
var amsSpectral = regexp.MustCompile(`^AS7(\d{3})([A-Z]?)(?:-([A-Z0-9]+))?$`)

var amsOrderingCodes = map[string]string{
	"BLGT": "BGA",
	"BLGM": "BGA",
	"BLGS": "BGA",
	"AQFT": "QFN",
	"AQFM": "QFN",
	"FLGT": "LGA",
	"OLGT": "OLGA",
}

// AMS handles the ams OSRAM spectral sensor ordering codes.
type AMS struct {
	*Declarative
}

// NewAMS wraps the ams rule file.
func NewAMS(rules *pattern.RuleFile) *AMS {
	return &AMS{Declarative: NewDeclarative(rules)}
}

// Matches rejects spectral parts whose ordering suffix is not a four
// character code; AS7262-B or AS7262-BLGTX are typos, not parts.
func (a *AMS) Matches(part string, cat category.Category, reg *pattern.Registry) bool {
	p := mpn.Normalize(part)
	if !a.Declarative.Matches(p, cat, reg) {
		return false
	}
	if cat != category.SensorSpectralAMS {
		return true
	}
	m := amsSpectral.FindStringSubmatch(p)
	if m == nil {
		return false
	}
	return m[3] == "" || len(m[3]) == 4
}

// ExtractPackageCode decodes the spectral sensor ordering code, falling back
// to the rule file's package rules.
func (a *AMS) ExtractPackageCode(part string) string {
	p := mpn.Normalize(part)
	if m := amsSpectral.FindStringSubmatch(p); m != nil && m[3] != "" {
		if code, ok := amsOrderingCodes[m[3]]; ok {
			return code
		}
	}
	return a.Declarative.ExtractPackageCode(p)
}

// IsOfficialReplacement applies Replaceable with the decoded package codes.
func (a *AMS) IsOfficialReplacement(original, candidate string) bool {
	return Replaceable(a, a.Rules(), original, candidate)
}
