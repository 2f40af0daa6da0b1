package ruleset

import (
	"regexp"
	"strings"

	"github.com/coolbeans/mpnclass/pkg/category"
	"github.com/coolbeans/mpnclass/pkg/mpn"
	"github.com/coolbeans/mpnclass/pkg/pattern"
)

// GD25 serial flash: GD25<variant><density><generation><package><temp>[green],
// e.g. GD25Q128CSIG.
var gd25OrderingCode = regexp.MustCompile(`^GD25([A-Z]+)(\d+)([A-Z])([A-Z])([A-Z])?`)

// Densities in Mbit as printed in the part number.
var gd25Densities = map[string]bool{
	"05": true, "10": true, "20": true, "40": true, "80": true,
	"16": true, "32": true, "64": true, "128": true, "256": true,
	"512": true,
}

var gd25Packages = map[byte]string{
	'S': "SOP8",
	'T': "SOIC8",
	'W': "WSON8",
	'Y': "WSON8",
	'Q': "USON8",
	'E': "USON8",
	'K': "USON8",
	'F': "SOP16",
	'B': "TFBGA24",
}

// GigaDevice decodes GD25 flash and GD32 microcontroller ordering codes.
type GigaDevice struct {
	*Declarative
}

// NewGigaDevice wraps the GigaDevice rule file.
func NewGigaDevice(rules *pattern.RuleFile) *GigaDevice {
	return &GigaDevice{Declarative: NewDeclarative(rules)}
}

// Matches additionally rejects GD25 parts whose density field is not a
// density GigaDevice ships.
func (g *GigaDevice) Matches(part string, cat category.Category, reg *pattern.Registry) bool {
	p := mpn.Normalize(part)
	if !g.Declarative.Matches(p, cat, reg) {
		return false
	}
	if cat.Base() == category.Memory && strings.HasPrefix(p, "GD25") {
		m := gd25OrderingCode.FindStringSubmatch(p)
		return m != nil && gd25Densities[m[2]]
	}
	return true
}

// ExtractPackageCode decodes GD32 and GD25 ordering codes, falling back to
// the rule file's package rules.
func (g *GigaDevice) ExtractPackageCode(part string) string {
	p := mpn.Normalize(part)
	if strings.HasPrefix(p, "GD32") {
		if code, ok := decodeMCU(p); ok {
			return code.packageCode()
		}
		return ""
	}
	if m := gd25OrderingCode.FindStringSubmatch(p); m != nil {
		if code, ok := gd25Packages[m[4][0]]; ok {
			return code
		}
	}
	return g.Declarative.ExtractPackageCode(p)
}

// ExtractSeries returns the GD32 line or the rule file's series.
func (g *GigaDevice) ExtractSeries(part string) string {
	p := mpn.Normalize(part)
	if strings.HasPrefix(p, "GD32") {
		if code, ok := decodeMCU(p); ok {
			return code.series()
		}
	}
	return g.Declarative.ExtractSeries(p)
}

// IsOfficialReplacement applies Replaceable with the decoded package codes.
func (g *GigaDevice) IsOfficialReplacement(original, candidate string) bool {
	return Replaceable(g, g.Rules(), original, candidate)
}
