package ruleset

import (
	"strconv"
	"strings"

	"github.com/coolbeans/mpnclass/pkg/category"
	"github.com/coolbeans/mpnclass/pkg/mpn"
	"github.com/coolbeans/mpnclass/pkg/pattern"
)

type numberRange struct {
	lo, hi int
	pkg    string
}

// JEDEC 1N numbers Vishay ships, with their default axial package.
var vishay1N = []numberRange{
	{914, 914, "DO-35"},
	{4148, 4148, "DO-35"},
	{4448, 4448, "DO-35"},
	{4001, 4007, "DO-41"},
	{4728, 4764, "DO-41"},
	{5391, 5399, "DO-204AC"},
}

// Surface-mount suffixes of small-signal 1N parts.
var vishay1NSuffixPackages = []struct {
	suffix string
	pkg    string
}{
	{"WS", "SOD-323"},
	{"W", "SOD-123"},
}

// Vishay resolves JEDEC 1N diodes by numeric range.
type Vishay struct {
	*Declarative
}

// NewVishay wraps the Vishay rule file.
func NewVishay(rules *pattern.RuleFile) *Vishay {
	return &Vishay{Declarative: NewDeclarative(rules)}
}

// jedec1N splits a 1N part into its number and the text that follows it.
func jedec1N(p string) (int, string, bool) {
	return mpn.RegistrationNumber(p, "1N")
}

func lookup1N(n int) (numberRange, bool) {
	for _, r := range vishay1N {
		if n >= r.lo && n <= r.hi {
			return r, true
		}
	}
	return numberRange{}, false
}

// Matches accepts 1N diodes only inside Vishay's numeric ranges.
func (v *Vishay) Matches(part string, cat category.Category, reg *pattern.Registry) bool {
	p := mpn.Normalize(part)
	if n, _, ok := jedec1N(p); ok {
		if cat.Base() != category.Diode {
			return false
		}
		_, known := lookup1N(n)
		return known
	}
	return v.Declarative.Matches(p, cat, reg)
}

// ExtractPackageCode returns the SMD package for W and WS suffixed 1N parts
// and the axial default of the number's range otherwise.
func (v *Vishay) ExtractPackageCode(part string) string {
	p := mpn.Normalize(part)
	if n, rest, ok := jedec1N(p); ok {
		r, known := lookup1N(n)
		if !known {
			return ""
		}
		rest = strings.SplitN(rest, "-", 2)[0]
		for _, s := range vishay1NSuffixPackages {
			if strings.HasPrefix(rest, s.suffix) {
				return s.pkg
			}
		}
		return r.pkg
	}
	return v.Declarative.ExtractPackageCode(p)
}

// ExtractSeries returns the JEDEC number ("1N4148") for 1N diodes.
func (v *Vishay) ExtractSeries(part string) string {
	p := mpn.Normalize(part)
	if n, _, ok := jedec1N(p); ok {
		if _, known := lookup1N(n); known {
			return "1N" + strconv.Itoa(n)
		}
		return ""
	}
	return v.Declarative.ExtractSeries(p)
}

// IsOfficialReplacement applies Replaceable with the 1N-aware extraction.
func (v *Vishay) IsOfficialReplacement(original, candidate string) bool {
	return Replaceable(v, v.Rules(), original, candidate)
}
