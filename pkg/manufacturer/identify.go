package manufacturer

import (
	"github.com/coolbeans/mpnclass/pkg/category"
	"github.com/coolbeans/mpnclass/pkg/mpn"
)

// Identification is everything the directory can tell about one MPN.
type Identification struct {
	MPN          string            `json:"mpn"`
	Normalized   string            `json:"normalized"`
	Manufacturer ID                `json:"manufacturer"`
	Name         string            `json:"name"`
	Tier         Tier              `json:"tier"`
	Category     category.Category `json:"category,omitempty"`
	BaseCategory category.Category `json:"base_category,omitempty"`
	Series       string            `json:"series,omitempty"`
	Package      string            `json:"package,omitempty"`
}

// DetectCategory returns the most specific category of id's rule set that
// part matches. Only categories with registered patterns are tried,
// specializations before bases, each group in the order the rule set
// declares them. It returns "" when none matches.
func (d *Directory) DetectCategory(id ID, part string) category.Category {
	s := d.ensure(d.lookup(id))
	cats := d.claimed(s)
	for _, specialized := range []bool{true, false} {
		for _, cat := range cats {
			if cat.IsBase() == specialized {
				continue
			}
			if d.matches(s, part, cat) {
				return cat
			}
		}
	}
	return ""
}

// Identify resolves part to its best manufacturer and reads category, series
// and package code with that manufacturer's rules.
func (d *Directory) Identify(part string) Identification {
	out := Identification{
		MPN:          part,
		Normalized:   mpn.Normalize(part),
		Manufacturer: Unknown,
		Name:         d.Name(Unknown),
	}
	candidates := d.Candidates(part)
	if len(candidates) == 0 {
		return out
	}

	best := candidates[0]
	out.Manufacturer = best.ID
	out.Name = d.Name(best.ID)
	out.Tier = best.Tier
	out.Category = d.DetectCategory(best.ID, part)
	if out.Category != "" {
		out.BaseCategory = out.Category.Base()
	}
	out.Series = d.ExtractSeries(best.ID, part)
	out.Package = d.ExtractPackageCode(best.ID, part)
	return out
}
