package manufacturer

import (
	"fmt"
	"strings"

	"github.com/coolbeans/mpnclass/pkg/mpn"
)

// Explain returns a readable report of every candidate for part and the rule
// behind each, followed by the resolved manufacturer.
func (d *Directory) Explain(part string) string {
	candidates := d.Candidates(part)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Resolution for %q (%d candidates)\n", mpn.Normalize(part), len(candidates)))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	if len(candidates) == 0 {
		sb.WriteString("No manufacturer rule matched.\n")
	}
	for i, c := range candidates {
		sb.WriteString(fmt.Sprintf("#%d %s (%s)\n", i+1, d.Name(c.ID), c.ID))
		sb.WriteString(fmt.Sprintf("  Tier: %s\n", c.Tier))
		sb.WriteString(fmt.Sprintf("  Reason: %s\n", c.Reason))
		if pkg := d.ExtractPackageCode(c.ID, part); pkg != "" {
			sb.WriteString(fmt.Sprintf("  Package: %s\n", pkg))
		}
		if series := d.ExtractSeries(c.ID, part); series != "" {
			sb.WriteString(fmt.Sprintf("  Series: %s\n", series))
		}
		sb.WriteString("\n")
	}

	best := Unknown
	if len(candidates) > 0 {
		best = candidates[0].ID
	}
	sb.WriteString(fmt.Sprintf("Result: %s\n", best))
	return sb.String()
}
