package manufacturer

import "github.com/coolbeans/mpnclass/pkg/mpn"

// IsOfficialReplacement reports whether candidate is an accepted substitute
// for original under id's rules. Both parts must resolve to id; substitutes
// across manufacturers are never reported.
func (d *Directory) IsOfficialReplacement(id ID, original, candidate string) bool {
	a, b := mpn.Normalize(original), mpn.Normalize(candidate)
	if a == "" || b == "" || id == Unknown {
		return false
	}
	if d.Classify(a) != id || d.Classify(b) != id {
		return false
	}
	s := d.ensure(d.lookup(id))
	return guarded(d, s, false, func() bool { return s.rules.IsOfficialReplacement(a, b) })
}

// IsReplacement is IsOfficialReplacement with the manufacturer taken from
// the classification of original.
func (d *Directory) IsReplacement(original, candidate string) bool {
	return d.IsOfficialReplacement(d.Classify(original), original, candidate)
}
