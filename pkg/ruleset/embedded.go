package ruleset

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/coolbeans/mpnclass/pkg/pattern"
)

//go:embed rules/*.yaml
var rulesFS embed.FS

// structural lists the manufacturers whose rule files are wrapped by a Go
// rule set.
var structural = map[string]func(*pattern.RuleFile) RuleSet{
	"ams":        func(rf *pattern.RuleFile) RuleSet { return NewAMS(rf) },
	"gigadevice": func(rf *pattern.RuleFile) RuleSet { return NewGigaDevice(rf) },
	"st":         func(rf *pattern.RuleFile) RuleSet { return NewST(rf) },
	"vishay":     func(rf *pattern.RuleFile) RuleSet { return NewVishay(rf) },
}

// Rules returns the embedded rule files as a read-only file system rooted at
// the rules directory.
func Rules() fs.FS {
	sub, err := fs.Sub(rulesFS, "rules")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}

// EmbeddedIDs returns the ids of all embedded rule files, sorted.
func EmbeddedIDs() []string {
	entries, err := fs.ReadDir(rulesFS, "rules")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if pattern.IsRuleFileName(e.Name()) {
			ids = append(ids, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
		}
	}
	sort.Strings(ids)
	return ids
}

// LoadEmbedded loads and compiles the embedded rule file for id.
func LoadEmbedded(id string) (*pattern.RuleFile, error) {
	rf, err := pattern.LoadFS(rulesFS, path.Join("rules", id+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading rules for %q: %w", id, err)
	}
	if rf.ID != id {
		return nil, fmt.Errorf("rules/%s.yaml declares id %q", id, rf.ID)
	}
	return rf, nil
}

// New builds the rule set for id from its embedded rule file.
func New(id string) (RuleSet, error) {
	rf, err := LoadEmbedded(id)
	if err != nil {
		return nil, err
	}
	return FromRuleFile(rf), nil
}

// FromRuleFile wraps a compiled rule file in the Go rule set registered for
// its id, or in a Declarative rule set.
func FromRuleFile(rf *pattern.RuleFile) RuleSet {
	if ctor, ok := structural[rf.ID]; ok {
		return ctor(rf)
	}
	return NewDeclarative(rf)
}
