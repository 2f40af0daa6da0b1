// Package pattern provides the category pattern registry and the declarative
// rule files that describe how a manufacturer's part numbers are recognised,
// sliced into package and series codes, and related to one another.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coolbeans/mpnclass/pkg/category"
)

// RuleFile is one manufacturer's declarative rule set.
type RuleFile struct {
	// Metadata
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`

	// Categories lists full-match patterns per category, in evaluation order.
	Categories []CategoryPatterns `yaml:"categories" json:"categories"`

	// Packages maps part-number fragments to normalized package codes.
	// The first matching rule wins.
	Packages []PackageRule `yaml:"packages" json:"packages"`

	// Series extracts the family identifier. The first matching rule wins.
	Series []SeriesRule `yaml:"series" json:"series"`

	// Replacement describes substitutions beyond the same-series,
	// same-package baseline.
	Replacement ReplacementConfig `yaml:"replacement" json:"replacement"`

	compiled bool
}

// CategoryPatterns binds a category to its patterns.
type CategoryPatterns struct {
	Category category.Category `yaml:"category" json:"category"`
	Patterns []string          `yaml:"patterns" json:"patterns"`
}

// PackageRule yields Code when Pattern is found in the part number.
type PackageRule struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Code    string `yaml:"code" json:"code"`

	compiled *regexp.Regexp
}

// SeriesRule extracts a series from the first capture group of Pattern, or
// from the whole match when the pattern has no groups. A non-empty Value
// replaces the extracted text; it may reference groups as ${1}, ${2}.
type SeriesRule struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Value   string `yaml:"value,omitempty" json:"value,omitempty"`

	compiled *regexp.Regexp
}

// ReplacementConfig holds the substitution tables of a rule file.
type ReplacementConfig struct {
	// Compatible lists groups of full-match patterns; parts matching
	// patterns of the same group replace one another.
	Compatible [][]string `yaml:"compatible" json:"compatible"`

	// Upgrades are one-way: a part matching To replaces one matching From.
	Upgrades []Upgrade `yaml:"upgrades" json:"upgrades"`

	// Grades are ordered ladders (temperature, speed, voltage, tolerance).
	// A part may stand in for one that differs only by a lower grade.
	Grades []GradeConfig `yaml:"grades" json:"grades"`

	compatible [][]*regexp.Regexp
}

// Upgrade is a one-way replacement path.
type Upgrade struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`

	from *regexp.Regexp
	to   *regexp.Regexp
}

// GradeConfig locates a grade token with capture group 1 of Pattern and
// ranks it by its position in Order, lowest first.
type GradeConfig struct {
	Pattern string   `yaml:"pattern" json:"pattern"`
	Order   []string `yaml:"order" json:"order"`

	compiled *regexp.Regexp
}

// Grade is a located grade token.
type Grade struct {
	Token string
	Rank  int
	// Rest is the part number with the token masked, used to check that
	// two parts differ only in grade.
	Rest string
}

// Compile compiles every regex of the rule file except the category
// patterns, which the Registry compiles when the rule set is initialized.
// Returns an error if any pattern fails to compile.
func (rf *RuleFile) Compile() error {
	for i := range rf.Categories {
		for j, expr := range rf.Categories[i].Patterns {
			if _, err := Compile(expr); err != nil {
				return fmt.Errorf("compiling categories[%d].patterns[%d]: %w", i, j, err)
			}
		}
	}

	for i := range rf.Packages {
		rule := &rf.Packages[i]
		compiled, err := compileSearch(rule.Pattern)
		if err != nil {
			return fmt.Errorf("compiling packages[%d]: %w", i, err)
		}
		rule.compiled = compiled
	}

	for i := range rf.Series {
		rule := &rf.Series[i]
		compiled, err := compileSearch(rule.Pattern)
		if err != nil {
			return fmt.Errorf("compiling series[%d]: %w", i, err)
		}
		rule.compiled = compiled
	}

	rep := &rf.Replacement
	rep.compatible = make([][]*regexp.Regexp, 0, len(rep.Compatible))
	for i, group := range rep.Compatible {
		compiledGroup := make([]*regexp.Regexp, 0, len(group))
		for j, expr := range group {
			compiled, err := Compile(expr)
			if err != nil {
				return fmt.Errorf("compiling replacement.compatible[%d][%d]: %w", i, j, err)
			}
			compiledGroup = append(compiledGroup, compiled)
		}
		rep.compatible = append(rep.compatible, compiledGroup)
	}

	for i := range rep.Upgrades {
		up := &rep.Upgrades[i]
		from, err := Compile(up.From)
		if err != nil {
			return fmt.Errorf("compiling replacement.upgrades[%d].from: %w", i, err)
		}
		to, err := Compile(up.To)
		if err != nil {
			return fmt.Errorf("compiling replacement.upgrades[%d].to: %w", i, err)
		}
		up.from, up.to = from, to
	}

	for i := range rep.Grades {
		g := &rep.Grades[i]
		compiled, err := compileSearch(g.Pattern)
		if err != nil {
			return fmt.Errorf("compiling replacement.grades[%d]: %w", i, err)
		}
		if compiled.NumSubexp() < 1 {
			return fmt.Errorf("replacement.grades[%d] pattern %q needs a capture group", i, g.Pattern)
		}
		g.compiled = compiled
	}

	rf.compiled = true
	return nil
}

// IsCompiled returns true if the rule file has been compiled.
func (rf *RuleFile) IsCompiled() bool {
	return rf.compiled
}

// SupportedCategories returns the declared categories in file order.
func (rf *RuleFile) SupportedCategories() []category.Category {
	out := make([]category.Category, 0, len(rf.Categories))
	seen := make(map[category.Category]bool, len(rf.Categories))
	for _, cp := range rf.Categories {
		if seen[cp.Category] {
			continue
		}
		seen[cp.Category] = true
		out = append(out, cp.Category)
	}
	return out
}

// Register adds the category patterns to reg.
func (rf *RuleFile) Register(reg *Registry) {
	for _, cp := range rf.Categories {
		for _, expr := range cp.Patterns {
			reg.AddPattern(cp.Category, expr)
		}
	}
}

// PackageCode returns the code of the first package rule found in mpn, or "".
func (rf *RuleFile) PackageCode(mpn string) string {
	for _, rule := range rf.Packages {
		if rule.compiled != nil && rule.compiled.MatchString(mpn) {
			return rule.Code
		}
	}
	return ""
}

// SeriesOf returns the series extracted by the first matching series rule,
// upper-cased, or "".
func (rf *RuleFile) SeriesOf(mpn string) string {
	for _, rule := range rf.Series {
		if rule.compiled == nil {
			continue
		}
		loc := rule.compiled.FindStringSubmatchIndex(mpn)
		if loc == nil {
			continue
		}
		if rule.Value != "" {
			if !strings.Contains(rule.Value, "$") {
				return rule.Value
			}
			return strings.ToUpper(string(rule.compiled.ExpandString(nil, rule.Value, mpn, loc)))
		}
		if len(loc) > 2 && loc[2] >= 0 && loc[3] > loc[2] {
			return strings.ToUpper(mpn[loc[2]:loc[3]])
		}
		return strings.ToUpper(mpn[loc[0]:loc[1]])
	}
	return ""
}

// CompatibleGroup returns the index of the first compatibility group with a
// pattern matching mpn.
func (rf *RuleFile) CompatibleGroup(mpn string) (int, bool) {
	for i, group := range rf.Replacement.compatible {
		for _, re := range group {
			if re.MatchString(mpn) {
				return i, true
			}
		}
	}
	return 0, false
}

// Upgrades reports whether an upgrade path lets replacement stand in for
// original.
func (rf *RuleFile) Upgrades(original, replacement string) bool {
	for _, up := range rf.Replacement.Upgrades {
		if up.from != nil && up.from.MatchString(original) && up.to.MatchString(replacement) {
			return true
		}
	}
	return false
}

// GradeOf locates and ranks the grade token of mpn on this ladder.
func (g *GradeConfig) GradeOf(mpn string) (Grade, bool) {
	if g.compiled == nil {
		return Grade{}, false
	}
	loc := g.compiled.FindStringSubmatchIndex(mpn)
	if loc == nil || loc[2] < 0 {
		return Grade{}, false
	}
	token := strings.ToUpper(mpn[loc[2]:loc[3]])
	for rank, want := range g.Order {
		if strings.EqualFold(want, token) {
			return Grade{
				Token: token,
				Rank:  rank,
				Rest:  strings.ToUpper(mpn[:loc[2]] + "*" + mpn[loc[3]:]),
			}, true
		}
	}
	return Grade{}, false
}

// GradeUpgrade reports whether candidate differs from original only by a
// grade on one of the ladders, and that grade is not lower.
func (rf *RuleFile) GradeUpgrade(original, candidate string) bool {
	for i := range rf.Replacement.Grades {
		ladder := &rf.Replacement.Grades[i]
		a, okA := ladder.GradeOf(original)
		b, okB := ladder.GradeOf(candidate)
		if okA && okB && a.Rest == b.Rest && b.Rank >= a.Rank {
			return true
		}
	}
	return false
}
