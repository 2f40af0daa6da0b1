// Package manufacturer resolves free-text part numbers to manufacturers and
// routes category, extraction and replacement questions to the rule set of
// the manufacturer in charge.
package manufacturer

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/coolbeans/mpnclass/pkg/category"
	"github.com/coolbeans/mpnclass/pkg/mpn"
	"github.com/coolbeans/mpnclass/pkg/pattern"
	"github.com/coolbeans/mpnclass/pkg/ruleset"
)

// ID identifies a manufacturer.
type ID string

// Unknown is returned when no rule identifies the manufacturer.
const Unknown ID = "unknown"

var (
	// ErrUnknownManufacturer is returned for ids not in the directory.
	ErrUnknownManufacturer = errors.New("unknown manufacturer")
	// ErrDuplicateManufacturer is returned when two entries share an id.
	ErrDuplicateManufacturer = errors.New("duplicate manufacturer")
)

// Entry describes one manufacturer of the directory. The order of entries is
// the priority order of resolution.
type Entry struct {
	ID   ID
	Name string

	// Priority is a full-match, case-insensitive regex tested against the
	// normalized MPN. Empty means the manufacturer has no priority rule.
	Priority string

	// Indicators are abbreviations that hint at the manufacturer when they
	// appear as a token after the first, e.g. "LM358-TI".
	Indicators []string

	// New constructs the rule set. It is called at most once, on first use.
	New func() (ruleset.RuleSet, error)
}

// Info is the public description of an entry.
type Info struct {
	ID         ID       `json:"id"`
	Name       string   `json:"name"`
	Priority   string   `json:"priority,omitempty"`
	Indicators []string `json:"indicators,omitempty"`
}

// State is the construction state of a manufacturer's rule set.
type State int32

const (
	Uninitialized State = iota
	Initializing
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type slot struct {
	entry      Entry
	priority   *regexp.Regexp
	indicators map[string]bool

	once  sync.Once
	state atomic.Int32
	rules ruleset.RuleSet
	reg   *pattern.Registry
	err   error
}

// Directory is the ordered set of manufacturers. It is safe for concurrent
// use; each rule set is built on first use and never rebuilt.
type Directory struct {
	slots   []*slot
	byID    map[ID]*slot
	unknown *slot
	logger  *slog.Logger
}

// Option configures a Directory.
type Option func(*Directory)

// WithLogger sets the logger used for construction and defect reports.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Directory) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDirectory builds a directory over entries. Priority regexes are compiled
// here; rule sets are not constructed until first use.
func NewDirectory(entries []Entry, opts ...Option) (*Directory, error) {
	d := &Directory{
		byID:   make(map[ID]*slot, len(entries)),
		logger: slog.Default(),
		unknown: &slot{entry: Entry{
			ID:   Unknown,
			Name: "Unknown",
			New:  func() (ruleset.RuleSet, error) { return ruleset.Nop{}, nil },
		}},
	}
	for _, opt := range opts {
		opt(d)
	}

	var errs []error
	for _, e := range entries {
		switch {
		case e.ID == "":
			errs = append(errs, fmt.Errorf("manufacturer %q: id is required", e.Name))
			continue
		case e.ID == Unknown:
			errs = append(errs, fmt.Errorf("manufacturer %q: id is reserved", e.ID))
			continue
		case d.byID[e.ID] != nil:
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateManufacturer, e.ID))
			continue
		case e.New == nil:
			errs = append(errs, fmt.Errorf("manufacturer %q: no rule set constructor", e.ID))
			continue
		}

		s := &slot{entry: e, indicators: make(map[string]bool, len(e.Indicators))}
		if e.Priority != "" {
			re, err := pattern.Compile(e.Priority)
			if err != nil {
				errs = append(errs, fmt.Errorf("compiling priority for %q: %w", e.ID, err))
				continue
			}
			s.priority = re
		}
		for _, ind := range e.Indicators {
			s.indicators[mpn.Normalize(ind)] = true
		}

		d.slots = append(d.slots, s)
		d.byID[e.ID] = s
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return d, nil
}

func (d *Directory) lookup(id ID) *slot {
	if s, ok := d.byID[id]; ok {
		return s
	}
	return d.unknown
}

// ensure constructs the rule set and its registry exactly once. Concurrent
// callers block until the first one finishes. A constructor that fails or
// panics leaves the entry with the empty rule set and a fresh registry.
func (d *Directory) ensure(s *slot) *slot {
	s.once.Do(func() {
		s.state.Store(int32(Initializing))
		defer s.state.Store(int32(Ready))

		rules, reg, err := construct(s.entry)
		if err != nil {
			d.logger.Error("rule set construction failed", "manufacturer", s.entry.ID, "err", err)
			rules, reg = ruleset.Nop{}, pattern.NewRegistry(string(s.entry.ID))
			s.err = err
		}
		if regErr := reg.Err(); regErr != nil {
			d.logger.Error("invalid rule patterns", "manufacturer", s.entry.ID, "err", regErr)
			s.err = errors.Join(s.err, regErr)
		}

		s.rules, s.reg = rules, reg
		d.logger.Debug("rule set ready",
			"manufacturer", s.entry.ID,
			"categories", len(d.supported(s)),
			"patterns", reg.Count())
	})
	return s
}

func construct(e Entry) (rules ruleset.RuleSet, reg *pattern.Registry, err error) {
	defer func() {
		if r := recover(); r != nil {
			rules, reg, err = nil, nil, fmt.Errorf("constructor panicked: %v", r)
		}
	}()

	rules, err = e.New()
	if err != nil {
		return nil, nil, err
	}
	if rules == nil {
		return nil, nil, errors.New("constructor returned no rule set")
	}
	reg = pattern.NewRegistry(string(e.ID))
	rules.InitializePatterns(reg)
	return rules, reg, nil
}

// State reports the construction state of id's rule set.
func (d *Directory) State(id ID) State {
	s, ok := d.byID[id]
	if !ok {
		return Uninitialized
	}
	return State(s.state.Load())
}

// Validate builds every rule set and reports construction failures and
// malformed patterns.
func (d *Directory) Validate() error {
	var errs []error
	for _, s := range d.slots {
		d.ensure(s)
		if s.err != nil {
			errs = append(errs, fmt.Errorf("manufacturer %q: %w", s.entry.ID, s.err))
		}
	}
	return errors.Join(errs...)
}

// Info describes id.
func (d *Directory) Info(id ID) (Info, bool) {
	s, ok := d.byID[id]
	if !ok {
		return Info{}, false
	}
	return s.info(), true
}

func (s *slot) info() Info {
	return Info{
		ID:         s.entry.ID,
		Name:       s.entry.Name,
		Priority:   s.entry.Priority,
		Indicators: append([]string(nil), s.entry.Indicators...),
	}
}

// Name returns the display name of id, "Unknown" for unlisted ids.
func (d *Directory) Name(id ID) string {
	return d.lookup(id).entry.Name
}

// Manufacturers lists the directory in priority order.
func (d *Directory) Manufacturers() []Info {
	out := make([]Info, 0, len(d.slots))
	for _, s := range d.slots {
		out = append(out, s.info())
	}
	return out
}

// ParseID resolves a manufacturer id or name, case-insensitively.
func (d *Directory) ParseID(s string) (ID, error) {
	key := strings.TrimSpace(s)
	for _, sl := range d.slots {
		if strings.EqualFold(string(sl.entry.ID), key) || strings.EqualFold(sl.entry.Name, key) {
			return sl.entry.ID, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q", ErrUnknownManufacturer, s)
}

// RuleSet returns id's rule set, constructing it on first use. Unlisted ids
// get the empty rule set of Unknown.
func (d *Directory) RuleSet(id ID) ruleset.RuleSet {
	return d.ensure(d.lookup(id)).rules
}

// Registry returns the pattern registry owned by id's rule set.
func (d *Directory) Registry(id ID) *pattern.Registry {
	return d.ensure(d.lookup(id)).reg
}

// SupportedCategories returns the categories id can produce.
func (d *Directory) SupportedCategories(id ID) []category.Category {
	return d.supported(d.ensure(d.lookup(id)))
}

func (d *Directory) supported(s *slot) []category.Category {
	return guarded[[]category.Category](d, s, nil, func() []category.Category { return s.rules.SupportedCategories() })
}

// claimed returns the supported categories that have at least one registered
// pattern. Only these take part in fallback resolution and category
// detection.
func (d *Directory) claimed(s *slot) []category.Category {
	cats := d.supported(s)
	out := make([]category.Category, 0, len(cats))
	for _, cat := range cats {
		if s.reg.HasPattern(cat) {
			out = append(out, cat)
		}
	}
	return out
}

// ExtractPackageCode returns the package code id's rule set reads from part.
func (d *Directory) ExtractPackageCode(id ID, part string) string {
	s := d.ensure(d.lookup(id))
	return guarded(d, s, "", func() string { return s.rules.ExtractPackageCode(part) })
}

// ExtractSeries returns the series id's rule set reads from part.
func (d *Directory) ExtractSeries(id ID, part string) string {
	s := d.ensure(d.lookup(id))
	return guarded(d, s, "", func() string { return s.rules.ExtractSeries(part) })
}

// Matches reports whether part could be of category cat from id.
func (d *Directory) Matches(id ID, part string, cat category.Category) bool {
	s := d.ensure(d.lookup(id))
	return d.matches(s, part, cat)
}

func (d *Directory) matches(s *slot, part string, cat category.Category) bool {
	return guarded(d, s, false, func() bool { return s.rules.Matches(part, cat, s.reg) })
}

// guarded runs a rule set call and turns a panic into the zero answer. Rule
// sets are required to be total; a panic is a defect and is logged.
func guarded[T any](d *Directory, s *slot, zero T, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("rule set panicked", "manufacturer", s.entry.ID, "panic", r)
			out = zero
		}
	}()
	return fn()
}
