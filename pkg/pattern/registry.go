package pattern

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/coolbeans/mpnclass/pkg/category"
)

// Entry is one compiled pattern registered for a category.
type Entry struct {
	Handler  string
	Category category.Category
	Expr     string

	compiled *regexp.Regexp
}

type store struct {
	patterns map[category.Category][]Entry
	order    []category.Category
	errs     []error
}

// Registry maps categories to ordered lists of compiled patterns for one
// rule set. A Registry is written only while its rule set is being built;
// afterwards it is read-only and safe for concurrent use without locking.
type Registry struct {
	handler string
	store   *store
}

// NewRegistry creates an empty registry owned by handler.
func NewRegistry(handler string) *Registry {
	return &Registry{
		handler: handler,
		store:   &store{patterns: make(map[category.Category][]Entry)},
	}
}

// WithHandler returns a view over the same storage whose AddPattern stamps
// entries with handler and whose MatchesForCurrentHandler only consults
// that handler's entries.
func (r *Registry) WithHandler(handler string) *Registry {
	return &Registry{handler: handler, store: r.store}
}

// Handler returns the handler this view registers patterns for.
func (r *Registry) Handler() string {
	return r.handler
}

// AddPattern compiles expr as a full-string, case-insensitive match and
// appends it to cat's list. Re-adding an identical (handler, category, expr)
// is a no-op. A malformed expression is recorded (see Err) and skipped.
func (r *Registry) AddPattern(cat category.Category, expr string) {
	for _, e := range r.store.patterns[cat] {
		if e.Handler == r.handler && e.Expr == expr {
			return
		}
	}

	compiled, err := Compile(expr)
	if err != nil {
		err = fmt.Errorf("handler %q category %s: %w", r.handler, cat, err)
		r.store.errs = append(r.store.errs, err)
		return
	}

	if _, ok := r.store.patterns[cat]; !ok {
		r.store.order = append(r.store.order, cat)
	}
	r.store.patterns[cat] = append(r.store.patterns[cat], Entry{
		Handler:  r.handler,
		Category: cat,
		Expr:     expr,
		compiled: compiled,
	})
}

// Matches reports whether any pattern registered for cat matches mpn.
func (r *Registry) Matches(mpn string, cat category.Category) bool {
	for _, e := range r.store.patterns[cat] {
		if e.compiled.MatchString(mpn) {
			return true
		}
	}
	return false
}

// MatchesForCurrentHandler is Matches restricted to entries registered by
// this view's handler, so patterns another rule set placed in a shared
// store never produce a match here.
func (r *Registry) MatchesForCurrentHandler(mpn string, cat category.Category) bool {
	for _, e := range r.store.patterns[cat] {
		if e.Handler == r.handler && e.compiled.MatchString(mpn) {
			return true
		}
	}
	return false
}

// HasPattern reports whether at least one pattern is registered for cat.
func (r *Registry) HasPattern(cat category.Category) bool {
	return len(r.store.patterns[cat]) > 0
}

// Categories returns the categories with patterns, in first-registration order.
func (r *Registry) Categories() []category.Category {
	out := make([]category.Category, len(r.store.order))
	copy(out, r.store.order)
	return out
}

// Patterns returns the source expressions registered for cat.
func (r *Registry) Patterns(cat category.Category) []string {
	entries := r.store.patterns[cat]
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Expr)
	}
	return out
}

// Count returns the total number of registered patterns.
func (r *Registry) Count() int {
	n := 0
	for _, entries := range r.store.patterns {
		n += len(entries)
	}
	return n
}

// Err returns every pattern compilation failure recorded so far, joined,
// or nil.
func (r *Registry) Err() error {
	return errors.Join(r.store.errs...)
}

// Compile compiles expr anchored to the whole input and case-insensitive.
func Compile(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, errors.New("empty pattern")
	}
	re, err := regexp.Compile(`(?i)^(?:` + expr + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}
	return re, nil
}

// compileSearch compiles expr case-insensitive without anchoring.
func compileSearch(expr string) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, errors.New("empty pattern")
	}
	re, err := regexp.Compile(`(?i)` + expr)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", expr, err)
	}
	return re, nil
}
