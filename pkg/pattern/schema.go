package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError represents a schema validation error with context
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return "no errors"
	}
	if len(errs) == 1 {
		return errs[0].Error()
	}
	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(errs), strings.Join(messages, "\n  - "))
}

// Validate performs comprehensive validation of a RuleFile.
// It returns descriptive errors for all validation failures.
func (rf *RuleFile) Validate() ValidationErrors {
	var errs ValidationErrors

	if rf.ID == "" {
		errs = append(errs, ValidationError{
			Field:   "id",
			Message: "required field is missing",
		})
	} else if !isValidID(rf.ID) {
		errs = append(errs, ValidationError{
			Field:   "id",
			Message: "must be lowercase alphanumeric with hyphens, starting with a letter",
			Value:   rf.ID,
		})
	}

	if rf.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "required field is missing",
		})
	}

	if rf.Version == "" {
		errs = append(errs, ValidationError{
			Field:   "version",
			Message: "required field is missing",
		})
	} else if !isValidVersion(rf.Version) {
		errs = append(errs, ValidationError{
			Field:   "version",
			Message: "must be semantic version (e.g., 1.0.0)",
			Value:   rf.Version,
		})
	}

	errs = append(errs, validateCategories(rf.Categories)...)
	errs = append(errs, validatePackages(rf.Packages)...)
	errs = append(errs, validateSeries(rf.Series)...)
	errs = append(errs, validateReplacement(&rf.Replacement)...)

	return errs
}

func validateCategories(cats []CategoryPatterns) ValidationErrors {
	var errs ValidationErrors

	if len(cats) == 0 {
		errs = append(errs, ValidationError{
			Field:   "categories",
			Message: "at least one category is needed",
		})
	}

	for i, cp := range cats {
		field := fmt.Sprintf("categories[%d]", i)

		if !cp.Category.Valid() {
			errs = append(errs, ValidationError{
				Field:   field + ".category",
				Message: "unknown category",
				Value:   cp.Category,
			})
		}

		if len(cp.Patterns) == 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".patterns",
				Message: "at least one pattern is needed",
			})
		}

		for j, expr := range cp.Patterns {
			errs = append(errs, validateRegex(fmt.Sprintf("%s.patterns[%d]", field, j), expr)...)
		}
	}

	return errs
}

func validatePackages(rules []PackageRule) ValidationErrors {
	var errs ValidationErrors

	for i, rule := range rules {
		field := fmt.Sprintf("packages[%d]", i)
		errs = append(errs, validateRegex(field+".pattern", rule.Pattern)...)

		if rule.Code == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".code",
				Message: "code is required",
			})
		}
	}

	return errs
}

func validateSeries(rules []SeriesRule) ValidationErrors {
	var errs ValidationErrors

	for i, rule := range rules {
		errs = append(errs, validateRegex(fmt.Sprintf("series[%d].pattern", i), rule.Pattern)...)
	}

	return errs
}

func validateReplacement(r *ReplacementConfig) ValidationErrors {
	var errs ValidationErrors

	for i, group := range r.Compatible {
		field := fmt.Sprintf("replacement.compatible[%d]", i)
		if len(group) < 2 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "a compatibility group needs at least two members",
				Value:   len(group),
			})
		}
		for j, expr := range group {
			errs = append(errs, validateRegex(fmt.Sprintf("%s[%d]", field, j), expr)...)
		}
	}

	for i, up := range r.Upgrades {
		field := fmt.Sprintf("replacement.upgrades[%d]", i)
		errs = append(errs, validateRegex(field+".from", up.From)...)
		errs = append(errs, validateRegex(field+".to", up.To)...)
	}

	for i, g := range r.Grades {
		field := fmt.Sprintf("replacement.grades[%d]", i)
		errs = append(errs, validateRegex(field+".pattern", g.Pattern)...)
		if len(g.Order) < 2 {
			errs = append(errs, ValidationError{
				Field:   field + ".order",
				Message: "at least two grades are needed",
			})
		}
		seen := make(map[string]bool, len(g.Order))
		for _, token := range g.Order {
			key := strings.ToUpper(token)
			if seen[key] {
				errs = append(errs, ValidationError{
					Field:   field + ".order",
					Message: "duplicate grade",
					Value:   token,
				})
			}
			seen[key] = true
		}
	}

	return errs
}

func validateRegex(field, expr string) ValidationErrors {
	if expr == "" {
		return ValidationErrors{{
			Field:   field,
			Message: "pattern is required",
		}}
	}
	if _, err := regexp.Compile(expr); err != nil {
		return ValidationErrors{{
			Field:   field,
			Message: "invalid regular expression",
			Value:   err.Error(),
		}}
	}
	return nil
}

func isValidID(id string) bool {
	if len(id) == 0 {
		return false
	}
	// Must start with lowercase letter
	if id[0] < 'a' || id[0] > 'z' {
		return false
	}
	// Rest must be lowercase alphanumeric or hyphen
	for _, c := range id[1:] {
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-') {
			return false
		}
	}
	return true
}

func isValidVersion(v string) bool {
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if len(part) == 0 {
			return false
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}
