package ruleset

import (
	"strings"

	"github.com/coolbeans/mpnclass/pkg/mpn"
	"github.com/coolbeans/mpnclass/pkg/pattern"
)

// ST decodes STM32/STM8 ordering codes; everything else comes from the rule
// file.
type ST struct {
	*Declarative
}

// NewST wraps the ST rule file.
func NewST(rules *pattern.RuleFile) *ST {
	return &ST{Declarative: NewDeclarative(rules)}
}

// ExtractPackageCode returns e.g. "LQFP48" for STM32F103C8T6.
func (s *ST) ExtractPackageCode(part string) string {
	p := mpn.Normalize(part)
	if code, ok := decodeSTMicro(p); ok {
		return code.packageCode()
	}
	return s.Declarative.ExtractPackageCode(p)
}

// ExtractSeries returns e.g. "STM32F1" for STM32F103C8T6.
func (s *ST) ExtractSeries(part string) string {
	p := mpn.Normalize(part)
	if code, ok := decodeSTMicro(p); ok {
		return code.series()
	}
	return s.Declarative.ExtractSeries(p)
}

// IsOfficialReplacement applies Replaceable with the decoded package codes.
func (s *ST) IsOfficialReplacement(original, candidate string) bool {
	return Replaceable(s, s.Rules(), original, candidate)
}

func decodeSTMicro(p string) (mcuCode, bool) {
	switch {
	case strings.HasPrefix(p, "STM32"):
		return decodeMCU(p)
	case strings.HasPrefix(p, "STM8"):
		return decodeSTM8(p)
	}
	return mcuCode{}, false
}
