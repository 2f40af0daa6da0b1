package manufacturer

import (
	"fmt"
	"sync"

	"github.com/coolbeans/mpnclass/pkg/category"
)

var defaultDirectory = sync.OnceValue(func() *Directory {
	d, err := NewDirectory(Catalog())
	if err != nil {
		panic(fmt.Sprintf("manufacturer: bundled catalog: %v", err))
	}
	return d
})

// Default returns the directory over the bundled catalog. It is built on
// first call and shared by the package-level functions.
func Default() *Directory {
	return defaultDirectory()
}

// Classify calls Default().Classify.
func Classify(part string) ID { return Default().Classify(part) }

// ClassifyAll calls Default().ClassifyAll.
func ClassifyAll(part string) []ID { return Default().ClassifyAll(part) }

// Candidates calls Default().Candidates.
func Candidates(part string) []Candidate { return Default().Candidates(part) }

// Explain calls Default().Explain.
func Explain(part string) string { return Default().Explain(part) }

// Identify calls Default().Identify.
func Identify(part string) Identification { return Default().Identify(part) }

// DetectCategory calls Default().DetectCategory.
func DetectCategory(id ID, part string) category.Category {
	return Default().DetectCategory(id, part)
}

// SupportedCategories calls Default().SupportedCategories.
func SupportedCategories(id ID) []category.Category {
	return Default().SupportedCategories(id)
}

// ExtractPackageCode calls Default().ExtractPackageCode.
func ExtractPackageCode(id ID, part string) string {
	return Default().ExtractPackageCode(id, part)
}

// ExtractSeries calls Default().ExtractSeries.
func ExtractSeries(id ID, part string) string {
	return Default().ExtractSeries(id, part)
}

// IsOfficialReplacement calls Default().IsOfficialReplacement.
func IsOfficialReplacement(id ID, original, candidate string) bool {
	return Default().IsOfficialReplacement(id, original, candidate)
}

// IsReplacement calls Default().IsReplacement.
func IsReplacement(original, candidate string) bool {
	return Default().IsReplacement(original, candidate)
}

// Manufacturers calls Default().Manufacturers.
func Manufacturers() []Info { return Default().Manufacturers() }
