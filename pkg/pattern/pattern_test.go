package pattern

import (
	"testing"

	"github.com/coolbeans/mpnclass/pkg/category"
)

func testRuleFile() *RuleFile {
	return &RuleFile{
		ID:      "gigadevice",
		Name:    "GigaDevice",
		Version: "1.0.0",
		Categories: []CategoryPatterns{
			{Category: category.MemoryGigaDevice, Patterns: []string{`GD25[A-Z]+\d+.*`}},
			{Category: category.Memory, Patterns: []string{`GD25[A-Z]+\d+.*`, `GD5F.*`}},
		},
		Packages: []PackageRule{
			{Pattern: `^GD25[A-Z]+\d+[A-Z]S`, Code: "SOP8"},
			{Pattern: `^GD25[A-Z]+\d+[A-Z]W`, Code: "WSON8"},
		},
		Series: []SeriesRule{
			{Pattern: `^(GD25[A-Z]+)\d`},
			{Pattern: `^GD5F`, Value: "GD5F"},
		},
		Replacement: ReplacementConfig{
			Compatible: [][]string{{`GD25Q64.*`, `GD25B64.*`}},
			Upgrades:   []Upgrade{{From: `GD25Q128B.*`, To: `GD25Q128C.*`}},
			Grades: []GradeConfig{{
				Pattern: `^GD25[A-Z]+\d+[A-Z][A-Z]([CIEJ])`,
				Order:   []string{"C", "I", "E", "J"},
			}},
		},
	}
}

func TestRuleFileCompile(t *testing.T) {
	rf := testRuleFile()
	if rf.IsCompiled() {
		t.Error("IsCompiled() = true before Compile()")
	}
	if err := rf.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !rf.IsCompiled() {
		t.Error("IsCompiled() = false after Compile()")
	}
}

func TestRuleFileCompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RuleFile)
	}{
		{"bad category pattern", func(rf *RuleFile) { rf.Categories[0].Patterns = []string{`(`} }},
		{"bad package", func(rf *RuleFile) { rf.Packages[0].Pattern = `[` }},
		{"bad series", func(rf *RuleFile) { rf.Series[0].Pattern = `(?P<` }},
		{"bad compatible", func(rf *RuleFile) { rf.Replacement.Compatible[0][1] = `*` }},
		{"bad upgrade", func(rf *RuleFile) { rf.Replacement.Upgrades[0].To = `(` }},
		{"grade without group", func(rf *RuleFile) { rf.Replacement.Grades[0].Pattern = `GD25` }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rf := testRuleFile()
			tt.mutate(rf)
			if err := rf.Compile(); err == nil {
				t.Error("Compile() should return error")
			}
		})
	}
}

func TestRuleFileExtraction(t *testing.T) {
	rf := testRuleFile()
	if err := rf.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	tests := []struct {
		mpn         string
		wantPackage string
		wantSeries  string
	}{
		{"GD25Q128CSIG", "SOP8", "GD25Q"},
		{"gd25lq64cwig", "WSON8", "GD25LQ"},
		{"GD5F1GQ4UBYIG", "", "GD5F"},
		{"", "", ""},
		{"???", "", ""},
	}

	for _, tt := range tests {
		if got := rf.PackageCode(tt.mpn); got != tt.wantPackage {
			t.Errorf("PackageCode(%q) = %q, want %q", tt.mpn, got, tt.wantPackage)
		}
		if got := rf.SeriesOf(tt.mpn); got != tt.wantSeries {
			t.Errorf("SeriesOf(%q) = %q, want %q", tt.mpn, got, tt.wantSeries)
		}
	}
}

func TestRuleFileSupportedCategories(t *testing.T) {
	rf := testRuleFile()
	rf.Categories = append(rf.Categories, CategoryPatterns{Category: category.Memory, Patterns: []string{`X`}})

	got := rf.SupportedCategories()
	if len(got) != 2 || got[0] != category.MemoryGigaDevice || got[1] != category.Memory {
		t.Errorf("SupportedCategories() = %v", got)
	}
}

func TestRuleFileRegister(t *testing.T) {
	rf := testRuleFile()
	reg := NewRegistry(rf.ID)
	rf.Register(reg)
	rf.Register(reg)

	if reg.Count() != 3 {
		t.Errorf("Count() = %d, want 3", reg.Count())
	}
	if !reg.MatchesForCurrentHandler("GD25Q128CSIG", category.MemoryGigaDevice) {
		t.Error("registered pattern should match")
	}
}

func TestRuleFileReplacementTables(t *testing.T) {
	rf := testRuleFile()
	if err := rf.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	gA, okA := rf.CompatibleGroup("GD25Q64CSIG")
	gB, okB := rf.CompatibleGroup("GD25B64CSIG")
	if !okA || !okB || gA != gB {
		t.Errorf("CompatibleGroup() = (%d,%v) (%d,%v), want same group", gA, okA, gB, okB)
	}
	if _, ok := rf.CompatibleGroup("GD25Q128CSIG"); ok {
		t.Error("CompatibleGroup() matched a part outside every group")
	}

	if !rf.Upgrades("GD25Q128BSIG", "GD25Q128CSIG") {
		t.Error("Upgrades() B->C should be allowed")
	}
	if rf.Upgrades("GD25Q128CSIG", "GD25Q128BSIG") {
		t.Error("Upgrades() C->B must not be allowed")
	}
}

func TestGradeConfigGradeOf(t *testing.T) {
	rf := testRuleFile()
	if err := rf.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	ladder := &rf.Replacement.Grades[0]

	industrial, ok := ladder.GradeOf("GD25Q128CSIG")
	if !ok {
		t.Fatal("GradeOf() found no grade")
	}
	if industrial.Token != "I" || industrial.Rank != 1 {
		t.Errorf("GradeOf() = %+v, want token I rank 1", industrial)
	}

	extended, ok := ladder.GradeOf("GD25Q128CSEG")
	if !ok {
		t.Fatal("GradeOf() found no grade")
	}
	if extended.Rest != industrial.Rest {
		t.Errorf("Rest differs: %q vs %q", extended.Rest, industrial.Rest)
	}
	if extended.Rank <= industrial.Rank {
		t.Errorf("E rank %d should exceed I rank %d", extended.Rank, industrial.Rank)
	}

	if _, ok := ladder.GradeOf("GD25Q128CSXG"); ok {
		t.Error("GradeOf() ranked a token outside the order")
	}
}

func TestRuleFileGradeUpgrade(t *testing.T) {
	rf := testRuleFile()
	if err := rf.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if !rf.GradeUpgrade("GD25Q128CSIG", "GD25Q128CSEG") {
		t.Error("GradeUpgrade() I->E should be allowed")
	}
	if rf.GradeUpgrade("GD25Q128CSEG", "GD25Q128CSIG") {
		t.Error("GradeUpgrade() E->I must not be allowed")
	}
	if rf.GradeUpgrade("GD25Q64CSIG", "GD25Q128CSEG") {
		t.Error("GradeUpgrade() allowed parts differing beyond the grade")
	}
}

func TestRuleFileSeriesTemplate(t *testing.T) {
	rf := testRuleFile()
	rf.Series = []SeriesRule{{Pattern: `^(GD25[A-Z]+)(\d+)`, Value: "${1}-${2}"}}
	if err := rf.Compile(); err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if got := rf.SeriesOf("gd25q128csig"); got != "GD25Q-128" {
		t.Errorf("SeriesOf() = %q, want GD25Q-128", got)
	}
}
