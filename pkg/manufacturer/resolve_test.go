package manufacturer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/coolbeans/mpnclass/pkg/category"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		mpn  string
		want ID
	}{
		{"AS7262-BLGT", "ams"},
		{"as7262-blgt", "ams"},
		{"STM32F103C8T6", "st"},
		{"GD25Q128CSIG", "gigadevice"},
		{"ESP32-WROOM-32", "espressif"},
		{"ATMEGA328P-AU", "microchip"},
		{"NRF52832-QFAA", "nordic"},
		{"BME280", "bosch"},
		{"LM358DR", "ti"},
		{"LM358-TI", "ti"},
		{"24LC256-I/SN", "microchip"},
		{"GRM188R71C104KA01D", "murata"},
		{"CRCW060310K0FKEA", "vishay"},
		{"RC0603FR-0710KL", "yageo"},
		{"IRF540N", "infineon"},
		{"MAX3232", "analogdevices"},
		{"BC547", "nexperia"},
		{"1N4148", "vishay"},
		{"1N914", "vishay"},
		{"1N4007", "onsemi"},
		{"1N5819", "diodes"},
		{"LP2985-33DBVR", "ti"},
		{"XYZ123-TI", "ti"},
		{"", Unknown},
		{"   ", Unknown},
		{"QQQ999", Unknown},
		{"SI7021", Unknown},
	}

	d := Default()
	for _, tt := range tests {
		t.Run(tt.mpn, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Classify(tt.mpn))
		})
	}
}

func TestClassifyAll(t *testing.T) {
	tests := []struct {
		mpn  string
		want []ID
	}{
		{"1N4148", []ID{"vishay", "onsemi"}},
		{"1N4007", []ID{"onsemi", "vishay"}},
		{"1N5819", []ID{"diodes", "onsemi", "vishay"}},
		{"2N7002", []ID{"nexperia", "onsemi"}},
		{"AS7262-BLGT", []ID{"ams"}},
		{"XYZ-TI-ST", []ID{"st", "ti"}},
		{"", []ID{Unknown}},
		{"QQQ999", []ID{Unknown}},
	}

	d := Default()
	for _, tt := range tests {
		t.Run(tt.mpn, func(t *testing.T) {
			assert.Equal(t, tt.want, d.ClassifyAll(tt.mpn))
		})
	}
}

func TestCandidates(t *testing.T) {
	d := Default()

	got := d.Candidates("1N4148")
	require.Len(t, got, 2)
	assert.Equal(t, Candidate{ID: "vishay", Tier: TierHigh, Reason: "numeric range 1N4148"}, got[0])
	assert.Equal(t, Candidate{ID: "onsemi", Tier: TierMedium, Reason: "priority pattern"}, got[1])

	got = d.Candidates("STM32F103C8T6")
	require.Len(t, got, 1)
	assert.Equal(t, `prefix "STM32"`, got[0].Reason)

	got = d.Candidates("1N4001")
	require.NotEmpty(t, got)
	assert.Equal(t, "numeric range 1N4001-1N4007", got[0].Reason)

	got = d.Candidates("LP2985-33DBVR")
	require.Len(t, got, 1)
	assert.Equal(t, TierLow, got[0].Tier)
	assert.True(t, strings.HasPrefix(got[0].Reason, "matches VOLTAGE_REGULATOR"), got[0].Reason)

	got = d.Candidates("XYZ123-TI")
	require.Len(t, got, 1)
	assert.Equal(t, Candidate{ID: "ti", Tier: TierLow, Reason: `indicator "TI"`}, got[0])

	assert.Nil(t, d.Candidates(""))
	assert.Nil(t, d.Candidates("QQQ999"))
}

func TestJEDECRangeBoundaries(t *testing.T) {
	d := Default()

	inside := []struct {
		mpn    string
		want   ID
		reason string
	}{
		{"1N4001", "onsemi", "numeric range 1N4001-1N4007"},
		{"1N4007", "onsemi", "numeric range 1N4001-1N4007"},
		{"1N4728A", "vishay", "numeric range 1N4728-1N4764"},
		{"1N4764A", "vishay", "numeric range 1N4728-1N4764"},
		{"1N5221B", "onsemi", "numeric range 1N5221-1N5281"},
		{"1N5281B", "onsemi", "numeric range 1N5221-1N5281"},
		{"1N5817", "diodes", "numeric range 1N5817-1N5819"},
		{"1N5819", "diodes", "numeric range 1N5817-1N5819"},
		{"1N914", "vishay", "numeric range 1N914"},
		{"1N4448", "vishay", "numeric range 1N4448"},
	}
	for _, tt := range inside {
		t.Run(tt.mpn, func(t *testing.T) {
			got := d.Candidates(tt.mpn)
			require.NotEmpty(t, got)
			assert.Equal(t, Candidate{ID: tt.want, Tier: TierHigh, Reason: tt.reason}, got[0])
			assert.Equal(t, tt.want, d.Classify(tt.mpn))
		})
	}

	outside := []string{
		"1N4000", "1N4008", "1N4727", "1N4765", "1N5220", "1N5282",
		"1N5816", "1N5820", "1N913", "1N4149",
		// A leading zero is not a registration number.
		"1N04148", "1N0004007",
	}
	for _, part := range outside {
		t.Run(part, func(t *testing.T) {
			for _, c := range d.Candidates(part) {
				assert.NotEqual(t, TierHigh, c.Tier, "%s: %v", part, c)
			}
		})
	}

	assert.Equal(t, ID("onsemi"), d.Classify("1N4765"))
	assert.Equal(t, "1N4148", d.ExtractSeries("vishay", "1N4148W"))
	assert.Empty(t, d.ExtractSeries("vishay", "1N04148"))
	assert.Empty(t, d.ExtractPackageCode("vishay", "1N04148"))
}

func TestCandidateJSON(t *testing.T) {
	data, err := json.Marshal(Candidate{ID: "ti", Tier: TierMedium, Reason: "priority pattern"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"manufacturer":"ti","tier":"medium","reason":"priority pattern"}`, string(data))
}

func TestPriorityStability(t *testing.T) {
	first := &stubRules{cat: category.IC}
	second := &stubRules{cat: category.IC}
	d := mustDirectory(t,
		stubEntry("first", `AB\d+`, first),
		stubEntry("second", `A.*`, second),
	)

	assert.Equal(t, ID("first"), d.Classify("AB12"))
	assert.Equal(t, []ID{"first", "second"}, d.ClassifyAll("AB12"))
	assert.Equal(t, ID("second"), d.Classify("AX"))
}

func TestFallbackOrder(t *testing.T) {
	d := mustDirectory(t,
		stubEntry("a", "", &stubRules{cat: category.Diode, patterns: []string{`D\d+`}}),
		stubEntry("b", `Z\d+`, &stubRules{cat: category.IC, patterns: []string{`D\d+`}}),
	)

	got := d.Candidates("D12")
	require.Len(t, got, 2)
	assert.Equal(t, Candidate{ID: "a", Tier: TierLow, Reason: "matches DIODE"}, got[0])
	assert.Equal(t, Candidate{ID: "b", Tier: TierLow, Reason: "matches IC"}, got[1])
	assert.Equal(t, ID("a"), d.Classify("D12"))
}

func TestIndicatorNeedsSecondToken(t *testing.T) {
	d := Default()
	// The leading token is the part itself, never an indicator.
	assert.Equal(t, Unknown, d.Classify("TI"))
	assert.Equal(t, Unknown, d.Classify("TI-XYZ123"))
}

func TestTierString(t *testing.T) {
	assert.Equal(t, "high", TierHigh.String())
	assert.Equal(t, "medium", TierMedium.String())
	assert.Equal(t, "low", TierLow.String())
	assert.Equal(t, "none", TierNone.String())
}

// resolutionCorpus mixes real part numbers with noise.
var resolutionCorpus = []string{
	"AS7262-BLGT", "AS7261", "STM32F103C8T6", "GD25Q128CSIG", "1N4148", "1N4148W",
	"1N4007", "1N5819", "1N4733A", "LM358DR", "LP2985-33DBVR", "XYZ123-TI",
	"2N7002", "BC547", "ESP32-WROOM-32", "NRF52832-QFAA", "GRM188R71C104KA01D",
	"RC0603FR-0710KL", "CRCW060310K0FKEA", "IRF540N", "MAX3232", "A1324LUA-T",
	"W25Q128JVSIQ", "BME280", "XYZ-TI-ST", "QQQ999", "", " ", "-", "1N", "1N99999999999",
}

func mpnGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.SampledFrom(resolutionCorpus),
		rapid.StringMatching(`[A-Z0-9]{1,8}(-[A-Z0-9]{1,4})?`),
		rapid.String(),
	)
}

func TestResolutionProperties(t *testing.T) {
	d := Default()

	rapid.Check(t, func(t *rapid.T) {
		part := mpnGen().Draw(t, "mpn")

		best := d.Classify(part)
		all := d.ClassifyAll(part)

		if d.Classify(part) != best {
			t.Fatalf("Classify(%q) is not deterministic", part)
		}
		if got := d.ClassifyAll(part); strings.Join(idStrings(got), ",") != strings.Join(idStrings(all), ",") {
			t.Fatalf("ClassifyAll(%q) is not deterministic", part)
		}
		if len(all) == 0 || all[0] != best {
			t.Fatalf("Classify(%q) = %s, ClassifyAll = %v", part, best, all)
		}

		seen := make(map[ID]bool)
		for _, id := range all {
			if seen[id] {
				t.Fatalf("ClassifyAll(%q) lists %s twice", part, id)
			}
			seen[id] = true
		}
		if seen[Unknown] && len(all) != 1 {
			t.Fatalf("ClassifyAll(%q) mixes Unknown with %v", part, all)
		}

		candidates := d.Candidates(part)
		for i := 1; i < len(candidates); i++ {
			if candidates[i].Tier < candidates[i-1].Tier {
				t.Fatalf("Candidates(%q) out of tier order: %v", part, candidates)
			}
		}
	})
}

func idStrings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func TestExplain(t *testing.T) {
	d := Default()

	out := d.Explain("1N4148")
	assert.Contains(t, out, `Resolution for "1N4148" (2 candidates)`)
	assert.Contains(t, out, "#1 Vishay (vishay)")
	assert.Contains(t, out, "Tier: high")
	assert.Contains(t, out, "#2 onsemi (onsemi)")
	assert.Contains(t, out, "Result: vishay")

	out = d.Explain("QQQ999")
	assert.Contains(t, out, "No manufacturer rule matched.")
	assert.Contains(t, out, "Result: unknown")
}
