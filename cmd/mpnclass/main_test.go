package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/mpnclass/pkg/manufacturer"
	"github.com/coolbeans/mpnclass/pkg/ruleset"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestClassifyCommand(t *testing.T) {
	out, err := run(t, "classify", "AS7262-BLGT", "1N4148", "QQQ999")
	require.NoError(t, err)
	assert.Equal(t, "AS7262-BLGT\tams\n1N4148\tvishay\nQQQ999\tunknown\n", out)
}

func TestCandidatesJSON(t *testing.T) {
	out, err := run(t, "-o", "json", "candidates", "1N4148")
	require.NoError(t, err)

	var got []struct {
		Manufacturer string `json:"manufacturer"`
		Tier         string `json:"tier"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "vishay", got[0].Manufacturer)
	assert.Equal(t, "high", got[0].Tier)
	assert.Equal(t, "onsemi", got[1].Manufacturer)
	assert.Equal(t, "medium", got[1].Tier)
}

func TestOutputFromEnvironment(t *testing.T) {
	t.Setenv("MPNCLASS_OUTPUT", "json")
	out, err := run(t, "identify", "GD25Q128CSIG")
	require.NoError(t, err)

	var got []manufacturer.Identification
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, manufacturer.ID("gigadevice"), got[0].Manufacturer)
	assert.Equal(t, "GD25Q", got[0].Series)
	assert.Equal(t, "SOP8", got[0].Package)
}

func TestInvalidOutput(t *testing.T) {
	_, err := run(t, "-o", "xml", "classify", "LM358")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be text or json")
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, t.TempDir(), "config.yaml", "output: json\nbatch:\n  workers: 2\n  cache_ttl: 1m\n")
	out, err := run(t, "--config", cfg, "classify", "LM358DR")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"mpn":"LM358DR","manufacturer":"ti"}]`, out)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "classify", "LM358")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestSeriesAndPackageCommands(t *testing.T) {
	out, err := run(t, "series", "GD25Q128CSIG")
	require.NoError(t, err)
	assert.Equal(t, "GD25Q\n", out)

	out, err = run(t, "package", "-m", "ams", "AS7262-BLGT")
	require.NoError(t, err)
	assert.Equal(t, "BGA\n", out)

	_, err = run(t, "series", "QQQ999")
	assert.Error(t, err)

	_, err = run(t, "package", "-m", "acme", "AS7262-BLGT")
	assert.ErrorIs(t, err, manufacturer.ErrUnknownManufacturer)
}

func TestReplaceCommand(t *testing.T) {
	out, err := run(t, "replace", "AS7261", "AS7263")
	require.NoError(t, err)
	assert.Equal(t, "AS7261 -> AS7263: replacement (ams)\n", out)

	out, err = run(t, "replace", "LM2904DR", "LM358DR")
	require.NoError(t, err)
	assert.Contains(t, out, "not a replacement")
}

func TestExplainCommand(t *testing.T) {
	out, err := run(t, "explain", "1N4148")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 Vishay (vishay)")
	assert.Contains(t, out, "Result: vishay")
}

func TestManufacturersAndCategories(t *testing.T) {
	out, err := run(t, "manufacturers")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, len(manufacturer.Catalog()))
	assert.Contains(t, lines[0], "ams")

	out, err = run(t, "categories", "-m", "ams")
	require.NoError(t, err)
	assert.Contains(t, out, "SENSOR_SPECTRAL_AMS -> SENSOR")
}

func TestBatchCommand(t *testing.T) {
	file := writeFile(t, t.TempDir(), "bom.txt", "# bom\nAS7262-BLGT\n\nQQQ999\n")
	out, err := run(t, "batch", "-w", "2", file)
	require.NoError(t, err)
	assert.Equal(t,
		"AS7262-BLGT\tams\tSENSOR_SPECTRAL_AMS\tAS72\tBGA\nQQQ999\tunknown\t-\t-\t-\n", out)

	_, err = run(t, "batch", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestRulesCheckBundled(t *testing.T) {
	out, err := run(t, "rules", "check")
	require.NoError(t, err)
	assert.Equal(t, len(ruleset.EmbeddedIDs()), strings.Count(out, "ok   "))
}

const acmeRules = `id: acme
name: Acme
version: 1.0.0
categories:
  - category: IC
    patterns:
      - 'ACME\d+'
`

func TestRulesCheckDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "acme.yaml", acmeRules)

	out, err := run(t, "rules", "check", dir)
	require.NoError(t, err)
	assert.Equal(t, "ok   acme (1 categories)\n", out)

	writeFile(t, dir, "broken.yaml", "id: broken\nname: Broken\nversion: 1.0.0\ncategories: []\n")
	_, err = run(t, "rules", "check", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestRulesDirOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ti.yaml", `id: ti
name: Texas Instruments
version: 1.0.0
categories:
  - category: VOLTAGE_REGULATOR
    patterns:
      - 'ZZZ\d+'
`)

	out, err := run(t, "--rules-dir", dir, "classify", "ZZZ12")
	require.NoError(t, err)
	assert.Equal(t, "ZZZ12\tti\n", out)

	out, err = run(t, "classify", "ZZZ12")
	require.NoError(t, err)
	assert.Equal(t, "ZZZ12\tunknown\n", out)
}
