package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	harnessScenarios = "../harness/testdata/scenarios"
	harnessGolden    = "../harness/testdata/golden"

	passingScenario = `name: tiny
description: "One committed insert"
owner: alice
steps:
  - insert:
      sender: alice
      format: n_triples
      data: |
        <https://example.org/a> <https://example.org/p> "x" .
    expect:
      count: 1
assertions:
  - type: final_stat
    count: 1
`
	failingScenario = `name: wrong
description: "Expects more triples than inserted"
owner: alice
steps:
  - insert:
      sender: alice
      format: n_triples
      data: |
        <https://example.org/a> <https://example.org/p> "x" .
    expect:
      count: 2
`
)

func newTestCmd(format string, args ...string) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format}
	cmd := NewTestCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	return buf, cmd.Execute()
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := newTestCmd("text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestTestCommandNonExistentPath(t *testing.T) {
	_, err := newTestCmd("text", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenario path not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	buf, err := newTestCmd("text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	buf, err := newTestCmd("json", t.TempDir())
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

// TestTestCommandHarnessScenarios runs the harness scenarios against their golden traces.
func TestTestCommandHarnessScenarios(t *testing.T) {
	buf, err := newTestCmd("text", harnessScenarios, "--golden-dir", harnessGolden)
	require.NoError(t, err, buf.String())
	assert.Contains(t, buf.String(), "✓ catalog")
	assert.Contains(t, buf.String(), "✓ All scenarios passed")
}

func TestTestCommandFilter(t *testing.T) {
	buf, err := newTestCmd("json", harnessScenarios, "--golden-dir", harnessGolden, "--filter", "lim*")
	require.NoError(t, err)

	var result struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result.Data.Scenarios, 1)
	assert.Equal(t, 1, result.Data.Passed)
	assert.Equal(t, 1, result.Data.Total)
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pass.yaml"), []byte(passingScenario), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fail.yaml"), []byte(failingScenario), 0644))

	buf, err := newTestCmd("json", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
}

func TestTestCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [unterminated\n"), 0644))

	buf, err := newTestCmd("text", dir)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "✗ broken.yaml")
	assert.Contains(t, buf.String(), "failed to load scenario")
}

// TestTestCommandUpdateGolden verifies --update writes a golden file that later runs match.
func TestTestCommandUpdateGolden(t *testing.T) {
	dir := t.TempDir()
	scenarioFile := filepath.Join(dir, "tiny.yaml")
	require.NoError(t, os.WriteFile(scenarioFile, []byte(passingScenario), 0644))

	buf, err := newTestCmd("text", scenarioFile, "--update")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ tiny (golden updated)")

	goldenPath := filepath.Join(dir, "golden", "tiny.golden")
	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name": "tiny"`)

	_, err = newTestCmd("text", scenarioFile)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(goldenPath, []byte("{}"), 0644))
	buf, err = newTestCmd("text", scenarioFile)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "trace does not match golden file")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "catalog.golden"),
		goldenFilePath("", filepath.Join("scenarios", "catalog.yaml"), "catalog"))
	assert.Equal(t, filepath.Join("elsewhere", "catalog.golden"),
		goldenFilePath("elsewhere", filepath.Join("scenarios", "catalog.yaml"), "catalog"))
}
