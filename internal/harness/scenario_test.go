package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestBundle writes a minimal bundle file for path validation.
func createTestBundle(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "bundle.cue")
	require.NoError(t, os.WriteFile(path, []byte("// placeholder bundle"), 0644))
	return path
}

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	dir := t.TempDir()
	createTestBundle(t, dir)

	path := writeScenario(t, dir, `
name: test_scenario
description: "Validates scenario loading"
bundle: bundle.cue
runs:
  - obligation: ob_a
    expect:
      closed: true
assertions:
  - type: closed
    obligation: ob_a
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, filepath.Join(dir, "bundle.cue"), scenario.Bundle)
	require.Len(t, scenario.Runs, 1)
	require.NotNil(t, scenario.Runs[0].Expect)
	assert.True(t, scenario.Runs[0].Expect.Closed)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	dir := t.TempDir()
	createTestBundle(t, dir)

	// "assertion" instead of "assertions" must be rejected, not ignored.
	path := writeScenario(t, dir, `
name: typo_scenario
description: "Catches field typos"
bundle: bundle.cue
runs:
  - obligation: ob_a
assertion:
  - type: closed
    obligation: ob_a
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_Validation(t *testing.T) {
	dir := t.TempDir()
	createTestBundle(t, dir)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "missing name",
			content: `
description: "d"
bundle: bundle.cue
runs: [{obligation: a}]
assertions: [{type: closed, obligation: a}]
`,
			want: "name is required",
		},
		{
			name: "missing bundle",
			content: `
name: s
description: "d"
runs: [{obligation: a}]
assertions: [{type: closed, obligation: a}]
`,
			want: "bundle is required",
		},
		{
			name: "bundle not found",
			content: `
name: s
description: "d"
bundle: missing.cue
runs: [{obligation: a}]
assertions: [{type: closed, obligation: a}]
`,
			want: "bundle file not found",
		},
		{
			name: "empty runs",
			content: `
name: s
description: "d"
bundle: bundle.cue
runs: []
assertions: [{type: closed, obligation: a}]
`,
			want: "runs list is required",
		},
		{
			name: "empty assertions",
			content: `
name: s
description: "d"
bundle: bundle.cue
runs: [{obligation: a}]
assertions: []
`,
			want: "assertions list is required",
		},
		{
			name: "branch expect without status",
			content: `
name: s
description: "d"
bundle: bundle.cue
runs:
  - obligation: a
    expect:
      closed: true
      branches: [{ctor: mk}]
assertions: [{type: closed, obligation: a}]
`,
			want: "status is required",
		},
		{
			name: "branch_status without ctor",
			content: `
name: s
description: "d"
bundle: bundle.cue
runs: [{obligation: a}]
assertions: [{type: branch_status, obligation: a, status: open}]
`,
			want: "ctor is required",
		},
		{
			name: "unknown assertion type",
			content: `
name: s
description: "d"
bundle: bundle.cue
runs: [{obligation: a}]
assertions: [{type: trace_contains, obligation: a}]
`,
			want: "unknown assertion type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, dir, tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
