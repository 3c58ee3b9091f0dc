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
)

const fixture = `[
  {"name": "Apple", "type": "fruit"},
  {"name": "Apple Pie", "type": "dessert"},
  {"name": "Banana", "type": "fruit"},
  {"name": "Banana Split", "type": "dessert"}
]`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"search", "--data", path, "--log-level", "error"}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestSearchTable(t *testing.T) {
	out, err := runCLI(t, "apple")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "SCORE")
	assert.Contains(t, lines[1], "51")
	assert.True(t, strings.HasSuffix(lines[1], "Apple"))
	assert.Contains(t, lines[2], "Apple Pie")
	assert.Equal(t, "2 of 2 matches", lines[3])
}

func TestSearchJSON(t *testing.T) {
	out, err := runCLI(t, "--json", "--limit", "1", "a")
	require.NoError(t, err)

	var results []jsonResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.NotZero(t, results[0].Score)
}

func TestSearchWithFilter(t *testing.T) {
	out, err := runCLI(t, "--json", "--filter", "dessert", "--filter-column", "type", "banana")
	require.NoError(t, err)

	var results []jsonResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Banana Split", results[0].Record.GetString("name"))
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing query", nil},
		{"unknown normalizer", []string{"--normalizer", "bogus", "a"}},
		{"negative limit", []string{"--limit", "-1", "a"}},
		{"missing key field", []string{"--key", "title", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			assert.Error(t, err)
		})
	}
}
