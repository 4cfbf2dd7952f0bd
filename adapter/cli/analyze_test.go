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

func writeTasksFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runAnalyze(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"analyze"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	t.Run("scores tasks from a bare array file", func(t *testing.T) {
		path := writeTasksFile(t, `[
			{"id": 1, "title": "ship release", "due_date": "2025-01-05"},
			{"id": 2, "title": "write docs", "dependencies": [1]}
		]`)

		out, err := runAnalyze(t, path, "--reference-date", "2025-01-10")

		require.NoError(t, err)
		assert.Contains(t, out, "ship release")
		assert.Contains(t, out, "overdue")
		assert.Contains(t, out, "strategy: smart")
	})

	t.Run("accepts the http request wrapper shape", func(t *testing.T) {
		path := writeTasksFile(t, `{"tasks": [{"id": 1, "title": "solo"}]}`)

		out, err := runAnalyze(t, path, "--reference-date", "2025-01-10")

		require.NoError(t, err)
		assert.Contains(t, out, "solo")
	})

	t.Run("json output is machine readable", func(t *testing.T) {
		path := writeTasksFile(t, `[{"id": 1, "title": "solo"}]`)

		out, err := runAnalyze(t, path, "--reference-date", "2025-01-10", "--json")

		require.NoError(t, err)
		var result map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Contains(t, result, "meta")
		assert.Contains(t, result, "tasks")
	})

	t.Run("fails on an empty batch", func(t *testing.T) {
		path := writeTasksFile(t, `[]`)

		_, err := runAnalyze(t, path, "--reference-date", "2025-01-10")

		assert.Error(t, err)
	})

	t.Run("fails on a missing file", func(t *testing.T) {
		_, err := runAnalyze(t, filepath.Join(t.TempDir(), "nope.json"))

		assert.Error(t, err)
	})
}
