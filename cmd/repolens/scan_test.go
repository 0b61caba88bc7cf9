package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/julianshen/repolens/internal/analyzer"
)

func TestScanJSON(t *testing.T) {
	url := setupGitRepo(t, "a.py", "b.py", "sub/c.js", "node_modules/ignored.js")
	env := newTestEnv(t, "unused")

	stdout, stderr, err := execute(t, "scan", url, "--config", env.configPath)
	require.NoError(t, err)

	var res analyzer.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, 3, res.TotalFiles)
	assert.Equal(t, []analyzer.LanguageCount{
		{Language: "Python", Files: 2},
		{Language: "JavaScript", Files: 1},
	}, res.Languages)
	assert.Empty(t, res.EntryPoints)
	assert.Equal(t, []string{"sub/"}, res.FolderStructure)

	assert.Contains(t, stderr, "Cloning "+url+" ...")
	assert.NotContains(t, stderr, "Generating")
	assert.Equal(t, int32(0), env.requests.Load())
}

func TestScanYAML(t *testing.T) {
	url := setupGitRepo(t, "main.py", "src/Main.java")
	env := newTestEnv(t, "unused")

	stdout, _, err := execute(t, "scan", url, "--format", "yaml", "--config", env.configPath)
	require.NoError(t, err)

	var res analyzer.Result
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, 2, res.TotalFiles)
	assert.Equal(t, []string{"main.py", "src/Main.java"}, res.EntryPoints)
	assert.Equal(t, []string{"src/"}, res.FolderStructure)
}

func TestScanUnknownFormat(t *testing.T) {
	_, _, err := execute(t, "scan", "https://example.com/r.git", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestPromptCommand(t *testing.T) {
	url := setupGitRepo(t, "main.go", "internal/app/app.go")
	env := newTestEnv(t, "unused")

	stdout, _, err := execute(t, "prompt", url, "--config", env.configPath)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "You are a senior software architect."))
	assert.Contains(t, stdout, "- **Total files:** 2\n")
	assert.Contains(t, stdout, "- **Languages detected:** Go (2 files)\n")
	assert.Contains(t, stdout, "- **Likely entry points:** main.go\n")
	assert.Contains(t, stdout, "internal/\ninternal/app/\n")
	assert.Equal(t, int32(0), env.requests.Load())
}

func TestScanFailedClone(t *testing.T) {
	setupGitRepo(t)
	env := newTestEnv(t, "unused")
	missing := "file://" + filepath.Join(t.TempDir(), "missing")

	stdout, _, err := execute(t, "scan", missing, "--config", env.configPath)
	require.Error(t, err)
	assert.Empty(t, stdout)
}
