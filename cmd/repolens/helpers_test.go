package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// setupGitRepo creates a repository holding files and returns a file://
// URL for it. The test is skipped when git is missing.
func setupGitRepo(t *testing.T, files ...string) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v failed: %s", args, string(out))
	}

	run("init")
	run("config", "user.email", "test@test.com")
	run("config", "user.name", "Test")
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x\n"), 0o644))
	}
	run("add", "-A")
	run("commit", "-m", "initial")

	return "file://" + dir
}

// testEnv is a config file pointing at a fake OpenAI-compatible server.
type testEnv struct {
	configPath  string
	historyPath string
	requests    *atomic.Int32
}

func newTestEnv(t *testing.T, reply string) testEnv {
	t.Helper()
	var requests atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model": "test-model",
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": reply}, "finish_reason": "stop"},
			},
		})
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	env := testEnv{
		configPath:  filepath.Join(dir, "config.toml"),
		historyPath: filepath.Join(dir, "history.db"),
		requests:    &requests,
	}
	cfg := fmt.Sprintf(`[provider]
default = "local"
model = "test-model"

[[provider.openai_compatible]]
name = "local"
base_url = '%s'
api_key_source = "config"
api_key = "test-key"

[history]
enabled = true
path = '%s'

[log]
level = "error"
`, srv.URL, env.historyPath)
	require.NoError(t, os.WriteFile(env.configPath, []byte(cfg), 0o644))
	return env
}
