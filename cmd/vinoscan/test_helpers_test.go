package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	return setupCLITestEnvWithAnalysis(t, "")
}

// setupCLITestEnvWithAnalysis writes a config file pointing every path at a
// per-test temp dir. baseURL, when non-empty, redirects the analysis client
// at a test server.
func setupCLITestEnvWithAnalysis(t *testing.T, baseURL string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")

	var sb strings.Builder
	fmt.Fprintf(&sb, "[paths]\ndata_dir = %q\nlog_dir = %q\n\n",
		filepath.Join(base, "data"), filepath.Join(base, "logs"))
	sb.WriteString("[storage]\nbackend = \"file\"\n\n")
	sb.WriteString("[analysis]\napi_key = \"test\"\n")
	if baseURL != "" {
		fmt.Fprintf(&sb, "base_url = %q\n", baseURL)
	}

	if err := os.WriteFile(configPath, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return &cliTestEnv{baseDir: base, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--config", configPath))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}

// extractID pulls the short id out of the "Added Name (abcd1234)" line.
func extractID(t *testing.T, output string) string {
	t.Helper()
	start := strings.LastIndex(output, "(")
	end := strings.LastIndex(output, ")")
	if start < 0 || end <= start {
		t.Fatalf("no id in output %q", output)
	}
	return output[start+1 : end]
}
