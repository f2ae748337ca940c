package main

// Notes:
// - Tests go through runDoctorCmd and check its JSON or text output.
// - Chrome detection depends on the machine, so only the project checks
//   are asserted; a missing browser is a warning and never an error.

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func doctorConfig(t *testing.T, contentDir string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "md2blog.yaml")
	yaml := "content:\n  dir: " + contentDir + "\n" +
		"output:\n  root: " + filepath.Join(dir, "public", "posts") + "\n" +
		"  index: " + filepath.Join(dir, "posts.json") + "\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_JSONOutput - JSON output format and project checks
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	root, _ := blogLayout(t)
	cfgPath := doctorConfig(t, filepath.Join(root, "content"))

	env, stdout, _ := testEnv()
	code := runDoctorCmd([]string{"--json", "--config", cfgPath}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout.String())
	}

	if code != ExitSuccess {
		t.Errorf("exit code = %d, want %d (errors: %v)", code, ExitSuccess, result.Errors)
	}
	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("platform = %s/%s", result.Env.OS, result.Env.Arch)
	}
	if result.Status != "ready" && result.Status != "warnings" {
		t.Errorf("status = %q, want ready or warnings", result.Status)
	}

	p := result.Project
	if p.ConfigFile != cfgPath {
		t.Errorf("config file = %q, want %q", p.ConfigFile, cfgPath)
	}
	if !p.ContentFound || p.MarkdownFiles != 1 {
		t.Errorf("content found = %v, markdown files = %d", p.ContentFound, p.MarkdownFiles)
	}
	if !p.OutputWritable {
		t.Error("output root below a temp dir should be writable")
	}
}

func TestRunDoctorCmd_MissingContent(t *testing.T) {
	t.Parallel()

	cfgPath := doctorConfig(t, filepath.Join(t.TempDir(), "nope"))

	env, stdout, _ := testEnv()
	code := runDoctorCmd([]string{"--config=" + cfgPath}, env)

	if code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
	out := stdout.String()
	for _, want := range []string{"md2blog doctor", "Content directory not readable", "Status: Not ready"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDoctorCmd_BadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("render:\n  workers: 500\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	env, stdout, _ := testEnv()
	if code := runDoctorCmd([]string{"--json", "-c", path}, env); code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(stdout.String(), "Config:") {
		t.Errorf("config error not reported:\n%s", stdout.String())
	}
}

func TestDirWritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if !dirWritable(filepath.Join(dir, "not", "yet", "created")) {
		t.Error("missing directory under a writable parent should count as writable")
	}
	if !dirWritable(dir) {
		t.Error("temp dir should be writable")
	}
}
