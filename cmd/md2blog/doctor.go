package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/bitsboot/md2blog/internal/config"
	"github.com/bitsboot/md2blog/internal/fileutil"
)

// Doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

type doctorResult struct {
	Status   string      `json:"status"`
	Project  projectInfo `json:"project"`
	Chrome   chromeInfo  `json:"chrome"`
	Env      envInfo     `json:"environment"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// projectInfo is what a build would read and write.
type projectInfo struct {
	ConfigFile      string `json:"config_file,omitempty"`
	ContentDir      string `json:"content_dir"`
	ContentFound    bool   `json:"content_found"`
	MarkdownFiles   int    `json:"markdown_files"`
	OutputRoot      string `json:"output_root"`
	OutputWritable  bool   `json:"output_writable"`
	IndexFile       string `json:"index_file"`
	IndexDirPresent bool   `json:"index_dir_present"`
}

// chromeInfo only matters to inspect; a missing browser is a warning.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

func (r *doctorResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) failf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd prints the report and exits 1 only when a build would fail.
func runDoctorCmd(args []string, env *Environment) int {
	f, _, _, err := parseFlags("doctor", args, printDoctorUsage, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := runDoctor(f.common.config)
	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor(configName string) *doctorResult {
	r := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkProject(r, configName)
	checkChrome(r)
	checkEnvironment(r)

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

// checkProject resolves the config the way build does, minus flags, and
// checks the directories it names.
func checkProject(r *doctorResult, configName string) {
	configName = firstNonEmpty(configName, os.Getenv("MD2BLOG_CONFIG"), config.DiscoverConfig())

	cfg := config.DefaultConfig()
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			r.failf("Config: %v", err)
			return
		}
		cfg = loaded
		r.Project.ConfigFile = configName
	}
	applyEnvConfig(loadEnvConfig(), cfg)

	p := &r.Project
	p.ContentDir, p.OutputRoot, p.IndexFile = cfg.Content.Dir, cfg.Output.Root, cfg.Output.Index

	if n, err := countMarkdown(p.ContentDir); err != nil {
		r.failf("Content directory not readable: %s", p.ContentDir)
	} else {
		p.ContentFound, p.MarkdownFiles = true, n
		if n == 0 {
			r.warnf("No Markdown files in %s", p.ContentDir)
		}
	}

	if p.OutputWritable = dirWritable(p.OutputRoot); !p.OutputWritable {
		r.failf("Output root not writable: %s", p.OutputRoot)
	}

	indexDir := filepath.Dir(p.IndexFile)
	if p.IndexDirPresent = fileutil.DirExists(indexDir); !p.IndexDirPresent {
		r.warnf("Index directory %s does not exist yet (created on build)", indexDir)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func countMarkdown(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() && fileutil.IsMarkdown(e.Name()) {
			n++
		}
	}
	return n, nil
}

// dirWritable tries to create a file in dir or, while dir does not exist,
// in its closest existing ancestor.
func dirWritable(dir string) bool {
	for !fileutil.DirExists(dir) {
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
	tmp, err := os.CreateTemp(dir, ".md2blog-doctor-*")
	if err != nil {
		return false
	}
	_ = tmp.Close()
	_ = os.Remove(tmp.Name())
	return true
}

func checkChrome(r *doctorResult) {
	bin := r.Env.BrowserBin
	if bin == "" {
		found := false
		if bin, found = launcher.LookPath(); !found {
			r.warnf("Chrome/Chromium not found; inspect needs it. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}
	if _, err := os.Stat(bin); err != nil {
		r.warnf("Chrome not found at %s", bin)
		return
	}

	r.Chrome = chromeInfo{Found: true, Path: bin, Sandbox: r.Env.NoSandbox != "1"}
	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- detected browser binary
	if err != nil {
		r.warnf("Could not get Chrome version: %v", err)
		return
	}
	r.Chrome.Version = strings.TrimSpace(string(out))
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

func checkEnvironment(r *doctorResult) {
	r.Env.Container, r.Env.ContainerHint = detectContainer()
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			r.Env.CI = true
			break
		}
	}
	if r.Chrome.Found && (r.Env.Container || r.Env.CI) && r.Env.NoSandbox != "1" {
		r.warnf("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// detectContainer also returns the signal that gave the container away.
func detectContainer() (bool, string) {
	switch {
	case os.Getenv("MD2BLOG_CONTAINER") == "1":
		return true, "MD2BLOG_CONTAINER=1"
	case fileutil.FileExists("/.dockerenv"):
		return true, "/.dockerenv"
	case os.Getenv("container") != "":
		return true, "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// report writes one "[MARK] text" line per check under a section title.
type report struct {
	w io.Writer
}

func (rp report) section(title string) { fmt.Fprintln(rp.w, title) }
func (rp report) end()                 { fmt.Fprintln(rp.w) }

func (rp report) line(mark, format string, args ...any) {
	fmt.Fprintf(rp.w, "  [%s] %s\n", mark, fmt.Sprintf(format, args...))
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	rp := report{w: w}
	rp.section("md2blog doctor")
	rp.end()

	p := r.Project
	rp.section("Project")
	rp.line("OK", "Config: %s", firstNonEmpty(p.ConfigFile, "built-in defaults"))
	switch {
	case p.ContentFound:
		rp.line("OK", "Content: %s (%d Markdown files)", p.ContentDir, p.MarkdownFiles)
	case p.ContentDir != "":
		rp.line("ERROR", "Content: %s not readable", p.ContentDir)
	}
	switch {
	case p.OutputWritable:
		rp.line("OK", "Output: %s", p.OutputRoot)
	case p.OutputRoot != "":
		rp.line("ERROR", "Output: %s not writable", p.OutputRoot)
	}
	if p.IndexFile != "" {
		rp.line("OK", "Index: %s", p.IndexFile)
	}
	rp.end()

	rp.section("Chrome/Chromium (inspect only)")
	if c := r.Chrome; c.Found {
		rp.line("OK", "Found at %s", c.Path)
		if c.Version != "" {
			rp.line("OK", "Version: %s", c.Version)
		}
		sandbox := "enabled"
		if !c.Sandbox {
			sandbox = "disabled (ROD_NO_SANDBOX=1)"
		}
		rp.line("OK", "Sandbox: %s", sandbox)
	} else {
		rp.line("WARN", "Not found")
	}
	rp.end()

	rp.section("Environment")
	rp.line("OK", "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		rp.line("OK", "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		rp.line("OK", "CI: detected")
	}
	rp.end()

	for _, group := range []struct {
		title, mark string
		items       []string
	}{
		{"Warnings:", "WARN", r.Warnings},
		{"Errors:", "ERROR", r.Errors},
	} {
		if len(group.items) == 0 {
			continue
		}
		rp.section(group.title)
		for _, item := range group.items {
			rp.line(group.mark, "%s", item)
		}
		rp.end()
	}

	fmt.Fprintln(w, map[string]string{
		statusReady:    "Status: Ready to build",
		statusWarnings: "Status: Ready with warnings",
		statusErrors:   "Status: Not ready (see errors above)",
	}[r.Status])
}
