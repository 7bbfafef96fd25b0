package main

import (
	"bytes"
	"encoding/json"
	"errors"
	stdimage "image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ankit-chaubey/fileprops/core"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with an isolated home directory.
func execute(t *testing.T, stdin *os.File, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	globalFlags = GlobalFlags{}

	root := newRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	if stdin != nil {
		root.SetIn(stdin)
	} else {
		root.SetIn(&bytes.Buffer{})
	}
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		exitCode(err, newFlagPrinter(root))
	}
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, stdimage.NewGray(stdimage.Rect(0, 0, 5, 4))); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestView(t *testing.T) {
	img := writePNG(t, t.TempDir(), "a.png")

	r := execute(t, nil, "view", img)
	if r.err != nil {
		t.Fatalf("view error = %v (%s)", r.err, r.stderr)
	}
	for _, want := range []string{"── Basic properties ──", "── EXIF ──", "(no EXIF)", "Width:"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, r.stdout)
		}
	}

	r = execute(t, nil, "--json", "view", img)
	var rep core.JSONReport
	if err := json.Unmarshal([]byte(r.stdout), &rep); err != nil {
		t.Fatalf("view --json output is not JSON: %v\n%s", err, r.stdout)
	}
	if rep.Category != core.CatImage {
		t.Errorf("category = %s", rep.Category)
	}

	r = execute(t, nil, "--locale", "zh", "view", img)
	if !strings.Contains(r.stdout, "基本属性") || !strings.Contains(r.stdout, "无EXIF信息") {
		t.Errorf("zh output:\n%s", r.stdout)
	}
}

func TestView_MissingFile(t *testing.T) {
	r := execute(t, nil, "view", "/does/not/exist.jpg")
	if !errors.Is(r.err, core.ErrFileNotFound) {
		t.Fatalf("error = %v", r.err)
	}
	if !strings.HasPrefix(r.stderr, "✗ Error: ") {
		t.Errorf("stderr = %q", r.stderr)
	}

	r = execute(t, nil, "--json", "view", "/does/not/exist.jpg")
	var body map[string]string
	if err := json.Unmarshal([]byte(r.stderr), &body); err != nil || body["code"] != core.CodeFileNotFound {
		t.Errorf("json stderr = %q", r.stderr)
	}
}

func TestStrip_RequiresConfirmation(t *testing.T) {
	img := writePNG(t, t.TempDir(), "a.png")
	before, _ := os.ReadFile(img)

	r := execute(t, nil, "strip", img)
	if !errors.Is(r.err, errNotConfirmed) {
		t.Fatalf("error = %v", r.err)
	}
	after, _ := os.ReadFile(img)
	if !bytes.Equal(before, after) {
		t.Error("file changed without confirmation")
	}
}

func TestStrip_InteractiveConfirm(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir, "a.png")

	prev := isTerminal
	isTerminal = func(*os.File) bool { return true }
	defer func() { isTerminal = prev }()

	answer := func(s string) *os.File {
		p := filepath.Join(dir, "answer")
		os.WriteFile(p, []byte(s), 0644)
		f, err := os.Open(p)
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { f.Close() })
		return f
	}

	if r := execute(t, answer("n\n"), "strip", img); r.err == nil || !strings.Contains(r.stderr, "[y/N]") {
		t.Errorf("declined strip: err = %v, stderr = %q", r.err, r.stderr)
	}
	if r := execute(t, answer("y\n"), "strip", img); r.err != nil || !strings.Contains(r.stdout, "metadata removed") {
		t.Errorf("confirmed strip: err = %v, stdout = %q", r.err, r.stdout)
	}
}

func TestStrip(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir, "a.png")
	txt := filepath.Join(dir, "notes.txt")
	os.WriteFile(txt, []byte("plain"), 0644)

	r := execute(t, nil, "strip", "--yes", img)
	if r.err != nil || !strings.Contains(r.stdout, "✓ "+img+": metadata removed") {
		t.Fatalf("strip: err = %v, stdout = %q", r.err, r.stdout)
	}

	r = execute(t, nil, "strip", "--yes", txt)
	if !errors.Is(r.err, core.ErrUnsupportedFormat) {
		t.Errorf("strip txt error = %v", r.err)
	}

	r = execute(t, nil, "strip", "--yes", img, txt)
	var ee *exitError
	if !errors.As(r.err, &ee) || ee.code != 1 {
		t.Fatalf("mixed strip error = %v", r.err)
	}
	if !strings.Contains(r.stdout, "✓ "+img) || !strings.Contains(r.stdout, "✗ "+txt) {
		t.Errorf("mixed strip output:\n%s", r.stdout)
	}
	if r.stderr != "" {
		t.Errorf("exit error should print nothing, stderr = %q", r.stderr)
	}
}

func TestBatchView(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png")
	b := writePNG(t, dir, "b.png")
	missing := filepath.Join(dir, "gone.png")

	r := execute(t, nil, "batch", "view", a, b, a)
	if r.err != nil {
		t.Fatalf("batch view error = %v (%s)", r.err, r.stderr)
	}
	for _, want := range []string{"File name: a.png", "File name: b.png", "Status: no EXIF", "Processed: 2  Succeeded: 2  Failed: 0"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, r.stdout)
		}
	}

	r = execute(t, nil, "batch", "view", a, missing)
	var ee *exitError
	if !errors.As(r.err, &ee) {
		t.Errorf("batch with missing file error = %v", r.err)
	}
	if !strings.Contains(r.stderr, "gone.png") {
		t.Errorf("missing file not reported: %q", r.stderr)
	}
}

func TestBatchStrip_JournalAndHistory(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png")
	bad := filepath.Join(dir, "bad.jpg")
	os.WriteFile(bad, []byte("not a jpeg"), 0644)
	cfgPath := filepath.Join(dir, "config.yaml")
	if r := execute(t, nil, "--config", cfgPath, "config", "init"); r.err != nil {
		t.Fatalf("config init error = %v", r.err)
	}
	journalPath := filepath.Join(dir, "journal.db")
	os.WriteFile(cfgPath, []byte("journal:\n  enabled: true\n  path: "+journalPath+"\n"), 0644)

	r := execute(t, nil, "--config", cfgPath, "--json", "batch", "strip", "--yes", a, bad)
	var out struct {
		Processed int               `json:"processed"`
		Failed    int               `json:"failed"`
		Outcomes  []core.JSONOutcome `json:"outcomes"`
	}
	if err := json.Unmarshal([]byte(r.stdout), &out); err != nil {
		t.Fatalf("batch --json output: %v\n%s", err, r.stdout)
	}
	if out.Processed != 2 || out.Failed != 1 || out.Outcomes[1].Code != core.CodeExtraction {
		t.Errorf("batch result = %+v", out)
	}

	r = execute(t, nil, "--config", cfgPath, "--json", "history")
	var runs []struct {
		ID     string `json:"id"`
		Failed int    `json:"failed"`
	}
	if err := json.Unmarshal([]byte(r.stdout), &runs); err != nil || len(runs) != 1 || runs[0].Failed != 1 {
		t.Fatalf("history = %q, %v", r.stdout, err)
	}

	r = execute(t, nil, "--config", cfgPath, "history", runs[0].ID)
	if r.err != nil || !strings.Contains(r.stdout, "bad.jpg") || !strings.Contains(r.stdout, core.CodeExtraction) {
		t.Errorf("history run: err = %v\n%s", r.err, r.stdout)
	}
}

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fp", "config.yaml")

	if r := execute(t, nil, "--config", path, "config", "init"); r.err != nil {
		t.Fatalf("config init error = %v", r.err)
	}
	if r := execute(t, nil, "--config", path, "config", "init"); r.err == nil {
		t.Error("second config init should refuse to overwrite")
	}
	if r := execute(t, nil, "--config", path, "config", "init", "--force"); r.err != nil {
		t.Errorf("config init --force error = %v", r.err)
	}

	r := execute(t, nil, "--config", path, "--locale", "zh", "config", "show")
	if r.err != nil || !strings.Contains(r.stdout, "locale: zh") {
		t.Errorf("config show: err = %v\n%s", r.err, r.stdout)
	}

	r = execute(t, nil, "--log-level", "loud", "formats")
	if r.err == nil || !strings.Contains(r.err.Error(), "logging.level") {
		t.Errorf("invalid flag error = %v", r.err)
	}
}

func TestFormatsVersionSysinfo(t *testing.T) {
	r := execute(t, nil, "formats")
	if r.err != nil || !strings.Contains(r.stdout, ".jpeg") || !strings.Contains(r.stdout, "docx") {
		t.Errorf("formats:\n%s", r.stdout)
	}

	if r := execute(t, nil, "version", "--short"); strings.TrimSpace(r.stdout) != Version {
		t.Errorf("version --short = %q", r.stdout)
	}

	r = execute(t, nil, "--json", "sysinfo")
	var info SystemInfo
	if err := json.Unmarshal([]byte(r.stdout), &info); err != nil {
		t.Fatalf("sysinfo --json: %v\n%s", err, r.stdout)
	}
	if info.OS == "" || info.CPUs < 1 || info.GoVersion == "" {
		t.Errorf("sysinfo = %+v", info)
	}
}
