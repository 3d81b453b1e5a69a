package main

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/tradition-dev/site/internal/config"
)

// writeConfig creates a project with a file preference backend and quiet
// logging, and returns the config path.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	content := `{
  "pref": {"backend": "file", "path": "prefs.json"},
  "log": {"level": "error"}
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var validArgs = []string{
	"--name", "  Оксана ",
	"--email", "oksana@example.com",
	"--subject", "recipe",
	"--message", "Дякую за рецепт борщу!",
}

func TestCheckAccepted(t *testing.T) {
	cfgPath := writeConfig(t)

	out, err := run(t, "", append([]string{"check", "--config", cfgPath}, validArgs...)...)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "accepted") || !strings.Contains(out, "Оксана") {
		t.Errorf("output = %q", out)
	}

	name, err := run(t, "", "pref", "get", "--config", cfgPath)
	if err != nil {
		t.Fatalf("pref get: %v", err)
	}
	if strings.TrimSpace(name) != "Оксана" {
		t.Errorf("remembered name = %q, want trimmed name", name)
	}
}

// chdir moves the test into dir for its duration.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestCheckOutsideProjectWritesNothing(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Pref.Backend != config.BackendMemory {
		t.Errorf("Backend = %q, want %q", cfg.Pref.Backend, config.BackendMemory)
	}

	if _, err := run(t, "", append([]string{"check"}, validArgs...)...); err != nil {
		t.Fatalf("check: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("working directory has %d entries, want none", len(entries))
	}
}

func TestCheckDryRunDoesNotRemember(t *testing.T) {
	cfgPath := writeConfig(t)

	if _, err := run(t, "", append([]string{"check", "--dry-run", "--config", cfgPath}, validArgs...)...); err != nil {
		t.Fatalf("check: %v", err)
	}
	name, err := run(t, "", "pref", "get", "--config", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(name) != "" {
		t.Errorf("remembered name = %q, want none", name)
	}
}

func TestCheckRejectedJSON(t *testing.T) {
	cfgPath := writeConfig(t)

	out, err := run(t, "", "check", "--json", "--config", cfgPath, "--phone", "abc")
	if !stderrors.Is(err, errRejected) {
		t.Fatalf("err = %v, want errRejected", err)
	}

	var report checkReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if report.Valid || report.Accepted != nil {
		t.Errorf("report = %+v", report)
	}

	var fields []string
	for _, f := range report.Failures {
		fields = append(fields, f.Field)
	}
	if got := strings.Join(fields, ","); got != "name,email,phone,subject,message" {
		t.Errorf("failures = %s", got)
	}
}

func TestCheckFromStdin(t *testing.T) {
	cfgPath := writeConfig(t)
	values := `{"name": "Петро", "email": "petro@example.com", "subject": "general", "message": "Коротко"}`

	out, err := run(t, values, "check", "--file", "-", "--config", cfgPath)
	if !stderrors.Is(err, errRejected) {
		t.Fatalf("err = %v, want errRejected", err)
	}
	if !strings.Contains(out, "message") || strings.Contains(out, "email ") {
		t.Errorf("output = %q, want only the message failure", out)
	}

	// A flag overrides the file.
	_, err = run(t, values, "check", "--file", "-", "--config", cfgPath,
		"--message", "Повідомлення достатньої довжини")
	if err != nil {
		t.Errorf("check with override: %v", err)
	}
}

func TestCheckBadFile(t *testing.T) {
	cfgPath := writeConfig(t)
	_, err := run(t, "{not json", "check", "--file", "-", "--config", cfgPath)
	if err == nil || stderrors.Is(err, errRejected) {
		t.Fatalf("err = %v, want a read error", err)
	}
	if !strings.Contains(err.Error(), "E142") {
		t.Errorf("err = %v, want E142", err)
	}
}

func TestRenderValidate(t *testing.T) {
	cfgPath := writeConfig(t)

	out, err := run(t, "", "render", "--validate", "--config", cfgPath, "--name", "A")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Find(".form-group.error").Length() != 4 {
		t.Errorf("error groups = %d, want 4", doc.Find(".form-group.error").Length())
	}
	if v, _ := doc.Find("input#name").Attr("value"); v != "A" {
		t.Errorf("name value = %q", v)
	}
	if doc.Find("select#subject option").Length() != len(config.DefaultSubjects())+1 {
		t.Error("default subjects not rendered")
	}
}

func TestRenderPrefillsRememberedName(t *testing.T) {
	cfgPath := writeConfig(t)
	if _, err := run(t, "", "pref", "set", "Марія", "--config", cfgPath); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "render", "--config", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(out))
	if v, _ := doc.Find("input#name").Attr("value"); v != "Марія" {
		t.Errorf("name value = %q, want Марія", v)
	}
	if doc.Find(".form-group.error").Length() != 0 {
		t.Error("render without --validate should show no errors")
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "www")

	if _, err := run(t, "", "init", dir, "--name", "Традиції"); err != nil {
		t.Fatalf("init: %v", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "Традиції" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultStaticDir)); err != nil {
		t.Errorf("static dir not created: %v", err)
	}

	if _, err := run(t, "", "init", dir); err == nil {
		t.Error("second init without --force should fail")
	}
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "", "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q", out)
	}
}
