package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tradition-dev/site/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Preview.Port != DefaultPort {
		t.Errorf("Preview.Port = %d, want %d", cfg.Preview.Port, DefaultPort)
	}
	if cfg.Preview.Host != DefaultHost {
		t.Errorf("Preview.Host = %q, want %q", cfg.Preview.Host, DefaultHost)
	}
	if cfg.Contact.NameMinLength != 2 {
		t.Errorf("Contact.NameMinLength = %d, want 2", cfg.Contact.NameMinLength)
	}
	if cfg.Contact.MessageMinLength != 10 {
		t.Errorf("Contact.MessageMinLength = %d, want 10", cfg.Contact.MessageMinLength)
	}
	if !cfg.RemembersName() {
		t.Error("RemembersName should default to true")
	}
	if len(cfg.Contact.Subjects) == 0 {
		t.Error("default subjects missing")
	}
	if cfg.Pref.Backend != BackendFile {
		t.Errorf("Pref.Backend = %q, want %q", cfg.Pref.Backend, BackendFile)
	}
	if cfg.Pref.NameKey != DefaultNameKey {
		t.Errorf("Pref.NameKey = %q, want %q", cfg.Pref.NameKey, DefaultNameKey)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := Load(tmpDir); !errors.HasCode(err, "E141") {
		t.Errorf("missing config: got %v, want E141", err)
	}

	configJSON := `{
  "name": "Українська традиція",
  "contact": {
    "nameMinLength": 3,
    "rememberName": false,
    "subjects": [{"value": "recipe", "label": "Рецепт"}]
  },
  "pref": {"backend": "memory"},
  "preview": {"port": 8080, "host": "0.0.0.0", "staticDir": "site"}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Name != "Українська традиція" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Contact.NameMinLength != 3 {
		t.Errorf("NameMinLength = %d, want 3", cfg.Contact.NameMinLength)
	}
	if cfg.Contact.MessageMinLength != 10 {
		t.Errorf("MessageMinLength = %d, want default 10", cfg.Contact.MessageMinLength)
	}
	if cfg.RemembersName() {
		t.Error("RemembersName should be false")
	}
	if len(cfg.Contact.Subjects) != 1 || cfg.Contact.Subjects[0].Value != "recipe" {
		t.Errorf("Subjects = %+v", cfg.Contact.Subjects)
	}
	if cfg.Pref.Backend != BackendMemory {
		t.Errorf("Backend = %q", cfg.Pref.Backend)
	}
	if cfg.PreviewAddress() != "0.0.0.0:8080" {
		t.Errorf("PreviewAddress = %q", cfg.PreviewAddress())
	}
	if cfg.StaticPath() != filepath.Join(tmpDir, "site") {
		t.Errorf("StaticPath = %q", cfg.StaticPath())
	}
	if cfg.PrefPath() != filepath.Join(tmpDir, DefaultPrefPath) {
		t.Errorf("PrefPath = %q", cfg.PrefPath())
	}

	opts := cfg.RuleOptions()
	if opts.NameMinLength != 3 || opts.MessageMinLength != 10 {
		t.Errorf("RuleOptions = %+v", opts)
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configYAML := `contact:
  nameMinLength: 2
  messageMinLength: 12
pref:
  backend: s3
  s3:
    bucket: site-prefs
    prefix: visitors/
    region: eu-central-1
    endpoint: http://localhost:9000
    pathStyle: true
log:
  level: debug
  format: json
`
	if err := os.WriteFile(filepath.Join(tmpDir, YAMLConfigFileName), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Contact.MessageMinLength != 12 {
		t.Errorf("MessageMinLength = %d, want 12", cfg.Contact.MessageMinLength)
	}
	if cfg.Pref.Backend != BackendS3 || !cfg.Pref.S3.Enabled {
		t.Errorf("Pref = %+v", cfg.Pref)
	}
	if cfg.Pref.S3.Bucket != "site-prefs" || !cfg.Pref.S3.PathStyle {
		t.Errorf("S3 = %+v", cfg.Pref.S3)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadPrefersJSON(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`{"name":"json"}`), 0644)
	os.WriteFile(filepath.Join(tmpDir, YAMLConfigFileName), []byte("name: yaml\n"), 0644)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "json" {
		t.Errorf("Name = %q, want json", cfg.Name)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode string
		wantText string
	}{
		{
			name:     "broken json",
			file:     ConfigFileName,
			content:  `{"contact": `,
			wantCode: "E120",
		},
		{
			name:     "broken yaml",
			file:     YAMLConfigFileName,
			content:  "contact: [",
			wantCode: "E120",
		},
		{
			name:     "unknown backend",
			file:     ConfigFileName,
			content:  `{"pref": {"backend": "redis"}}`,
			wantCode: "E121",
			wantText: "Pref.Backend",
		},
		{
			name:     "port out of range",
			file:     ConfigFileName,
			content:  `{"preview": {"port": 70000}}`,
			wantCode: "E121",
			wantText: "Preview.Port",
		},
		{
			name:     "negative name length",
			file:     ConfigFileName,
			content:  `{"contact": {"nameMinLength": -1}}`,
			wantCode: "E121",
			wantText: "Contact.NameMinLength",
		},
		{
			name:     "s3 without bucket",
			file:     ConfigFileName,
			content:  `{"pref": {"backend": "s3"}}`,
			wantCode: "E121",
			wantText: "Bucket",
		},
		{
			name:     "subject without label",
			file:     ConfigFileName,
			content:  `{"contact": {"subjects": [{"value": "x"}]}}`,
			wantCode: "E121",
			wantText: "Label",
		},
		{
			name:     "bad log level",
			file:     ConfigFileName,
			content:  `{"log": {"level": "loud"}}`,
			wantCode: "E121",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			_, err := LoadFile(path)
			if !errors.HasCode(err, tt.wantCode) {
				t.Fatalf("LoadFile error = %v, want %s", err, tt.wantCode)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantText)
			}
		})
	}
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.toml")
	os.WriteFile(path, []byte("name = 'x'"), 0644)

	if _, err := LoadFile(path); !errors.HasCode(err, "E122") {
		t.Errorf("LoadFile error = %v, want E122", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		t.Run(name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := filepath.Join(tmpDir, name)

			cfg := New()
			cfg.Name = "round trip"
			cfg.Contact.NameMinLength = 4
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo: %v", err)
			}
			if cfg.Path() != path || cfg.Dir() != tmpDir {
				t.Errorf("Path/Dir = %q/%q", cfg.Path(), cfg.Dir())
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if loaded.Name != "round trip" || loaded.Contact.NameMinLength != 4 {
				t.Errorf("loaded = %+v", loaded)
			}

			loaded.Preview.Port = 4000
			if err := loaded.Save(); err != nil {
				t.Fatalf("Save: %v", err)
			}
			again, _ := LoadFile(path)
			if again.Preview.Port != 4000 {
				t.Errorf("Preview.Port = %d, want 4000", again.Preview.Port)
			}
		})
	}
}

func TestSaveWithoutPath(t *testing.T) {
	if err := New().Save(); err == nil {
		t.Error("Save without a path should fail")
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "public", "recipes")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindProjectRoot(nested); !errors.HasCode(err, "E141") {
		t.Errorf("FindProjectRoot without config: got %v, want E141", err)
	}

	if err := New().SaveTo(filepath.Join(tmpDir, ConfigFileName)); err != nil {
		t.Fatal(err)
	}

	root, err := FindProjectRoot(nested)
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	want, _ := filepath.EvalSymlinks(tmpDir)
	got, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Errorf("root = %q, want %q", got, want)
	}
	if !Exists(tmpDir) {
		t.Error("Exists should be true")
	}
}

func TestAbsolutePaths(t *testing.T) {
	cfg := New()
	cfg.Preview.StaticDir = "/srv/site"
	cfg.Pref.Path = "/var/lib/site/prefs.json"

	if cfg.StaticPath() != "/srv/site" {
		t.Errorf("StaticPath = %q", cfg.StaticPath())
	}
	if cfg.PrefPath() != "/var/lib/site/prefs.json" {
		t.Errorf("PrefPath = %q", cfg.PrefPath())
	}
}
