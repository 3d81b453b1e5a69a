package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/tradition-dev/site/internal/errors"
	"github.com/tradition-dev/site/pkg/contact"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "site.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "site.yaml"

	// DefaultPort is the default preview server port.
	DefaultPort = 3000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultStaticDir is the default directory of the static site.
	DefaultStaticDir = "public"

	// DefaultPrefPath is the default file of the file preference backend.
	DefaultPrefPath = ".site/prefs.json"

	// DefaultNameKey is the preference key of the remembered name.
	DefaultNameKey = "contactName"
)

// Preference backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendS3     = "s3"
)

// Config represents the complete site configuration.
type Config struct {
	// Name is the site name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Contact configures the contact form rules.
	Contact ContactConfig `json:"contact" yaml:"contact"`

	// Pref configures where preferences are stored.
	Pref PrefConfig `json:"pref" yaml:"pref"`

	// Preview configures the local preview server.
	Preview PreviewConfig `json:"preview" yaml:"preview"`

	// Metrics configures Prometheus metrics.
	Metrics MetricsConfig `json:"metrics" yaml:"metrics"`

	// Log configures logging.
	Log LogConfig `json:"log" yaml:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ContactConfig contains contact form settings.
type ContactConfig struct {
	// NameMinLength is the minimum trimmed length of the name.
	NameMinLength int `json:"nameMinLength,omitempty" yaml:"nameMinLength,omitempty" validate:"min=1,max=100"`

	// MessageMinLength is the minimum trimmed length of the message.
	MessageMinLength int `json:"messageMinLength,omitempty" yaml:"messageMinLength,omitempty" validate:"min=1,max=5000"`

	// RememberName pre-fills the name from the last accepted submission.
	RememberName *bool `json:"rememberName,omitempty" yaml:"rememberName,omitempty"`

	// Subjects are the options of the subject select.
	Subjects []Subject `json:"subjects,omitempty" yaml:"subjects,omitempty" validate:"dive"`
}

// Subject is one option of the subject select.
type Subject struct {
	Value string `json:"value" yaml:"value" validate:"required"`
	Label string `json:"label" yaml:"label" validate:"required"`
}

// PrefConfig contains preference store settings.
type PrefConfig struct {
	// Backend is one of memory, file or s3.
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"oneof=memory file s3"`

	// Path is the JSON file of the file backend.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// NameKey is the key of the remembered name.
	NameKey string `json:"nameKey,omitempty" yaml:"nameKey,omitempty" validate:"required"`

	// S3 configures the s3 backend.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// S3Config contains S3 preference store settings. Credentials are read
// from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.
type S3Config struct {
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty" validate:"required_if=Enabled true"`
	Prefix    string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"omitempty,url"`
	PathStyle bool   `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`

	// Enabled is derived from Pref.Backend and not read from the file.
	Enabled bool `json:"-" yaml:"-"`
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	Host      string `json:"host,omitempty" yaml:"host,omitempty"`
	Port      int    `json:"port,omitempty" yaml:"port,omitempty" validate:"min=0,max=65535"`
	StaticDir string `json:"staticDir,omitempty" yaml:"staticDir,omitempty"`
}

// MetricsConfig contains metrics settings.
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty" validate:"oneof=debug info warn error"`
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"oneof=text json"`
}

// validate checks struct tags; it is safe for concurrent use.
var validate = validator.New()

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// DefaultSubjects are the subject options of the original site.
func DefaultSubjects() []Subject {
	return []Subject{
		{Value: "general", Label: "Загальне питання"},
		{Value: "recipe", Label: "Питання про рецепт"},
		{Value: "collaboration", Label: "Співпраця"},
		{Value: "feedback", Label: "Відгук"},
	}
}

// Load reads configuration from the specified directory. site.json is
// preferred over site.yaml when both exist.
func Load(dir string) (*Config, error) {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E141").
		WithDetail("No site.json or site.yaml found in " + dir).
		WithSuggestion("Run 'site init' or create site.json manually")
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, errors.New("E122").WithSuggestion("Rename the file to site.json or site.yaml")
	}
	if err != nil {
		return nil, errors.New("E120").
			WithDetail(fmt.Sprintf("Failed to parse %s: %v", filepath.Base(path), err)).
			WithSuggestion("Check the file syntax").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as JSON or YAML
// depending on the extension.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	default:
		return errors.New("E122")
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	// Contact
	if c.Contact.NameMinLength == 0 {
		c.Contact.NameMinLength = contact.DefaultNameMinLength
	}
	if c.Contact.MessageMinLength == 0 {
		c.Contact.MessageMinLength = contact.DefaultMessageMinLength
	}
	if c.Contact.RememberName == nil {
		remember := true
		c.Contact.RememberName = &remember
	}
	if len(c.Contact.Subjects) == 0 {
		c.Contact.Subjects = DefaultSubjects()
	}

	// Pref
	if c.Pref.Backend == "" {
		c.Pref.Backend = BackendFile
	}
	if c.Pref.Path == "" {
		c.Pref.Path = DefaultPrefPath
	}
	if c.Pref.NameKey == "" {
		c.Pref.NameKey = DefaultNameKey
	}
	c.Pref.S3.Enabled = c.Pref.Backend == BackendS3

	// Preview
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Preview.StaticDir == "" {
		c.Preview.StaticDir = DefaultStaticDir
	}

	// Metrics
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "site"
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		detail := err.Error()
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			detail = fmt.Sprintf("%s failed the %q check", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag())
		}
		return errors.New("E121").WithDetail(detail).Wrap(err)
	}
	return nil
}

// RuleOptions returns the contact rule parameters.
func (c *Config) RuleOptions() contact.RuleOptions {
	return contact.RuleOptions{
		NameMinLength:    c.Contact.NameMinLength,
		MessageMinLength: c.Contact.MessageMinLength,
	}
}

// RemembersName reports whether the name pre-fill is enabled.
func (c *Config) RemembersName() bool {
	return c.Contact.RememberName == nil || *c.Contact.RememberName
}

// PreviewAddress returns the address string for the preview server.
func (c *Config) PreviewAddress() string {
	return fmt.Sprintf("%s:%d", c.Preview.Host, c.Preview.Port)
}

// StaticPath returns the absolute path to the static site directory.
func (c *Config) StaticPath() string {
	return c.resolve(c.Preview.StaticDir)
}

// PrefPath returns the absolute path to the file preference store.
func (c *Config) PrefPath() string {
	return c.resolve(c.Pref.Path)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing the config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No site.json or site.yaml found in " + startDir + " or any parent directory").
				WithSuggestion("Run 'site init' to create one")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
