package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tradition-dev/site/internal/config"
	"github.com/tradition-dev/site/internal/errors"
	"github.com/tradition-dev/site/pkg/contact"
	"github.com/tradition-dev/site/pkg/page"
	"github.com/tradition-dev/site/pkg/pref"
)

// loadConfig reads the config named by --config, or the one in the project
// root. Outside a project the defaults are used with the memory backend, so
// nothing is written to the working directory.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.LoadFromWorkingDir()
	if errors.HasCode(err, "E141") {
		cfg = config.New()
		cfg.Pref.Backend = config.BackendMemory
		return cfg, nil
	}
	return cfg, err
}

// newLogger builds the slog logger described by cfg.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openStore opens the preference backend named by cfg.
func openStore(cfg *config.Config) (pref.Store, error) {
	switch cfg.Pref.Backend {
	case config.BackendMemory:
		return pref.NewMemoryStore(), nil

	case config.BackendFile:
		store, err := pref.NewFileStore(cfg.PrefPath())
		if err != nil {
			return nil, errors.New("E160").
				WithSuggestion("Check that " + cfg.PrefPath() + " is writable").
				Wrap(err)
		}
		return store, nil

	case config.BackendS3:
		s3cfg := cfg.Pref.S3
		client := pref.NewS3Client(pref.S3ClientOptions{
			Region:          s3cfg.Region,
			Endpoint:        s3cfg.Endpoint,
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			UsePathStyle:    s3cfg.PathStyle,
		})
		return pref.NewS3Store(client, s3cfg.Bucket, s3cfg.Prefix), nil
	}

	return nil, errors.New("E161").
		WithDetail("pref.backend is " + cfg.Pref.Backend)
}

// namePref returns the remembered-name preference, or nil when the config
// turns the feature off.
func namePref(cfg *config.Config, store pref.Store) *pref.Pref[string] {
	if !cfg.RemembersName() {
		return nil
	}
	return pref.New(cfg.Pref.NameKey, "", pref.WithStore(store))
}

// newMetrics registers the contact metrics on a private registry.
func newMetrics(cfg *config.Config) (*contact.Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	m := contact.NewMetrics(
		contact.WithRegistry(reg),
		contact.WithNamespace(cfg.Metrics.Namespace),
	)
	return m, reg
}

// newHandler wires a contact handler from the config.
func newHandler(cfg *config.Config, view contact.View, name *pref.Pref[string], logger *slog.Logger) *contact.Handler {
	return contact.NewHandler(
		contact.WithRules(contact.DefaultRules(cfg.RuleOptions())),
		contact.WithView(view),
		contact.WithNamePref(name),
		contact.WithLogger(logger),
	)
}

func pageOptions(cfg *config.Config) page.Options {
	subjects := make([]page.Subject, len(cfg.Contact.Subjects))
	for i, s := range cfg.Contact.Subjects {
		subjects[i] = page.Subject{Value: s.Value, Label: s.Label}
	}
	return page.Options{Title: cfg.Name, Subjects: subjects}
}
