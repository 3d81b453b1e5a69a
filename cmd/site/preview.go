package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tradition-dev/site/internal/preview"
	"github.com/tradition-dev/site/pkg/contact"
)

func previewCmd(configPath *string) *cobra.Command {
	var (
		port      int
		host      string
		staticDir string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Start the local preview server",
		Long: `Serve the static site and the contact page locally.

Routes:
  /contact   the contact page, with the remembered name filled in
  /metrics   Prometheus metrics
  /healthz   liveness check
  /*         files from the static directory

Examples:
  site preview
  site preview --port=8080
  site preview --static=dist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(*configPath, port, host, staticDir)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from site.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from site.json)")
	cmd.Flags().StringVar(&staticDir, "static", "", "Static site directory (default from site.json)")

	return cmd
}

func runPreview(configPath string, port int, host, staticDir string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Preview.Port = port
	}
	if host != "" {
		cfg.Preview.Host = host
	}
	if staticDir != "" {
		cfg.Preview.StaticDir = staticDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	prefs, err := openStore(cfg)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log, os.Stderr)
	metrics, registry := newMetrics(cfg)

	srv, err := preview.New(preview.Config{
		Address:   cfg.PreviewAddress(),
		StaticDir: cfg.StaticPath(),
		Page:      pageOptions(cfg),
		Rules:     contact.DefaultRules(cfg.RuleOptions()),
		NamePref:  namePref(cfg, prefs),
		Metrics:   metrics,
		Gatherer:  registry,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	printBanner()
	fmt.Println("  preview")
	fmt.Println()
	success("Serving %s", cfg.StaticPath())
	info("Contact page: http://%s/contact", cfg.PreviewAddress())
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		return err
	}
	fmt.Println("\n  Shutting down...")
	return nil
}
