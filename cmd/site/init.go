package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tradition-dev/site/internal/config"
	"github.com/tradition-dev/site/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		name    string
		useYAML bool
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a site config",
		Long: `Write a site config with the default contact form settings.

The config is written to site.json, or site.yaml with --yaml, in the
given directory (default: the current directory). The static directory
is created if it does not exist.

Examples:
  site init
  site init ./www --name "Українські традиції"
  site init --yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, name, useYAML, force)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Site name shown as the page title")
	cmd.Flags().BoolVar(&useYAML, "yaml", false, "Write site.yaml instead of site.json")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")

	return cmd
}

func runInit(dir, name string, useYAML, force bool) error {
	if config.Exists(dir) && !force {
		return errors.New("E140").
			WithDetail("A site config already exists in " + dir).
			WithSuggestion("Use --force to overwrite it")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.New("E140").Wrap(err)
	}

	fileName := config.ConfigFileName
	if useYAML {
		fileName = config.YAMLConfigFileName
	}

	cfg := config.New()
	cfg.Name = name
	path := filepath.Join(dir, fileName)
	if err := cfg.SaveTo(path); err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.StaticPath(), 0755); err != nil {
		warn("Could not create %s: %v", cfg.StaticPath(), err)
	}

	success("Created %s", path)
	fmt.Println()
	info("Next steps:")
	info("  site check --name \"Оксана\" --email oksana@example.com --subject general --message \"...\"")
	info("  site preview")
	fmt.Println()
	return nil
}
