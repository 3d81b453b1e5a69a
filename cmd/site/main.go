package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tradition-dev/site/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┬┌┬┐┌─┐
  ╚═╗│ │ ├┤
  ╚═╝┴ ┴ └─┘
`

// errRejected reports a contact form that failed validation. The failures
// have already been printed.
var errRejected = stderrors.New("contact form rejected")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !stderrors.Is(err, errRejected) {
			errors.Print(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "site",
		Short: "Tools for the Ukrainian traditions site",
		Long: `site checks, renders and previews the contact page of the
Ukrainian traditions site.

The contact form is validated entirely on the page. These commands run
the same rules locally:

  • check a set of form values the way a submit would
  • render the contact page, optionally after a submit pass
  • preview the static site with the contact page
  • inspect the remembered visitor name`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: site.json or site.yaml in the project root)")

	rootCmd.AddCommand(
		initCmd(),
		checkCmd(&configPath),
		renderCmd(&configPath),
		previewCmd(&configPath),
		prefCmd(&configPath),
		versionCmd(),
	)

	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
