package main

import (
	"bufio"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tradition-dev/site/internal/errors"
	"github.com/tradition-dev/site/pkg/page"
)

func renderCmd(configPath *string) *cobra.Command {
	var (
		form     formFlags
		validate bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the contact page",
		Long: `Render the contact page as HTML.

Values given with the field flags are typed into the form. With
--validate a submit pass runs first, so the page shows either the field
errors or the success panel. The remembered name is never written.

Examples:
  site render > contact.html
  site render --name A --validate
  site render --file values.json --validate -o contact.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, *configPath, &form, validate, output)
		},
	}

	form.register(cmd)
	cmd.Flags().BoolVar(&validate, "validate", false, "Run a submit pass before rendering")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write HTML to a file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, configPath string, form *formFlags, validate bool, output string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	values, err := form.load(cmd)
	if err != nil {
		return err
	}
	prefs, err := openStore(cfg)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log, cmd.ErrOrStderr())
	surface := page.NewSurface()
	name := namePref(cfg, prefs)
	h := newHandler(cfg, surface, nil, logger)

	if name != nil {
		if remembered, err := name.Load(cmd.Context()); err != nil {
			logger.Warn("remembered name unavailable", "error", err)
		} else if remembered != "" && values.Name == "" {
			values.Name = remembered
		}
	}
	enter(h, values)
	if validate {
		h.Submit(cmd.Context())
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return errors.New("E140").
				WithDetail("cannot write " + output).
				Wrap(err)
		}
		defer f.Close()
		w = f
	}

	bw := bufio.NewWriter(w)
	if err := page.Document(h.Form(), surface, pageOptions(cfg)).Render(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if output != "" {
		success("Wrote %s", output)
	}
	return nil
}
