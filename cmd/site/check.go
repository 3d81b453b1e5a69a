package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tradition-dev/site/internal/errors"
	"github.com/tradition-dev/site/pkg/contact"
)

// formFlags collects field values from command-line flags or a JSON file.
type formFlags struct {
	values contact.Values
	file   string
}

func (f *formFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.values.Name, "name", "", "Name field")
	flags.StringVar(&f.values.Email, "email", "", "Email field")
	flags.StringVar(&f.values.Phone, "phone", "", "Phone field")
	flags.StringVar(&f.values.Subject, "subject", "", "Subject value")
	flags.StringVar(&f.values.Message, "message", "", "Message field")
	flags.StringVarP(&f.file, "file", "f", "", "Read values from a JSON file ('-' for stdin)")
}

// load returns the values to enter. Values from --file are overridden by
// any field flag that was set explicitly.
func (f *formFlags) load(cmd *cobra.Command) (contact.Values, error) {
	if f.file == "" {
		return f.values, nil
	}

	var r io.Reader
	if f.file == "-" {
		r = cmd.InOrStdin()
	} else {
		file, err := os.Open(f.file)
		if err != nil {
			return contact.Values{}, errors.New("E142").Wrap(err)
		}
		defer file.Close()
		r = file
	}

	var values contact.Values
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		return contact.Values{}, errors.New("E142").
			WithDetail(fmt.Sprintf("invalid JSON in %s: %v", f.file, err)).
			WithSuggestion(`Use an object like {"name": "...", "email": "...", "subject": "...", "message": "..."}`).
			Wrap(err)
	}

	for _, id := range contact.Fields {
		if cmd.Flags().Changed(id.String()) {
			values.Set(id, f.values.Get(id))
		}
	}
	return values, nil
}

// enter types every value into the handler as a user would.
func enter(h *contact.Handler, values contact.Values) {
	for _, id := range contact.Fields {
		h.Input(id, values.Get(id))
	}
}

type checkReport struct {
	Valid    bool            `json:"valid"`
	Failures []checkFailure  `json:"failures,omitempty"`
	Accepted *contact.Values `json:"accepted,omitempty"`
}

type checkFailure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func checkCmd(configPath *string) *cobra.Command {
	var (
		form   formFlags
		asJSON bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate contact form values",
		Long: `Run a submit pass over contact form values.

Every field is checked. Failures are printed in field order and the
command exits with status 1. Accepted values are printed and the name is
remembered for the next visit, unless --dry-run is set.

Examples:
  site check --name "Оксана" --email oksana@example.com --subject recipe \
    --message "Дякую за рецепт борщу!"
  site check --file values.json
  echo '{"name":"A"}' | site check --file - --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, *configPath, &form, asJSON, dryRun)
		},
	}

	form.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not remember the name")

	return cmd
}

func runCheck(cmd *cobra.Command, configPath string, form *formFlags, asJSON, dryRun bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	values, err := form.load(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log, cmd.ErrOrStderr())
	if dryRun {
		cfg.Contact.RememberName = new(bool)
	}
	prefs, err := openStore(cfg)
	if err != nil {
		return err
	}

	h := newHandler(cfg, contact.NopView{}, namePref(cfg, prefs), logger)
	enter(h, values)
	accepted := values.Trimmed()
	res := h.Submit(cmd.Context())

	out := cmd.OutOrStdout()
	report := checkReport{Valid: res.Valid()}
	for _, f := range res.Failures() {
		report.Failures = append(report.Failures, checkFailure{Field: f.Field.String(), Message: f.Message})
	}
	if res.Valid() {
		report.Accepted = &accepted
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else if res.Valid() {
		fmt.Fprintf(out, "\033[32m✓\033[0m accepted\n")
		for _, id := range contact.Fields {
			fmt.Fprintf(out, "  %-8s %s\n", id, accepted.Get(id))
		}
	} else {
		for _, f := range report.Failures {
			fmt.Fprintf(out, "\033[31m✗\033[0m %-8s %s\n", f.Field, f.Message)
		}
	}

	if !res.Valid() {
		return errRejected
	}
	return nil
}
