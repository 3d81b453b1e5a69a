package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradition-dev/site/pkg/pref"
)

func prefCmd(configPath *string) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "pref",
		Short: "Inspect the remembered visitor name",
		Long: `Read or change the name remembered from the last accepted submission.

The name is kept in the preference backend configured under "pref"
(file, memory or s3).

Examples:
  site pref get
  site pref set "Оксана"
  site pref clear`,
	}

	cmd.PersistentFlags().StringVar(&key, "key", "", "Preference key (default from site.json)")

	open := func() (*pref.Pref[string], error) {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		store, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		if key == "" {
			key = cfg.Pref.NameKey
		}
		return pref.New(key, "", pref.WithStore(store)), nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the remembered name",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := open()
				if err != nil {
					return err
				}
				name, err := p.Load(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <name>",
			Short: "Remember a name",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := open()
				if err != nil {
					return err
				}
				if err := p.Set(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", p.Key(), args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget the remembered name",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := open()
				if err != nil {
					return err
				}
				return p.Reset(cmd.Context())
			},
		},
	)

	return cmd
}
