package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-bdfrgen/pkg/bdfr"
)

func newShowCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the full configuration tree",
		Args:  cobra.NoArgs,
		Example: `  bdfrg show -p nightly
  bdfrg show --format json
  bdfrg show --format go`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.newSession(nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(sess.Tree().Map())
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sess.Tree().Map())
			case "go":
				var typed bdfr.InputConfiguration
				if err := sess.Tree().Decode(&typed); err != nil {
					return err
				}
				_, err := fmt.Fprintf(out, "%+v\n", typed)
				return err
			default:
				return fmt.Errorf("unknown format %q: use yaml, json or go", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "yaml", "output format: yaml, json or go")
	return cmd
}
