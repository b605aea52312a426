package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-bdfrgen/pkg/coerce"
	"github.com/goliatone/go-bdfrgen/pkg/fieldmeta"
	"github.com/goliatone/go-bdfrgen/pkg/schema"
)

func newFieldsCmd(a *app) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the configuration fields and their flags",
		Args:  cobra.NoArgs,
		Example: `  bdfrg fields
  bdfrg fields --yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if asYAML {
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(a.catalog.Schema)
			}
			return writeFields(out, a.catalog.Schema, a.cfg.WrapWidth)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "dump field descriptors as YAML")
	return cmd
}

func writeFields(w io.Writer, s *schema.Schema, width int) error {
	return s.Walk(func(path string, field schema.Field) error {
		if field.Kind == schema.KindNested {
			_, err := fmt.Fprintf(w, "\n[%s]\n", path)
			return err
		}
		flag := field.Flag.Name
		if field.Flag.Repeat {
			flag += " (repeat)"
		}
		line := fmt.Sprintf("%-40s %-12s %s", path, field.Kind, flag)
		if def, err := coerce.Format(field, field.Default); err == nil && def != "" {
			line += fmt.Sprintf("  default=%q", def)
		}
		if field.Kind == schema.KindEnum {
			line += "  [" + strings.Join(field.MemberNames(), "|") + "]"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if field.Metadata.Tooltip == "" {
			return nil
		}
		for _, tip := range strings.Split(fieldmeta.Wrap(field.Metadata.Tooltip, width), "\n") {
			if _, err := fmt.Fprintf(w, "    %s\n", tip); err != nil {
				return err
			}
		}
		return nil
	})
}
