package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-bdfrgen/pkg/cmdline"
	"github.com/goliatone/go-bdfrgen/pkg/profile"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import COMMAND",
		Short: "Turn an existing bdfr command line into a profile",
		Args:  cobra.MinimumNArgs(1),
		Long: `Parse an existing bdfr command line and store its non-default values as a
profile. Without --profile the profile is printed as TOML instead.

Everything before the first recognised flag (for example "python3 -m bdfr
download ./out") is ignored.`,
		Example: `  bdfrg import -p nightly "python3 -m bdfr download --subreddit pics --limit 10 -vv"
  bdfrg import -- --subreddit pics --sort top --time week`,
		RunE: func(cmd *cobra.Command, args []string) error {
			line := strings.Join(args, " ")
			if len(args) > 1 {
				line = cmdline.Quote(args)
			}
			t, err := cmdline.ParseString(a.catalog.Schema, line)
			if err != nil {
				return err
			}

			// the imported tree is the starting point, so the profile flag
			// names the destination rather than a source
			name := a.profileName
			a.profileName = ""
			sess, err := a.newSession(t)
			if err != nil {
				return err
			}
			defer sess.Close()

			if name == "" {
				p, err := sess.Profile("")
				if err != nil {
					return err
				}
				return profile.Encode(cmd.OutOrStdout(), p)
			}
			path, err := a.saveProfile(sess, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n%s\n", path, sess.Preview())
			return nil
		},
	}
	return cmd
}
