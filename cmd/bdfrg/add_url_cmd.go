package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddURLCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "add-url URL...",
		Short: "Add Reddit URLs to a profile",
		Args:  cobra.MinimumNArgs(1),
		Long: `Classify each Reddit URL and append its identifier to the matching field of
the selected profile: subreddit, multireddit, user or link.

URLs that are not Reddit URLs, or point at nothing the downloader accepts, are
reported and skipped.`,
		Example: `  bdfrg add-url -p nightly https://www.reddit.com/r/golang/
  bdfrg add-url -p nightly https://reddit.com/user/spez/m/favs https://www.reddit.com/r/pics/comments/abc123/title/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.profileName == "" && !dryRun {
				return errNoProfile
			}
			sess, err := a.newSession(nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			var failed int
			for _, raw := range args {
				ref, err := sess.AddURL(raw)
				if err != nil {
					failed++
					a.logger.Warn("skipped url", "url", raw, "error", err)
					continue
				}
				fmt.Fprintf(out, "%-12s %s\n", ref.Category, ref.Identifier)
			}
			fmt.Fprintln(out, sess.Preview())

			if !dryRun {
				if _, err := a.saveProfile(sess, a.profileName); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d urls skipped", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the result without saving the profile")
	return cmd
}
