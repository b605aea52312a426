package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-bdfrgen/pkg/session"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		sets    []string
		urls    []string
		raw     bool
		copyOut bool
		save    bool
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the bdfr command line for a configuration",
		Args:  cobra.NoArgs,
		Long: `Print the bdfr command line for the selected profile, with optional edits.

Each --set takes a dotted field path and the text a form field would hold.
List fields take one entry per line; use \n to separate entries.`,
		Example: `  bdfrg preview --set subreddit='pics\nEarthPorn' --set limit=10
  bdfrg preview -p nightly --url https://www.reddit.com/r/golang/ --copy
  bdfrg preview --set verbose=2 --raw`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.newSession(nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := applySets(sess, sets); err != nil {
				return err
			}
			for _, u := range urls {
				if _, err := sess.AddURL(u); err != nil {
					return err
				}
			}

			text := sess.Preview()
			if raw {
				text = sess.Arguments()
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)

			if copyOut {
				if err := clipboard.WriteAll(text); err != nil {
					a.logger.Warn("failed to copy to clipboard", "error", err)
				}
			}
			if save {
				path, err := a.saveProfile(sess, a.profileName)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "set a field: path=value (repeatable)")
	cmd.Flags().StringArrayVar(&urls, "url", nil, "add a Reddit URL to the matching field (repeatable)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the space-joined arguments without prefix or quoting")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "copy the result to the clipboard")
	cmd.Flags().BoolVar(&save, "save", false, "save the result back to the selected profile")
	return cmd
}

// applySets writes each path=value assignment through its binding.
func applySets(sess *session.Session, sets []string) error {
	for _, assignment := range sets {
		path, value, ok := strings.Cut(assignment, "=")
		if !ok || strings.TrimSpace(path) == "" {
			return fmt.Errorf("invalid --set %q: expected path=value", assignment)
		}
		value = strings.ReplaceAll(value, `\n`, "\n")
		if err := sess.Write(strings.TrimSpace(path), value); err != nil {
			return err
		}
	}
	return nil
}
