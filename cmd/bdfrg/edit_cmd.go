package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-bdfrgen/pkg/prompt"
)

var errNotTerminal = errors.New("edit needs an interactive terminal")

func newEditCmd(a *app) *cobra.Command {
	var (
		sections bool
		noURLs   bool
	)
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a configuration interactively",
		Args:  cobra.NoArgs,
		Long: `Walk every field with terminal prompts, then collect Reddit URLs, then print
the resulting command line. With --profile the result is saved back to the
profile.`,
		Example: `  bdfrg edit
  bdfrg edit -p nightly --sections`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errNotTerminal
			}
			sess, err := a.newSession(nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			editor, err := prompt.NewEditor(sess,
				prompt.WithLogger(a.logger),
				prompt.WithSectionConfirm(sections),
				prompt.WithURLLoop(!noURLs),
			)
			if err != nil {
				return err
			}
			if err := editor.Run(cmd.Context()); err != nil {
				if errors.Is(err, prompt.ErrAborted) {
					fmt.Fprintln(cmd.ErrOrStderr(), "aborted, nothing saved")
					return nil
				}
				return err
			}
			if a.profileName == "" {
				return nil
			}
			path, err := a.saveProfile(sess, a.profileName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&sections, "sections", false, "ask before each section of fields")
	cmd.Flags().BoolVar(&noURLs, "no-urls", false, "skip the URL prompt loop")
	return cmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
