// Package cli wires flags, input acquisition, the API client and side
// effects into the single-shot poznote-cli control flow.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/poznote/poznote-cli/internal/poznote"
)

type options struct {
	clipboard  bool
	tags       string
	burn       bool
	debug      bool
	showDelete bool
	showUpdate bool
	last       bool
	search     string
	update     string
	delete     string
}

// NewCommand builds the root command over the given collaborators.
func NewCommand(app *App) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "poznote-cli",
		Short: "Post, read, update or delete Poznote notes from the terminal",
		Long: `Post piped input (or the clipboard) to a Poznote instance and share the
resulting note URL.

  ls -la | poznote-cli
  poznote-cli -c
  echo "secret" | poznote-cli -b

Requires ~/.poznote.conf with POZNOTE_URL, POZNOTE_USER and POZNOTE_PASS.
Advanced actions (-L, -s, -U, -D) additionally require
POZNOTE_ADVANCED_FEATURES="true".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.run(opts)
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&opts.clipboard, "clipboard", "c", false, "post content from the clipboard")
	f.StringVarP(&opts.tags, "tags", "t", "", "comma-separated tags for the new note")
	f.BoolVarP(&opts.burn, "burn", "b", false, "interactively delete the note after posting")
	f.BoolVar(&opts.debug, "debug", false, "print the equivalent curl command before sending")
	f.BoolVarP(&opts.showDelete, "show-delete", "d", false, "print the command to delete the new note")
	f.BoolVarP(&opts.showUpdate, "show-update", "u", false, "print the command to update the new note")
	f.BoolVarP(&opts.last, "last", "L", false, "show the most recent note (advanced)")
	f.StringVarP(&opts.search, "search", "s", "", "search notes by keyword (advanced)")
	f.StringVarP(&opts.update, "update", "U", "", "update a note by id from piped input (advanced)")
	f.StringVarP(&opts.delete, "delete", "D", "", "delete a note by id (advanced)")
	return cmd
}

// Execute runs the CLI against the real system. The caller maps the
// returned error to an exit code with ExitCode.
func Execute(args []string) error {
	app := NewApp()
	cmd := NewCommand(app)
	cmd.SetArgs(args)
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stderr)
	return cmd.Execute()
}

// selectAction resolves the parsed flags to exactly one action. When
// several action flags are set the priority is fixed:
// burn > delete > update > search > last > clipboard post > create.
func selectAction(opts *options) poznote.Action {
	switch {
	case opts.burn:
		return poznote.Action{Kind: poznote.ActionBurn, FromClipboard: opts.clipboard}
	case opts.delete != "":
		return poznote.Action{Kind: poznote.ActionDelete, ID: opts.delete}
	case opts.update != "":
		return poznote.Action{Kind: poznote.ActionUpdate, ID: opts.update}
	case opts.search != "":
		return poznote.Action{Kind: poznote.ActionSearch, Query: opts.search}
	case opts.last:
		return poznote.Action{Kind: poznote.ActionListLast}
	case opts.clipboard:
		return poznote.Action{Kind: poznote.ActionClipboardPost}
	}
	return poznote.Action{Kind: poznote.ActionCreate}
}

// parseTags splits a comma-separated tag list, trimming whitespace and
// dropping empty entries. Order is preserved and duplicates are allowed.
func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
