package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/poznote/poznote-cli/internal/config"
	"github.com/poznote/poznote-cli/internal/poznote"
)

var (
	greenColored = color.New(color.FgGreen).SprintFunc()
	redColored   = color.New(color.FgRed).SprintFunc()
)

// run is the whole invocation: resolve config, gate advanced actions,
// acquire input, issue the request and apply side effects. It returns the
// first terminal error; the caller maps it to an exit code.
func (a *App) run(opts *options) error {
	logger := a.newLogger(opts.debug)

	cfg, err := config.Load(a.Fs, a.ConfigPath)
	if err != nil {
		return err
	}

	action := selectAction(opts)
	// Gate before any input or network work so a disabled-but-requested
	// advanced action never reaches the server.
	if action.Kind.Advanced() && !cfg.AdvancedFeatures {
		return &config.Error{
			Reason:  config.AdvancedFeaturesDisabled,
			Message: fmt.Sprintf("advanced features are disabled in %s", a.ConfigPath),
		}
	}

	client := poznote.NewClient(a.HTTPClient, cfg, logger)
	client.Debug = opts.debug
	client.DebugOut = a.Stdout

	ctx := context.Background()
	switch action.Kind {
	case poznote.ActionListLast, poznote.ActionSearch:
		return a.showFirst(ctx, client, cfg, action)
	case poznote.ActionDelete:
		if err := client.Delete(ctx, action.ID); err != nil {
			return err
		}
		fmt.Fprintln(a.Stdout, greenColored(fmt.Sprintf("Success: Note %s deleted.", action.ID)))
		return nil
	case poznote.ActionUpdate:
		body, err := a.acquireBody(action, nil)
		if err != nil {
			return err
		}
		if body.Content == "" {
			return nil
		}
		if err := client.Update(ctx, action.ID, body.Content); err != nil {
			return err
		}
		fmt.Fprintln(a.Stdout, greenColored(fmt.Sprintf("Success: Note %s updated.", action.ID)))
		return nil
	}
	return a.post(ctx, client, cfg, action, opts)
}

// post handles create, clipboard post and burn: one create request, then
// URL sharing and the optional burn chain.
func (a *App) post(ctx context.Context, client *poznote.Client, cfg config.Config, action poznote.Action, opts *options) error {
	body, err := a.acquireBody(action, parseTags(opts.tags))
	if err != nil {
		return err
	}
	if body.Content == "" {
		// Nothing piped or an empty clipboard: don't create empty notes.
		return nil
	}

	heading := fmt.Sprintf("cli-%d", a.Now().Unix())
	id, err := client.Create(ctx, body, heading)
	if err != nil {
		return err
	}

	noteURL := client.NoteURL(id)
	fmt.Fprintf(a.Stdout, "%s %s\n", greenColored("Success:"), noteURL)
	a.copyURL(noteURL)

	if opts.showDelete && id != "" {
		fmt.Fprintf(a.Stdout, "To delete this note run: poznote-cli -D %s\n", id)
	}
	if opts.showUpdate && id != "" {
		fmt.Fprintf(a.Stdout, "To update this note run: [command] | poznote-cli -U %s\n", id)
	}

	if action.Kind == poznote.ActionBurn && id != "" {
		return a.burn(ctx, client, cfg.Workspace, id)
	}
	return nil
}

// burn blocks for a keypress and then deletes the note that was just
// created and shared. The URL has already been printed and copied; a
// failed delete is a partial failure and drives the exit code.
func (a *App) burn(ctx context.Context, client *poznote.Client, workspace, id string) error {
	fmt.Fprintf(a.Stdout, "\n%s Note will be deleted from %s when you proceed.\n",
		redColored("🔥 BURN MODE:"), workspace)
	fmt.Fprint(a.Stdout, "Press [Enter] to delete...")
	if err := a.WaitKey(); err != nil {
		return fmt.Errorf("waiting for keypress (note %s was not deleted): %w", id, err)
	}
	fmt.Fprintln(a.Stdout)
	if err := client.Delete(ctx, id); err != nil {
		return fmt.Errorf("note %s was created and shared but not deleted: %w", id, err)
	}
	fmt.Fprintln(a.Stdout, greenColored(fmt.Sprintf("Success: Note %s deleted.", id)))
	return nil
}

// showFirst renders the single note yielded by a listing or search and
// shares its URL.
func (a *App) showFirst(ctx context.Context, client *poznote.Client, cfg config.Config, action poznote.Action) error {
	var (
		id   string
		note poznote.NoteDetail
		err  error
	)
	if action.Kind == poznote.ActionSearch {
		id, note, err = client.SearchFirst(ctx, action.Query)
	} else {
		id, note, err = client.LastNote(ctx)
	}
	if errors.Is(err, poznote.ErrNoNotes) {
		if action.Kind == poznote.ActionSearch {
			fmt.Fprintf(a.Stdout, "No notes found matching %q in workspace: %s\n", action.Query, cfg.Workspace)
		} else {
			fmt.Fprintf(a.Stdout, "No notes found in workspace: %s\n", cfg.Workspace)
		}
		return nil
	}
	if err != nil {
		return err
	}

	if action.Kind == poznote.ActionSearch {
		fmt.Fprintf(a.Stdout, "First match for %q in %s [ID: %s]\n", action.Query, cfg.Workspace, id)
	} else {
		fmt.Fprintf(a.Stdout, "--- Latest Note in %s [ID: %s] ---\n", cfg.Workspace, id)
	}
	heading := note.Heading
	if heading == "" {
		heading = "No Title"
	}
	fmt.Fprintln(a.Stdout, heading)
	fmt.Fprintln(a.Stdout, note.Content)
	fmt.Fprintln(a.Stdout, strings.Repeat("-", 40))

	noteURL := client.NoteURL(id)
	fmt.Fprintf(a.Stdout, "URL: %s\n", noteURL)
	a.copyURL(noteURL)
	return nil
}

// copyURL writes the shareable URL to the clipboard. The primary request
// already succeeded, so a clipboard failure is only a warning.
func (a *App) copyURL(noteURL string) {
	if err := a.Clipboard.Write(noteURL); err != nil {
		fmt.Fprintf(a.Stderr, "Warning: could not copy URL to clipboard: %v\n", err)
	}
}
