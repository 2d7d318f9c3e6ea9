package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/poznote/poznote-cli/internal/poznote"
)

// acquireBody captures the note content for a body-bearing action, from
// the clipboard when the action asks for it and from piped stdin
// otherwise. An interactive stdin without the clipboard flag is an error;
// no network call has happened yet at that point.
func (a *App) acquireBody(action poznote.Action, tags []string) (poznote.NoteBody, error) {
	if !action.Kind.NeedsBody() {
		return poznote.NoteBody{}, nil
	}
	fromClipboard := action.Kind == poznote.ActionClipboardPost || action.FromClipboard
	if fromClipboard {
		text, err := a.Clipboard.Read()
		if err != nil {
			return poznote.NoteBody{}, err
		}
		return poznote.NoteBody{Content: text, Tags: tags}, nil
	}

	if a.StdinIsTerminal() {
		if action.Kind == poznote.ActionUpdate {
			return poznote.NoteBody{}, fmt.Errorf("%w for update", ErrNoPipedInput)
		}
		return poznote.NoteBody{}, fmt.Errorf("%w; use -c to post from clipboard", ErrNoPipedInput)
	}

	data, err := io.ReadAll(a.Stdin)
	if err != nil {
		return poznote.NoteBody{}, fmt.Errorf("reading stdin: %w", err)
	}
	return poznote.NoteBody{Content: strings.TrimSpace(string(data)), Tags: tags}, nil
}
