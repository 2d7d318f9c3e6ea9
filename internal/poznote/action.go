package poznote

// ActionKind enumerates everything a single invocation can do. Exactly one
// kind is active per run.
type ActionKind int

const (
	// ActionCreate posts piped stdin as a new note.
	ActionCreate ActionKind = iota
	// ActionClipboardPost posts the clipboard contents as a new note.
	ActionClipboardPost
	// ActionListLast shows the most recent note in the workspace.
	ActionListLast
	// ActionSearch shows the first note matching a query.
	ActionSearch
	// ActionUpdate replaces the content of an existing note.
	ActionUpdate
	// ActionDelete removes an existing note.
	ActionDelete
	// ActionBurn posts a note, then deletes it after a keypress.
	ActionBurn
)

func (k ActionKind) String() string {
	switch k {
	case ActionCreate:
		return "create"
	case ActionClipboardPost:
		return "clipboard-post"
	case ActionListLast:
		return "last"
	case ActionSearch:
		return "search"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionBurn:
		return "burn"
	}
	return "unknown"
}

// NeedsBody reports whether the action consumes note content.
func (k ActionKind) NeedsBody() bool {
	switch k {
	case ActionCreate, ActionClipboardPost, ActionUpdate, ActionBurn:
		return true
	}
	return false
}

// Advanced reports whether the action is gated behind
// POZNOTE_ADVANCED_FEATURES.
func (k ActionKind) Advanced() bool {
	switch k {
	case ActionListLast, ActionSearch, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Action is the single resolved command for this invocation.
type Action struct {
	Kind  ActionKind
	Query string // search query, ActionSearch only
	ID    string // target note id, ActionUpdate and ActionDelete only
	// FromClipboard marks burn mode sourcing its body from the clipboard
	// instead of stdin.
	FromClipboard bool
}

// NoteBody is the captured note content plus optional tags, immutable once
// acquired.
type NoteBody struct {
	Content string
	Tags    []string
}
