package poznote

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/poznote/poznote-cli/internal/config"
)

const (
	notesEndpoint = "/api/v1/notes"
	noteType      = "markdown"
)

// Request is a fully specified Poznote API call: everything the transport
// needs, nothing resolved lazily. Building one performs no I/O.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte // JSON payload, nil when the call carries none
}

// URL joins the request onto the instance base URL, query included.
func (r Request) URL(baseURL string) string {
	u := baseURL + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u
}

// Curl renders the request as an equivalent curl invocation, with the
// password elided. This is exactly what debug mode prints, derived from
// the same Request that gets sent.
func (r Request) Curl(cfg config.Config) string {
	parts := []string{
		fmt.Sprintf("curl -X %s '%s'", r.Method, r.URL(cfg.BaseURL)),
		fmt.Sprintf("-u '%s:********'", cfg.User),
	}
	headers := requestHeaders(cfg)
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("-H '%s: %s'", name, headers[name]))
	}
	if r.Body != nil {
		parts = append(parts, fmt.Sprintf("-d '%s'", r.Body))
	}
	return strings.Join(parts, " ")
}

// requestHeaders returns the headers sent with every API call.
func requestHeaders(cfg config.Config) map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"X-User-ID":    cfg.UserID,
	}
}

type notePayload struct {
	Heading   string   `json:"heading"`
	Content   string   `json:"content"`
	Workspace string   `json:"workspace"`
	Type      string   `json:"type"`
	Tags      []string `json:"tags,omitempty"`
}

type updatePayload struct {
	Content string `json:"content"`
}

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		// Payload types contain only strings and slices; this cannot fail.
		panic(err)
	}
	return data
}

// NewCreateRequest builds the note-creation call shared by create,
// clipboard-post and burn. The heading carries a cli- prefixed unix
// timestamp supplied by the caller so the builder stays deterministic.
func NewCreateRequest(cfg config.Config, body NoteBody, heading string) Request {
	return Request{
		Method: "POST",
		Path:   notesEndpoint,
		Body: mustMarshal(notePayload{
			Heading:   heading,
			Content:   body.Content,
			Workspace: cfg.Workspace,
			Type:      noteType,
			Tags:      body.Tags,
		}),
	}
}

// NewListRequest builds the workspace listing call. The server returns
// notes most-recent-first; the client consumes only the first item.
func NewListRequest(cfg config.Config) Request {
	return Request{
		Method: "GET",
		Path:   notesEndpoint,
		Query:  url.Values{"workspace": {cfg.Workspace}},
	}
}

// NewSearchRequest builds the server-side search call.
func NewSearchRequest(cfg config.Config, query string) Request {
	return Request{
		Method: "GET",
		Path:   notesEndpoint,
		Query: url.Values{
			"workspace": {cfg.Workspace},
			"search":    {query},
		},
	}
}

// NewDetailRequest builds the single-note deep fetch.
func NewDetailRequest(id string) Request {
	return Request{
		Method: "GET",
		Path:   notesEndpoint + "/" + id,
	}
}

// NewUpdateRequest builds the content-replacing PATCH call.
func NewUpdateRequest(id, content string) Request {
	return Request{
		Method: "PATCH",
		Path:   notesEndpoint + "/" + id,
		Body:   mustMarshal(updatePayload{Content: content}),
	}
}

// NewDeleteRequest builds the note removal call.
func NewDeleteRequest(id string) Request {
	return Request{
		Method: "DELETE",
		Path:   notesEndpoint + "/" + id,
	}
}
