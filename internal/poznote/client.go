package poznote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/poznote/poznote-cli/internal/config"
)

// defaultRequestTimeout bounds every API call.
const defaultRequestTimeout = 10 * time.Second

// Category classifies the outcome of one API call.
type Category int

const (
	Success Category = iota
	Unauthorized
	NotFound
	ServerError
	NetworkError
	Timeout
)

func (c Category) String() string {
	switch c {
	case Success:
		return "success"
	case Unauthorized:
		return "unauthorized"
	case NotFound:
		return "not found"
	case ServerError:
		return "server error"
	case NetworkError:
		return "network error"
	case Timeout:
		return "timeout"
	}
	return "unknown"
}

// APIError is every non-success transport outcome. Status is zero when the
// request never reached the server.
type APIError struct {
	Category Category
	Status   int
	cause    error
}

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("API request failed (%s): %v", e.Category, e.cause)
	}
	return fmt.Sprintf("API request failed (%s): status %d", e.Category, e.Status)
}

func (e *APIError) Unwrap() error { return e.cause }

// Classify maps an HTTP status code to its outcome category.
func Classify(status int) Category {
	switch {
	case status >= 200 && status < 300:
		return Success
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return Unauthorized
	case status == http.StatusNotFound:
		return NotFound
	case status >= 500 && status < 600:
		return ServerError
	}
	// Anything else (remaining 4xx, and 3xx the transport did not follow)
	// has no dedicated category; treat it as a server-side failure.
	return ServerError
}

// classifyErr separates a client-side timeout from connection and DNS
// failures.
func classifyErr(err error) Category {
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return Timeout
	}
	return NetworkError
}

// NoteDetail is the subset of a note record the CLI displays.
type NoteDetail struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

type noteRef struct {
	ID json.Number `json:"id"`
}

type listResponse struct {
	Notes []noteRef `json:"notes"`
}

type noteEnvelope struct {
	Note struct {
		noteRef
		NoteDetail
	} `json:"note"`
}

// ErrNoNotes is returned by LastNote and SearchFirst when the workspace
// holds no matching note. Not an API failure.
var ErrNoNotes = errors.New("no notes found")

// Client executes Poznote API calls. All calls share basic auth, the
// X-User-ID scoping header and a bounded timeout.
type Client struct {
	http *http.Client
	cfg  config.Config
	log  zerolog.Logger

	// Debug, when set, prints the curl equivalent of each request to
	// DebugOut before sending it.
	Debug    bool
	DebugOut io.Writer
}

// NewClient returns a client for the configured instance. httpClient may
// be nil, in which case a default client with the standard timeout is used.
func NewClient(httpClient *http.Client, cfg config.Config, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{
		http:     httpClient,
		cfg:      cfg,
		log:      log,
		DebugOut: io.Discard,
	}
}

// NoteURL derives the shareable link for a note in the configured
// workspace.
func (c *Client) NoteURL(id string) string {
	return fmt.Sprintf("%s/index.php?workspace=%s&note=%s",
		c.cfg.BaseURL, url.QueryEscape(c.cfg.Workspace), url.QueryEscape(id))
}

// do executes one built request and returns the response body on success.
// Every failure comes back as an *APIError; nothing panics.
func (c *Client) do(ctx context.Context, r Request) ([]byte, error) {
	if c.Debug {
		fmt.Fprintf(c.DebugOut, "\n--- DEBUG: CURL COMMAND ---\n%s\n---------------------------\n\n", r.Curl(c.cfg))
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL(c.cfg.BaseURL), body)
	if err != nil {
		return nil, &APIError{Category: NetworkError, cause: err}
	}
	req.SetBasicAuth(c.cfg.User, c.cfg.Password)
	for name, val := range requestHeaders(c.cfg) {
		req.Header.Set(name, val)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		cat := classifyErr(err)
		c.log.Debug().Str("method", r.Method).Str("url", req.URL.String()).
			Dur("elapsed", time.Since(start)).Str("outcome", cat.String()).Msg("request failed")
		return nil, &APIError{Category: cat, cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Category: NetworkError, cause: err}
	}
	c.log.Debug().Str("method", r.Method).Str("url", req.URL.String()).
		Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("request completed")

	if cat := Classify(resp.StatusCode); cat != Success {
		return nil, &APIError{Category: cat, Status: resp.StatusCode}
	}
	return data, nil
}

// Create posts a new note and returns the server-assigned id.
func (c *Client) Create(ctx context.Context, body NoteBody, heading string) (string, error) {
	data, err := c.do(ctx, NewCreateRequest(c.cfg, body, heading))
	if err != nil {
		return "", err
	}
	var env noteEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", &APIError{Category: ServerError, cause: fmt.Errorf("malformed create response: %w", err)}
	}
	return env.Note.ID.String(), nil
}

// LastNote fetches the most recent note in the workspace: the listing
// yields the id, a second call fetches the content.
func (c *Client) LastNote(ctx context.Context) (string, NoteDetail, error) {
	return c.firstOf(ctx, NewListRequest(c.cfg))
}

// SearchFirst fetches the first note matching query in the workspace.
func (c *Client) SearchFirst(ctx context.Context, query string) (string, NoteDetail, error) {
	return c.firstOf(ctx, NewSearchRequest(c.cfg, query))
}

func (c *Client) firstOf(ctx context.Context, listing Request) (string, NoteDetail, error) {
	data, err := c.do(ctx, listing)
	if err != nil {
		return "", NoteDetail{}, err
	}
	var list listResponse
	if err := json.Unmarshal(data, &list); err != nil {
		return "", NoteDetail{}, &APIError{Category: ServerError, cause: fmt.Errorf("malformed list response: %w", err)}
	}
	if len(list.Notes) == 0 {
		return "", NoteDetail{}, ErrNoNotes
	}
	id := list.Notes[0].ID.String()

	detail, err := c.do(ctx, NewDetailRequest(id))
	if err != nil {
		return "", NoteDetail{}, err
	}
	var env noteEnvelope
	if err := json.Unmarshal(detail, &env); err != nil {
		return "", NoteDetail{}, &APIError{Category: ServerError, cause: fmt.Errorf("malformed note response: %w", err)}
	}
	return id, env.Note.NoteDetail, nil
}

// Update replaces the content of an existing note.
func (c *Client) Update(ctx context.Context, id, content string) error {
	_, err := c.do(ctx, NewUpdateRequest(id, content))
	return err
}

// Delete removes a note permanently.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, NewDeleteRequest(id))
	return err
}
