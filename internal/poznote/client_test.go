package poznote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := testConfig()
	cfg.BaseURL = srv.URL
	return NewClient(srv.Client(), cfg, zerolog.Nop()), srv
}

func TestClassify(t *testing.T) {
	tests := []struct {
		status int
		want   Category
	}{
		{200, Success},
		{201, Success},
		{204, Success},
		{299, Success},
		{401, Unauthorized},
		{403, Unauthorized},
		{404, NotFound},
		{500, ServerError},
		{503, ServerError},
		{599, ServerError},
		{400, ServerError},
		{301, ServerError},
		{304, ServerError},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.status))
		})
	}
}

func TestDoSendsAuthAndScopingHeaders(t *testing.T) {
	var got *http.Request
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		fmt.Fprint(w, `{}`)
	})

	_, err := client.do(context.Background(), NewListRequest(client.cfg))
	require.NoError(t, err)

	user, pass, ok := got.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "s3cret", pass)
	assert.Equal(t, "7", got.Header.Get("X-User-ID"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "Clip", got.URL.Query().Get("workspace"))
}

func TestDoClassifiesHTTPFailures(t *testing.T) {
	tests := []struct {
		status int
		want   Category
	}{
		{http.StatusUnauthorized, Unauthorized},
		{http.StatusForbidden, Unauthorized},
		{http.StatusNotFound, NotFound},
		{http.StatusInternalServerError, ServerError},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := client.do(context.Background(), NewListRequest(client.cfg))
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.want, apiErr.Category)
			assert.Equal(t, tt.status, apiErr.Status)
		})
	}
}

func TestDoConnectionRefusedIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg := testConfig()
	cfg.BaseURL = srv.URL
	srv.Close() // nothing listens there anymore

	client := NewClient(nil, cfg, zerolog.Nop())
	_, err := client.do(context.Background(), NewListRequest(cfg))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, NetworkError, apiErr.Category)
}

func TestDoTimeoutIsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig()
	cfg.BaseURL = srv.URL
	client := NewClient(&http.Client{Timeout: 50 * time.Millisecond}, cfg, zerolog.Nop())

	_, err := client.do(context.Background(), NewListRequest(cfg))
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, Timeout, apiErr.Category)
}

func TestCreateExtractsNoteID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		fmt.Fprint(w, `{"note":{"id":101}}`)
	})

	id, err := client.Create(context.Background(), NoteBody{Content: "hello"}, "cli-1")
	require.NoError(t, err)
	assert.Equal(t, "101", id)
}

func TestNoteURL(t *testing.T) {
	cfg := testConfig()
	client := NewClient(nil, cfg, zerolog.Nop())
	assert.Equal(t,
		"https://notes.example.com/index.php?workspace=Clip&note=42",
		client.NoteURL("42"))
}

func TestLastNoteDeepFetchesFirstItem(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/api/v1/notes" {
			fmt.Fprint(w, `{"notes":[{"id":3},{"id":2},{"id":1}]}`)
			return
		}
		fmt.Fprint(w, `{"note":{"id":3,"heading":"latest","content":"body"}}`)
	})

	id, note, err := client.LastNote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3", id)
	assert.Equal(t, "latest", note.Heading)
	assert.Equal(t, "body", note.Content)
	assert.Equal(t, []string{"/api/v1/notes", "/api/v1/notes/3"}, paths)
}

func TestSearchFirstPassesQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/notes" {
			assert.Equal(t, "foo", r.URL.Query().Get("search"))
			fmt.Fprint(w, `{"notes":[{"id":8}]}`)
			return
		}
		fmt.Fprint(w, `{"note":{"id":8,"heading":"hit","content":"match"}}`)
	})

	id, note, err := client.SearchFirst(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, "8", id)
	assert.Equal(t, "hit", note.Heading)
}

func TestEmptyListingIsErrNoNotes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"notes":[]}`)
	})
	_, _, err := client.LastNote(context.Background())
	assert.True(t, errors.Is(err, ErrNoNotes))
}

func TestDebugPrintsCurlBeforeSending(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"notes":[{"id":1}]}`)
	})
	var buf bytes.Buffer
	client.Debug = true
	client.DebugOut = &buf

	_, _, err := client.LastNote(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "--- DEBUG: CURL COMMAND ---")
	assert.Contains(t, buf.String(), "curl -X GET")
	assert.NotContains(t, buf.String(), "s3cret")
}
