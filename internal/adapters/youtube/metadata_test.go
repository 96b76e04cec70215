package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "vidqa/internal/platform/errors"
)

const snippetFixture = `{
  "items": [{"snippet": {
    "title": "Q&A 142",
    "description": "04:20 What is grace?",
    "channelId": "UCabc",
    "channelTitle": "Some Channel",
    "publishedAt": "2025-01-15T14:30:00Z"
  }}]
}`

func apiServer(t *testing.T, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(Options{APIKey: "test-key", APIBase: srv.URL, RPS: 1000})
}

func TestMetadata(t *testing.T) {
	c := apiServer(t, snippetFixture)
	md, err := c.Metadata(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if md.Title != "Q&A 142" || md.ChannelTitle != "Some Channel" {
		t.Fatalf("got %+v", md)
	}
	if md.PublishedAt == nil || md.PublishedAt.Year() != 2025 {
		t.Fatalf("published at not parsed: %+v", md.PublishedAt)
	}
}

func TestMetadataNotFound(t *testing.T) {
	c := apiServer(t, `{"items": []}`)
	_, err := c.Metadata(context.Background(), "dQw4w9WgXcQ")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMetadataRequiresKey(t *testing.T) {
	c := NewClient(Options{RPS: 1000})
	if _, err := c.Metadata(context.Background(), "dQw4w9WgXcQ"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestPlaylistVideoIDsPaginates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "" {
			_, _ = w.Write([]byte(`{"nextPageToken":"p2","items":[{"contentDetails":{"videoId":"aaaaaaaaaaa"}}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"contentDetails":{"videoId":"bbbbbbbbbbb"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(Options{APIKey: "k", APIBase: srv.URL, RPS: 1000})
	ids, err := c.PlaylistVideoIDs(context.Background(), "PLxyz")
	if err != nil {
		t.Fatalf("PlaylistVideoIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != "aaaaaaaaaaa" || ids[1] != "bbbbbbbbbbb" {
		t.Fatalf("ids = %v", ids)
	}
}
