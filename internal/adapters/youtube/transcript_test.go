package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidqa/internal/core/answers"
	perr "vidqa/internal/platform/errors"
)

const timedtextFixture = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.12" dur="2.5">welcome back</text>
  <text start="2.62" dur="3.1">today&#39;s first question</text>
  <text start="5.72">no duration here</text>
</transcript>`

func timedtextServer(t *testing.T, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(Options{TimedtextBase: srv.URL, RPS: 1000})
}

func TestTranscript(t *testing.T) {
	c := timedtextServer(t, timedtextFixture)
	segs, err := c.Transcript(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Transcript: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if segs[0].Start != 0.12 || segs[0].Text != "welcome back" {
		t.Fatalf("seg0 = %+v", segs[0])
	}
	if segs[1].Text != "today's first question" {
		t.Fatalf("entity not unescaped: %q", segs[1].Text)
	}
	if segs[2].Duration != 0 {
		t.Fatalf("missing dur should be zero, got %v", segs[2].Duration)
	}
}

func TestTranscriptEmptyBodyIsNotFound(t *testing.T) {
	c := timedtextServer(t, "")
	_, err := c.Transcript(context.Background(), "dQw4w9WgXcQ")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRawDataAndFullText(t *testing.T) {
	segs := []answers.Segment{
		{Start: 1.5, Duration: 2, Text: "hello"},
		{Start: 3.5, Text: "world"},
	}
	raw, err := RawData(segs)
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"start":1.5,"text":"hello"},{"start":3.5,"text":"world"}]`
	if string(raw) != want {
		t.Fatalf("raw = %s", raw)
	}
	if got := FullText(segs); got != "hello world" {
		t.Fatalf("full text = %q", got)
	}
}
