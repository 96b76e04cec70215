package qatext

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"  hello   world ", "hello world"},
		{"tabs\tand\nnewlines", "tabs and newlines"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanQuestion(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Q: What is grace", "What is grace?"},
		{"q. What is grace?", "What is grace?"},
		{"3) Is baptism required", "Is baptism required?"},
		{"12. Why   pray", "Why pray?"},
		{"Already punctuated.", "Already punctuated."},
		{"Ends with bang!", "Ends with bang!"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CleanQuestion(c.in); got != c.want {
			t.Fatalf("CleanQuestion(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPreviewShortPassThrough(t *testing.T) {
	if got := Preview("short answer", 500); got != "short answer" {
		t.Fatalf("got %q", got)
	}
}

func TestPreviewTruncatesAtWordBoundary(t *testing.T) {
	answer := strings.Repeat("lorem ipsum dolor sit amet ", 30) // ~810 chars
	got := Preview(answer, 500)
	if len(got) > 503 {
		t.Fatalf("preview too long: %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("missing ellipsis: %q", got)
	}
	body := strings.TrimSuffix(got, "...")
	// must not end mid-word when a space exists past the 70% mark
	words := strings.Fields(answer[:504])
	last := strings.Fields(body)
	if len(last) == 0 {
		t.Fatal("empty preview body")
	}
	found := false
	for _, w := range words {
		if w == last[len(last)-1] {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("preview ends mid-word: %q", last[len(last)-1])
	}
}

func TestPreviewNoSpaceBeforeCut(t *testing.T) {
	answer := strings.Repeat("x", 600)
	got := Preview(answer, 500)
	if got != strings.Repeat("x", 500)+"..." {
		t.Fatalf("expected raw truncation plus ellipsis, got %d chars", len(got))
	}
}

func TestPreviewStripsTrailingPunctuation(t *testing.T) {
	answer := strings.Repeat("a ", 240) + "ending here,  " + strings.Repeat("b ", 100)
	got := Preview(answer, 500)
	body := strings.TrimSuffix(got, "...")
	if strings.ContainsAny(body[len(body)-1:], ".,;:!? ") {
		t.Fatalf("trailing punctuation not stripped: %q", body[len(body)-10:])
	}
}

func TestFold(t *testing.T) {
	if got := Fold("Église Réformée"); got != "eglise reformee" {
		t.Fatalf("Fold = %q", got)
	}
	if got := Fold("PLAIN text"); got != "plain text" {
		t.Fatalf("Fold = %q", got)
	}
}
