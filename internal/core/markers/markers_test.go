package markers

import "testing"

func TestExtractStartAnchor(t *testing.T) {
	got := Extract("04:20 What is grace?")
	if len(got) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(got))
	}
	m := got[0]
	if m.Seconds != 260 {
		t.Fatalf("seconds = %d, want 260", m.Seconds)
	}
	if m.Label != "What is grace?" {
		t.Fatalf("label = %q", m.Label)
	}
	if m.TimeText != "04:20" {
		t.Fatalf("time text = %q", m.TimeText)
	}
}

func TestExtractEndAnchor(t *testing.T) {
	got := Extract("What is grace? 04:20")
	if len(got) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(got))
	}
	if got[0].Seconds != 260 || got[0].Label != "What is grace?" {
		t.Fatalf("got %+v", got[0])
	}
}

func TestExtractSeparatorsStripped(t *testing.T) {
	cases := []struct {
		in    string
		label string
	}{
		{"04:20 - What is grace?", "What is grace?"},
		{"04:20 | What is grace?", "What is grace?"},
		{"04:20: What is grace?", "What is grace?"},
		{"What is faith - 12:00", "What is faith"},
	}
	for _, c := range cases {
		got := Extract(c.in)
		if len(got) != 1 {
			t.Fatalf("Extract(%q): expected 1 marker, got %d", c.in, len(got))
		}
		if got[0].Label != c.label {
			t.Fatalf("Extract(%q): label = %q, want %q", c.in, got[0].Label, c.label)
		}
	}
}

func TestExtractBareTimeCodeSkipped(t *testing.T) {
	if got := Extract("04:20"); len(got) != 0 {
		t.Fatalf("bare time code should yield no markers, got %d", len(got))
	}
	if got := Extract("04:20 - | ."); len(got) != 0 {
		t.Fatalf("separator-only label should yield no markers, got %d", len(got))
	}
}

func TestExtractStartWinsOverEnd(t *testing.T) {
	// both anchors match; start is taken and the end token becomes label text
	got := Extract("04:20 intro question 05:30")
	if len(got) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(got))
	}
	if got[0].Seconds != 260 {
		t.Fatalf("seconds = %d, want start anchor 260", got[0].Seconds)
	}
	if got[0].Label != "intro question 05:30" {
		t.Fatalf("label = %q", got[0].Label)
	}
}

func TestExtractHourFormat(t *testing.T) {
	got := Extract("1:23:45 Long form question")
	if len(got) != 1 || got[0].Seconds != 5025 {
		t.Fatalf("got %+v", got)
	}
}

func TestExtractSortStable(t *testing.T) {
	desc := "05:00 second\n0:10 first\n05:00 third\n"
	got := Extract(desc)
	if len(got) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(got))
	}
	if got[0].Label != "first" {
		t.Fatalf("sort broken: first = %q", got[0].Label)
	}
	// equal seconds keep description order
	if got[1].Label != "second" || got[2].Label != "third" {
		t.Fatalf("stable tie-break broken: %q, %q", got[1].Label, got[2].Label)
	}
}

func TestExtractIgnoresProse(t *testing.T) {
	desc := "Welcome to the show\n\nLinks below\n04:20 What is grace?\nSubscribe for more"
	got := Extract(desc)
	if len(got) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(got))
	}
}
